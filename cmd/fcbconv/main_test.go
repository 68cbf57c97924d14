package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/fcb/config"
	"github.com/arloliu/fcb/container"
	"github.com/arloliu/fcb/hash"
	"github.com/arloliu/fcb/object"
)

func TestImportOutputPath(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"world.lib.xml", "world.lib"},
		{"world.xml", "world.lib"},
		{"world_converted.xml", "world.lib"},
		{"entity_0A1B2C3D.xml", "entity_0A1B2C3D.obj"},
		{"entity_0a1b2c3d_converted.xml", "entity_0a1b2c3d.obj"},
		{"entity_0A1B2C3.xml", "entity_0A1B2C3.lib"},
		{filepath.Join("dir", "a_converted.obj.xml"), filepath.Join("dir", "a_converted.obj")},
		{"noext", "noext.lib"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, importOutputPath(tt.input))
		})
	}
}

func TestExportOutputPath(t *testing.T) {
	assert.Equal(t, "world.lib.xml", exportOutputPath("world.lib"))
}

func TestDetectMode(t *testing.T) {
	assert.Equal(t, modeImport, detectMode("a.xml"))
	assert.Equal(t, modeImport, detectMode("a.XML"))
	assert.Equal(t, modeExport, detectMode("a.lib"))
	assert.Equal(t, modeExport, detectMode("a"))
}

func TestParseArgs(t *testing.T) {
	opts, _, err := parseArgs([]string{"-v", "--strings", "a.txt", "--strings", "b.txt", "in.xml", "out.lib"})
	require.NoError(t, err)
	assert.Equal(t, modeImport, opts.mode)
	assert.Equal(t, "in.xml", opts.input)
	assert.Equal(t, "out.lib", opts.output)
	assert.Equal(t, []string{"a.txt", "b.txt"}, opts.strings)
	assert.True(t, opts.verbose)

	opts, _, err = parseArgs([]string{"-e", "in.xml"})
	require.NoError(t, err)
	assert.Equal(t, modeExport, opts.mode, "explicit mode wins over the extension")

	opts, _, err = parseArgs([]string{"--version"})
	require.NoError(t, err)
	assert.Nil(t, opts)

	for _, args := range [][]string{
		{},
		{"a", "b", "c"},
		{"-i", "-e", "a"},
		{"--verify", "a", "b"},
		{"--bogus", "a"},
	} {
		_, _, err := parseArgs(args)
		var ue *usageError
		require.ErrorAs(t, err, &ue, "%v", args)
	}
}

func writeSample(t *testing.T, dir string) string {
	t.Helper()

	root := object.New(hash.CRC32("EntityLibraries"))
	entity := root.AddChild(object.New(hash.CRC32("Entity")))
	require.NoError(t, entity.AddField(hash.CRC32("Name"), []byte("Crate\x00")))
	require.NoError(t, entity.AddField(0x00000042, []byte{1, 2, 3}))

	data, err := container.Encode(container.NewDocument(root))
	require.NoError(t, err)

	path := filepath.Join(dir, "sample.lib")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	return path
}

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)

	return code, stdout.String(), stderr.String()
}

func TestRun_ExportImport(t *testing.T) {
	t.Setenv(config.EnvVar, "")

	dir := t.TempDir()
	input := writeSample(t, dir)

	names := filepath.Join(dir, "names.txt")
	require.NoError(t, os.WriteFile(names, []byte("EntityLibraries\nName\n"), 0o600))
	missing := filepath.Join(dir, "missing.txt")

	code, _, stderr := runCLI(t, "--no-pairing", "--strings", names, "--missing", missing, input)
	require.Equal(t, exitOK, code, stderr)
	assert.Contains(t, stderr, "Exported")

	xmlData, err := os.ReadFile(input + ".xml")
	require.NoError(t, err)
	assert.Contains(t, string(xmlData), `<object name="EntityLibraries" version="3">`)

	missingData, err := os.ReadFile(missing)
	require.NoError(t, err)
	assert.Equal(t, "00000042\n0984415E\n", string(missingData))

	output := filepath.Join(dir, "again.lib")
	code, _, stderr = runCLI(t, "-v", input+".xml", output)
	require.Equal(t, exitOK, code, stderr)
	assert.Contains(t, stderr, "Reading XML...")

	original, err := os.ReadFile(input)
	require.NoError(t, err)
	again, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, original, again)
}

func TestRun_ImportNameCheck(t *testing.T) {
	t.Setenv(config.EnvVar, "")

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "lib.xml"),
		[]byte(`<object name="lib"><object external="Crate.xml"/></object>`), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Crate.xml"),
		[]byte(`<object name="Entity"><field name="text_hidName" type="String">Barrel</field></object>`), 0o600))
	output := filepath.Join(dir, "lib.lib")

	code, _, stderr := runCLI(t, filepath.Join(dir, "lib.xml"), output)
	assert.Equal(t, exitFailure, code)
	assert.Contains(t, stderr, `expected "Barrel", got "Crate"`)
	assert.NoFileExists(t, output)

	code, _, stderr = runCLI(t, "--no-name-check", filepath.Join(dir, "lib.xml"), output)
	require.Equal(t, exitOK, code, stderr)
	assert.FileExists(t, output)
}

func TestRun_Verify(t *testing.T) {
	t.Setenv(config.EnvVar, "")

	input := writeSample(t, t.TempDir())

	code, _, stderr := runCLI(t, "--verify", "--strict-counts", input)
	require.Equal(t, exitOK, code, stderr)
	assert.Contains(t, stderr, "Verified")
}

func TestRun_FailureLeavesNoOutput(t *testing.T) {
	t.Setenv(config.EnvVar, "")

	dir := t.TempDir()
	input := filepath.Join(dir, "broken.lib")
	require.NoError(t, os.WriteFile(input, []byte("not a container"), 0o600))

	code, _, stderr := runCLI(t, input)
	assert.Equal(t, exitFailure, code)
	assert.Contains(t, stderr, "error:")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "only the input remains")
}

func TestRun_Usage(t *testing.T) {
	t.Setenv(config.EnvVar, "")

	code, stdout, _ := runCLI(t, "--help")
	assert.Equal(t, exitOK, code)
	assert.Contains(t, stdout, "USAGE")
	assert.Contains(t, stdout, "--no-name-check")

	code, stdout, _ = runCLI(t, "--version")
	assert.Equal(t, exitOK, code)
	assert.Contains(t, stdout, "fcbconv")

	code, _, stderr := runCLI(t)
	assert.Equal(t, exitUsage, code)
	assert.Contains(t, stderr, "--help")

	code, _, _ = runCLI(t, "--config", filepath.Join(t.TempDir(), "absent.yaml"), "x.lib")
	assert.Equal(t, exitUsage, code)
}

func TestRun_Config(t *testing.T) {
	dir := t.TempDir()
	input := writeSample(t, dir)

	cfgPath := filepath.Join(dir, "fcb.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("export:\n  indent: \"\\t\"\n  pairing: false\n"), 0o600))
	t.Setenv(config.EnvVar, cfgPath)

	code, _, stderr := runCLI(t, input, filepath.Join(dir, "out.xml"))
	require.Equal(t, exitOK, code, stderr)

	data, err := os.ReadFile(filepath.Join(dir, "out.xml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n\t<object hash=\"0984415E\">")
}
