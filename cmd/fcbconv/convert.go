package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/arloliu/fcb"
	"github.com/arloliu/fcb/config"
	"github.com/arloliu/fcb/container"
	"github.com/arloliu/fcb/dict"
	"github.com/arloliu/fcb/xmltree"
)

var errRoundTrip = errors.New("round trip changed the container")

type converter struct {
	cfg     *config.Config
	opts    *options
	logger  *slog.Logger
	console *console
}

func (c *converter) run() error {
	c.logger.Debug("converting", "mode", c.opts.mode.String(), "input", c.opts.input)

	switch c.opts.mode {
	case modeImport:
		return c.importXML()
	case modeExport:
		return c.exportXML()
	case modeVerify:
		return c.verify()
	default:
		return usagef("no conversion mode")
	}
}

func (c *converter) decodeOptions() []container.DecodeOption {
	opts := []container.DecodeOption{container.WithLogger(c.logger)}
	if c.cfg.Decode.StrictCounts {
		opts = append(opts, container.WithStrictCounts())
	}

	return opts
}

func (c *converter) exportXML() error {
	names, err := c.loadDictionary()
	if err != nil {
		return err
	}

	output := c.opts.output
	if output == "" {
		output = exportOutputPath(c.opts.input)
	}

	c.console.Progress("Reading FCB...")
	data, err := os.ReadFile(c.opts.input)
	if err != nil {
		return err
	}

	c.console.Progress("Writing XML...")
	err = writeFileAtomic(output, func(w io.Writer) error {
		return fcb.ExportXML(w, data,
			fcb.WithDecodeOptions(c.decodeOptions()...),
			fcb.WithXMLOptions(
				xmltree.WithLogger(c.logger),
				xmltree.WithResolver(names),
				xmltree.WithMissingRecorder(names),
				xmltree.WithPairing(c.cfg.Export.Pairing),
				xmltree.WithIndent(c.cfg.Export.Indent),
			))
	})
	if err != nil {
		return fmt.Errorf("%s: %w", c.opts.input, err)
	}

	if err := c.reportMissing(names); err != nil {
		return err
	}

	c.console.Done("Exported %s", output)

	return nil
}

func (c *converter) importXML() error {
	output := c.opts.output
	if output == "" {
		output = importOutputPath(c.opts.input)
	}

	xmlOpts := []xmltree.Option{
		xmltree.WithLogger(c.logger),
		xmltree.WithExternalNameCheck(c.cfg.Import.CheckExternalNames),
	}

	c.console.Progress("Reading XML...")
	data, err := fcb.ImportXMLFile(c.opts.input, fcb.WithXMLOptions(xmlOpts...))
	if err != nil {
		return fmt.Errorf("%s: %w", c.opts.input, err)
	}

	c.console.Progress("Writing FCB...")
	err = writeFileAtomic(output, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
	if err != nil {
		return err
	}

	c.console.Done("Imported %s", output)

	return nil
}

func (c *converter) verify() error {
	data, err := os.ReadFile(c.opts.input)
	if err != nil {
		return err
	}

	report, err := fcb.Verify(data, fcb.WithDecodeOptions(c.decodeOptions()...))
	if err != nil {
		return fmt.Errorf("%s: %w", c.opts.input, err)
	}

	c.logger.Debug("verified",
		"objects", report.Objects,
		"values", report.Values,
		"input_size", report.InputSize,
		"input_xxh64", fmt.Sprintf("%016x", report.InputFingerprint),
		"output_size", report.OutputSize,
		"output_xxh64", fmt.Sprintf("%016x", report.OutputFingerprint))

	if !report.Lossless {
		return fmt.Errorf("%s: %w", c.opts.input, errRoundTrip)
	}
	if !report.Identical {
		c.console.Warn("%s uses back-references; the re-encoded file is %d bytes instead of %d",
			c.opts.input, report.OutputSize, report.InputSize)
	}

	c.console.Done("Verified %s: %d objects, %d values", c.opts.input, report.Objects, report.Values)

	return nil
}

// loadDictionary loads the configured name lists. Without any, the default
// list next to the executable is used when present.
func (c *converter) loadDictionary() (*dict.Dictionary, error) {
	names, err := dict.New(dict.WithLogger(c.logger))
	if err != nil {
		return nil, err
	}

	paths := c.cfg.Dictionaries
	optional := false
	if len(paths) == 0 {
		exe, err := os.Executable()
		if err != nil {
			return names, nil
		}
		paths = []string{filepath.Join(filepath.Dir(exe), dict.DefaultFile)}
		optional = true
	}

	for _, path := range paths {
		n, err := names.Load(path)
		if err != nil {
			if optional && errors.Is(err, fs.ErrNotExist) {
				continue
			}

			return nil, err
		}
		c.console.Progress("Loaded %d names from %s", n, path)
	}

	if collisions := names.Collisions(); len(collisions) > 0 {
		c.console.Warn("%d names collide with earlier entries and were ignored", len(collisions))
	}

	return names, nil
}

func (c *converter) reportMissing(names *dict.Dictionary) error {
	missing := names.Missing()
	if len(missing) == 0 {
		return nil
	}

	c.console.Progress("%d hashes could not be resolved", len(missing))

	if c.cfg.MissingHashes == "" {
		return nil
	}

	return writeFileAtomic(c.cfg.MissingHashes, names.WriteMissing)
}

// writeFileAtomic writes path through a temporary file in the same
// directory, so a failed conversion leaves no partial output behind.
func writeFileAtomic(path string, write func(w io.Writer) error) (err error) {
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}

	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(f.Name())
		}
	}()

	bw := bufio.NewWriter(f)
	if err = write(bw); err != nil {
		return err
	}
	if err = bw.Flush(); err != nil {
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	if err = os.Chmod(f.Name(), 0o644); err != nil {
		return err
	}

	return os.Rename(f.Name(), path)
}
