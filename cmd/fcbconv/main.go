// fcbconv converts FCbn object containers to XML and back.
//
// The direction follows the input extension: .xml files are imported into
// a binary container, anything else is exported to XML. --verify checks
// that a binary file survives the round trip unchanged.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime/debug"

	"github.com/spf13/pflag"

	"github.com/arloliu/fcb/config"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

// usageError marks errors caused by the command line rather than the input.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

func usagef(format string, args ...any) error {
	return &usageError{err: fmt.Errorf(format, args...)}
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// options is the parsed command line.
type options struct {
	mode         mode
	input        string
	output       string
	configPath   string
	strings      []string
	missing      string
	noPairing    bool
	strictCounts bool
	noNameCheck  bool
	verbose      bool
}

func run(args []string, stdout, stderr io.Writer) int {
	out := newConsole(stderr, false)

	opts, flagSet, err := parseArgs(args)
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			printUsage(stdout, flagSet)
			return exitOK
		}
		out.Error(err)
		fmt.Fprintln(stderr, "Try 'fcbconv --help' for more information.")

		return exitUsage
	}
	if opts == nil {
		fmt.Fprintf(stdout, "fcbconv %s\n", buildVersion())
		return exitOK
	}

	cfg, err := loadConfig(opts, flagSet)
	if err != nil {
		out.Error(err)
		return exitUsage
	}

	level, _ := cfg.LogLevel()
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	out.verbose = opts.verbose || level <= slog.LevelDebug

	c := &converter{cfg: cfg, opts: opts, logger: logger, console: out}
	if err := c.run(); err != nil {
		out.Error(err)

		var ue *usageError
		if errors.As(err, &ue) {
			return exitUsage
		}

		return exitFailure
	}

	return exitOK
}

// parseArgs parses the command line. It returns nil options when only the
// version was requested.
func parseArgs(args []string) (*options, *pflag.FlagSet, error) {
	var (
		opts        options
		importMode  bool
		exportMode  bool
		verifyMode  bool
		showVersion bool
	)

	flagSet := pflag.NewFlagSet("fcbconv", pflag.ContinueOnError)
	flagSet.SetOutput(io.Discard)
	flagSet.BoolVarP(&importMode, "import", "i", false, "convert XML to a binary container")
	flagSet.BoolVarP(&exportMode, "export", "e", false, "convert a binary container to XML")
	flagSet.BoolVar(&verifyMode, "verify", false, "check that a binary container survives an XML round trip")
	flagSet.StringVar(&opts.configPath, "config", "", "YAML configuration file (default: $"+config.EnvVar+")")
	flagSet.StringArrayVar(&opts.strings, "strings", nil, "name dictionary to load, may be repeated")
	flagSet.StringVar(&opts.missing, "missing", "", "write unresolved hashes to this file after export")
	flagSet.BoolVar(&opts.noPairing, "no-pairing", false, "export every field with its own bytes")
	flagSet.BoolVar(&opts.strictCounts, "strict-counts", false, "reject files whose header counts disagree with the tree")
	flagSet.BoolVar(&opts.noNameCheck, "no-name-check", false, "skip verifying the names of external fragments on import")
	flagSet.BoolVarP(&opts.verbose, "verbose", "v", false, "be verbose")
	flagSet.BoolVar(&showVersion, "version", false, "print the version and exit")
	flagSet.BoolP("help", "h", false, "show this message and exit")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil, flagSet, err
		}

		return nil, flagSet, &usageError{err: err}
	}

	if help, _ := flagSet.GetBool("help"); help {
		return nil, flagSet, pflag.ErrHelp
	}
	if showVersion {
		return nil, flagSet, nil
	}

	selected := 0
	for _, m := range []struct {
		on   bool
		mode mode
	}{{importMode, modeImport}, {exportMode, modeExport}, {verifyMode, modeVerify}} {
		if m.on {
			opts.mode = m.mode
			selected++
		}
	}
	if selected > 1 {
		return nil, flagSet, usagef("--import, --export and --verify are mutually exclusive")
	}

	rest := flagSet.Args()
	if len(rest) < 1 || len(rest) > 2 {
		return nil, flagSet, usagef("expected an input path and an optional output path, got %d arguments", len(rest))
	}

	opts.input = rest[0]
	if len(rest) == 2 {
		if opts.mode == modeVerify {
			return nil, flagSet, usagef("--verify takes no output path")
		}
		opts.output = rest[1]
	}

	if opts.mode == modeUnknown {
		opts.mode = detectMode(opts.input)
	}

	return &opts, flagSet, nil
}

// loadConfig loads the configuration file and applies command line overrides.
func loadConfig(opts *options, flagSet *pflag.FlagSet) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if opts.configPath != "" {
		cfg, err = config.LoadFile(opts.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	cfg.Dictionaries = append(cfg.Dictionaries, opts.strings...)
	if flagSet.Changed("missing") {
		cfg.MissingHashes = opts.missing
	}
	if opts.noPairing {
		cfg.Export.Pairing = false
	}
	if opts.strictCounts {
		cfg.Decode.StrictCounts = true
	}
	if opts.noNameCheck {
		cfg.Import.CheckExternalNames = false
	}

	return cfg, nil
}

func printUsage(w io.Writer, flagSet *pflag.FlagSet) {
	fmt.Fprintf(w, `fcbconv - convert FCbn object containers to XML and back

USAGE
    fcbconv [flags] input [output]

The direction follows the input extension unless --import or --export is
given: .xml files are imported, anything else is exported. Without an output
path, export writes input.xml and import writes the input path without its
extension and "_converted" suffix, adding .obj or .lib when needed.

FLAGS
%s
EXIT STATUS
    0 on success, 1 when the conversion fails, 2 on usage errors.
`, flagSet.FlagUsages())
}

func buildVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}

	return "(devel)"
}
