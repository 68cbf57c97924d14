package xmltree

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/arloliu/fcb/infer"
	"github.com/arloliu/fcb/internal/options"
)

// DefaultIndent is the per-level indentation of exported documents.
const DefaultIndent = "  "

// Config holds export and import settings. Each option only affects the
// direction it names.
type Config struct {
	resolver  infer.Resolver
	missing   infer.MissingRecorder
	pairing   bool
	indent    string
	fsys      fs.FS
	nameCheck bool
	logger    *slog.Logger
}

// Option configures Export and Import.
type Option = options.Option[*Config]

func newConfig(opts []Option) (*Config, error) {
	cfg := &Config{
		pairing:   true,
		indent:    DefaultIndent,
		nameCheck: true,
		logger:    slog.New(slog.DiscardHandler),
	}

	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}

// WithResolver sets the hash to name resolver used on export.
func WithResolver(r infer.Resolver) Option {
	return options.NoError(func(c *Config) {
		c.resolver = r
	})
}

// WithMissingRecorder sets where export reports unresolved hashes.
func WithMissingRecorder(m infer.MissingRecorder) Option {
	return options.NoError(func(c *Config) {
		c.missing = m
	})
}

// WithPairing enables or disables hash pairing on export. Pairing is on by
// default; with it off, Import reproduces every field of an exported tree.
func WithPairing(enabled bool) Option {
	return options.NoError(func(c *Config) {
		c.pairing = enabled
	})
}

// WithIndent sets the per-level indentation of exported documents.
// An empty string writes the document on one line.
func WithIndent(indent string) Option {
	return options.New(func(c *Config) error {
		for _, r := range indent {
			if r != ' ' && r != '\t' {
				return fmt.Errorf("indent must only contain spaces and tabs, got %q", indent)
			}
		}
		c.indent = indent

		return nil
	})
}

// WithFS sets the filesystem external fragments are loaded from on import.
func WithFS(fsys fs.FS) Option {
	return options.New(func(c *Config) error {
		if fsys == nil {
			return fmt.Errorf("filesystem must not be nil")
		}
		c.fsys = fsys

		return nil
	})
}

// WithBaseDir loads external fragments relative to dir on import.
func WithBaseDir(dir string) Option {
	return options.NoError(func(c *Config) {
		c.fsys = os.DirFS(dir)
	})
}

// WithExternalNameCheck controls whether Import verifies that every external
// fragment is stored under the name its root object declares. On by default.
func WithExternalNameCheck(enabled bool) Option {
	return options.NoError(func(c *Config) {
		c.nameCheck = enabled
	})
}

// WithLogger sets the logger used for diagnostics. Default discards.
func WithLogger(logger *slog.Logger) Option {
	return options.New(func(c *Config) error {
		if logger == nil {
			return fmt.Errorf("logger must not be nil")
		}
		c.logger = logger

		return nil
	})
}
