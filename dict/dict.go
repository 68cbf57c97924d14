// Package dict resolves name hashes to the names they were computed from.
//
// A Dictionary is filled from name lists, one name per line, and serves as
// the resolver and missing recorder of an export:
//
//	d, _ := dict.New()
//	if _, err := d.Load("strings.txt"); err != nil {
//	    return err
//	}
//	err := xmltree.Export(w, doc, xmltree.WithResolver(d), xmltree.WithMissingRecorder(d))
//
// Lists may be compressed; the codec is chosen by file extension (.zst, .s2,
// .lz4). Hashes that could not be resolved are collected and can be written
// out with WriteMissing.
package dict

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"
	"sync"

	"github.com/arloliu/fcb/compress"
	"github.com/arloliu/fcb/hash"
	"github.com/arloliu/fcb/internal/collision"
	"github.com/arloliu/fcb/internal/options"
)

// DefaultFile is the dictionary loaded when no other is configured.
const DefaultFile = "strings.txt"

// maxLineSize bounds a single dictionary line.
const maxLineSize = 1 << 20

// Collision is a name that was dropped because its hash already belonged
// to another name.
type Collision = collision.Collision

// Dictionary maps CRC32 name hashes to names. Names must be added before it
// is shared; Resolve and RecordMissing are safe for concurrent use after that.
type Dictionary struct {
	names  *collision.Tracker
	logger *slog.Logger

	mu      sync.Mutex
	missing map[uint32]struct{}
}

// Option configures a Dictionary.
type Option = options.Option[*Dictionary]

// WithLogger sets the logger collisions and loads are reported to.
func WithLogger(logger *slog.Logger) Option {
	return options.New(func(d *Dictionary) error {
		if logger == nil {
			return fmt.Errorf("logger must not be nil")
		}
		d.logger = logger

		return nil
	})
}

// WithNames adds names to the dictionary, as if by Add.
func WithNames(names ...string) Option {
	return options.New(func(d *Dictionary) error {
		for _, name := range names {
			if err := d.Add(name); err != nil {
				return err
			}
		}

		return nil
	})
}

// New creates an empty dictionary.
func New(opts ...Option) (*Dictionary, error) {
	d := &Dictionary{
		names:   collision.NewTracker(),
		logger:  slog.New(slog.DiscardHandler),
		missing: make(map[uint32]struct{}),
	}

	if err := options.Apply(d, opts...); err != nil {
		return nil, err
	}

	return d, nil
}

// Add registers name under its CRC32 hash.
func (d *Dictionary) Add(name string) error {
	return d.AddHash(hash.CRC32(name), name)
}

// AddHash registers name under h. The first name registered for a hash wins;
// later different names are recorded as collisions.
func (d *Dictionary) AddHash(h uint32, name string) error {
	ok, err := d.names.Track(name, h)
	if err != nil {
		return err
	}

	if !ok {
		kept, _ := d.names.Lookup(h)
		d.logger.Debug("hash collision", "hash", fmt.Sprintf("%08X", h), "kept", kept, "dropped", name)
	}

	return nil
}

// Load adds every name listed in the file at path and returns how many lines
// were read. Compressed files are recognized by extension.
func (d *Dictionary) Load(path string) (int, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}

	codec, err := compress.ForPath(path)
	if err != nil {
		return 0, err
	}

	data, err := codec.Decompress(raw)
	if err != nil {
		return 0, fmt.Errorf("dictionary %s: %w", path, err)
	}

	n, err := d.LoadReader(bytes.NewReader(data))
	if err != nil {
		return n, fmt.Errorf("dictionary %s: %w", path, err)
	}

	d.logger.Debug("loaded dictionary", "path", path, "names", n)

	return n, nil
}

// LoadReader adds one name per line of r and returns how many names were
// read. Empty lines are skipped, as is the first line when it starts with '#'.
// Lines are taken verbatim apart from a trailing carriage return.
func (d *Dictionary) LoadReader(r io.Reader) (int, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	count := 0
	for lineNo := 0; sc.Scan(); lineNo++ {
		line := strings.TrimSuffix(sc.Text(), "\r")
		if lineNo == 0 {
			line = strings.TrimPrefix(line, "\uFEFF")
		}

		if line == "" || (lineNo == 0 && line[0] == '#') {
			continue
		}

		if err := d.Add(line); err != nil {
			return count, fmt.Errorf("line %d: %w", lineNo+1, err)
		}
		count++
	}

	if err := sc.Err(); err != nil {
		return count, err
	}

	return count, nil
}

// Len returns the number of resolvable hashes.
func (d *Dictionary) Len() int {
	return d.names.Count()
}

// Resolve returns the name registered for h.
func (d *Dictionary) Resolve(h uint32) (string, bool) {
	return d.names.Lookup(h)
}

// RecordMissing notes h as unresolvable.
func (d *Dictionary) RecordMissing(h uint32) {
	d.mu.Lock()
	d.missing[h] = struct{}{}
	d.mu.Unlock()
}

// Missing returns the recorded missing hashes in ascending order.
func (d *Dictionary) Missing() []uint32 {
	d.mu.Lock()
	out := make([]uint32, 0, len(d.missing))
	for h := range d.missing {
		out = append(out, h)
	}
	d.mu.Unlock()

	slices.Sort(out)

	return out
}

// WriteMissing writes the missing hashes to w, one eight digit uppercase hex
// value per line.
func (d *Dictionary) WriteMissing(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, h := range d.Missing() {
		if _, err := fmt.Fprintf(bw, "%08X\n", h); err != nil {
			return err
		}
	}

	return bw.Flush()
}

// Collisions returns the names dropped because their hash was taken.
func (d *Dictionary) Collisions() []Collision {
	return d.names.Collisions()
}
