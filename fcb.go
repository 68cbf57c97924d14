// Package fcb converts FCbn object containers to XML and back.
//
// An FCbn file is a tree of objects whose names and field names are stored
// as CRC32 hashes and whose field values carry no type information. Export
// writes the tree as XML, recovering names from a dictionary and field types
// by inference; Import reads such XML, or hand-written XML with declared
// types, and produces the binary file again.
//
// # Basic Usage
//
// Exporting a binary file with a name dictionary:
//
//	import (
//	    "github.com/arloliu/fcb"
//	    "github.com/arloliu/fcb/dict"
//	    "github.com/arloliu/fcb/xmltree"
//	)
//
//	names, _ := dict.New()
//	names.Load("strings.txt")
//
//	err := fcb.ExportXML(w, data, fcb.WithXMLOptions(
//	    xmltree.WithResolver(names),
//	    xmltree.WithMissingRecorder(names),
//	))
//
// Importing it again:
//
//	data, err := fcb.ImportXML(r)
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the container
// and xmltree packages. For tree manipulation and fine-grained control, use
// those packages directly.
package fcb

import (
	"bytes"
	"io"
	"log/slog"

	"github.com/arloliu/fcb/container"
	"github.com/arloliu/fcb/hash"
	"github.com/arloliu/fcb/internal/options"
	"github.com/arloliu/fcb/xmltree"
)

// Config collects the options of the decoding and XML stages of a conversion.
type Config struct {
	decode []container.DecodeOption
	xml    []xmltree.Option
}

// Option configures a conversion.
type Option = options.Option[*Config]

// WithDecodeOptions adds options for decoding binary input.
func WithDecodeOptions(opts ...container.DecodeOption) Option {
	return options.NoError(func(c *Config) {
		c.decode = append(c.decode, opts...)
	})
}

// WithXMLOptions adds options for the XML export or import stage.
func WithXMLOptions(opts ...xmltree.Option) Option {
	return options.NoError(func(c *Config) {
		c.xml = append(c.xml, opts...)
	})
}

// WithLogger sends the diagnostics of every stage to logger.
func WithLogger(logger *slog.Logger) Option {
	return options.NoError(func(c *Config) {
		c.decode = append(c.decode, container.WithLogger(logger))
		c.xml = append(c.xml, xmltree.WithLogger(logger))
	})
}

func newConfig(opts []Option) (*Config, error) {
	cfg := &Config{}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Decode parses a binary container.
func Decode(data []byte, opts ...container.DecodeOption) (*container.Document, error) {
	return container.Decode(data, opts...)
}

// Encode serializes a document into its binary form.
func Encode(doc *container.Document) ([]byte, error) {
	return container.Encode(doc)
}

// ExportXML decodes the binary container in data and writes it to w as XML.
func ExportXML(w io.Writer, data []byte, opts ...Option) error {
	cfg, err := newConfig(opts)
	if err != nil {
		return err
	}

	doc, err := container.Decode(data, cfg.decode...)
	if err != nil {
		return err
	}

	return xmltree.Export(w, doc, cfg.xml...)
}

// ImportXML reads an XML document from r and returns its binary form.
// External fragments are only available when a filesystem is configured
// through WithXMLOptions.
func ImportXML(r io.Reader, opts ...Option) ([]byte, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}

	doc, err := xmltree.Import(r, cfg.xml...)
	if err != nil {
		return nil, err
	}

	return container.Encode(doc)
}

// ImportXMLFile imports the XML document at path, resolving external
// fragments relative to its directory.
func ImportXMLFile(path string, opts ...Option) ([]byte, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}

	doc, err := xmltree.ImportFile(path, cfg.xml...)
	if err != nil {
		return nil, err
	}

	return container.Encode(doc)
}

// Report is the outcome of Verify.
type Report struct {
	Objects int // objects in the decoded tree
	Values  int // fields in the decoded tree

	InputSize        int
	InputFingerprint uint64

	// OutputSize and OutputFingerprint describe the binary produced by
	// exporting and re-importing the input.
	OutputSize        int
	OutputFingerprint uint64

	// Identical reports that the output equals the input byte for byte.
	Identical bool
	// Lossless reports that the output equals a direct re-encoding of the
	// input. It differs from Identical only for inputs using back-references,
	// which the encoder writes out inline.
	Lossless bool
}

// Verify converts data to XML and back with pairing disabled and compares
// the result with the input. The xxHash64 fingerprints of both sides are
// kept in the Report for display.
//
// An error is returned only when a stage fails; a round trip that changes
// the bytes is reported through Identical and Lossless.
func Verify(data []byte, opts ...Option) (Report, error) {
	var report Report

	cfg, err := newConfig(opts)
	if err != nil {
		return report, err
	}

	doc, err := container.Decode(data, cfg.decode...)
	if err != nil {
		return report, err
	}

	report.Objects, report.Values = doc.Root.Count()
	report.InputSize = len(data)
	report.InputFingerprint = hash.Fingerprint(data)

	canonical, err := container.Encode(doc)
	if err != nil {
		return report, err
	}

	var buf bytes.Buffer
	xmlOpts := append(cfg.xml[:len(cfg.xml):len(cfg.xml)], xmltree.WithPairing(false))
	if err := xmltree.Export(&buf, doc, xmlOpts...); err != nil {
		return report, err
	}

	imported, err := xmltree.Import(&buf, cfg.xml...)
	if err != nil {
		return report, err
	}

	out, err := container.Encode(imported)
	if err != nil {
		return report, err
	}

	report.OutputSize = len(out)
	report.OutputFingerprint = hash.Fingerprint(out)
	report.Identical = bytes.Equal(out, data)
	report.Lossless = bytes.Equal(out, canonical)

	return report, nil
}
