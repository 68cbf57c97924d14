package container

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"

	"github.com/arloliu/fcb/endian"
	"github.com/arloliu/fcb/errs"
	"github.com/arloliu/fcb/internal/options"
	"github.com/arloliu/fcb/object"
	"github.com/arloliu/fcb/section"
)

// DecoderConfig holds decoding options.
type DecoderConfig struct {
	strictCounts bool
	logger       *slog.Logger
}

// DecodeOption is a functional option for configuring Decode.
type DecodeOption = options.Option[*DecoderConfig]

// WithStrictCounts makes a mismatch between the declared object/value counts
// and the decoded tree a format error. By default the counts are only recorded.
func WithStrictCounts() DecodeOption {
	return options.NoError(func(c *DecoderConfig) {
		c.strictCounts = true
	})
}

// WithLogger sets the logger used for diagnostics. Default discards.
func WithLogger(logger *slog.Logger) DecodeOption {
	return options.New(func(c *DecoderConfig) error {
		if logger == nil {
			return fmt.Errorf("logger must not be nil")
		}
		c.logger = logger

		return nil
	})
}

// decoder holds the state of one Decode call.
//
// Note: a decoder is NOT reusable and NOT thread-safe.
type decoder struct {
	data      []byte
	pos       int
	treeStart int
	engine    endian.EndianEngine

	// nodes lists decoded objects in decode order; child back-references index it.
	nodes []*object.Node
	done  []bool
}

// DecodeFrom reads the whole stream from r and decodes it.
func DecodeFrom(r io.Reader, opts ...DecodeOption) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	return Decode(data, opts...)
}

// Decode parses a container document.
//
// The leading header is everything before the first magic signature. The
// returned document does not alias data.
func Decode(data []byte, opts ...DecodeOption) (*Document, error) {
	cfg := &DecoderConfig{logger: slog.New(slog.DiscardHandler)}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	magicOffset := section.FindMagic(data)
	if magicOffset < 0 {
		return nil, errs.Format(errs.ErrMagicNotFound, "scanned %d bytes", len(data))
	}
	if magicOffset > 0 {
		cfg.logger.Debug("leading header found", "size", magicOffset)
	}

	if len(data)-magicOffset < section.HeaderSize {
		return nil, errs.Counts(errs.ErrTruncated, section.HeaderSize, len(data)-magicOffset)
	}

	var header section.FileHeader
	if err := header.Parse(data[magicOffset : magicOffset+section.HeaderSize]); err != nil {
		return nil, err
	}

	cfg.logger.Debug("file header",
		"version", header.Version,
		"flags", header.Flags.String(),
		"objects", header.ObjectCount,
		"values", header.ValueCount)

	d := &decoder{
		data:      data,
		pos:       magicOffset + section.HeaderSize,
		treeStart: magicOffset + section.HeaderSize,
		engine:    endian.GetLittleEndianEngine(),
	}

	root, err := d.readNode("")
	if err != nil {
		return nil, err
	}

	if d.pos != len(data) {
		return nil, errs.Counts(errs.ErrTrailingData, len(data), d.pos)
	}

	doc := &Document{
		Header:          bytes.Clone(data[:magicOffset]),
		Version:         header.Version,
		Flags:           header.Flags,
		Root:            root,
		declaredObjects: header.ObjectCount,
		declaredValues:  header.ValueCount,
	}

	objects, values := root.Count()
	if objects != int(header.ObjectCount) || values != int(header.ValueCount) {
		cfg.logger.Debug("declared counts differ from tree",
			"declared_objects", header.ObjectCount, "objects", objects,
			"declared_values", header.ValueCount, "values", values)

		if cfg.strictCounts {
			if objects != int(header.ObjectCount) {
				return nil, errs.Counts(errs.ErrCountMismatch, int(header.ObjectCount), objects)
			}

			return nil, errs.Counts(errs.ErrCountMismatch, int(header.ValueCount), values)
		}
	}

	return doc, nil
}

// readNode decodes one object, or resolves a back-reference to an earlier one.
func (d *decoder) readNode(parentPath string) (*object.Node, error) {
	childCount, isOffset, n, err := section.ReadCount(d.data, d.pos)
	if err != nil {
		return nil, errs.WithPath(err, parentPath, nil)
	}
	d.pos += n

	if isOffset {
		index := int(childCount)
		if index >= len(d.nodes) || !d.done[index] {
			return nil, errs.WithPath(errs.Format(errs.ErrInvalidBackRef, "object index %d of %d", index, len(d.nodes)), parentPath, nil)
		}

		return d.nodes[index].Clone(), nil
	}

	if err := d.need(4); err != nil {
		return nil, errs.WithPath(err, parentPath, nil)
	}
	node := object.New(d.engine.Uint32(d.data[d.pos:]))
	d.pos += 4

	index := len(d.nodes)
	d.nodes = append(d.nodes, node)
	d.done = append(d.done, false)

	path := fmt.Sprintf("%s/%08X", parentPath, node.NameHash)

	fieldCount, isOffset, n, err := section.ReadCount(d.data, d.pos)
	if err != nil {
		return nil, errs.WithPath(err, path, nil)
	}
	if isOffset {
		return nil, errs.WithPath(errs.Format(errs.ErrInvalidBackRef, "field count cannot be a back-reference"), path, nil)
	}
	d.pos += n

	if fieldCount > 0 {
		node.Fields = make([]object.Field, 0, min(int(fieldCount), d.remaining()))
	}

	for range fieldCount {
		if err := d.need(4); err != nil {
			return nil, errs.WithPath(err, path, nil)
		}
		hash := d.engine.Uint32(d.data[d.pos:])
		d.pos += 4

		value, err := d.readValue()
		if err != nil {
			return nil, errs.WithPath(err, path, &hash)
		}

		if err := node.AddField(hash, value); err != nil {
			return nil, errs.WithPath(err, path, &hash)
		}
	}

	if childCount > 0 {
		node.Children = make([]*object.Node, 0, min(int(childCount), d.remaining()))
	}

	for range childCount {
		child, err := d.readNode(path)
		if err != nil {
			return nil, err
		}
		node.Children = append(node.Children, child)
	}

	d.done[index] = true

	return node, nil
}

// readValue decodes a field value, following a back-reference when present.
func (d *decoder) readValue() ([]byte, error) {
	markerPos := d.pos

	size, isOffset, n, err := section.ReadCount(d.data, d.pos)
	if err != nil {
		return nil, err
	}
	d.pos += n

	if !isOffset {
		if err := d.need(int(size)); err != nil {
			return nil, err
		}
		value := bytes.Clone(d.data[d.pos : d.pos+int(size)])
		d.pos += int(size)

		return value, nil
	}

	target := markerPos - int(size)
	if size == 0 || target < d.treeStart {
		return nil, errs.Format(errs.ErrInvalidBackRef, "value offset %d from %d", size, markerPos)
	}

	refSize, refIsOffset, refN, err := section.ReadCount(d.data, target)
	if err != nil {
		return nil, err
	}
	if refIsOffset {
		return nil, errs.Format(errs.ErrInvalidBackRef, "value at %d is itself a back-reference", target)
	}

	start := target + refN
	end := start + int(refSize)
	if end > markerPos {
		return nil, errs.Format(errs.ErrInvalidBackRef, "value at %d overlaps the reference at %d", target, markerPos)
	}

	return bytes.Clone(d.data[start:end]), nil
}

func (d *decoder) need(n int) error {
	if n < 0 || d.remaining() < n {
		return errs.Counts(errs.ErrTruncated, n, d.remaining())
	}

	return nil
}

func (d *decoder) remaining() int {
	return len(d.data) - d.pos
}
