package container

import (
	"io"

	"github.com/arloliu/fcb/endian"
	"github.com/arloliu/fcb/errs"
	"github.com/arloliu/fcb/internal/pool"
	"github.com/arloliu/fcb/object"
	"github.com/arloliu/fcb/section"
)

// totals is the running counter threaded through the recursive serializer.
type totals struct {
	objects uint32
	values  uint32
}

// Encode serializes doc into a new byte slice.
//
// It fails with ErrUnsupportedFlags when doc.Flags holds unknown bits and
// with ErrNilRoot when doc has no root object.
func Encode(doc *Document) ([]byte, error) {
	body := pool.GetBodyBuffer()
	defer pool.PutBodyBuffer(body)

	header, err := encodeBody(doc, body)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, len(doc.Header)+section.HeaderSize+body.Len())
	out = append(out, doc.Header...)
	out = header.Append(out)
	out = append(out, body.Bytes()...)

	return out, nil
}

// EncodeTo serializes doc to w and returns the number of bytes written.
func EncodeTo(w io.Writer, doc *Document) (int64, error) {
	body := pool.GetBodyBuffer()
	defer pool.PutBodyBuffer(body)

	header, err := encodeBody(doc, body)
	if err != nil {
		return 0, err
	}

	var total int64

	n, err := w.Write(header.Append(append([]byte(nil), doc.Header...)))
	total += int64(n)
	if err != nil {
		return total, err
	}

	written, err := body.WriteTo(w)
	total += written

	return total, err
}

// encodeBody writes the tree into body and returns the matching file header.
func encodeBody(doc *Document, body *pool.ByteBuffer) (*section.FileHeader, error) {
	if doc == nil || doc.Root == nil {
		return nil, errs.ErrNilRoot
	}

	header, err := section.NewFileHeader(doc.Version, doc.Flags)
	if err != nil {
		return nil, err
	}

	var counter totals
	serializeNode(body, doc.Root, &counter)

	header.ObjectCount = counter.objects
	header.ValueCount = counter.values

	return header, nil
}

func serializeNode(buf *pool.ByteBuffer, node *object.Node, counter *totals) {
	engine := endian.GetLittleEndianEngine()

	counter.objects++
	counter.values += uint32(len(node.Fields)) //nolint:gosec

	buf.B = section.AppendCount(buf.B, len(node.Children))
	buf.B = engine.AppendUint32(buf.B, node.NameHash)
	buf.B = section.AppendCount(buf.B, len(node.Fields))

	for _, field := range node.Fields {
		buf.Grow(4 + section.CountSize(len(field.Value)) + len(field.Value))
		buf.B = engine.AppendUint32(buf.B, field.Hash)
		buf.B = section.AppendCount(buf.B, len(field.Value))
		buf.MustWrite(field.Value)
	}

	for _, child := range node.Children {
		serializeNode(buf, child, counter)
	}
}
