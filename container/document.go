// Package container encodes and decodes object container documents.
//
// The container layer treats field values as opaque byte sequences; typing
// happens later in the field and xmltree packages. See the section package
// for the byte layout.
//
// # Basic Usage
//
//	doc, err := container.Decode(data)
//	if err != nil {
//	    return err
//	}
//	out, err := container.Encode(doc)
//
// Decode followed by Encode reproduces the input exactly, except for streams
// using back-references, which the encoder writes out inline.
package container

import (
	"github.com/arloliu/fcb/format"
	"github.com/arloliu/fcb/object"
	"github.com/arloliu/fcb/section"
)

// Document is a whole container: leading header, file header fields and tree.
type Document struct {
	// Header holds the bytes preceding the magic signature, verbatim.
	Header []byte
	// Version is preserved but not interpreted.
	Version uint16
	// Flags must only hold recognized bits.
	Flags format.HeaderFlags
	// Root is the top-level object.
	Root *object.Node

	declaredObjects uint32
	declaredValues  uint32
}

// NewDocument creates a document around root with the default version.
func NewDocument(root *object.Node) *Document {
	return &Document{
		Version: section.DefaultVersion,
		Flags:   format.FlagsNone,
		Root:    root,
	}
}

// DeclaredCounts returns the object and value counts read from the file
// header. They are zero for documents that were not decoded.
func (d *Document) DeclaredCounts() (objects, values uint32) {
	return d.declaredObjects, d.declaredValues
}

// Equal reports whether both documents hold identical headers and trees.
func (d *Document) Equal(other *Document) bool {
	if d == nil || other == nil {
		return d == other
	}

	if d.Version != other.Version || d.Flags != other.Flags || string(d.Header) != string(other.Header) {
		return false
	}

	return d.Root.Equal(other.Root)
}
