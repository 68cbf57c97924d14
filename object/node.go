// Package object defines the in-memory object tree of a container.
//
// A Node is identified by the hash of its name and holds an ordered set of
// fields plus an ordered list of children. Field order is significant: it
// drives both the serialized layout and pairing inference during export.
// Nodes exclusively own their children; there are no back-references.
package object

import (
	"bytes"

	"github.com/arloliu/fcb/errs"
)

// Field is a named opaque value. The value is not typed at this layer.
type Field struct {
	Hash  uint32
	Value []byte
}

// Node is one object of the tree.
type Node struct {
	NameHash uint32
	Fields   []Field
	Children []*Node
}

// New creates an empty node with the given name hash.
func New(nameHash uint32) *Node {
	return &Node{NameHash: nameHash}
}

// Field returns the value stored under hash.
func (n *Node) Field(hash uint32) ([]byte, bool) {
	for i := range n.Fields {
		if n.Fields[i].Hash == hash {
			return n.Fields[i].Value, true
		}
	}

	return nil, false
}

// HasField reports whether a field with the given hash exists.
func (n *Node) HasField(hash uint32) bool {
	_, ok := n.Field(hash)
	return ok
}

// AddField appends a field. It fails with ErrDuplicateField if hash is already present.
func (n *Node) AddField(hash uint32, value []byte) error {
	if n.HasField(hash) {
		return &errs.FormatError{Err: errs.ErrDuplicateField, FieldHash: hash, HasField: true}
	}

	n.Fields = append(n.Fields, Field{Hash: hash, Value: value})

	return nil
}

// SetField replaces the value of an existing field in place, or appends it.
func (n *Node) SetField(hash uint32, value []byte) {
	for i := range n.Fields {
		if n.Fields[i].Hash == hash {
			n.Fields[i].Value = value
			return
		}
	}

	n.Fields = append(n.Fields, Field{Hash: hash, Value: value})
}

// FieldHashes returns the field hashes in stored order.
func (n *Node) FieldHashes() []uint32 {
	hashes := make([]uint32, len(n.Fields))
	for i := range n.Fields {
		hashes[i] = n.Fields[i].Hash
	}

	return hashes
}

// AddChild appends child and returns it.
func (n *Node) AddChild(child *Node) *Node {
	n.Children = append(n.Children, child)
	return child
}

// Count returns the number of nodes and field values in the subtree rooted at n.
func (n *Node) Count() (objects, values int) {
	objects = 1
	values = len(n.Fields)
	for _, child := range n.Children {
		o, v := child.Count()
		objects += o
		values += v
	}

	return objects, values
}

// Clone returns a deep copy of the subtree rooted at n.
func (n *Node) Clone() *Node {
	clone := &Node{NameHash: n.NameHash}

	if n.Fields != nil {
		clone.Fields = make([]Field, len(n.Fields))
		for i, f := range n.Fields {
			clone.Fields[i] = Field{Hash: f.Hash, Value: bytes.Clone(f.Value)}
		}
	}

	if n.Children != nil {
		clone.Children = make([]*Node, len(n.Children))
		for i, child := range n.Children {
			clone.Children[i] = child.Clone()
		}
	}

	return clone
}

// Equal reports whether both subtrees hold the same hashes, bytes and order.
// A nil and an empty value compare equal.
func (n *Node) Equal(other *Node) bool {
	if n == nil || other == nil {
		return n == other
	}

	if n.NameHash != other.NameHash ||
		len(n.Fields) != len(other.Fields) ||
		len(n.Children) != len(other.Children) {
		return false
	}

	for i := range n.Fields {
		if n.Fields[i].Hash != other.Fields[i].Hash || !bytes.Equal(n.Fields[i].Value, other.Fields[i].Value) {
			return false
		}
	}

	for i := range n.Children {
		if !n.Children[i].Equal(other.Children[i]) {
			return false
		}
	}

	return true
}

// Walk visits n and its descendants depth-first, parents before children.
// Returning false from fn skips the children of that node.
func (n *Node) Walk(fn func(node *Node, depth int) bool) {
	n.walk(fn, 0)
}

func (n *Node) walk(fn func(node *Node, depth int) bool, depth int) {
	if !fn(n, depth) {
		return
	}

	for _, child := range n.Children {
		child.walk(fn, depth+1)
	}
}
