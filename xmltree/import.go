package xmltree

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/arloliu/fcb/container"
	"github.com/arloliu/fcb/errs"
	"github.com/arloliu/fcb/field"
	"github.com/arloliu/fcb/format"
	"github.com/arloliu/fcb/infer"
	"github.com/arloliu/fcb/object"
	"github.com/arloliu/fcb/section"
)

// TextHidNameHash is the hash of the field holding the name an object is
// stored under when split into its own file, CRC32("text_hidName").
const TextHidNameHash uint32 = 0x9D8873F8

var fileNameReplacer = strings.NewReplacer(
	`\`, "/",
	`"`, "_",
	":", "_",
	"*", "_",
	"?", "_",
	"<", "_",
	">", "_",
	"|", "_",
)

// importer holds the state of one Import call.
type importer struct {
	cfg *Config
	// open lists the external fragments being read, to reject cycles.
	open []string
}

// Import reads an XML document and builds the container document it describes.
//
// Names are hashed with CRC32; field text is parsed by the codec named in
// the type attribute. External fragments are read from the filesystem set
// by WithFS or WithBaseDir.
func Import(r io.Reader, opts ...Option) (*container.Document, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}

	root, err := decodeObject(r)
	if err != nil {
		return nil, err
	}

	doc := &container.Document{Version: section.DefaultVersion}

	if v := strings.TrimSpace(root.Version); v != "" {
		version, err := strconv.ParseUint(v, 10, 16)
		if err != nil {
			return nil, errs.Format(errs.ErrInvalidVersion, "%q", root.Version)
		}
		doc.Version = uint16(version)
	}

	if root.Header != "" {
		header, err := field.DecodeHex(root.Header)
		if err != nil {
			return nil, err
		}
		doc.Header = header
	}

	flags, ok := format.ParseHeaderFlags(root.Flags)
	if !ok {
		return nil, errs.Format(errs.ErrUnsupportedFlags, "%q", root.Flags)
	}
	doc.Flags = flags

	imp := &importer{cfg: cfg}

	doc.Root, err = imp.readNode(root, ".", "")
	if err != nil {
		return nil, err
	}

	return doc, nil
}

// ImportFile imports the XML document at path. External fragments are
// resolved relative to its directory unless WithFS or WithBaseDir is given.
func ImportFile(name string, opts ...Option) (*container.Document, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	opts = append([]Option{WithBaseDir(filepath.Dir(name))}, opts...)

	return Import(f, opts...)
}

func decodeObject(r io.Reader) (*xmlObject, error) {
	var root xmlObject
	if err := xml.NewDecoder(r).Decode(&root); err != nil {
		return nil, errs.Format(errs.ErrMalformedXML, "%v", err)
	}

	return &root, nil
}

func (imp *importer) readNode(elem *xmlObject, dir, parentPath string) (*object.Node, error) {
	name, nameHash, err := nameAndHash(elem.Name, elem.Hash)
	if err != nil {
		return nil, errs.WithPath(err, joinPath(parentPath, elementObject), nil)
	}

	nodePath := joinPath(parentPath, name)
	node := object.New(nameHash)

	if len(elem.Fields) > 0 {
		node.Fields = make([]object.Field, 0, len(elem.Fields))
	}

	for i := range elem.Fields {
		f := &elem.Fields[i]

		_, fieldHash, err := nameAndHash(f.Name, f.Hash)
		if err != nil {
			return nil, errs.WithPath(err, nodePath, nil)
		}

		codec, err := field.ForLabel(f.Type, f.ArrayType)
		if err != nil {
			return nil, errs.WithPath(err, nodePath, &fieldHash)
		}

		data, err := codec.Parse(f.Text)
		if err != nil {
			return nil, errs.WithPath(err, nodePath, &fieldHash)
		}

		if err := node.AddField(fieldHash, data); err != nil {
			return nil, errs.WithPath(err, nodePath, &fieldHash)
		}
	}

	for i := range elem.Objects {
		child := &elem.Objects[i]

		var (
			childNode *object.Node
			err       error
		)
		if external := strings.TrimSpace(child.External); external != "" {
			childNode, err = imp.readExternal(external, dir, nodePath)
		} else {
			childNode, err = imp.readNode(child, dir, nodePath)
		}
		if err != nil {
			return nil, err
		}

		node.AddChild(childNode)
	}

	return node, nil
}

// readExternal loads the fragment at external, relative to dir, and returns
// its root object.
func (imp *importer) readExternal(external, dir, parentPath string) (*object.Node, error) {
	rel := strings.ReplaceAll(external, `\`, "/")
	fragmentPath := path.Join(dir, rel)

	if imp.cfg.fsys == nil {
		return nil, errs.WithPath(errs.Format(errs.ErrMalformedXML,
			"external fragment %q: no filesystem configured", external), parentPath, nil)
	}

	for _, open := range imp.open {
		if open == fragmentPath {
			return nil, errs.WithPath(errs.Format(errs.ErrMalformedXML,
				"external fragment %q includes itself", external), parentPath, nil)
		}
	}

	imp.cfg.logger.Debug("loading external fragment", "path", fragmentPath)

	data, err := fs.ReadFile(imp.cfg.fsys, fragmentPath)
	if err != nil {
		return nil, errs.WithPath(fmt.Errorf("external fragment %q: %w", external, err), parentPath, nil)
	}

	root, err := decodeObject(bytes.NewReader(data))
	if err != nil {
		return nil, errs.WithPath(err, parentPath, nil)
	}

	imp.open = append(imp.open, fragmentPath)
	node, err := imp.readNode(root, path.Dir(fragmentPath), parentPath)
	imp.open = imp.open[:len(imp.open)-1]

	if err != nil {
		return nil, err
	}

	if imp.cfg.nameCheck {
		if declared, ok := declaredName(node); ok {
			stored := strings.TrimSuffix(rel, path.Ext(rel))
			if fileNameReplacer.Replace(declared) != fileNameReplacer.Replace(stored) {
				return nil, &errs.MismatchError{
					Path:     joinPath(parentPath, external),
					Expected: declared,
					Actual:   stored,
				}
			}
		}
	}

	return node, nil
}

// declaredName returns the name a fragment root says it is stored under.
// NUL bytes are dropped so both terminated strings and raw hex values compare.
func declaredName(node *object.Node) (string, bool) {
	for _, h := range []uint32{TextHidNameHash, infer.NameFieldHash} {
		if value, ok := node.Field(h); ok {
			return string(bytes.ReplaceAll(value, []byte{0}, nil)), true
		}
	}

	return "", false
}
