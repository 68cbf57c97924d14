package xmltree

import (
	"encoding/xml"
	"io"
	"strconv"
	"strings"

	"github.com/arloliu/fcb/container"
	"github.com/arloliu/fcb/errs"
	"github.com/arloliu/fcb/field"
	"github.com/arloliu/fcb/format"
	"github.com/arloliu/fcb/hash"
	"github.com/arloliu/fcb/infer"
	"github.com/arloliu/fcb/object"
)

// Export writes doc to w as an indented UTF-8 XML document.
//
// Names are resolved with the configured resolver; unknown hashes are
// written as hash attributes and reported to the missing recorder. Field
// values are shown as inferred by infer.Pairer.
func Export(w io.Writer, doc *container.Document, opts ...Option) error {
	if doc == nil || doc.Root == nil {
		return errs.ErrNilRoot
	}

	cfg, err := newConfig(opts)
	if err != nil {
		return err
	}

	pairerOpts := []infer.PairerOption{
		infer.WithPairing(cfg.pairing),
		infer.WithLogger(cfg.logger),
	}
	if cfg.resolver != nil {
		pairerOpts = append(pairerOpts, infer.WithResolver(cfg.resolver))
	}
	if cfg.missing != nil {
		pairerOpts = append(pairerOpts, infer.WithMissingRecorder(cfg.missing))
	}

	pairer, err := infer.NewPairer(pairerOpts...)
	if err != nil {
		return err
	}

	root := exportNode(pairer, doc.Root)
	root.Version = strconv.FormatUint(uint64(doc.Version), 10)
	if len(doc.Header) > 0 {
		root.Header = field.EncodeHex(doc.Header)
	}
	if doc.Flags != format.FlagsNone {
		if !doc.Flags.IsValid() {
			return errs.Format(errs.ErrUnsupportedFlags, "flags 0x%04X", uint16(doc.Flags))
		}
		root.Flags = doc.Flags.String()
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}

	enc := xml.NewEncoder(w)
	enc.Indent("", cfg.indent)

	if err := enc.Encode(root); err != nil {
		return err
	}
	if err := enc.Close(); err != nil {
		return err
	}

	_, err = io.WriteString(w, "\n")

	return err
}

// nameAttrs returns the name attribute when name hashes back to h, otherwise
// the hash attribute.
func nameAttrs(name string, h uint32) (nameAttr, hashAttr string) {
	if strings.TrimSpace(name) != "" && hash.CRC32(name) == h {
		return name, ""
	}

	return "", formatHash(h)
}

func exportNode(pairer *infer.Pairer, node *object.Node) xmlObject {
	var elem xmlObject

	name, _ := pairer.ResolveName(node.NameHash)
	elem.Name, elem.Hash = nameAttrs(name, node.NameHash)

	emissions := pairer.Fields(node)
	if len(emissions) > 0 {
		elem.Fields = make([]xmlField, len(emissions))
		for i, em := range emissions {
			f := xmlField{Type: em.Type, Text: em.Text}
			f.Name, f.Hash = nameAttrs(em.Name, em.Hash)
			elem.Fields[i] = f
		}
	}

	if len(node.Children) > 0 {
		elem.Objects = make([]xmlObject, len(node.Children))
		for i, child := range node.Children {
			elem.Objects[i] = exportNode(pairer, child)
		}
	}

	return elem
}
