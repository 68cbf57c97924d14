// Package xmltree converts container documents to and from XML.
//
// Every object becomes an <object> element named by a name attribute, or a
// hash attribute of eight hex digits when the name is unknown. Fields become
// <field> elements whose type attribute selects the codec for their text:
//
//	<object name="EntityLibraries" version="3">
//	  <object hash="0984415E">
//	    <field name="Name" type="String">Lib</field>
//	    <field hash="8EDB0295" type="BinHex">0102030405060708</field>
//	  </object>
//	</object>
//
// An object may instead carry an external attribute naming another XML file
// whose root object is spliced in its place.
package xmltree

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"github.com/arloliu/fcb/errs"
	"github.com/arloliu/fcb/hash"
)

const elementObject = "object"

type xmlObject struct {
	XMLName  xml.Name    `xml:"object"`
	Name     string      `xml:"name,attr,omitempty"`
	Hash     string      `xml:"hash,attr,omitempty"`
	External string      `xml:"external,attr,omitempty"`
	Version  string      `xml:"version,attr,omitempty"`
	Header   string      `xml:"header,attr,omitempty"`
	Flags    string      `xml:"flags,attr,omitempty"`
	Fields   []xmlField  `xml:"field"`
	Objects  []xmlObject `xml:"object"`
}

type xmlField struct {
	Name      string `xml:"name,attr,omitempty"`
	Hash      string `xml:"hash,attr,omitempty"`
	Type      string `xml:"type,attr"`
	ArrayType string `xml:"array_type,attr,omitempty"`
	Text      string `xml:",chardata"`
}

func formatHash(h uint32) string {
	return fmt.Sprintf("%08X", h)
}

// nameAndHash returns the display name and hash declared by a name or hash
// attribute. The name wins when both are present.
func nameAndHash(name, hashAttr string) (string, uint32, error) {
	if strings.TrimSpace(name) != "" {
		return name, hash.CRC32(name), nil
	}

	hashAttr = strings.TrimSpace(hashAttr)
	if hashAttr == "" {
		return "", 0, errs.ErrMissingName
	}

	if len(hashAttr) > 8 {
		return "", 0, errs.Format(errs.ErrMalformedHash, "%q", hashAttr)
	}

	h, err := strconv.ParseUint(hashAttr, 16, 32)
	if err != nil {
		return "", 0, errs.Format(errs.ErrMalformedHash, "%q", hashAttr)
	}

	return hashAttr, uint32(h), nil
}

func joinPath(parent, name string) string {
	return parent + "/" + name
}
