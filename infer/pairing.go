package infer

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/arloliu/fcb/field"
	"github.com/arloliu/fcb/format"
	"github.com/arloliu/fcb/hash"
	"github.com/arloliu/fcb/internal/options"
	"github.com/arloliu/fcb/object"
)

// NameFieldHash is the hash of the display-name field, CRC32("Name").
// Its value is always shown as a string.
const NameFieldHash uint32 = 0xFE11D138

// Resolver maps a hash back to the name it was computed from.
type Resolver interface {
	Resolve(hash uint32) (string, bool)
}

// MissingRecorder collects hashes no Resolver could name.
type MissingRecorder interface {
	RecordMissing(hash uint32)
}

// Emission is one field as it should be written out.
type Emission struct {
	Hash uint32
	// Name is the resolved name, empty when the hash is unknown.
	Name string
	// Type is a format.FieldType name or, for a paired field, a
	// format.HashAlgorithm name.
	Type string
	Text string
	// Paired is set when Text is the plaintext of the stored hash.
	Paired bool
}

// Pending is the override carried from one field to the next. The zero value
// carries nothing.
type Pending struct {
	active bool
	label  string
	text   string
}

// Active reports whether the next field will be emitted with an override.
func (p Pending) Active() bool {
	return p.active
}

// Pairer turns the fields of a node into emissions.
//
// A Pairer is safe for concurrent use when its Resolver and MissingRecorder are.
type Pairer struct {
	resolver Resolver
	missing  MissingRecorder
	pairing  bool
	logger   *slog.Logger
}

// PairerOption configures a Pairer.
type PairerOption = options.Option[*Pairer]

// WithResolver sets the name resolver. By default no hash resolves.
func WithResolver(r Resolver) PairerOption {
	return options.NoError(func(p *Pairer) {
		p.resolver = r
	})
}

// WithMissingRecorder sets where unresolved hashes are reported.
func WithMissingRecorder(m MissingRecorder) PairerOption {
	return options.NoError(func(p *Pairer) {
		p.missing = m
	})
}

// WithPairing enables or disables hash pairing. It is enabled by default;
// disabling it makes every field emit its own bytes.
func WithPairing(enabled bool) PairerOption {
	return options.NoError(func(p *Pairer) {
		p.pairing = enabled
	})
}

// WithLogger sets the logger pairings are reported to at debug level.
func WithLogger(logger *slog.Logger) PairerOption {
	return options.New(func(p *Pairer) error {
		if logger == nil {
			return fmt.Errorf("logger must not be nil")
		}
		p.logger = logger

		return nil
	})
}

// NewPairer creates a Pairer.
func NewPairer(opts ...PairerOption) (*Pairer, error) {
	p := &Pairer{
		pairing: true,
		logger:  slog.New(slog.DiscardHandler),
	}

	if err := options.Apply(p, opts...); err != nil {
		return nil, err
	}

	return p, nil
}

// ResolveName returns the name of h, recording it as missing when unknown.
func (p *Pairer) ResolveName(h uint32) (string, bool) {
	if p.resolver != nil {
		if name, ok := p.resolver.Resolve(h); ok {
			return name, true
		}
	}

	if p.missing != nil {
		p.missing.RecordMissing(h)
	}

	return "", false
}

// Fields returns the emissions for the fields of node, in stored order.
func (p *Pairer) Fields(node *object.Node) []Emission {
	out := make([]Emission, 0, len(node.Fields))

	var pending Pending
	for i := range node.Fields {
		var next *object.Field
		if i+1 < len(node.Fields) {
			next = &node.Fields[i+1]
		}

		var (
			em Emission
			ok bool
		)
		pending, em, ok = p.Step(pending, node.Fields[i], next)
		if ok {
			out = append(out, em)
		}
	}

	return out
}

// Step folds one field. It returns the override for the following field and,
// unless current was absorbed into that override, the emission for current.
func (p *Pairer) Step(pending Pending, current object.Field, next *object.Field) (Pending, Emission, bool) {
	if pending.active {
		name, _ := p.ResolveName(current.Hash)

		return Pending{}, Emission{
			Hash:   current.Hash,
			Name:   name,
			Type:   pending.label,
			Text:   pending.text,
			Paired: true,
		}, true
	}

	label, text := Display(current)

	if p.pairing && next != nil {
		if alg, ok := matchHash(text, next.Value); ok {
			p.logger.Debug("paired field",
				"source", fmt.Sprintf("%08X", current.Hash),
				"target", fmt.Sprintf("%08X", next.Hash),
				"algorithm", alg.String())

			return Pending{active: true, label: alg.String(), text: text}, Emission{}, false
		}
	}

	name, _ := p.ResolveName(current.Hash)

	return Pending{}, Emission{Hash: current.Hash, Name: name, Type: label, Text: text}, true
}

// Display returns the type label and text a field is shown with when it is
// not paired: a string when the value is the display name or looks like
// one, else hex.
func Display(f object.Field) (label, text string) {
	if f.Hash == NameFieldHash {
		if s, err := field.DecodeString(f.Value); err == nil && IsXMLText(s) {
			return format.TypeString.String(), s
		}
	} else if g, ok := Guess(f.Value); ok && g.Type == format.TypeString && IsXMLText(g.Text) {
		return format.TypeString.String(), g.Text
	}

	return format.TypeBinHex.String(), field.EncodeHex(f.Value)
}

// matchHash reports which pairing algorithm, if any, hashes text to the
// integer stored in value. The stored bytes are read as hex text, so the
// digest is compared big-endian.
//
// The hex is tried as a 32-bit and then a 64-bit integer, but unlike a plain
// numeric match the digest width must also equal len(value): an 8-byte
// 00000000FE11D138 is not a CRC32 of "Name", because importing the pair
// would write back only 4 bytes.
func matchHash(text string, value []byte) (format.HashAlgorithm, bool) {
	if len(value) == 0 || len(value) > 8 {
		return 0, false
	}

	hexText := field.EncodeHex(value)

	v, err := strconv.ParseUint(hexText, 16, 32)
	if err != nil {
		v, err = strconv.ParseUint(hexText, 16, 64)
		if err != nil {
			return 0, false
		}
	}

	return hash.NewBundle(text).MatchWidth(v, len(value))
}
