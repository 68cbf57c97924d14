package hash

import "github.com/arloliu/fcb/format"

// Bundle holds the digests pairing inference compares against a stored
// value, indexed in format.PairingOrder.
type Bundle [len(format.PairingOrder)]uint64

// NewBundle computes every pairing digest of text.
func NewBundle(text string) Bundle {
	var b Bundle
	for i, alg := range format.PairingOrder {
		b[i] = Compute(alg, text)
	}

	return b
}

// Match returns the first algorithm whose digest is non-zero and equals v.
func (b Bundle) Match(v uint64) (format.HashAlgorithm, bool) {
	for i, digest := range b {
		if digest != 0 && digest == v {
			return format.PairingOrder[i], true
		}
	}

	return 0, false
}

// MatchWidth is Match restricted to algorithms whose digest is width bytes.
func (b Bundle) MatchWidth(v uint64, width int) (format.HashAlgorithm, bool) {
	for i, digest := range b {
		alg := format.PairingOrder[i]
		if digest != 0 && digest == v && alg.Width() == width {
			return alg, true
		}
	}

	return 0, false
}
