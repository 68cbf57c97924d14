package section

const (
	// Magic is the file header signature, "FCbn" read as a little-endian u32.
	Magic uint32 = 0x4643626E

	// DefaultVersion is the format version written by the producing engine.
	DefaultVersion uint16 = 3

	// HeaderSize is the size of the fixed file header in bytes.
	HeaderSize = 16
)

// Count encoding markers.
const (
	CountInlineLimit  = 0xFE // counts below this value are stored in a single byte
	CountMarkerOffset = 0xFE // followed by u32: back-reference to earlier data
	CountMarkerWide   = 0xFF // followed by u32: the count itself
	CountWideSize     = 5    // marker byte plus u32
)
