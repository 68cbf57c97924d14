// Package section defines the fixed binary structures and constants of the
// object container format.
//
// # Container Structure
//
// A container consists of an optional free-form leading header followed by a
// fixed 16-byte file header and the recursively encoded object tree:
//
//	┌─────────────────────────────────────────────────────────┐
//	│ Leading header (variable, optional, no length prefix)   │
//	├─────────────────────────────────────────────────────────┤
//	│ File header (16 bytes, fixed, little-endian)            │
//	│  - Magic (4 bytes): 0x4643626E ("nbCF" on disk)         │
//	│  - Version (2 bytes)                                    │
//	│  - Flags (2 bytes): 0=None, 1=Debug                     │
//	│  - ObjectCount (4 bytes): total objects in the tree     │
//	│  - ValueCount (4 bytes): total field values in the tree │
//	├─────────────────────────────────────────────────────────┤
//	│ Object tree (variable)                                  │
//	└─────────────────────────────────────────────────────────┘
//
// # Object Layout
//
//	count    child count
//	u32      name hash
//	count    field count
//	repeat field count:
//	  u32    field name hash
//	  count  value length
//	  bytes  value
//	repeat child count:
//	  object
//
// A count is one byte when the value is below 0xFE. Otherwise the byte 0xFF
// is followed by the value as u32. The marker byte 0xFE followed by a u32
// introduces a back-reference instead of a count; see CountMarkerOffset.
//
// The leading header has no length prefix. Readers locate the file header by
// scanning for the magic, so a leading header that itself contains the magic
// sequence is read ambiguously. This is a property of the format.
package section
