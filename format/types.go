package format

import "strings"

type (
	FieldType     uint8
	HeaderFlags   uint16
	HashAlgorithm uint8
)

const (
	TypeInvalid        FieldType = iota // TypeInvalid marks an absent or unparsable type.
	TypeBinHex                          // TypeBinHex is an opaque byte sequence shown as hex.
	TypeBoolean                         // TypeBoolean is a single 0/1 byte.
	TypeInt8                            // TypeInt8 is a signed 8-bit integer.
	TypeUInt8                           // TypeUInt8 is an unsigned 8-bit integer.
	TypeInt16                           // TypeInt16 is a signed 16-bit integer.
	TypeUInt16                          // TypeUInt16 is an unsigned 16-bit integer.
	TypeInt32                           // TypeInt32 is a signed 32-bit integer.
	TypeUInt32                          // TypeUInt32 is an unsigned 32-bit integer.
	TypeInt64                           // TypeInt64 is a signed 64-bit integer.
	TypeUInt64                          // TypeUInt64 is an unsigned 64-bit integer.
	TypeFloat                           // TypeFloat is a 32-bit IEEE float.
	TypeVector2                         // TypeVector2 is two floats.
	TypeVector3                         // TypeVector3 is three floats.
	TypeVector4                         // TypeVector4 is four floats.
	TypeVector                          // TypeVector is any positive number of floats.
	TypeVectorColor                     // TypeVectorColor is normalized floats shown as 0-255.
	TypeVectorInt                       // TypeVectorInt is any positive number of int32.
	TypeQuaternion                      // TypeQuaternion is an alias of TypeVector4.
	TypeString                          // TypeString is NUL-terminated UTF-8 text.
	TypeEnum                            // TypeEnum is a named 32-bit integer.
	TypeStringId                        // TypeStringId is a case-sensitive 32-bit string hash.
	TypeNoCaseStringId                  // TypeNoCaseStringId is a case-insensitive 64-bit string hash.
	TypePathId                          // TypePathId is a 32-bit path hash.
	TypeArray32                         // TypeArray32 is a count-prefixed array of a fixed-size type.
)

const (
	FlagsNone  HeaderFlags = 0      // FlagsNone is a stripped file.
	FlagsDebug HeaderFlags = 1 << 0 // FlagsDebug marks a file that was not stripped.

	knownFlags = FlagsDebug
)

// Hash algorithms, in the order pairing inference tests them.
const (
	HashCRC32     HashAlgorithm = iota + 1 // HashCRC32 is IEEE CRC32.
	HashCRC32R                             // HashCRC32R is CRC32 with its bytes reversed.
	HashFNV64WD1                           // HashFNV64WD1 is path-normalized FNV-1 64 truncated to 32 bits.
	HashCRC64WD2R                          // HashCRC64WD2R is CRC64WD2 with its bytes reversed.
	HashCRC64WD2                           // HashCRC64WD2 is path-normalized FNV-1 64 with a fixed top nibble.
)

// PairingOrder lists the algorithms pairing inference tries, in order.
var PairingOrder = [4]HashAlgorithm{HashCRC32, HashCRC32R, HashFNV64WD1, HashCRC64WD2R}

var fieldTypeNames = [...]string{
	TypeInvalid:        "Invalid",
	TypeBinHex:         "BinHex",
	TypeBoolean:        "Boolean",
	TypeInt8:           "Int8",
	TypeUInt8:          "UInt8",
	TypeInt16:          "Int16",
	TypeUInt16:         "UInt16",
	TypeInt32:          "Int32",
	TypeUInt32:         "UInt32",
	TypeInt64:          "Int64",
	TypeUInt64:         "UInt64",
	TypeFloat:          "Float",
	TypeVector2:        "Vector2",
	TypeVector3:        "Vector3",
	TypeVector4:        "Vector4",
	TypeVector:         "Vector",
	TypeVectorColor:    "VectorColor",
	TypeVectorInt:      "VectorInt",
	TypeQuaternion:     "Quaternion",
	TypeString:         "String",
	TypeEnum:           "Enum",
	TypeStringId:       "StringId",
	TypeNoCaseStringId: "NoCaseStringId",
	TypePathId:         "PathId",
	TypeArray32:        "Array32",
}

func (t FieldType) String() string {
	if int(t) < len(fieldTypeNames) {
		return fieldTypeNames[t]
	}

	return "Unknown"
}

// IsValid reports whether t is a member of the closed field type set.
func (t FieldType) IsValid() bool {
	return t > TypeInvalid && t <= TypeArray32
}

// Size returns the fixed byte size of t, or 0 when t has a variable size.
func (t FieldType) Size() int {
	switch t {
	case TypeBoolean, TypeInt8, TypeUInt8:
		return 1
	case TypeInt16, TypeUInt16:
		return 2
	case TypeInt32, TypeUInt32, TypeFloat, TypeEnum, TypeStringId, TypePathId:
		return 4
	case TypeInt64, TypeUInt64, TypeVector2, TypeNoCaseStringId:
		return 8
	case TypeVector3:
		return 12
	case TypeVector4, TypeQuaternion:
		return 16
	default:
		return 0
	}
}

// ParseFieldType resolves a type name case-insensitively.
func ParseFieldType(name string) (FieldType, bool) {
	name = strings.TrimSpace(name)
	for i := TypeBinHex; i <= TypeArray32; i++ {
		if strings.EqualFold(fieldTypeNames[i], name) {
			return i, true
		}
	}

	return TypeInvalid, false
}

func (f HeaderFlags) String() string {
	switch f {
	case FlagsNone:
		return "None"
	case FlagsDebug:
		return "Debug"
	default:
		return "Unknown"
	}
}

// IsValid reports whether f only holds recognized bits.
func (f HeaderFlags) IsValid() bool {
	return f&^knownFlags == 0
}

// ParseHeaderFlags resolves a flags name case-insensitively.
func ParseHeaderFlags(name string) (HeaderFlags, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "none":
		return FlagsNone, true
	case "debug":
		return FlagsDebug, true
	default:
		return FlagsNone, false
	}
}

func (a HashAlgorithm) String() string {
	switch a {
	case HashCRC32:
		return "CRC32"
	case HashCRC32R:
		return "CRC32_R"
	case HashFNV64WD1:
		return "FNV64_WD1"
	case HashCRC64WD2R:
		return "CRC64_WD2_R"
	case HashCRC64WD2:
		return "CRC64_WD2"
	default:
		return "Unknown"
	}
}

// Width returns the digest width in bytes.
func (a HashAlgorithm) Width() int {
	switch a {
	case HashCRC64WD2, HashCRC64WD2R:
		return 8
	default:
		return 4
	}
}

// ParseHashAlgorithm resolves an algorithm label case-insensitively.
func ParseHashAlgorithm(name string) (HashAlgorithm, bool) {
	name = strings.TrimSpace(name)
	for a := HashCRC32; a <= HashCRC64WD2; a++ {
		if strings.EqualFold(a.String(), name) {
			return a, true
		}
	}

	return 0, false
}
