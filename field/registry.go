package field

import (
	"strings"

	"github.com/arloliu/fcb/errs"
	"github.com/arloliu/fcb/format"
)

// Lookup returns the codec for a scalar field type.
//
// TypeArray32 needs an element type and is served by LookupArray.
func Lookup(t format.FieldType) (Codec, error) {
	switch t {
	case format.TypeBinHex:
		return binHexCodec, nil
	case format.TypeBoolean:
		return boolCodec, nil
	case format.TypeInt8:
		return int8Codec, nil
	case format.TypeUInt8:
		return uint8Codec, nil
	case format.TypeInt16:
		return int16Codec, nil
	case format.TypeUInt16:
		return uint16Codec, nil
	case format.TypeInt32:
		return int32Codec, nil
	case format.TypeUInt32:
		return uint32Codec, nil
	case format.TypeInt64:
		return int64Codec, nil
	case format.TypeUInt64:
		return uint64Codec, nil
	case format.TypeFloat:
		return floatCodec, nil
	case format.TypeVector2:
		return vector2Codec, nil
	case format.TypeVector3:
		return vector3Codec, nil
	case format.TypeVector4:
		return vector4Codec, nil
	case format.TypeVector:
		return vectorCodec, nil
	case format.TypeVectorColor:
		return vectorColorCodec, nil
	case format.TypeVectorInt:
		return vectorIntCodec, nil
	case format.TypeQuaternion:
		return quaternionCodec, nil
	case format.TypeString:
		return stringCodec, nil
	case format.TypeEnum:
		return enumCodec, nil
	case format.TypeStringId:
		return stringIDCodec, nil
	case format.TypeNoCaseStringId:
		return noCaseStringIDCodec, nil
	case format.TypePathId:
		return pathIDCodec, nil
	case format.TypeArray32:
		return nil, errs.Format(errs.ErrUnsupportedArray, "%s requires an element type", t)
	case format.TypeInvalid:
		return nil, errs.Format(errs.ErrUnknownFieldType, "%s", t)
	default:
		return nil, errs.Format(errs.ErrUnknownFieldType, "type %d", uint8(t))
	}
}

// LookupArray returns the Array32 codec for a fixed-size element type.
func LookupArray(elem format.FieldType) (Codec, error) {
	if elem == format.TypeArray32 {
		return nil, errs.Format(errs.ErrUnsupportedArray, "nested %s", elem)
	}

	return newArrayCodec(elem)
}

// For returns the codec for t, using elem when t is TypeArray32.
func For(t, elem format.FieldType) (Codec, error) {
	if t == format.TypeArray32 {
		return LookupArray(elem)
	}

	return Lookup(t)
}

// LookupHash returns the codec for a field labeled with a hash algorithm.
func LookupHash(alg format.HashAlgorithm) (Codec, error) {
	codec, ok := hashLabelCodecs[alg]
	if !ok {
		return nil, errs.Format(errs.ErrUnknownFieldType, "hash algorithm %d", uint8(alg))
	}

	return codec, nil
}

// ForLabel resolves a type attribute, and the array element attribute when
// the type is Array32. A type label may name a field type or a hash algorithm.
func ForLabel(typeLabel, arrayLabel string) (Codec, error) {
	if t, ok := format.ParseFieldType(typeLabel); ok {
		if t != format.TypeArray32 {
			return Lookup(t)
		}

		elem, ok := format.ParseFieldType(arrayLabel)
		if !ok {
			return nil, errs.Format(errs.ErrUnknownFieldType, "array element type %q", arrayLabel)
		}

		return LookupArray(elem)
	}

	if alg, ok := format.ParseHashAlgorithm(typeLabel); ok {
		return LookupHash(alg)
	}

	if strings.TrimSpace(typeLabel) == "" {
		return nil, errs.Format(errs.ErrUnknownFieldType, "missing type")
	}

	return nil, errs.Format(errs.ErrUnknownFieldType, "%q", typeLabel)
}
