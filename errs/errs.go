// Package errs defines the errors returned by fcb packages.
//
// Sentinel errors identify the failure class and can be matched with errors.Is.
// Fatal conversion failures are reported as *FormatError or *MismatchError,
// which wrap a sentinel and carry the location of the failure.
package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Container errors.
var (
	ErrMagicNotFound      = errors.New("fcb: magic signature not found")
	ErrTruncated          = errors.New("fcb: unexpected end of stream")
	ErrUnsupportedFlags   = errors.New("fcb: unsupported header flags")
	ErrInvalidHeaderSize  = errors.New("fcb: invalid header size")
	ErrInvalidBackRef     = errors.New("fcb: invalid back-reference")
	ErrTrailingData       = errors.New("fcb: trailing data after root object")
	ErrCountMismatch      = errors.New("fcb: declared count does not match tree")
	ErrDuplicateField     = errors.New("fcb: duplicate field hash")
	ErrNilRoot            = errors.New("fcb: document has no root object")
	ErrCountOutOfRange    = errors.New("fcb: count out of range")
	ErrInvalidMagicNumber = errors.New("fcb: invalid magic number")
)

// Field codec errors.
var (
	ErrUnconsumedData   = errors.New("fcb: codec did not consume all data")
	ErrInvalidFieldSize = errors.New("fcb: invalid field size")
	ErrMalformedHexID   = errors.New("fcb: malformed hex id")
	ErrMalformedArray   = errors.New("fcb: malformed array")
	ErrMalformedValue   = errors.New("fcb: malformed value text")
	ErrUnknownFieldType = errors.New("fcb: unknown field type")
	ErrUnsupportedArray = errors.New("fcb: unsupported array element type")
)

// Textual tree errors.
var (
	ErrMissingName    = errors.New("fcb: missing name or hash attribute")
	ErrMalformedXML   = errors.New("fcb: malformed xml")
	ErrNameMismatch   = errors.New("fcb: external fragment name mismatch")
	ErrMalformedHash  = errors.New("fcb: malformed hash attribute")
	ErrInvalidVersion = errors.New("fcb: invalid version attribute")
)

// Dictionary errors.
var (
	ErrEmptyName = errors.New("fcb: empty dictionary name")
)

// FormatError reports a fatal format violation at a specific location.
type FormatError struct {
	Err       error  // sentinel describing the failure class
	Path      string // node path, "/"-joined display names
	FieldHash uint32
	HasField  bool
	Expected  int
	Actual    int
	HasCounts bool
	Detail    string
}

func (e *FormatError) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Err.Error())
	if e.Path != "" {
		sb.WriteString(" at ")
		sb.WriteString(e.Path)
	}
	if e.HasField {
		fmt.Fprintf(&sb, " field %08X", e.FieldHash)
	}
	if e.HasCounts {
		fmt.Fprintf(&sb, " (expected %d, got %d)", e.Expected, e.Actual)
	}
	if e.Detail != "" {
		sb.WriteString(": ")
		sb.WriteString(e.Detail)
	}

	return sb.String()
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// Format creates a FormatError wrapping err with a formatted detail message.
func Format(err error, format string, args ...any) *FormatError {
	return &FormatError{Err: err, Detail: fmt.Sprintf(format, args...)}
}

// Counts creates a FormatError carrying an expected/actual pair.
func Counts(err error, expected, actual int) *FormatError {
	return &FormatError{Err: err, Expected: expected, Actual: actual, HasCounts: true}
}

// WithPath annotates err with a node path and, optionally, a field hash.
//
// If err is already a *FormatError with a path, it is returned unchanged so
// the innermost location wins. Any other error is wrapped into a FormatError.
func WithPath(err error, path string, fieldHash *uint32) error {
	if err == nil {
		return nil
	}

	var fe *FormatError
	if errors.As(err, &fe) {
		if fe.Path == "" {
			fe.Path = path
		}
		if fieldHash != nil && !fe.HasField {
			fe.FieldHash = *fieldHash
			fe.HasField = true
		}

		return err
	}

	var me *MismatchError
	if errors.As(err, &me) {
		return err
	}

	fe = &FormatError{Err: err, Path: path}
	if fieldHash != nil {
		fe.FieldHash = *fieldHash
		fe.HasField = true
	}

	return fe
}

// MismatchError reports a declared name that disagrees with decoded content.
type MismatchError struct {
	Path     string
	Expected string
	Actual   string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("%s: %s: expected %q, got %q", ErrNameMismatch, e.Path, e.Expected, e.Actual)
}

func (e *MismatchError) Unwrap() error {
	return ErrNameMismatch
}
