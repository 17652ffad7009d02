package errors

import (
	"errors"
	"fmt"
)

var (
	// Validation errors 🧩
	ErrLengthMismatch      = errors.New("❌ values and positions differ in length")
	ErrPositionOutOfRange  = errors.New("❌ position outside the 7x7 grid")
	ErrEmptyDiagram        = errors.New("❌ diagram has no occupied cells")
	ErrDuplicatePosition   = errors.New("❌ position already occupied")
	ErrCellTooLong         = errors.New("❌ cell exceeds 50 characters")
	ErrEmptyCell           = errors.New("❌ cell value is empty")
	ErrInvalidCharacter    = errors.New("❌ value is not a valid unicode character")
	ErrUnsupportedLanguage = errors.New("❌ unsupported mnemonic language")
	ErrUnsupportedCharset  = errors.New("❌ unsupported password charset")
	ErrInvalidLength       = errors.New("❌ invalid output length")
	ErrNotHardened         = errors.New("❌ derivation index is not hardened")
	ErrInvalidPath         = errors.New("❌ invalid derivation path")
	ErrDuplicateValue      = errors.New("❌ alphabet contains a duplicate value")

	// Encoding errors 🔢
	ErrValueNotInAlphabet = errors.New("❌ value not covered by alphabet")
	ErrEntropyLength      = errors.New("❌ entropy length matches no supported profile")
	ErrEntropyRange       = errors.New("❌ entropy number outside diagram range")

	// Serialization errors 📦
	ErrChecksumMismatch = errors.New("❌ checksum mismatch")
	ErrInvalidVersion   = errors.New("❌ unsupported version bytes")
	ErrInvalidKey       = errors.New("❌ invalid private key")
	ErrInvalidMnemonic  = errors.New("❌ invalid mnemonic")
	ErrUnknownWord      = errors.New("❌ word not found in any wordlist")
	ErrAmbiguousWords   = errors.New("❌ mnemonic matches more than one language")
	ErrWrongPassphrase  = errors.New("❌ passphrase does not match encrypted key")
)

// FieldError attaches the offending field and value to a sentinel error.
type FieldError struct {
	Field string
	Value any
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%v (%s=%v)", e.Err, e.Field, e.Value)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// Field wraps err with the field name and offending value.
func Field(err error, field string, value any) error {
	return &FieldError{Field: field, Value: value, Err: err}
}
