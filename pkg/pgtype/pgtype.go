// Package pgtype describes the PostgreSQL element types the array codecs can
// carry: their OIDs, their text representations, and their binary encodings.
package pgtype

import "bytes"

// Nullable carries an element value that may be SQL NULL.
type Nullable[T any] struct {
	V     T
	Valid bool
}

// Of wraps a non-NULL value.
func Of[T any](v T) Nullable[T] {
	return Nullable[T]{V: v, Valid: true}
}

// Null returns the NULL value for T.
func Null[T any]() Nullable[T] {
	return Nullable[T]{}
}

// Codec converts values of one element type between their Go representation
// and the two PostgreSQL array formats. Format and Parse handle the text form
// used inside array literals (unquoted, unescaped); Encode and Decode handle
// the binary form used inside the array wire envelope.
type Codec[T any] struct {
	Name     string
	OID      uint32
	ArrayOID uint32

	Format func(v T) string
	Parse  func(s string) (T, error)
	Encode func(v T, buf *bytes.Buffer) error
	Decode func(raw []byte) (T, error)
}
