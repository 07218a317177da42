// Package sqlarray adapts arrays to database/sql: a wrapper implementing
// driver.Valuer and sql.Scanner over the text literal format, which is the
// form Postgres drivers exchange array values in.
package sqlarray

import (
	"database/sql/driver"
	"fmt"

	"github.com/genc-murat/pgarray/pkg/array"
	"github.com/genc-murat/pgarray/pkg/literal"
	"github.com/genc-murat/pgarray/pkg/pgtype"
)

// Value binds an array to an element codec. A nil Array maps to SQL NULL in
// both directions.
type Value[T any] struct {
	Array *array.Array[pgtype.Nullable[T]]

	codec pgtype.Codec[T]
}

// New wraps a for use as a query parameter or scan destination.
func New[T any](c pgtype.Codec[T], a *array.Array[pgtype.Nullable[T]]) *Value[T] {
	return &Value[T]{Array: a, codec: c}
}

// Value implements driver.Valuer.
func (v *Value[T]) Value() (driver.Value, error) {
	if v.Array == nil {
		return nil, nil
	}
	return literal.Format(v.Array, v.codec.Format), nil
}

// Scan implements sql.Scanner, accepting the literal text as produced by the
// server.
func (v *Value[T]) Scan(src any) error {
	var s string
	switch src := src.(type) {
	case nil:
		v.Array = nil
		return nil
	case []byte:
		s = string(src)
	case string:
		s = src
	default:
		return fmt.Errorf("cannot scan %T into a %s array", src, v.codec.Name)
	}
	a, err := literal.Parse(s, v.codec.Parse)
	if err != nil {
		return fmt.Errorf("scanning %s array: %w", v.codec.Name, err)
	}
	v.Array = a
	return nil
}
