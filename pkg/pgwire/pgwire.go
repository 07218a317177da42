// Package pgwire reads and writes the PostgreSQL binary array format: a
// header (dimension count, has-null flag, element OID), per-dimension length
// and lower bound, then each element as a signed 32-bit byte length (-1 for
// NULL) followed by its payload. All integers are big-endian.
package pgwire

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/genc-murat/pgarray/pkg/array"
	"github.com/genc-murat/pgarray/pkg/pgtype"
)

// MaxDim is the dimension limit PostgreSQL enforces on arrays.
const MaxDim = 6

// ErrBadFormat reports wire data that does not follow the binary array
// layout.
var ErrBadFormat = errors.New("malformed binary array")

// Header is the fixed prefix of a binary array value.
type Header struct {
	HasNull bool
	ElemOID uint32
	Dims    []array.Dimension
}

// WriteHeader appends the header to buf.
func WriteHeader(buf *bytes.Buffer, h Header) error {
	if len(h.Dims) > MaxDim {
		return fmt.Errorf("%d dimensions exceed the maximum of %d", len(h.Dims), MaxDim)
	}
	putInt32(buf, int32(len(h.Dims)))
	if h.HasNull {
		putInt32(buf, 1)
	} else {
		putInt32(buf, 0)
	}
	putInt32(buf, int32(h.ElemOID))
	for _, d := range h.Dims {
		if d.Len < 0 || d.Len > math.MaxInt32 {
			return fmt.Errorf("dimension length %d does not fit the wire format", d.Len)
		}
		if d.LowerBound < math.MinInt32 || d.LowerBound > math.MaxInt32 {
			return fmt.Errorf("lower bound %d does not fit the wire format", d.LowerBound)
		}
		putInt32(buf, int32(d.Len))
		putInt32(buf, int32(d.LowerBound))
	}
	return nil
}

// ReadHeader consumes the header from raw and returns it along with the
// remaining element bytes.
func ReadHeader(raw []byte) (Header, []byte, error) {
	r := &reader{raw: raw}
	ndim, err := r.int32()
	if err != nil {
		return Header{}, nil, err
	}
	if ndim < 0 || ndim > MaxDim {
		return Header{}, nil, fmt.Errorf("%w: invalid dimension count %d", ErrBadFormat, ndim)
	}
	hasNull, err := r.int32()
	if err != nil {
		return Header{}, nil, err
	}
	elemOID, err := r.int32()
	if err != nil {
		return Header{}, nil, err
	}
	h := Header{
		HasNull: hasNull != 0,
		ElemOID: uint32(elemOID),
	}
	for i := int32(0); i < ndim; i++ {
		l, err := r.int32()
		if err != nil {
			return Header{}, nil, err
		}
		if l < 0 {
			return Header{}, nil, fmt.Errorf("%w: negative dimension length %d", ErrBadFormat, l)
		}
		lb, err := r.int32()
		if err != nil {
			return Header{}, nil, err
		}
		h.Dims = append(h.Dims, array.Dimension{Len: int(l), LowerBound: int(lb)})
	}
	return h, r.rest(), nil
}

// Encode appends the binary form of the array to buf using c for the
// elements. The has-null flag is computed from the data.
func Encode[T any](buf *bytes.Buffer, a *array.Array[pgtype.Nullable[T]], c pgtype.Codec[T]) error {
	values := a.Values()
	h := Header{ElemOID: c.OID, Dims: a.Dimensions()}
	for _, v := range values {
		if !v.Valid {
			h.HasNull = true
			break
		}
	}
	if err := WriteHeader(buf, h); err != nil {
		return err
	}

	var elem bytes.Buffer
	for _, v := range values {
		if !v.Valid {
			putInt32(buf, -1)
			continue
		}
		elem.Reset()
		if err := c.Encode(v.V, &elem); err != nil {
			return fmt.Errorf("encoding %s element: %w", c.Name, err)
		}
		if elem.Len() > math.MaxInt32 {
			return fmt.Errorf("%s element of %d bytes does not fit the wire format", c.Name, elem.Len())
		}
		putInt32(buf, int32(elem.Len()))
		buf.Write(elem.Bytes())
	}
	return nil
}

// Decode reads a binary array using c for the elements. The element OID in
// the header must match the codec's.
func Decode[T any](raw []byte, c pgtype.Codec[T]) (*array.Array[pgtype.Nullable[T]], error) {
	h, rest, err := ReadHeader(raw)
	if err != nil {
		return nil, err
	}
	if h.ElemOID != c.OID {
		return nil, fmt.Errorf("%w: element OID %d does not match %s (%d)", ErrBadFormat, h.ElemOID, c.Name, c.OID)
	}
	if len(h.Dims) == 0 {
		if len(rest) != 0 {
			return nil, fmt.Errorf("%w: %d trailing bytes", ErrBadFormat, len(rest))
		}
		return array.FromParts[pgtype.Nullable[T]](nil, nil), nil
	}

	total := 1
	for _, d := range h.Dims {
		total *= d.Len
		if total > math.MaxInt32 {
			return nil, fmt.Errorf("%w: element count overflows", ErrBadFormat)
		}
	}
	// Every element carries at least its 4-byte length word, so a claimed
	// count beyond that is a truncated payload. Checked before the slice is
	// allocated.
	if total > len(rest)/4 {
		return nil, fmt.Errorf("%w: %d elements claimed but only %d bytes remain", ErrBadFormat, total, len(rest))
	}

	r := &reader{raw: rest}
	data := make([]pgtype.Nullable[T], 0, total)
	for i := 0; i < total; i++ {
		l, err := r.int32()
		if err != nil {
			return nil, err
		}
		if l == -1 {
			data = append(data, pgtype.Null[T]())
			continue
		}
		if l < 0 {
			return nil, fmt.Errorf("%w: invalid element length %d", ErrBadFormat, l)
		}
		payload, err := r.take(int(l))
		if err != nil {
			return nil, err
		}
		v, err := c.Decode(payload)
		if err != nil {
			return nil, fmt.Errorf("decoding %s element: %w", c.Name, err)
		}
		data = append(data, pgtype.Of(v))
	}
	if len(r.rest()) != 0 {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrBadFormat, len(r.rest()))
	}
	return array.FromParts(data, h.Dims), nil
}

func putInt32(buf *bytes.Buffer, v int32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], uint32(v))
	buf.Write(b[:])
}

type reader struct {
	raw []byte
	pos int
}

func (r *reader) int32() (int32, error) {
	b, err := r.take(4)
	if err != nil {
		return 0, err
	}
	return int32(binary.BigEndian.Uint32(b)), nil
}

func (r *reader) take(n int) ([]byte, error) {
	if r.pos+n > len(r.raw) {
		return nil, fmt.Errorf("%w: unexpected end of input", ErrBadFormat)
	}
	b := r.raw[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

func (r *reader) rest() []byte {
	return r.raw[r.pos:]
}
