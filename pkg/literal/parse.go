package literal

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/genc-murat/pgarray/pkg/array"
	"github.com/genc-murat/pgarray/pkg/pgtype"
)

// ErrMalformed reports input that does not follow the array literal grammar.
var ErrMalformed = errors.New("malformed array literal")

// Parse reads an array literal, using parse for the element text. The
// inverse of Format: it accepts optional [lower:upper] dimension bounds,
// nested braces, quoted and unquoted elements, and NULL.
func Parse[T any](s string, parse func(string) (T, error)) (*array.Array[pgtype.Nullable[T]], error) {
	p := &parser[T]{src: s, elem: parse}
	p.skipSpace()
	bounds, err := p.parseBounds()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	data, shape, err := p.parseLevel()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos != len(p.src) {
		return nil, fmt.Errorf("%w: unexpected %q after closing brace", ErrMalformed, p.src[p.pos:])
	}

	if len(data) == 0 && len(shape) == 1 && shape[0] == 0 {
		if bounds != nil {
			return nil, fmt.Errorf("%w: dimension bounds on an empty array", ErrMalformed)
		}
		return array.FromParts[pgtype.Nullable[T]](nil, nil), nil
	}

	dims := make([]array.Dimension, len(shape))
	for i, l := range shape {
		dims[i] = array.Dimension{Len: l, LowerBound: 1}
	}
	if bounds != nil {
		if len(bounds) != len(dims) {
			return nil, fmt.Errorf("%w: %d dimension bounds for %d dimensions", ErrMalformed, len(bounds), len(dims))
		}
		for i, b := range bounds {
			if b.Len != dims[i].Len {
				return nil, fmt.Errorf("%w: bounds for dimension %d give length %d, content has %d", ErrMalformed, i+1, b.Len, dims[i].Len)
			}
			dims[i] = b
		}
	}
	return array.FromParts(data, dims), nil
}

type parser[T any] struct {
	src  string
	pos  int
	elem func(string) (T, error)
}

func (p *parser[T]) peek() byte {
	if p.pos >= len(p.src) {
		return 0
	}
	return p.src[p.pos]
}

func (p *parser[T]) expect(c byte) error {
	if p.peek() != c {
		if p.pos >= len(p.src) {
			return fmt.Errorf("%w: expected %q, found end of input", ErrMalformed, string(c))
		}
		return fmt.Errorf("%w: expected %q at offset %d", ErrMalformed, string(c), p.pos)
	}
	p.pos++
	return nil
}

func (p *parser[T]) skipSpace() {
	for p.pos < len(p.src) {
		switch p.src[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

func (p *parser[T]) parseBounds() ([]array.Dimension, error) {
	var bounds []array.Dimension
	for p.peek() == '[' {
		p.pos++
		lb, err := p.parseInt()
		if err != nil {
			return nil, err
		}
		if err := p.expect(':'); err != nil {
			return nil, err
		}
		ub, err := p.parseInt()
		if err != nil {
			return nil, err
		}
		if err := p.expect(']'); err != nil {
			return nil, err
		}
		if ub < lb-1 {
			return nil, fmt.Errorf("%w: upper bound %d less than lower bound %d", ErrMalformed, ub, lb)
		}
		bounds = append(bounds, array.Dimension{Len: ub - lb + 1, LowerBound: lb})
	}
	if bounds != nil {
		if err := p.expect('='); err != nil {
			return nil, err
		}
	}
	return bounds, nil
}

func (p *parser[T]) parseInt() (int, error) {
	start := p.pos
	if c := p.peek(); c == '-' || c == '+' {
		p.pos++
	}
	for p.pos < len(p.src) && p.src[p.pos] >= '0' && p.src[p.pos] <= '9' {
		p.pos++
	}
	n, err := strconv.Atoi(p.src[start:p.pos])
	if err != nil {
		return 0, fmt.Errorf("%w: invalid dimension bound at offset %d", ErrMalformed, start)
	}
	return n, nil
}

// parseLevel reads one {...} level and returns its elements in row-major
// order together with the shape (length per dimension) it describes.
func (p *parser[T]) parseLevel() ([]pgtype.Nullable[T], []int, error) {
	if err := p.expect('{'); err != nil {
		return nil, nil, err
	}
	p.skipSpace()
	if p.peek() == '}' {
		p.pos++
		return nil, []int{0}, nil
	}

	var data []pgtype.Nullable[T]
	var subShape []int
	count := 0
	for {
		p.skipSpace()
		if p.peek() == '{' {
			if count > 0 && subShape == nil {
				return nil, nil, fmt.Errorf("%w: mixed elements and sub-arrays", ErrMalformed)
			}
			sub, shape, err := p.parseLevel()
			if err != nil {
				return nil, nil, err
			}
			if count == 0 {
				subShape = shape
			} else if !equalShape(subShape, shape) {
				return nil, nil, fmt.Errorf("%w: sub-arrays with differing dimensions", ErrMalformed)
			}
			data = append(data, sub...)
		} else {
			if subShape != nil {
				return nil, nil, fmt.Errorf("%w: mixed elements and sub-arrays", ErrMalformed)
			}
			v, err := p.parseElem()
			if err != nil {
				return nil, nil, err
			}
			data = append(data, v)
		}
		count++
		p.skipSpace()
		switch p.peek() {
		case ',':
			p.pos++
		case '}':
			p.pos++
			return data, append([]int{count}, subShape...), nil
		default:
			return nil, nil, fmt.Errorf("%w: expected ',' or '}' at offset %d", ErrMalformed, p.pos)
		}
	}
}

func (p *parser[T]) parseElem() (pgtype.Nullable[T], error) {
	if p.peek() == '"' {
		s, err := p.parseQuoted()
		if err != nil {
			return pgtype.Null[T](), err
		}
		v, err := p.elem(s)
		if err != nil {
			return pgtype.Null[T](), fmt.Errorf("parsing element: %w", err)
		}
		return pgtype.Of(v), nil
	}

	start := p.pos
	var sb strings.Builder
	keep := 0     // length of sb up to the last byte that survives trailing-space trimming
	escaped := false // an escaped NULL is the literal string, not SQL NULL
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if c == ',' || c == '}' {
			break
		}
		if c == '{' || c == '"' {
			return pgtype.Null[T](), fmt.Errorf("%w: unexpected %q at offset %d", ErrMalformed, string(c), p.pos)
		}
		if c == '\\' {
			if p.pos+1 >= len(p.src) {
				return pgtype.Null[T](), fmt.Errorf("%w: unterminated escape", ErrMalformed)
			}
			sb.WriteByte(p.src[p.pos+1])
			p.pos += 2
			keep = sb.Len()
			escaped = true
			continue
		}
		sb.WriteByte(c)
		p.pos++
		if c != ' ' && c != '\t' && c != '\n' && c != '\r' {
			keep = sb.Len()
		}
	}
	tok := sb.String()[:keep]
	if tok == "" {
		return pgtype.Null[T](), fmt.Errorf("%w: empty element at offset %d", ErrMalformed, start)
	}
	if !escaped && strings.EqualFold(tok, "null") {
		return pgtype.Null[T](), nil
	}
	v, err := p.elem(tok)
	if err != nil {
		return pgtype.Null[T](), fmt.Errorf("parsing element: %w", err)
	}
	return pgtype.Of(v), nil
}

func (p *parser[T]) parseQuoted() (string, error) {
	p.pos++
	var sb strings.Builder
	for p.pos < len(p.src) {
		switch c := p.src[p.pos]; c {
		case '\\':
			if p.pos+1 >= len(p.src) {
				return "", fmt.Errorf("%w: unterminated escape", ErrMalformed)
			}
			sb.WriteByte(p.src[p.pos+1])
			p.pos += 2
		case '"':
			p.pos++
			return sb.String(), nil
		default:
			sb.WriteByte(c)
			p.pos++
		}
	}
	return "", fmt.Errorf("%w: unterminated quoted element", ErrMalformed)
}

func equalShape(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
