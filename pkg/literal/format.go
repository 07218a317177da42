// Package literal reads and writes the PostgreSQL array literal text format:
// nested braces with comma-separated, optionally quoted elements, preceded by
// explicit [lower:upper] dimension bounds when a lower bound differs from 1.
package literal

import (
	"fmt"
	"strings"

	"github.com/genc-murat/pgarray/pkg/array"
	"github.com/genc-murat/pgarray/pkg/pgtype"
)

// Format renders the array as a literal that PostgreSQL accepts as input.
// Elements are rendered with format and quoted whenever the text would
// otherwise be ambiguous; NULL elements render as NULL.
func Format[T any](a *array.Array[pgtype.Nullable[T]], format func(T) string) string {
	var sb strings.Builder
	dims := a.Dimensions()
	for _, d := range dims {
		if d.LowerBound != 1 {
			for _, d := range dims {
				fmt.Fprintf(&sb, "[%d:%d]", d.LowerBound, d.LowerBound+d.Len-1)
			}
			sb.WriteByte('=')
			break
		}
	}
	values := a.Values()
	next := 0
	formatLevel(&sb, dims, values, 0, &next, format)
	return sb.String()
}

func formatLevel[T any](sb *strings.Builder, dims []array.Dimension, values []pgtype.Nullable[T], depth int, next *int, format func(T) string) {
	if len(dims) == 0 {
		sb.WriteString("{}")
		return
	}
	if depth == len(dims) {
		v := values[*next]
		*next++
		if !v.Valid {
			sb.WriteString("NULL")
		} else {
			sb.WriteString(quoteElem(format(v.V)))
		}
		return
	}
	sb.WriteByte('{')
	for i := 0; i < dims[depth].Len; i++ {
		if i != 0 {
			sb.WriteByte(',')
		}
		formatLevel(sb, dims, values, depth+1, next, format)
	}
	sb.WriteByte('}')
}

func quoteElem(s string) string {
	if !needsQuote(s) {
		return s
	}
	var sb strings.Builder
	sb.WriteByte('"')
	for i := 0; i < len(s); i++ {
		if s[i] == '"' || s[i] == '\\' {
			sb.WriteByte('\\')
		}
		sb.WriteByte(s[i])
	}
	sb.WriteByte('"')
	return sb.String()
}

func needsQuote(s string) bool {
	if s == "" || strings.EqualFold(s, "null") {
		return true
	}
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '{', '}', ',', '"', '\\', ' ', '\t', '\n', '\r':
			return true
		}
	}
	return false
}
