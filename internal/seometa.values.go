package internal

import (
	"fmt"
	"reflect"
	"strings"
)

// ListSeparator joins list values into a single string.
const ListSeparator = ", "

// Stringify converts a resolved value to its textual form. The boolean is
// false when the value carries nothing to render (nil, nil pointer, empty
// string or empty list).
func Stringify(v any) (string, bool) {
	if v == nil {
		return StringEmpty, false
	}

	var s string
	switch tv := v.(type) {
	case string:
		s = tv
	case *string:
		if tv == nil {
			return StringEmpty, false
		}
		s = *tv
	case fmt.Stringer:
		rv := reflect.ValueOf(v)
		if rv.Kind() == reflect.Pointer && rv.IsNil() {
			return StringEmpty, false
		}
		s = tv.String()
	case []string:
		s = strings.Join(tv, ListSeparator)
	case []any:
		parts := make([]string, 0, len(tv))
		for _, item := range tv {
			if p, ok := Stringify(item); ok {
				parts = append(parts, p)
			}
		}
		s = strings.Join(parts, ListSeparator)
	default:
		rv := reflect.ValueOf(v)
		if rv.Kind() == reflect.Pointer {
			if rv.IsNil() {
				return StringEmpty, false
			}
			return Stringify(rv.Elem().Interface())
		}
		s = fmt.Sprint(v)
	}

	if s == StringEmpty {
		return StringEmpty, false
	}
	return s, true
}

// CollapseLines replaces line breaks with single spaces and trims the result.
func CollapseLines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	lines := strings.Split(s, "\n")
	kept := lines[:0]
	for _, l := range lines {
		if l = strings.TrimSpace(l); l != StringEmpty {
			kept = append(kept, l)
		}
	}
	return strings.Join(kept, " ")
}

// NormalizeKeywords splits a keyword list on commas and newlines, trims each
// entry, drops blanks and joins with ", ".
func NormalizeKeywords(s string) string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == '\n' || r == '\r'
	})
	kept := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != StringEmpty {
			kept = append(kept, f)
		}
	}
	return strings.Join(kept, ListSeparator)
}
