package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type stringerValue struct{ v string }

func (s stringerValue) String() string { return s.v }

func TestStringify(t *testing.T) {
	text := "hello"
	var nilText *string
	var nilStringer *stringerValue

	tests := []struct {
		name   string
		in     any
		want   string
		wantOK bool
	}{
		{"nil", nil, "", false},
		{"empty string", "", "", false},
		{"string", "x", "x", true},
		{"string pointer", &text, "hello", true},
		{"nil string pointer", nilText, "", false},
		{"stringer", stringerValue{"s"}, "s", true},
		{"nil stringer pointer", nilStringer, "", false},
		{"string slice", []string{"a", "b"}, "a, b", true},
		{"empty slice", []string{}, "", false},
		{"any slice skips nils", []any{"a", nil, 3}, "a, 3", true},
		{"int", 42, "42", true},
		{"bool", true, "true", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Stringify(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCollapseLines(t *testing.T) {
	assert.Equal(t, "a b c", CollapseLines("  a\r\n b \n\n c "))
	assert.Equal(t, "", CollapseLines("\n\n"))
}

func TestNormalizeKeywords(t *testing.T) {
	assert.Equal(t, "go, html, seo", NormalizeKeywords(" go ,html\nseo,, "))
	assert.Equal(t, "", NormalizeKeywords(" , "))
}
