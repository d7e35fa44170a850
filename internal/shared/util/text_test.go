package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type label string

func (l label) String() string { return "  " + string(l) + "  " }

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  string
	}{
		{name: "nil", value: nil, want: ""},
		{name: "string trimmed", value: "  hello world \n", want: "hello world"},
		{name: "string slice", value: []string{"Technology", "Design"}, want: "Technology Design"},
		{name: "any slice", value: []any{"a", 2, true}, want: "a 2 true"},
		{name: "empty slice", value: []string{}, want: ""},
		{name: "int", value: 42, want: "42"},
		{name: "float", value: 1.5, want: "1.5"},
		{name: "stringer", value: label("x"), want: "x"},
		{name: "set", value: map[string]bool{"b": true, "a": true}, want: "a b"},
		{name: "array", value: [2]int{1, 2}, want: "1 2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeText(tt.value))
		})
	}
}

func TestNormalizeTextNilPointer(t *testing.T) {
	var s *string
	assert.Equal(t, "", NormalizeText(s))
	v := " ok "
	assert.Equal(t, "ok", NormalizeText(&v))
}

func TestNormalizeTextNilStringer(t *testing.T) {
	var d *time.Duration
	assert.NotPanics(t, func() { assert.Equal(t, "", NormalizeText(d)) })
	var l *label
	assert.Equal(t, "", NormalizeText(l))
}

func TestTokenize(t *testing.T) {
	assert.Equal(t, []string{"i", "love", "coding", "and", "automation"}, Tokenize("I love Coding, and automation!"))
	assert.Equal(t, []string{"don't", "0", "2", "hours"}, Tokenize("Don't: 0-2 hours"))
	assert.Equal(t, []string{}, Tokenize(""))
	assert.Equal(t, []string{}, Tokenize(" -- !! "))
}

func TestTokenSet(t *testing.T) {
	set := TokenSet("run run RUN gym")
	assert.Len(t, set, 2)
	assert.Contains(t, set, "run")
	assert.Contains(t, set, "gym")
}
