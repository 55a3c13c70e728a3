package store

import (
	"slices"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		text string
		want []string
	}{
		{"hello world", []string{"hello", "world"}},
		{"Hello, World!", []string{"hello", "world"}},
		{"  spaced\tout\nwords  ", []string{"spaced", "out", "words"}},
		{"rev2 of v1.0", []string{"rev2", "of", "v1", "0"}},
		{"Grüße aus Köln", []string{"grüße", "aus", "köln"}},
		{"a a a", []string{"a", "a", "a"}},
		{"", nil},
		{"...", nil},
	}
	for _, tt := range tests {
		if got := Tokenize(tt.text); !slices.Equal(got, tt.want) {
			t.Errorf("Tokenize(%q): expected %v, got %v", tt.text, tt.want, got)
		}
	}
}

func TestNormalizeWord(t *testing.T) {
	tests := []struct {
		word string
		want string
		ok   bool
	}{
		{"hello", "hello", true},
		{"HeLLo", "hello", true},
		{" hello! ", "hello", true},
		{"two words", "", false},
		{"", "", false},
		{"?!", "", false},
	}
	for _, tt := range tests {
		got, ok := NormalizeWord(tt.word)
		if got != tt.want || ok != tt.ok {
			t.Errorf("NormalizeWord(%q) = (%q, %v), expected (%q, %v)", tt.word, got, ok, tt.want, tt.ok)
		}
	}
}
