package ident_test

import (
	"testing"

	"talfront/internal/ident"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"plain", "plain"},
		{"SEND^MESSAGE", "SEND_MESSAGE"},
		{"^a^^b^", "_a__b_"},
		{"already_ok", "already_ok"},
		{"юникод^имя", "юникод_имя"},
	}
	for _, tt := range tests {
		if got := ident.Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{"", "a^b", "^^", "x_y^z", "\"^\""}
	for _, in := range inputs {
		once := ident.Normalize(in)
		twice := ident.Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: %q vs %q", in, once, twice)
		}
	}
}

func TestNormalizeOutsideStrings(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`a^b := "x^y"`, `a_b := "x^y"`},
		{`"^" ^ "^"`, `"^" _ "^"`},
		{`no marker`, `no marker`},
	}
	for _, tt := range tests {
		if got := ident.NormalizeOutsideStrings(tt.in); got != tt.want {
			t.Errorf("NormalizeOutsideStrings(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
