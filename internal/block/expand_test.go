package block

import (
	"strings"
	"testing"
)

func TestExpand_SingleBinding(t *testing.T) {
	got := Expand("a.", []VarBinding{{Name: "x", Value: 5}})
	want := "#const x = 5.\na.\n"
	if got != want {
		t.Fatalf("Expand = %q, want %q", got, want)
	}
}

func TestExpand_BindingOrder(t *testing.T) {
	vars := []VarBinding{
		{Name: "n", Value: 3},
		{Name: "label", Value: "red"},
		{Name: "limit", Value: 0},
	}
	got := Expand("p(X) :- q(X).", vars)

	lines := strings.Split(got, "\n")
	want := []string{
		"#const n = 3.",
		"#const label = red.",
		"#const limit = 0.",
		"p(X) :- q(X).",
	}
	for i, w := range want {
		if lines[i] != w {
			t.Errorf("line %d = %q, want %q", i, lines[i], w)
		}
	}
}

func TestExpand_NoBindings(t *testing.T) {
	got := Expand("a. b.", nil)
	if got != "a. b.\n" {
		t.Fatalf("Expand = %q, want body plus newline", got)
	}
}

func TestExpand_TrailingNewlinePreserved(t *testing.T) {
	got := Expand("a.\n", nil)
	if got != "a.\n" {
		t.Fatalf("Expand = %q, want single trailing newline", got)
	}
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{5, "5"},
		{int64(-2), "-2"},
		{0, "0"},
		{3.5, "3.5"},
		{true, "true"},
		{"sym", "sym"},
		{`"quoted"`, `"quoted"`},
	}
	for _, tt := range tests {
		if got := FormatValue(tt.in); got != tt.want {
			t.Errorf("FormatValue(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
