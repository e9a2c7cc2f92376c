package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestTangleDocuments(t *testing.T) {
	dir := t.TempDir()
	doc := filepath.Join(dir, "notes.org")
	src := "#+name: queens\n#+begin_src clingo :var n=8\nqueen(1..n).\n#+end_src\n\n" +
		"#+name: hidden\n#+begin_src clingo :exports none\nsecret.\n#+end_src\n"
	if err := os.WriteFile(doc, []byte(src), 0o644); err != nil {
		t.Fatalf("write doc: %v", err)
	}

	out := filepath.Join(dir, "tangled")
	if err := tangleDocuments([]string{doc}, out); err != nil {
		t.Fatalf("tangleDocuments: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(out, "queens.lp"))
	if err != nil {
		t.Fatalf("tangled file missing: %v", err)
	}
	want := "#const n = 8.\nqueen(1..n).\n"
	if string(data) != want {
		t.Errorf("tangled source = %q, want %q", data, want)
	}

	if _, err := os.Stat(filepath.Join(out, "hidden.lp")); !os.IsNotExist(err) {
		t.Error(":exports none block was tangled")
	}
}

func TestSanitizeName(t *testing.T) {
	tests := map[string]string{
		"simple":      "simple",
		"with space":  "with-space",
		"path/../esc": "path----esc",
		"block-2":     "block-2",
	}
	for in, want := range tests {
		if got := sanitizeName(in); got != want {
			t.Errorf("sanitizeName(%q) = %q, want %q", in, got, want)
		}
	}
}
