package document

import (
	"strings"
	"testing"
)

const orgSample = `* Graph coloring

#+name: coloring
#+begin_src clingo :n 0 :var k=3
color(1..k).
#+end_src

#+begin_src python
print("not ours")
#+end_src

#+begin_src clingo
a.
#+end_src
`

func TestParse_Org(t *testing.T) {
	d, err := Parse(orgSample, FormatOrg)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(d.Blocks) != 2 {
		t.Fatalf("got %d blocks, want 2 (python block skipped)", len(d.Blocks))
	}

	b := d.Blocks[0]
	if b.Name != "coloring" {
		t.Errorf("Name = %q, want coloring", b.Name)
	}
	if b.Params.Models == nil || *b.Params.Models != 0 {
		t.Errorf("Models = %v, want 0", b.Params.Models)
	}
	if len(b.Params.Vars) != 1 || b.Params.Vars[0].Name != "k" || b.Params.Vars[0].Value != 3 {
		t.Errorf("Vars = %v", b.Params.Vars)
	}
	if b.Body != "color(1..k)." {
		t.Errorf("Body = %q", b.Body)
	}
	if b.Line != 4 || b.End != 6 {
		t.Errorf("Line/End = %d/%d, want 4/6", b.Line, b.End)
	}

	if d.Blocks[1].Name != "block-2" {
		t.Errorf("unnamed block got %q, want block-2", d.Blocks[1].Name)
	}
}

func TestParse_OrgNameResetByInterveningText(t *testing.T) {
	src := "#+name: stale\nsome paragraph\n#+begin_src clingo\na.\n#+end_src\n"
	d, err := Parse(src, FormatOrg)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if d.Blocks[0].Name != "block-1" {
		t.Errorf("Name = %q, want auto name after intervening text", d.Blocks[0].Name)
	}
}

func TestParse_OrgUnterminated(t *testing.T) {
	_, err := Parse("#+begin_src clingo\na.\n", FormatOrg)
	if err == nil || !strings.Contains(err.Error(), "unterminated") {
		t.Fatalf("err = %v, want unterminated error", err)
	}
}

func TestParse_OrgBadHeader(t *testing.T) {
	_, err := Parse("#+begin_src clingo :n nope\na.\n#+end_src\n", FormatOrg)
	if err == nil {
		t.Fatal("expected header parse error")
	}
}

const mdSample = "Intro text.\n\n```clingo :n 2 :options \"--quiet\"\np(X) :- q(X).\nq(1).\n```\n\n```go\nfmt.Println()\n```\n"

func TestParse_Markdown(t *testing.T) {
	d, err := Parse(mdSample, FormatMarkdown)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(d.Blocks) != 1 {
		t.Fatalf("got %d blocks, want 1", len(d.Blocks))
	}

	b := d.Blocks[0]
	if b.Params.Models == nil || *b.Params.Models != 2 {
		t.Errorf("Models = %v, want 2", b.Params.Models)
	}
	if b.Params.Options != "--quiet" {
		t.Errorf("Options = %q", b.Params.Options)
	}
	if b.Body != "p(X) :- q(X).\nq(1)." {
		t.Errorf("Body = %q", b.Body)
	}
}

func TestParse_MarkdownBraceAttributes(t *testing.T) {
	d, err := Parse("```{clingo :n 1}\na.\n```\n", FormatMarkdown)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(d.Blocks) != 1 {
		t.Fatalf("got %d blocks, want 1", len(d.Blocks))
	}
	if b := d.Blocks[0]; b.Params.Models == nil || *b.Params.Models != 1 {
		t.Errorf("Models = %v, want 1", b.Params.Models)
	}
}

func TestDetectFormat(t *testing.T) {
	if DetectFormat("notes.org") != FormatOrg {
		t.Error("notes.org should be Org")
	}
	if DetectFormat("README.md") != FormatMarkdown {
		t.Error("README.md should be Markdown")
	}
	if DetectFormat("NOTES.ORG") != FormatOrg {
		t.Error("extension match should be case-insensitive")
	}
}
