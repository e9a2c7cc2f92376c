package document

import (
	"strings"

	"github.com/avoronov/blocksolve/internal/block"
)

// Splice returns the document text with captured output inserted after
// each evaluated block, replacing any previous results section. Blocks
// without an entry in results keep whatever follows them.
func (d *Document) Splice(results map[string]string) string {
	byEnd := make(map[int]*block.Block, len(d.Blocks))
	for _, b := range d.Blocks {
		byEnd[b.End] = b
	}

	var out []string
	i := 0
	for i < len(d.Lines) {
		out = append(out, d.Lines[i])

		b := byEnd[i+1]
		if b == nil {
			i++
			continue
		}
		text, ok := results[b.Name]
		if !ok {
			i++
			continue
		}

		next := d.skipResults(i + 1)
		out = append(out, d.formatResults(b.Name, text)...)
		i = next
	}

	joined := strings.Join(out, "\n")
	if !strings.HasSuffix(joined, "\n") {
		joined += "\n"
	}
	return joined
}

// skipResults returns the index past an existing results section starting
// at line index i, or i unchanged when none is present.
func (d *Document) skipResults(i int) int {
	j := i
	for j < len(d.Lines) && strings.TrimSpace(d.Lines[j]) == "" {
		j++
	}
	if j >= len(d.Lines) {
		return i
	}

	switch d.Format {
	case FormatOrg:
		if !strings.HasPrefix(strings.ToLower(strings.TrimSpace(d.Lines[j])), "#+results") {
			return i
		}
		j++
		for j < len(d.Lines) {
			t := d.Lines[j]
			if strings.HasPrefix(t, ": ") || strings.TrimSpace(t) == ":" {
				j++
				continue
			}
			break
		}
		return j

	default:
		if strings.TrimSpace(d.Lines[j]) != "```results" {
			return i
		}
		j++
		for j < len(d.Lines) {
			done := strings.TrimSpace(d.Lines[j]) == "```"
			j++
			if done {
				break
			}
		}
		return j
	}
}

func (d *Document) formatResults(name, text string) []string {
	body := strings.Split(strings.TrimSuffix(text, "\n"), "\n")

	if d.Format == FormatOrg {
		out := []string{"", "#+RESULTS: " + name}
		for _, line := range body {
			if line == "" {
				out = append(out, ":")
			} else {
				out = append(out, ": "+line)
			}
		}
		return out
	}

	out := []string{"", "```results"}
	out = append(out, body...)
	return append(out, "```")
}
