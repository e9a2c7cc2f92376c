// Package document scans literate documents for solver source blocks and
// splices captured results back into them. Org and Markdown fences are
// supported; everything else in the document passes through untouched.
package document

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/avoronov/blocksolve/internal/block"
)

// Format identifies the host document syntax.
type Format int

const (
	FormatOrg Format = iota
	FormatMarkdown
)

// DetectFormat picks a format from the file extension. Anything that is
// not Org is treated as Markdown.
func DetectFormat(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".org") {
		return FormatOrg
	}
	return FormatMarkdown
}

// Document is a parsed host document with its solver blocks located.
type Document struct {
	Path   string
	Format Format
	Lines  []string
	Blocks []*block.Block
}

// Load reads and parses a document from disk.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	d, err := Parse(string(data), DetectFormat(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	d.Path = path
	return d, nil
}

// Parse scans document text for solver source blocks. Blocks in other
// languages are left alone. Unnamed blocks get positional names so results
// and history can still refer to them.
func Parse(src string, f Format) (*Document, error) {
	d := &Document{Format: f, Lines: strings.Split(src, "\n")}

	var err error
	switch f {
	case FormatOrg:
		err = d.parseOrg()
	default:
		err = d.parseMarkdown()
	}
	if err != nil {
		return nil, err
	}

	for i, b := range d.Blocks {
		if b.Name == "" {
			b.Name = fmt.Sprintf("block-%d", i+1)
		}
	}
	return d, nil
}

func (d *Document) parseOrg() error {
	pendingName := ""

	for i := 0; i < len(d.Lines); i++ {
		trimmed := strings.TrimSpace(d.Lines[i])
		lower := strings.ToLower(trimmed)

		switch {
		case strings.HasPrefix(lower, "#+name:"):
			pendingName = strings.TrimSpace(trimmed[len("#+name:"):])

		case strings.HasPrefix(lower, "#+begin_src"):
			header := strings.TrimSpace(trimmed[len("#+begin_src"):])
			lang, args, _ := strings.Cut(header, " ")

			end, body, ok := collectUntil(d.Lines, i+1, func(s string) bool {
				return strings.EqualFold(strings.TrimSpace(s), "#+end_src")
			})
			if !ok {
				return fmt.Errorf("line %d: unterminated source block", i+1)
			}

			if lang == block.Lang {
				params, err := block.ParseHeaderArgs(args)
				if err != nil {
					return fmt.Errorf("line %d: %w", i+1, err)
				}
				d.Blocks = append(d.Blocks, &block.Block{
					Name:   pendingName,
					Lang:   lang,
					Params: params,
					Body:   body,
					Line:   i + 1,
					End:    end + 1,
				})
			}
			pendingName = ""
			i = end

		default:
			if trimmed != "" {
				pendingName = ""
			}
		}
	}
	return nil
}

func (d *Document) parseMarkdown() error {
	for i := 0; i < len(d.Lines); i++ {
		trimmed := strings.TrimSpace(d.Lines[i])
		if !strings.HasPrefix(trimmed, "```") {
			continue
		}

		info := strings.TrimSpace(strings.TrimPrefix(trimmed, "```"))
		info = strings.TrimSuffix(strings.TrimPrefix(info, "{"), "}")
		lang, args, _ := strings.Cut(info, " ")

		end, body, ok := collectUntil(d.Lines, i+1, func(s string) bool {
			return strings.TrimSpace(s) == "```"
		})
		if !ok {
			return fmt.Errorf("line %d: unterminated fenced block", i+1)
		}

		if lang == block.Lang {
			params, err := block.ParseHeaderArgs(args)
			if err != nil {
				return fmt.Errorf("line %d: %w", i+1, err)
			}
			d.Blocks = append(d.Blocks, &block.Block{
				Lang:   lang,
				Params: params,
				Body:   body,
				Line:   i + 1,
				End:    end + 1,
			})
		}
		i = end
	}
	return nil
}

// collectUntil gathers lines from start until stop matches. Returns the
// index of the matching line, the joined body, and whether stop was found.
func collectUntil(lines []string, start int, stop func(string) bool) (int, string, bool) {
	for j := start; j < len(lines); j++ {
		if stop(lines[j]) {
			return j, strings.Join(lines[start:j], "\n"), true
		}
	}
	return 0, "", false
}
