package block

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// ParseHeaderArgs parses a block header-argument string into typed Params.
// Recognized keys: :n, :options, :instance, :var, :results, :exports.
// Each key consumes exactly one value token; :var repeats and preserves
// declaration order. Unknown keys are ignored so documents written for a
// richer host editor still parse.
func ParseHeaderArgs(s string) (Params, error) {
	p := DefaultParams()
	toks := splitArgs(s)

	for i := 0; i < len(toks); i++ {
		key := toks[i]
		if !strings.HasPrefix(key, ":") {
			continue
		}
		if i+1 >= len(toks) || strings.HasPrefix(toks[i+1], ":") {
			return p, fmt.Errorf("header argument %s: missing value", key)
		}
		i++
		val := toks[i]

		switch key {
		case ":n":
			n, err := strconv.Atoi(val)
			if err != nil || n < 0 {
				return p, fmt.Errorf("header argument :n: want non-negative integer, got %q", val)
			}
			p.Models = &n
		case ":options":
			p.Options = val
		case ":instance":
			p.Instance = val
		case ":results":
			p.Results = val
		case ":exports":
			p.Exports = val
		case ":var":
			b, err := ParseBinding(val)
			if err != nil {
				return p, err
			}
			p.Vars = append(p.Vars, b)
		}
	}

	return p, nil
}

// ParseBinding parses a "name=value" variable spec. Values that look like
// integers or floats become typed numbers; everything else stays a string.
func ParseBinding(spec string) (VarBinding, error) {
	name, raw, ok := strings.Cut(spec, "=")
	name = strings.TrimSpace(name)
	raw = strings.TrimSpace(raw)
	if !ok || name == "" {
		return VarBinding{}, fmt.Errorf("variable binding %q: want name=value", spec)
	}
	if n, err := strconv.Atoi(raw); err == nil {
		return VarBinding{Name: name, Value: n}, nil
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return VarBinding{Name: name, Value: f}, nil
	}
	return VarBinding{Name: name, Value: raw}, nil
}

// splitArgs tokenizes a header-argument string on whitespace, honoring
// single and double quotes. Quotes are stripped; no expansion happens.
func splitArgs(s string) []string {
	var toks []string
	var cur strings.Builder
	var quote rune
	started := false

	for _, r := range s {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				cur.WriteRune(r)
			}
		case r == '\'' || r == '"':
			quote = r
			started = true
		case unicode.IsSpace(r):
			if started {
				toks = append(toks, cur.String())
				cur.Reset()
				started = false
			}
		default:
			cur.WriteRune(r)
			started = true
		}
	}
	if started {
		toks = append(toks, cur.String())
	}
	return toks
}
