package solver

import (
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"unicode"
)

// ErrSolverNotFound indicates the solver executable could not be resolved.
// It is raised before any process is spawned and before any temp file is
// created.
var ErrSolverNotFound = errors.New("solver executable not found")

// Invocation describes a single solver run: the resolved executable plus
// the processed block parameters. Built once, consumed once.
type Invocation struct {
	Path     string // resolved executable path
	Models   *int   // nil = no -n flag; 0 = -n 0 ("all answer sets")
	Options  string // raw extra flags, tokenized but not interpreted
	Instance string // optional instance file path
}

// Resolve locates the solver executable on PATH (or verifies an explicit
// path). A failure here aborts the evaluation before side effects occur.
func Resolve(executable string) (string, error) {
	path, err := exec.LookPath(executable)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrSolverNotFound, executable)
	}
	return path, nil
}

// NewInvocation resolves the executable and builds an Invocation.
func NewInvocation(executable string, models *int, options, instance string) (Invocation, error) {
	path, err := Resolve(executable)
	if err != nil {
		return Invocation{}, err
	}
	return Invocation{Path: path, Models: models, Options: options, Instance: instance}, nil
}

// Args builds the argument list for the given source file. Order matters
// to the solver's CLI parser: flags first, then the instance file, then
// the source file.
func (inv Invocation) Args(sourcePath string) []string {
	var args []string
	if inv.Models != nil {
		args = append(args, "-n", strconv.Itoa(*inv.Models))
	}
	args = append(args, SplitOptions(inv.Options)...)
	if inv.Instance != "" {
		args = append(args, inv.Instance)
	}
	return append(args, sourcePath)
}

// SplitOptions tokenizes a raw options string on whitespace, honoring
// single and double quotes so flag values may contain spaces. No shell is
// involved and no expansion is performed.
func SplitOptions(s string) []string {
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
