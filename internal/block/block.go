package block

import (
	"time"
)

// Lang is the source-block language tag recognized in documents.
const Lang = "clingo"

// Ext is the conventional file extension for tangled solver sources.
const Ext = ".lp"

// Recognized values for the results and exports header parameters.
const (
	ResultsOutput = "output" // capture printed output, not a return value

	ExportsBoth    = "both" // include code and results on export
	ExportsCode    = "code"
	ExportsResults = "results"
	ExportsNone    = "none"
)

// VarBinding is a single named constant binding, in declaration order.
type VarBinding struct {
	Name  string
	Value any
}

// Params holds the typed header parameters of a source block.
// Models distinguishes "unspecified" (nil, no flag emitted) from 0
// ("all answer sets", -n 0 emitted).
type Params struct {
	Models   *int
	Options  string // raw solver flags, passed through verbatim
	Instance string // optional instance file path
	Vars     []VarBinding
	Results  string
	Exports  string
}

// DefaultParams returns the declarative defaults every block starts from.
func DefaultParams() Params {
	return Params{Results: ResultsOutput, Exports: ExportsBoth}
}

// Block is a delimited region of solver source within a host document.
type Block struct {
	Name   string
	Lang   string
	Params Params
	Body   string
	Line   int // 1-based line of the block opener
	End    int // 1-based line of the block closer
}

// State represents the evaluation state of a block.
type State int

const (
	StatePending State = iota
	StateRunning
	StateCompleted
	StateFailed
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "PENDING"
	case StateRunning:
		return "RUNNING"
	case StateCompleted:
		return "COMPLETED"
	case StateFailed:
		return "FAILED"
	default:
		return "UNKNOWN"
	}
}

// EvalResult captures the outcome of evaluating a single block.
// Output is best-effort: it is populated even when the run is classified
// as failed.
type EvalResult struct {
	Document  string
	BlockName string
	State     State
	StartedAt time.Time
	Duration  time.Duration
	ExitCode  int
	Output    string
	Stderr    string
	Error     string
}
