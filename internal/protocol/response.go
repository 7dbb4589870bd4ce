package protocol

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	bestIndexPattern = regexp.MustCompile(`bestmove index=(\d+)`)
	bestEvalPattern  = regexp.MustCompile(`eval=(-?\d+(?:\.\d+)?(?:[eE][-+]?\d+)?)`)
)

// Response is the text an engine produced for one command.
type Response struct {
	Command Command
	Text    string
	// TimedOut is set when the completion predicate was not met in time.
	// Text then holds whatever arrived before the deadline.
	TimedOut bool
	// Index and Eval are filled by backends that return the best move as
	// values rather than text. Nil means "read it from Text".
	Index *int
	Eval  *float64
}

// BestMove returns the recommended index and evaluation. The structured
// values win over the text; a missing or negative index yields nil.
func (r *Response) BestMove() (*int, *float64) {
	index, eval := r.Index, r.Eval

	if index == nil {
		index = ParseBestIndex(r.Text)
	}

	if index != nil && *index < 0 {
		index = nil
	}

	if eval == nil {
		eval = ParseEval(r.Text)
	}

	return index, eval
}

// PlayAccepted reports whether the engine confirmed a play.
func (r *Response) PlayAccepted() bool {
	return strings.Contains(r.Text, PlayAccepted)
}

// ParseBestIndex extracts N from "bestmove index=N".
func ParseBestIndex(text string) *int {
	m := bestIndexPattern.FindStringSubmatch(text)
	if m == nil {
		return nil
	}

	n, err := strconv.Atoi(m[1])
	if err != nil {
		return nil
	}

	return &n
}

// ParseEval extracts the evaluation from "eval=X".
func ParseEval(text string) *float64 {
	m := bestEvalPattern.FindStringSubmatch(text)
	if m == nil {
		return nil
	}

	f, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return nil
	}

	return &f
}
