package calculator

import "fmt"

// MaxSteps is the number of completed operations kept in the step log.
const MaxSteps = 6

// History is the step log of completed operations. It stops recording once
// full; it never drops older entries.
type History struct {
	steps []string
	max   int
}

// NewHistory creates a step log holding at most max entries.
func NewHistory(max int) *History {
	return &History{
		steps: make([]string, 0, max),
		max:   max,
	}
}

// Record appends a numbered step for expr ("2 + 3 = 5"). It reports false,
// recording nothing, when the log is full.
func (h *History) Record(expr string) bool {
	if len(h.steps) >= h.max {
		return false
	}
	h.steps = append(h.steps, fmt.Sprintf("Step %d: %s", len(h.steps)+1, expr))
	return true
}

// Len returns the number of recorded steps.
func (h *History) Len() int {
	return len(h.steps)
}

// Full reports whether further steps will be dropped.
func (h *History) Full() bool {
	return len(h.steps) >= h.max
}

// Steps returns a copy of the recorded steps.
func (h *History) Steps() []string {
	out := make([]string, len(h.steps))
	copy(out, h.steps)
	return out
}

// Reset empties the log.
func (h *History) Reset() {
	h.steps = h.steps[:0]
}
