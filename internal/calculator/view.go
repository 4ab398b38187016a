package calculator

import (
	"errors"
	"strings"
)

// View is a read-only snapshot for render sinks: the display line, the
// words rendering, the step log and any problem the snapshot itself hit.
type View struct {
	Display    string     `json:"display"`
	Expression Expression `json:"expression"`
	Words      string     `json:"words,omitempty"`
	ShowWords  bool       `json:"show_words"`
	Steps      []string   `json:"steps"`
	StepLog    string     `json:"step_log"`
	Problem    *Error     `json:"problem,omitempty"`
}

// View builds a snapshot of the calculator. Calling it repeatedly without an
// intervening command yields identical snapshots.
func (c *Calculator) View() View {
	steps := c.Steps()
	v := View{
		Display:    c.Display(),
		Expression: c.Expression(),
		Steps:      steps,
		StepLog:    strings.Join(steps, "\n"),
	}

	w, err := c.Words()
	if err != nil {
		var ce *Error
		if errors.As(err, &ce) {
			v.Problem = ce
		}
		return v
	}

	v.ShowWords = c.ShowWords()
	v.Words = w
	return v
}
