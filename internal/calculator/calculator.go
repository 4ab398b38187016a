package calculator

import (
	"errors"
	"fmt"
	"strings"

	"wordcalc/internal/numeric"
	"wordcalc/internal/words"
)

// Evaluation describes one completed binary operation.
type Evaluation struct {
	Left     float64
	Op       Operator
	Right    float64
	Result   float64
	Expr     string // "2 + 3 = 5"
	Recorded bool   // false once the step log is full
}

// Calculator owns one expression and its step log. Every command either
// succeeds or returns an *Error leaving the state untouched. A Calculator is
// not safe for concurrent use.
type Calculator struct {
	expr    Expression
	history *History
	speller words.Speller
}

// New creates an empty calculator. A nil speller falls back to
// words.Converter.
func New(speller words.Speller) *Calculator {
	if speller == nil {
		speller = words.Converter{}
	}
	return &Calculator{
		history: NewHistory(MaxSteps),
		speller: speller,
	}
}

// newEvaluationCalculator builds a calculator holding a one-shot expression.
// An empty operator leaves the expression incomplete. A right operand without
// an operator, or an operator without a left operand, is rejected with
// ErrIncompleteExpression so the Expression invariants hold.
func newEvaluationCalculator(speller words.Speller, left, op, right string) (*Calculator, error) {
	c := New(speller)
	c.expr.Left = left

	if op == "" {
		if right != "" {
			return nil, ErrIncompleteExpression
		}
		return c, nil
	}

	parsed, err := ParseOperator(op)
	if err != nil {
		return nil, err
	}
	if left == "" {
		return nil, ErrIncompleteExpression
	}

	c.expr.Op = parsed
	c.expr.Right = right
	return c, nil
}

// AppendDigit appends a digit or decimal point to the operand being typed.
func (c *Calculator) AppendDigit(ch string) error {
	if !isDigitOrPoint(ch) {
		return errInvalidCharacter
	}

	target := c.expr.target()
	if ch == "." && strings.Contains(*target, ".") {
		return ErrInvalidNumberFormat
	}

	*target += ch
	return nil
}

// AppendBracket appends ( or ) to the operand being typed. Brackets are
// kept as text and never matched.
func (c *Calculator) AppendBracket(ch string) error {
	if ch != "(" && ch != ")" {
		return errInvalidBracket
	}

	target := c.expr.target()
	*target += ch
	return nil
}

// Backspace removes the most recent input: a right operand character, else
// the pending operator, else a left operand character.
func (c *Calculator) Backspace() {
	switch {
	case c.expr.Right != "":
		c.expr.Right = trimLast(c.expr.Right)
	case c.expr.Op != OpNone:
		c.expr.Op = OpNone
	case c.expr.Left != "":
		c.expr.Left = trimLast(c.expr.Left)
	}
}

// SetOperator chooses the pending operator. If an operator is already pending
// with a right operand typed, that expression is evaluated first and the
// evaluation is returned.
func (c *Calculator) SetOperator(symbol string) (*Evaluation, error) {
	if c.expr.Left == "" {
		return nil, ErrMissingOperand
	}
	if c.expr.Op != OpNone && c.expr.Right == "" {
		return nil, ErrOperatorAlreadySelected
	}

	op, err := ParseOperator(symbol)
	if err != nil {
		return nil, err
	}

	var ev *Evaluation
	if c.expr.Right != "" {
		done, err := c.Evaluate()
		if err != nil {
			return nil, err
		}
		ev = &done
	}

	c.expr.Op = op
	return ev, nil
}

// Evaluate applies the pending operator. On success the result becomes the
// new left operand and the step is logged if there is room.
func (c *Calculator) Evaluate() (Evaluation, error) {
	e := c.expr
	if !e.Complete() {
		return Evaluation{}, ErrIncompleteExpression
	}

	l, lok := numeric.Parse(e.Left)
	r, rok := numeric.Parse(e.Right)
	if !lok || !rok {
		return Evaluation{}, ErrInvalidNumber
	}

	result, err := e.Op.Apply(l, r)
	if err != nil {
		return Evaluation{}, err
	}

	ev := Evaluation{
		Left:   l,
		Op:     e.Op,
		Right:  r,
		Result: result,
		Expr: fmt.Sprintf("%s %s %s = %s",
			numeric.Format(l), e.Op.Symbol(), numeric.Format(r), numeric.Format(result)),
	}
	ev.Recorded = c.history.Record(ev.Expr)

	c.expr = Expression{Left: numeric.Format(result)}
	return ev, nil
}

// Clear resets the expression and the step log.
func (c *Calculator) Clear() {
	c.expr = Expression{}
	c.history.Reset()
}

// Press dispatches a single keypad key:
//
//	0-9 .     append digit
//	( )       append bracket
//	+ - * /   choose operator
//	= \r \n   evaluate
//	\b DEL <  backspace
//	c C       clear
func (c *Calculator) Press(key rune) (*Evaluation, error) {
	switch key {
	case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9', '.':
		return nil, c.AppendDigit(string(key))
	case '(', ')':
		return nil, c.AppendBracket(string(key))
	case '+', '-', '*', '/':
		return c.SetOperator(string(key))
	case '=', '\r', '\n':
		ev, err := c.Evaluate()
		if err != nil {
			return nil, err
		}
		return &ev, nil
	case '\b', 0x7f, '<':
		c.Backspace()
		return nil, nil
	case 'c', 'C':
		c.Clear()
		return nil, nil
	}
	return nil, &Error{
		Kind:       KindUnknownOperation,
		Message:    ErrUnknownOperation.Message,
		Suggestion: fmt.Sprintf("%q is not a calculator key.", key),
	}
}

// Expression returns a copy of the current expression.
func (c *Calculator) Expression() Expression {
	return c.expr
}

// Steps returns a copy of the step log.
func (c *Calculator) Steps() []string {
	return c.history.Steps()
}

// Display returns the expression as typed, or "0" when nothing is typed.
func (c *Calculator) Display() string {
	if s := c.expr.String(); s != "" {
		return s
	}
	return "0"
}

// ShowWords reports whether the words rendering applies: only a single
// settled operand is spelled out, never a half-typed expression.
func (c *Calculator) ShowWords() bool {
	return c.expr.Settled()
}

// Words spells the settled operand. It returns "" mid-expression.
func (c *Calculator) Words() (string, error) {
	if !c.ShowWords() {
		return "", nil
	}
	w, err := c.speller.Spell(c.expr.Left)
	if errors.Is(err, words.ErrOutOfRange) {
		return "", ErrNumberTooLarge
	}
	return w, err
}

func isDigitOrPoint(ch string) bool {
	if len(ch) != 1 {
		return false
	}
	return ch == "." || (ch[0] >= '0' && ch[0] <= '9')
}

func trimLast(s string) string {
	if s == "" {
		return s
	}
	return s[:len(s)-1]
}
