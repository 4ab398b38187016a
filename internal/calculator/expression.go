package calculator

// Expression is the in-progress input: a left operand, an optional pending
// operator and a right operand. Op is set only when Left is non-empty, and
// Right is non-empty only when Op is set.
type Expression struct {
	Left  string   `json:"left"`
	Op    Operator `json:"operator"`
	Right string   `json:"right"`
}

// Pending reports whether an operator has been chosen.
func (e Expression) Pending() bool {
	return e.Op != OpNone
}

// Complete reports whether the expression can be evaluated.
func (e Expression) Complete() bool {
	return e.Left != "" && e.Op != OpNone && e.Right != ""
}

// Settled reports whether the expression holds a single operand and nothing
// else.
func (e Expression) Settled() bool {
	return e.Left != "" && e.Op == OpNone && e.Right == ""
}

// Empty reports whether nothing has been typed.
func (e Expression) Empty() bool {
	return e.Left == "" && e.Op == OpNone && e.Right == ""
}

// String renders the expression as typed. A pending operator is padded on
// both sides, so "2 + " keeps its trailing space until a digit follows.
func (e Expression) String() string {
	s := e.Left
	if e.Op != OpNone {
		s += " " + e.Op.Symbol() + " "
	}
	return s + e.Right
}

// target returns the operand new characters are appended to.
func (e *Expression) target() *string {
	if e.Op != OpNone {
		return &e.Right
	}
	return &e.Left
}
