package calculator

// Operator is one of the four supported binary operators. OpNone marks the
// absence of a pending operator.
type Operator int

const (
	OpNone Operator = iota
	OpAdd
	OpSubtract
	OpMultiply
	OpDivide
)

// ParseOperator accepts either a symbol (+ - * /) or an operation name
// (add subtract multiply divide).
func ParseOperator(s string) (Operator, error) {
	switch s {
	case "+", "add":
		return OpAdd, nil
	case "-", "subtract":
		return OpSubtract, nil
	case "*", "multiply":
		return OpMultiply, nil
	case "/", "divide":
		return OpDivide, nil
	}
	return OpNone, ErrUnknownOperation
}

// Symbol returns the operator as typed on the keypad.
func (o Operator) Symbol() string {
	switch o {
	case OpAdd:
		return "+"
	case OpSubtract:
		return "-"
	case OpMultiply:
		return "*"
	case OpDivide:
		return "/"
	}
	return ""
}

// Name returns the operation name used in metric and span attributes.
func (o Operator) Name() string {
	switch o {
	case OpAdd:
		return "add"
	case OpSubtract:
		return "subtract"
	case OpMultiply:
		return "multiply"
	case OpDivide:
		return "divide"
	}
	return "none"
}

func (o Operator) String() string {
	return o.Symbol()
}

// Apply computes l <o> r.
func (o Operator) Apply(l, r float64) (float64, error) {
	switch o {
	case OpAdd:
		return l + r, nil
	case OpSubtract:
		return l - r, nil
	case OpMultiply:
		return l * r, nil
	case OpDivide:
		if r == 0 {
			return 0, ErrDivisionByZero
		}
		return l / r, nil
	}
	return 0, ErrUnknownOperation
}

// MarshalText encodes the operator as its symbol, "" for OpNone.
func (o Operator) MarshalText() ([]byte, error) {
	return []byte(o.Symbol()), nil
}

// UnmarshalText accepts anything ParseOperator does, plus "" for OpNone.
func (o *Operator) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*o = OpNone
		return nil
	}
	op, err := ParseOperator(string(b))
	if err != nil {
		return err
	}
	*o = op
	return nil
}
