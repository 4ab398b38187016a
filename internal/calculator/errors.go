package calculator

// Kind classifies a calculator input error.
type Kind string

const (
	KindInvalidNumberFormat     Kind = "invalid_number_format"
	KindMissingOperand          Kind = "missing_operand"
	KindOperatorAlreadySelected Kind = "operator_already_selected"
	KindIncompleteExpression    Kind = "incomplete_expression"
	KindInvalidNumber           Kind = "invalid_number"
	KindDivisionByZero          Kind = "division_by_zero"
	KindUnknownOperation        Kind = "unknown_operation"
	KindNumberTooLarge          Kind = "number_too_large"
)

// Error is a recoverable input error with a message for the user and an
// optional hint on how to fix it. Two errors match under errors.Is when their
// kinds are equal.
type Error struct {
	Kind       Kind   `json:"kind"`
	Message    string `json:"error"`
	Suggestion string `json:"suggestion,omitempty"`
}

func (e *Error) Error() string {
	return e.Message
}

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t != nil && t.Kind == e.Kind
}

var (
	ErrInvalidNumberFormat = &Error{
		Kind:       KindInvalidNumberFormat,
		Message:    "Invalid number format",
		Suggestion: "You already added a decimal point.",
	}
	ErrMissingOperand = &Error{
		Kind:       KindMissingOperand,
		Message:    "No number entered",
		Suggestion: "Enter a number before choosing an operator.",
	}
	ErrOperatorAlreadySelected = &Error{
		Kind:       KindOperatorAlreadySelected,
		Message:    "Operator already selected",
		Suggestion: "Enter the next number.",
	}
	ErrIncompleteExpression = &Error{
		Kind:       KindIncompleteExpression,
		Message:    "Incomplete expression",
		Suggestion: "Enter two numbers and an operator before pressing equals.",
	}
	ErrInvalidNumber = &Error{
		Kind:       KindInvalidNumber,
		Message:    "Invalid number",
		Suggestion: "Please enter valid numeric values.",
	}
	ErrDivisionByZero = &Error{
		Kind:       KindDivisionByZero,
		Message:    "Division by zero",
		Suggestion: "You cannot divide a number by zero.",
	}
	ErrUnknownOperation = &Error{
		Kind:    KindUnknownOperation,
		Message: "Unknown operation",
	}
	ErrNumberTooLarge = &Error{
		Kind:       KindNumberTooLarge,
		Message:    "Number too large to read out",
		Suggestion: "Only numbers below one quadrillion can be shown in words.",
	}
)

// errInvalidCharacter rejects keys that are neither digits nor a decimal point.
var errInvalidCharacter = &Error{
	Kind:       KindInvalidNumberFormat,
	Message:    "Invalid number format",
	Suggestion: "Only digits and a single decimal point can be typed.",
}

// errInvalidBracket rejects anything other than ( or ) as a bracket.
var errInvalidBracket = &Error{
	Kind:       KindInvalidNumberFormat,
	Message:    "Invalid number format",
	Suggestion: "Only ( and ) are accepted as brackets.",
}
