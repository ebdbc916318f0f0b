package complexpr

import "strconv"

// OperatorError is an error indicating an operator token with no entry in
// the operator table. It implements InputError.
type OperatorError struct {
	// Col is the position of the operator.
	Col int
	// Operator is the token that was not understood.
	Operator string
}

func (err *OperatorError) Error() string {
	return errpos(err.Col, "unknown operator "+strconv.Quote(err.Operator))
}

func (err *OperatorError) Pos() int {
	return err.Col
}

// BracketError is an error indicating unbalanced parentheses in the input.
// It implements InputError.
type BracketError struct {
	// Col is the position of the unmatched parenthesis.
	Col int
	// Left is the opening parenthesis, if it is the unmatched one.
	Left string
	// Right is the closing parenthesis, if it is the unmatched one.
	Right string
}

func (err *BracketError) Error() string {
	if err.Left == "" {
		return errpos(err.Col, "close parenthesis with no open parenthesis")
	}
	return errpos(err.Col, "open parenthesis with no close parenthesis")
}

func (err *BracketError) Pos() int {
	return err.Col
}

// SeparatorError is an error indicating a comma outside any function call.
// It implements InputError.
type SeparatorError struct {
	// Col is the position of the separator.
	Col int
	// Sep is the separator.
	Sep string
}

func (err *SeparatorError) Error() string {
	return errpos(err.Col, "separator "+strconv.Quote(err.Sep)+" outside a function call")
}

func (err *SeparatorError) Pos() int {
	return err.Col
}

// TokenError is an error indicating an item in the postfix stream that is
// neither a value, an operator, nor a function. It implements InputError.
type TokenError struct {
	// Col is the position of the token.
	Col int
	// Text is the token text.
	Text string
}

func (err *TokenError) Error() string {
	return errpos(err.Col, "invalid token "+strconv.Quote(err.Text))
}

func (err *TokenError) Pos() int {
	return err.Col
}

// ArgumentError is an error indicating an operator or function with too few
// operands. It implements InputError.
type ArgumentError struct {
	// Col is the position of the operator or function name.
	Col int
	// Name is the operator or function name.
	Name string
	// Want is the required arity.
	Want int
	// Have is the number of operands that were available.
	Have int
}

func (err *ArgumentError) Error() string {
	return errpos(err.Col, err.Name+" needs "+strconv.Itoa(err.Want)+" arguments but has "+strconv.Itoa(err.Have))
}

func (err *ArgumentError) Pos() int {
	return err.Col
}

// MalformedError is an error indicating an expression that does not reduce
// to a single tree: either empty input or operands with nothing joining
// them.
type MalformedError struct {
	// Values is the number of values remaining after rebuilding the tree.
	Values int
}

func (err *MalformedError) Error() string {
	if err.Values == 0 {
		return "empty expression"
	}
	return "malformed expression: " + strconv.Itoa(err.Values) + " values remain"
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting
// from invalid input at a known position implements InputError.
type InputError interface {
	error
	// Pos returns the position of the error as the number of runes up to and
	// including the start of the token that caused the error.
	Pos() int
}

var (
	_ InputError = (*OperatorError)(nil)
	_ InputError = (*BracketError)(nil)
	_ InputError = (*SeparatorError)(nil)
	_ InputError = (*TokenError)(nil)
	_ InputError = (*ArgumentError)(nil)
	_ InputError = (*LexError)(nil)
)
