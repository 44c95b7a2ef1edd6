package syntax

import "fmt"

// ErrorCode describes a failure to parse an expression.
type ErrorCode string

const (
	ErrEmptyExpression      ErrorCode = "empty expression"
	ErrMissingParen         ErrorCode = "missing closing )"
	ErrUnexpectedParen      ErrorCode = "unexpected )"
	ErrMissingBracket       ErrorCode = "missing closing ]"
	ErrEmptySet             ErrorCode = "empty byte set"
	ErrInvalidHexByte       ErrorCode = "invalid hex byte"
	ErrUnterminatedString   ErrorCode = "unterminated string"
	ErrEmptyString          ErrorCode = "empty string"
	ErrInvalidRange         ErrorCode = "invalid byte range"
	ErrInvalidRepeat        ErrorCode = "invalid repeat count"
	ErrMissingRepeatOperand ErrorCode = "missing argument to repetition operator"
	ErrInvalidInversion     ErrorCode = "invalid inversion"
	ErrUnexpectedCharacter  ErrorCode = "unexpected character"
)

func (e ErrorCode) String() string {
	return string(e)
}

// Error describes a failure to parse an expression and gives the offending
// offset within it.
type Error struct {
	Code ErrorCode
	Expr string
	Pos  int
}

// Error implements the error interface
func (e *Error) Error() string {
	return fmt.Sprintf("error parsing expression %q at offset %d: %s", e.Expr, e.Pos, e.Code)
}

// Is reports whether target is an *Error with the same Code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}
