package matcher

import (
	"errors"
	"fmt"

	"github.com/coregx/byteseek/syntax"
)

var (
	// ErrInvalidArgument indicates a constructor or derived-matcher operation
	// received an argument it cannot honor (empty input, repeat count < 1, ...).
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrIndexOutOfRange indicates a position or range outside a matcher.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrNotFixedLength indicates an expression that cannot be represented by
	// a fixed-length sequence matcher (alternation, unbounded repetition, ...).
	ErrNotFixedLength = errors.New("expression does not have a fixed length")

	// ErrNotSingleByte indicates an expression that does not match exactly one byte.
	ErrNotSingleByte = errors.New("expression does not match a single byte")
)

// CompileError reports a syntax node that could not be compiled to a matcher.
type CompileError struct {
	Op  syntax.Op
	Err error
}

// Error implements the error interface
func (e *CompileError) Error() string {
	return fmt.Sprintf("cannot compile %s node: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error
func (e *CompileError) Unwrap() error {
	return e.Err
}

func rangeError(begin, end, length int) error {
	return fmt.Errorf("%w: subsequence [%d, %d) of length %d", ErrIndexOutOfRange, begin, end, length)
}

func repeatError(n int) error {
	return fmt.Errorf("%w: repeat count %d must be at least 1", ErrInvalidArgument, n)
}

// checkRange validates a subsequence request against a matcher length.
func checkRange(begin, end, length int) error {
	if begin < 0 || end > length || begin >= end {
		return rangeError(begin, end, length)
	}
	return nil
}
