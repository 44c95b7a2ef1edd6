package glushkov

import (
	"errors"
	"fmt"

	"github.com/coregx/byteseek/syntax"
)

var (
	// ErrUnknownNode indicates a node kind the builder does not recognize
	ErrUnknownNode = errors.New("unknown node kind")

	// ErrEmptyNode indicates a node is missing the children its kind requires
	ErrEmptyNode = errors.New("node has no children")

	// ErrInvalidRepeat indicates repeat bounds with min < 0 or max < min
	ErrInvalidRepeat = errors.New("invalid repeat bounds")

	// ErrTooComplex indicates the expression is nested too deeply
	ErrTooComplex = errors.New("expression too complex")

	// ErrInvalidConfig indicates invalid configuration was provided
	ErrInvalidConfig = errors.New("invalid glushkov configuration")
)

// CompileError reports the node kind on which compilation failed.
type CompileError struct {
	Op  syntax.Op
	Err error
}

// Error implements the error interface
func (e *CompileError) Error() string {
	if e.Op == 0 {
		return fmt.Sprintf("glushkov: %v", e.Err)
	}
	return fmt.Sprintf("glushkov: %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error
func (e *CompileError) Unwrap() error {
	return e.Err
}
