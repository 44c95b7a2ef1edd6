package matcher

import (
	"errors"
	"fmt"

	"github.com/coregx/byteseek/syntax"
)

// CompileByte compiles a node matching exactly one byte.
func CompileByte(n *syntax.Node) (ByteMatcher, error) {
	m, err := compileByte(n)
	if err != nil {
		return nil, wrapCompileError(n.Op, err)
	}
	return m, nil
}

// CompileSequence compiles a fixed-length node into a sequence matcher.
// Alternatives, optional parts and variable repeats have no fixed length and
// yield ErrNotFixedLength.
func CompileSequence(n *syntax.Node) (SequenceMatcher, error) {
	m, err := compileSequence(n)
	if err != nil {
		return nil, wrapCompileError(n.Op, err)
	}
	return m, nil
}

func wrapCompileError(op syntax.Op, err error) error {
	var cerr *CompileError
	if errors.As(err, &cerr) {
		return err
	}
	return &CompileError{Op: op, Err: err}
}

func compileByte(n *syntax.Node) (*SingleByte, error) {
	switch n.Op {
	case syntax.OpByte:
		if n.Inverted {
			return InvertedByte(n.Value), nil
		}
		return OneByte(n.Value), nil
	case syntax.OpRange:
		if n.Inverted {
			return InvertedRange(n.Value, n.High), nil
		}
		return Range(n.Value, n.High), nil
	case syntax.OpAllBitmask:
		return nonEmpty(invertIf(AllBitmask(n.Value), n.Inverted))
	case syntax.OpAnyBitmask:
		return nonEmpty(invertIf(AnyBitmask(n.Value), n.Inverted))
	case syntax.OpAnyByte:
		return AnyByte(), nil
	case syntax.OpSet:
		s, err := nodeByteSet(n)
		if err != nil {
			return nil, err
		}
		return NewSet(s)
	case syntax.OpString:
		if len(n.Text) == 1 {
			return OneByte(n.Text[0]), nil
		}
	case syntax.OpCaseInsensitiveString:
		if len(n.Text) == 1 {
			return CaseInsensitiveByte(n.Text[0]), nil
		}
	case syntax.OpRepeat:
		if n.Min == 1 && n.Max == 1 {
			return compileByte(n.Sub[0])
		}
	}
	return nil, ErrNotSingleByte
}

// NodeByteSet returns the set of bytes matched by a single-byte node,
// including sets whose members are strings (each character is a member).
func NodeByteSet(n *syntax.Node) (ByteSet, error) {
	s, err := nodeByteSet(n)
	if err != nil {
		return ByteSet{}, wrapCompileError(n.Op, err)
	}
	return s, nil
}

func nodeByteSet(n *syntax.Node) (ByteSet, error) {
	var s ByteSet
	switch n.Op {
	case syntax.OpSet:
		for _, member := range n.Sub {
			ms, err := nodeByteSet(member)
			if err != nil {
				return ByteSet{}, err
			}
			s = s.Union(ms)
		}
		if n.Inverted {
			s = s.Complement()
		}
	case syntax.OpString:
		for i := 0; i < len(n.Text); i++ {
			s.Add(n.Text[i])
		}
	case syntax.OpCaseInsensitiveString:
		for i := 0; i < len(n.Text); i++ {
			s.Add(toLowerASCII(n.Text[i]))
			s.Add(toUpperASCII(n.Text[i]))
		}
	default:
		m, err := compileByte(n)
		if err != nil {
			return ByteSet{}, err
		}
		s = m.set
	}
	return s, nil
}

func invertIf(m *SingleByte, inverted bool) *SingleByte {
	if !inverted {
		return m
	}
	m.set = m.set.Complement()
	m.inverted = true
	return m
}

func nonEmpty(m *SingleByte) (*SingleByte, error) {
	if m.set.IsEmpty() {
		return nil, fmt.Errorf("%w: %s matches no bytes", ErrInvalidArgument, m.RegularExpression(false))
	}
	return m, nil
}

func compileSequence(n *syntax.Node) (SequenceMatcher, error) {
	switch n.Op {
	case syntax.OpString:
		if len(n.Text) == 1 {
			return OneByte(n.Text[0]), nil
		}
		return NewByteSequenceString(n.Text)
	case syntax.OpCaseInsensitiveString:
		if len(n.Text) == 1 {
			return CaseInsensitiveByte(n.Text[0]), nil
		}
		return NewCaseInsensitiveSequence(n.Text)
	case syntax.OpSequence:
		parts := make([]SequenceMatcher, len(n.Sub))
		for i, sub := range n.Sub {
			m, err := CompileSequence(sub)
			if err != nil {
				return nil, err
			}
			parts[i] = m
		}
		return Join(parts...)
	case syntax.OpRepeat:
		if n.Min != n.Max {
			return nil, ErrNotFixedLength
		}
		m, err := CompileSequence(n.Sub[0])
		if err != nil {
			return nil, err
		}
		return m.Repeat(n.Min)
	case syntax.OpAlternatives, syntax.OpZeroToMany, syntax.OpOneToMany, syntax.OpOptional:
		return nil, ErrNotFixedLength
	}
	m, err := compileByte(n)
	if err != nil {
		return nil, err
	}
	return m, nil
}
