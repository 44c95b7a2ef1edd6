// Package syntax parses byte-oriented pattern expressions into an abstract
// syntax tree.
//
// The expression language describes byte sequences rather than text:
//
//	01 02 ff          hex bytes
//	'GIF8' `pdf`      case-sensitive and case-insensitive ASCII strings
//	30-39             an inclusive byte range
//	[09 0a 0d 20]     a byte set (members may be bytes, ranges, strings, bitmasks or sets)
//	^[00-1f]          ^ inverts the byte, range, set or bitmask that follows
//	&7f ~80           all-bits and any-bits bitmasks
//	.                 any byte
//	(a|b)             grouping and alternation
//	* + ? {n} {n,m} {n,*}
//
// Whitespace is insignificant and # starts a comment running to end of line.
package syntax

import (
	"fmt"
	"strconv"
	"strings"
)

// Op identifies the kind of a Node.
type Op uint8

const (
	// OpByte matches Node.Value (or everything else if Inverted).
	OpByte Op = iota + 1

	// OpRange matches bytes in [Node.Value, Node.High].
	OpRange

	// OpSet matches the union of its Sub members.
	OpSet

	// OpAllBitmask matches bytes b where b&Value == Value.
	OpAllBitmask

	// OpAnyBitmask matches bytes b where b&Value != 0.
	OpAnyBitmask

	// OpAnyByte matches any byte.
	OpAnyByte

	// OpString matches Node.Text exactly.
	OpString

	// OpCaseInsensitiveString matches Node.Text ignoring ASCII case.
	OpCaseInsensitiveString

	// OpSequence matches its Sub nodes one after another.
	OpSequence

	// OpAlternatives matches any one of its Sub nodes.
	OpAlternatives

	// OpZeroToMany matches Sub[0] zero or more times.
	OpZeroToMany

	// OpOneToMany matches Sub[0] one or more times.
	OpOneToMany

	// OpOptional matches Sub[0] zero or one times.
	OpOptional

	// OpRepeat matches Sub[0] between Min and Max times; Max == -1 is unbounded.
	OpRepeat
)

// String returns a human-readable name for the Op
func (op Op) String() string {
	switch op {
	case OpByte:
		return "Byte"
	case OpRange:
		return "Range"
	case OpSet:
		return "Set"
	case OpAllBitmask:
		return "AllBitmask"
	case OpAnyBitmask:
		return "AnyBitmask"
	case OpAnyByte:
		return "AnyByte"
	case OpString:
		return "String"
	case OpCaseInsensitiveString:
		return "CaseInsensitiveString"
	case OpSequence:
		return "Sequence"
	case OpAlternatives:
		return "Alternatives"
	case OpZeroToMany:
		return "ZeroToMany"
	case OpOneToMany:
		return "OneToMany"
	case OpOptional:
		return "Optional"
	case OpRepeat:
		return "Repeat"
	default:
		return fmt.Sprintf("Op(%d)", op)
	}
}

// Node is a node of the expression syntax tree.
// Which fields are meaningful depends on Op.
type Node struct {
	Op Op

	// Inverted negates the byte predicate of Byte, Range, Set and bitmask nodes.
	Inverted bool

	// Value is the byte of OpByte, the mask of the bitmask ops and the low
	// end of OpRange.
	Value byte

	// High is the inclusive upper bound of OpRange.
	High byte

	// Text is the payload of the string ops.
	Text string

	// Min and Max are the bounds of OpRepeat. Max is -1 when unbounded.
	Min, Max int

	// Sub holds children of Set, Sequence, Alternatives and the repeat ops.
	Sub []*Node
}

// IsLeaf reports whether the node matches exactly one byte.
func (n *Node) IsLeaf() bool {
	switch n.Op {
	case OpByte, OpRange, OpSet, OpAllBitmask, OpAnyBitmask, OpAnyByte:
		return true
	}
	return false
}

// String returns a debug rendering of the tree.
func (n *Node) String() string {
	var b strings.Builder
	n.writeTo(&b)
	return b.String()
}

func (n *Node) writeTo(b *strings.Builder) {
	if n.Inverted {
		b.WriteByte('^')
	}
	switch n.Op {
	case OpByte:
		b.WriteString(hexByte(n.Value))
	case OpRange:
		b.WriteString(hexByte(n.Value))
		b.WriteByte('-')
		b.WriteString(hexByte(n.High))
	case OpAllBitmask:
		b.WriteByte('&')
		b.WriteString(hexByte(n.Value))
	case OpAnyBitmask:
		b.WriteByte('~')
		b.WriteString(hexByte(n.Value))
	case OpAnyByte:
		b.WriteByte('.')
	case OpString:
		b.WriteString(strconv.Quote(n.Text))
	case OpCaseInsensitiveString:
		b.WriteString("ci" + strconv.Quote(n.Text))
	case OpRepeat:
		b.WriteString("rep{")
		b.WriteString(strconv.Itoa(n.Min))
		b.WriteByte(',')
		if n.Max < 0 {
			b.WriteByte('*')
		} else {
			b.WriteString(strconv.Itoa(n.Max))
		}
		b.WriteString("}")
		n.writeSubs(b)
	default:
		b.WriteString(strings.ToLower(n.Op.String()))
		n.writeSubs(b)
	}
}

func (n *Node) writeSubs(b *strings.Builder) {
	b.WriteByte('{')
	for i, sub := range n.Sub {
		if i > 0 {
			b.WriteByte(' ')
		}
		sub.writeTo(b)
	}
	b.WriteByte('}')
}

const hexDigits = "0123456789abcdef"

func hexByte(v byte) string {
	return string([]byte{hexDigits[v>>4], hexDigits[v&0x0f]})
}
