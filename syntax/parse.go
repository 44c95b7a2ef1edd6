package syntax

import (
	"strconv"
)

// maxRepeat bounds {n,m} counts so that expanded automata stay finite and sane.
const maxRepeat = 1000

// Parse parses a byte expression and returns its syntax tree.
func Parse(expr string) (*Node, error) {
	p := &parser{expr: expr}
	p.skipSpace()
	if p.eof() {
		return nil, p.errorf(ErrEmptyExpression)
	}
	n, err := p.parseAlternatives()
	if err != nil {
		return nil, err
	}
	if !p.eof() {
		if p.peek() == ')' {
			return nil, p.errorf(ErrUnexpectedParen)
		}
		return nil, p.errorf(ErrUnexpectedCharacter)
	}
	return n, nil
}

// MustParse is like Parse but panics if the expression cannot be parsed.
func MustParse(expr string) *Node {
	n, err := Parse(expr)
	if err != nil {
		panic(err)
	}
	return n
}

type parser struct {
	expr string
	pos  int
}

func (p *parser) eof() bool {
	return p.pos >= len(p.expr)
}

func (p *parser) peek() byte {
	return p.expr[p.pos]
}

func (p *parser) errorf(code ErrorCode) *Error {
	return &Error{Code: code, Expr: p.expr, Pos: p.pos}
}

// skipSpace consumes whitespace and comments.
func (p *parser) skipSpace() {
	for !p.eof() {
		switch p.peek() {
		case ' ', '\t', '\r', '\n':
			p.pos++
		case '#':
			for !p.eof() && p.peek() != '\n' {
				p.pos++
			}
		default:
			return
		}
	}
}

func (p *parser) parseAlternatives() (*Node, error) {
	first, err := p.parseSequence()
	if err != nil {
		return nil, err
	}
	if p.eof() || p.peek() != '|' {
		return first, nil
	}
	alts := &Node{Op: OpAlternatives, Sub: []*Node{first}}
	for !p.eof() && p.peek() == '|' {
		p.pos++
		p.skipSpace()
		next, err := p.parseSequence()
		if err != nil {
			return nil, err
		}
		alts.Sub = append(alts.Sub, next)
	}
	return alts, nil
}

func (p *parser) parseSequence() (*Node, error) {
	var subs []*Node
	for {
		p.skipSpace()
		if p.eof() {
			break
		}
		c := p.peek()
		if c == '|' || c == ')' {
			break
		}
		n, err := p.parseQuantified()
		if err != nil {
			return nil, err
		}
		subs = append(subs, n)
	}
	switch len(subs) {
	case 0:
		return nil, p.errorf(ErrEmptyExpression)
	case 1:
		return subs[0], nil
	}
	return &Node{Op: OpSequence, Sub: subs}, nil
}

func (p *parser) parseQuantified() (*Node, error) {
	c := p.peek()
	if c == '*' || c == '+' || c == '?' || c == '{' {
		return nil, p.errorf(ErrMissingRepeatOperand)
	}
	n, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	for {
		p.skipSpace()
		if p.eof() {
			return n, nil
		}
		switch p.peek() {
		case '*':
			p.pos++
			n = &Node{Op: OpZeroToMany, Sub: []*Node{n}}
		case '+':
			p.pos++
			n = &Node{Op: OpOneToMany, Sub: []*Node{n}}
		case '?':
			p.pos++
			n = &Node{Op: OpOptional, Sub: []*Node{n}}
		case '{':
			if n, err = p.parseRepeat(n); err != nil {
				return nil, err
			}
		default:
			return n, nil
		}
	}
}

// parseRepeat parses {n}, {n,m} or {n,*} applied to sub.
func (p *parser) parseRepeat(sub *Node) (*Node, error) {
	start := p.pos
	p.pos++ // {
	p.skipSpace()
	minCount, ok := p.parseInt()
	if !ok {
		return nil, &Error{Code: ErrInvalidRepeat, Expr: p.expr, Pos: start}
	}
	maxCount := minCount
	p.skipSpace()
	if !p.eof() && p.peek() == ',' {
		p.pos++
		p.skipSpace()
		if !p.eof() && p.peek() == '*' {
			p.pos++
			maxCount = -1
		} else if maxCount, ok = p.parseInt(); !ok {
			return nil, &Error{Code: ErrInvalidRepeat, Expr: p.expr, Pos: start}
		}
		p.skipSpace()
	}
	if p.eof() || p.peek() != '}' {
		return nil, &Error{Code: ErrInvalidRepeat, Expr: p.expr, Pos: start}
	}
	p.pos++
	if minCount > maxRepeat || maxCount > maxRepeat ||
		(maxCount >= 0 && (maxCount < minCount || maxCount == 0)) {
		return nil, &Error{Code: ErrInvalidRepeat, Expr: p.expr, Pos: start}
	}
	return &Node{Op: OpRepeat, Min: minCount, Max: maxCount, Sub: []*Node{sub}}, nil
}

func (p *parser) parseInt() (int, bool) {
	start := p.pos
	for !p.eof() && p.peek() >= '0' && p.peek() <= '9' {
		p.pos++
	}
	if start == p.pos {
		return 0, false
	}
	n, err := strconv.Atoi(p.expr[start:p.pos])
	if err != nil {
		return 0, false
	}
	return n, true
}

func (p *parser) parseAtom() (*Node, error) {
	switch p.peek() {
	case '(':
		p.pos++
		p.skipSpace()
		if !p.eof() && p.peek() == ')' {
			return nil, p.errorf(ErrEmptyExpression)
		}
		n, err := p.parseAlternatives()
		if err != nil {
			return nil, err
		}
		if p.eof() || p.peek() != ')' {
			return nil, p.errorf(ErrMissingParen)
		}
		p.pos++
		return n, nil
	case '.':
		p.pos++
		return &Node{Op: OpAnyByte}, nil
	case '\'', '`':
		return p.parseString()
	}
	return p.parseByteAtom(false)
}

// parseByteAtom parses an atom that matches a single byte and may be inverted.
// Inside a set, strings contribute their characters as members.
func (p *parser) parseByteAtom(inSet bool) (*Node, error) {
	c := p.peek()
	switch {
	case c == '^':
		p.pos++
		p.skipSpace()
		if p.eof() {
			return nil, p.errorf(ErrInvalidInversion)
		}
		n, err := p.parseByteAtom(inSet)
		if err != nil {
			return nil, err
		}
		switch n.Op {
		case OpByte, OpRange, OpSet, OpAllBitmask, OpAnyBitmask:
			n.Inverted = !n.Inverted
			return n, nil
		}
		return nil, p.errorf(ErrInvalidInversion)
	case c == '[':
		return p.parseSet()
	case c == '&' || c == '~':
		p.pos++
		v, err := p.parseHexByte()
		if err != nil {
			return nil, err
		}
		op := OpAllBitmask
		if c == '~' {
			op = OpAnyBitmask
		}
		return &Node{Op: op, Value: v}, nil
	case c == '.' && inSet:
		p.pos++
		return &Node{Op: OpAnyByte}, nil
	case c == '\'' || c == '`':
		return p.parseString()
	case isHex(c):
		lo, err := p.parseHexByte()
		if err != nil {
			return nil, err
		}
		return p.maybeRange(lo)
	}
	return nil, p.errorf(ErrUnexpectedCharacter)
}

// maybeRange turns lo into a range if a '-' and a second bound follow.
func (p *parser) maybeRange(lo byte) (*Node, error) {
	save := p.pos
	p.skipSpace()
	if p.eof() || p.peek() != '-' {
		p.pos = save
		return &Node{Op: OpByte, Value: lo}, nil
	}
	p.pos++
	p.skipSpace()
	if p.eof() {
		return nil, p.errorf(ErrInvalidRange)
	}
	var hi byte
	switch c := p.peek(); {
	case isHex(c):
		v, err := p.parseHexByte()
		if err != nil {
			return nil, err
		}
		hi = v
	case c == '\'':
		text, err := p.readQuoted()
		if err != nil {
			return nil, err
		}
		if len(text) != 1 {
			return nil, p.errorf(ErrInvalidRange)
		}
		hi = text[0]
	default:
		return nil, p.errorf(ErrInvalidRange)
	}
	if hi < lo {
		lo, hi = hi, lo
	}
	return &Node{Op: OpRange, Value: lo, High: hi}, nil
}

func (p *parser) parseHexByte() (byte, error) {
	if p.pos+2 > len(p.expr) || !isHex(p.expr[p.pos]) || !isHex(p.expr[p.pos+1]) {
		return 0, p.errorf(ErrInvalidHexByte)
	}
	v, err := strconv.ParseUint(p.expr[p.pos:p.pos+2], 16, 8)
	if err != nil {
		return 0, p.errorf(ErrInvalidHexByte)
	}
	p.pos += 2
	return byte(v), nil
}

func (p *parser) parseString() (*Node, error) {
	quote := p.peek()
	text, err := p.readQuoted()
	if err != nil {
		return nil, err
	}
	if quote == '`' {
		return &Node{Op: OpCaseInsensitiveString, Text: text}, nil
	}
	// 'a'-'z' is a range of characters
	if len(text) == 1 {
		return p.maybeRange(text[0])
	}
	return &Node{Op: OpString, Text: text}, nil
}

// readQuoted consumes a quoted string and returns its contents.
// There are no escapes: a string cannot contain its own quote character.
func (p *parser) readQuoted() (string, error) {
	start := p.pos
	quote := p.peek()
	end := p.pos + 1
	for end < len(p.expr) && p.expr[end] != quote {
		end++
	}
	if end >= len(p.expr) {
		return "", &Error{Code: ErrUnterminatedString, Expr: p.expr, Pos: start}
	}
	text := p.expr[start+1 : end]
	p.pos = end + 1
	if text == "" {
		return "", &Error{Code: ErrEmptyString, Expr: p.expr, Pos: start}
	}
	return text, nil
}

func (p *parser) parseSet() (*Node, error) {
	start := p.pos
	p.pos++ // [
	set := &Node{Op: OpSet}
	for {
		p.skipSpace()
		if p.eof() {
			return nil, &Error{Code: ErrMissingBracket, Expr: p.expr, Pos: start}
		}
		if p.peek() == ']' {
			p.pos++
			break
		}
		member, err := p.parseByteAtom(true)
		if err != nil {
			return nil, err
		}
		set.Sub = append(set.Sub, member)
	}
	if len(set.Sub) == 0 {
		return nil, &Error{Code: ErrEmptySet, Expr: p.expr, Pos: start}
	}
	return set, nil
}

func isHex(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
