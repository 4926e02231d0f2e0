// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package hdl reads Verilog expression text into a syntax tree.
//
package hdl

import (
	"strings"
	"unicode"

	"github.com/db47h/vlsim/internal/lex"
	"github.com/pkg/errors"
)

// Tokens
const (
	EOF lex.Type = lex.EOF
	Raw lex.Type = iota
	Ident
	SysIdent
	Num
	Operator
)

// operators, longest first.
var operators = []string{
	"===", "!==",
	"~&", "~|", "~^", "^~", "<<", ">>", "<=", ">=", "==", "!=", "&&", "||",
	"+", "-", "*", "/", "%", "<", ">", "!", "~", "&", "|", "^", "?", ":",
	"(", ")", "[", "]", "{", "}", ",",
}

// Lexer returns a new lexer for expression text.
//
func Lexer(input string) lex.Interface {
	return lex.New(strings.NewReader(input), lexInit)
}

func isIdentStart(r rune) bool { return unicode.IsLetter(r) || r == '_' }

func isIdent(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '$'
}

func isDigit(r rune) bool { return '0' <= r && r <= '9' }

func lexInit(l *lex.Lexer) lex.StateFn {
	r := l.Next()
	switch {
	case r == lex.EOF:
		return lexEOF
	case unicode.IsSpace(r):
		l.AcceptWhile(unicode.IsSpace)
	case isIdentStart(r):
		return lexIdent
	case r == '$':
		if !isIdentStart(l.Peek()) {
			l.Emit(Raw, r)
			return lexEOF
		}
		return lexIdent
	case isDigit(r) || r == '\'':
		return lexNumber
	case r == '"':
		return lexString
	default:
		l.Backup()
		for _, op := range operators {
			if l.Accept(op) {
				l.Emit(Operator, op)
				return nil
			}
		}
		l.Next()
		l.Emit(Raw, r)
		return lexEOF
	}
	return nil
}

// lexNumber reads a number: digits, an optional based part and an optional
// fraction and exponent. The value of Num tokens is the literal text.
func lexNumber(l *lex.Lexer) lex.StateFn {
	isBased := func(r rune) bool { return isIdent(r) || r == '?' }
	if l.Current() != '\'' {
		l.AcceptWhile(func(r rune) bool { return isDigit(r) || r == '_' })
		switch l.Next() {
		case '\'':
		case '.':
			l.AcceptWhile(isDigit)
			if r := l.Peek(); r == 'e' || r == 'E' {
				l.Next()
				lexExponent(l)
			}
			l.Emit(Num, l.Text())
			return nil
		case 'e', 'E':
			lexExponent(l)
			l.Emit(Num, l.Text())
			return nil
		default:
			l.Backup()
			l.Emit(Num, l.Text())
			return nil
		}
	}
	// based part
	if r := l.Next(); r == 's' || r == 'S' {
		l.Next()
	}
	l.AcceptWhile(isBased)
	l.Emit(Num, l.Text())
	return nil
}

func lexExponent(l *lex.Lexer) {
	if r := l.Next(); r != '+' && r != '-' {
		l.Backup()
	}
	l.AcceptWhile(isDigit)
}

func lexString(l *lex.Lexer) lex.StateFn {
	for {
		switch l.Next() {
		case '\\':
			l.Next()
		case '"':
			l.Emit(Num, l.Text())
			return nil
		case lex.EOF, '\n':
			l.Errorf("unterminated string")
			return lexEOF
		}
	}
}

func lexIdent(l *lex.Lexer) lex.StateFn {
	var buf strings.Builder
	buf.Grow(8)
	buf.WriteRune(l.Current())
	r := l.Next()
	for isIdent(r) {
		buf.WriteRune(r)
		r = l.Next()
	}
	l.Backup()
	name := buf.String()
	if name[0] == '$' {
		l.Emit(SysIdent, name)
	} else {
		l.Emit(Ident, name)
	}
	return nil
}

// lexEOF places the lexer in End-Of-File state.
// Once in this state, the lexer will only emit EOF.
//
func lexEOF(l *lex.Lexer) lex.StateFn {
	l.Emit(lex.EOF, "end of input")
	return lexEOF
}

// A Node is a node of the syntax tree.
//
type Node interface {
	Pos() lex.Pos
}

// At is the position of a node.
//
type At lex.Pos

// Pos implements Node.
//
func (a At) Pos() lex.Pos { return lex.Pos(a) }

// Node types.
//
type (
	// NumberLit is a literal constant.
	NumberLit struct {
		At
		Number
	}
	// Name is a simple identifier.
	Name struct {
		At
		Name string
	}
	// Index is a bit select name[Index].
	Index struct {
		At
		Name  string
		Index Node
	}
	// Range is a part select name[Msb:Lsb].
	Range struct {
		At
		Name     string
		Msb, Lsb Node
	}
	// Concat is a concatenation, or a replication if Rep is not nil.
	Concat struct {
		At
		Rep     Node
		Members []Node
	}
	// MinTypMax is a parenthesized min:typ:max triple.
	MinTypMax struct {
		At
		Min, Typ, Max Node
	}
	// Call is a function or system task call.
	Call struct {
		At
		Name   string
		System bool
		Args   []Node
	}
	// Unary is a unary operation.
	Unary struct {
		At
		Op string
		X  Node
	}
	// Binary is a binary operation.
	Binary struct {
		At
		Op   string
		X, Y Node
	}
	// Cond is a conditional expression.
	Cond struct {
		At
		Cond, T, F Node
	}
)

var unaryOps = map[string]bool{
	"+": true, "-": true, "!": true, "~": true,
	"&": true, "~&": true, "|": true, "~|": true, "^": true, "~^": true, "^~": true,
}

var binaryPrec = map[string]int{
	"||": 1,
	"&&": 2,
	"|":  3,
	"^":  4, "^~": 4, "~^": 4,
	"&":  5,
	"==": 6, "!=": 6, "===": 6, "!==": 6,
	"<": 7, "<=": 7, ">": 7, ">=": 7,
	"<<": 8, ">>": 8,
	"+": 9, "-": 9,
	"*": 10, "/": 10, "%": 10,
}

// Parser is a recursive descent expression parser.
//
type Parser struct {
	Input string
	l     lex.Interface
	i     lex.Item
}

// bailout carries a parse error up the call stack.
type bailout struct{ err error }

// ParseExpr parses the given expression text.
//
func ParseExpr(input string) (Node, error) {
	p := &Parser{Input: input}
	return p.Parse()
}

// Parse parses the whole input as a single expression.
//
func (p *Parser) Parse() (n Node, err error) {
	defer func() {
		if r := recover(); r != nil {
			b, ok := r.(bailout)
			if !ok {
				panic(r)
			}
			n, err = nil, b.err
		}
	}()
	p.l = Lexer(p.Input)
	p.next()
	if p.i.Type == EOF {
		p.fail("empty expression")
	}
	n = p.expr()
	if p.i.Type != EOF {
		p.fail("unexpected " + p.i.String())
	}
	return n, nil
}

func (p *Parser) next() {
	p.i = p.l.Lex()
	if p.i.Type == lex.Error {
		p.fail(p.i.String())
	}
}

func (p *Parser) fail(msg string) {
	panic(bailout{parseError(p.Input, p.i.Pos, msg)})
}

func (p *Parser) isOp(op string) bool {
	return p.i.Type == Operator && p.i.Value.(string) == op
}

func (p *Parser) expect(op string) {
	if !p.isOp(op) {
		p.fail("expected '" + op + "', got " + p.i.String())
	}
	p.next()
}

func (p *Parser) expr() Node {
	c := p.binary(1)
	if !p.isOp("?") {
		return c
	}
	at := At(p.i.Pos)
	p.next()
	t := p.expr()
	p.expect(":")
	f := p.expr()
	return &Cond{at, c, t, f}
}

func (p *Parser) binary(minPrec int) Node {
	x := p.unary()
	for p.i.Type == Operator {
		op := p.i.Value.(string)
		prec, ok := binaryPrec[op]
		if !ok || prec < minPrec {
			break
		}
		at := At(p.i.Pos)
		p.next()
		y := p.binary(prec + 1)
		x = &Binary{at, op, x, y}
	}
	return x
}

func (p *Parser) unary() Node {
	if p.i.Type == Operator {
		op := p.i.Value.(string)
		if unaryOps[op] {
			at := At(p.i.Pos)
			p.next()
			x := p.unary()
			if n, ok := x.(*NumberLit); ok && op == "-" && n.Kind == NumInt && n.Int >= 0 {
				n.Int = -n.Int
				n.At = at
				return n
			}
			return &Unary{at, op, x}
		}
	}
	return p.primary()
}

func (p *Parser) primary() Node {
	at := At(p.i.Pos)
	switch p.i.Type {
	case Num:
		num, err := ParseNumber(p.i.Value.(string))
		if err != nil {
			panic(bailout{errors.Wrapf(err, "in %q at pos %d", p.Input, p.i.Pos+1)})
		}
		p.next()
		return &NumberLit{at, num}
	case SysIdent:
		name := p.i.Value.(string)
		p.next()
		var args []Node
		if p.isOp("(") {
			args = p.args()
		}
		return &Call{at, name, true, args}
	case Ident:
		name := p.i.Value.(string)
		p.next()
		switch {
		case p.isOp("("):
			return &Call{at, name, false, p.args()}
		case p.isOp("["):
			p.next()
			i := p.expr()
			if p.isOp(":") {
				p.next()
				l := p.expr()
				p.expect("]")
				return &Range{at, name, i, l}
			}
			p.expect("]")
			return &Index{at, name, i}
		}
		return &Name{at, name}
	case Operator:
		switch p.i.Value.(string) {
		case "(":
			p.next()
			x := p.expr()
			if !p.isOp(":") {
				p.expect(")")
				return x
			}
			p.next()
			typ := p.expr()
			p.expect(":")
			mx := p.expr()
			p.expect(")")
			return &MinTypMax{at, x, typ, mx}
		case "{":
			return p.concat()
		}
	}
	p.fail("unexpected " + p.i.String())
	return nil
}

// args parses a parenthesized argument list.
func (p *Parser) args() []Node {
	p.expect("(")
	var args []Node
	if p.isOp(")") {
		p.next()
		return args
	}
	for {
		args = append(args, p.expr())
		if p.isOp(")") {
			p.next()
			return args
		}
		p.expect(",")
	}
}

func (p *Parser) list(end string) []Node {
	var l []Node
	for {
		l = append(l, p.expr())
		if p.isOp(end) {
			p.next()
			return l
		}
		p.expect(",")
	}
}

func (p *Parser) concat() Node {
	at := At(p.i.Pos)
	p.expect("{")
	first := p.expr()
	if p.isOp("{") {
		p.next()
		members := p.list("}")
		p.expect("}")
		return &Concat{at, first, members}
	}
	members := []Node{first}
	if p.isOp("}") {
		p.next()
		return &Concat{at, nil, members}
	}
	p.expect(",")
	return &Concat{at, nil, append(members, p.list("}")...)}
}

func parseError(in string, pos lex.Pos, msg string) error {
	return errors.Errorf("in %q at pos %d: %s", in, pos+1, msg)
}
