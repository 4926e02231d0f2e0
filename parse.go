// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package vlsim

import (
	"github.com/db47h/vlsim/internal/hdl"
	"github.com/pkg/errors"
)

// ParseValue reads a Verilog literal and returns its value:
//
//	12 -3          integers
//	4'b10xz 8'hFF  sized bit vectors
//	'o17 'd9       unsized bit vectors, as wide as their digits
//	1.5 2e-3       reals
//	"text"         strings
//
// Underscores in digits are ignored and '?' is a synonym for z.
//
func ParseValue(text string) (*Value, error) {
	n, err := hdl.ParseNumber(text)
	if err != nil {
		return nil, err
	}
	return numberValue(n), nil
}

// MustParse is like ParseValue but panics on error.
//
func MustParse(text string) *Value {
	v, err := ParseValue(text)
	if err != nil {
		panic(err)
	}
	return v
}

func numberValue(n hdl.Number) *Value {
	switch n.Kind {
	case hdl.NumBits:
		bits := make([]Bit, len(n.Bits))
		for i, b := range n.Bits {
			bits[i] = Bit(b)
		}
		return new(Value).setOwnedBits(bits)
	case hdl.NumReal:
		return NewReal(n.Real)
	case hdl.NumString:
		return NewString(n.Str)
	}
	return NewInt(n.Int)
}

var unaryOps = map[string]Op{
	"+":  OpPlus,
	"-":  OpNeg,
	"!":  OpLogNot,
	"~":  OpCompl,
	"&":  OpRedAnd,
	"~&": OpRedNand,
	"|":  OpRedOr,
	"~|": OpRedNor,
	"^":  OpRedXor,
	"~^": OpRedXnor,
	"^~": OpRedXnor,
}

var binaryOps = map[string]Op{
	"*":   OpMul,
	"/":   OpDiv,
	"%":   OpRem,
	"+":   OpAdd,
	"-":   OpSub,
	"<<":  OpShl,
	">>":  OpShr,
	"<":   OpLt,
	"<=":  OpLe,
	">":   OpGt,
	">=":  OpGe,
	"==":  OpEq,
	"!=":  OpNeq,
	"===": OpCaseEq,
	"!==": OpCaseNeq,
	"&":   OpAnd,
	"^":   OpXor,
	"~^":  OpXnor,
	"^~":  OpXnor,
	"|":   OpOr,
	"&&":  OpLogAnd,
	"||":  OpLogOr,
}

// ParseExpr builds an expression tree from Verilog expression text.
//
// The usual operator precedence applies. Primaries are literals, identifiers,
// bit selects a[i], part selects a[m:l], concatenations {a, b}, replications
// {n{a}}, (min:typ:max) triples, function calls f(a, b) and system task calls
// $t or $t(a, b).
//
func ParseExpr(text string) (Expr, error) {
	n, err := hdl.ParseExpr(text)
	if err != nil {
		return nil, err
	}
	return build(text, n)
}

// MustParseExpr is like ParseExpr but panics on error.
//
func MustParseExpr(text string) Expr {
	e, err := ParseExpr(text)
	if err != nil {
		panic(err)
	}
	return e
}

func build(in string, n hdl.Node) (Expr, error) {
	switch n := n.(type) {
	case *hdl.NumberLit:
		return Lit(numberValue(n.Number)), nil
	case *hdl.Name:
		return &Ident{Name: n.Name}, nil
	case *hdl.Index:
		i, err := build(in, n.Index)
		if err != nil {
			return nil, err
		}
		return &BitSelect{Name: n.Name, Index: i}, nil
	case *hdl.Range:
		l, err := buildList(in, n.Msb, n.Lsb)
		if err != nil {
			return nil, err
		}
		return &PartSelect{Name: n.Name, Msb: l[0], Lsb: l[1]}, nil
	case *hdl.Concat:
		l, err := buildList(in, n.Members...)
		if err != nil {
			return nil, err
		}
		c := &Concat{Members: l}
		if n.Rep != nil {
			if c.Rep, err = build(in, n.Rep); err != nil {
				return nil, err
			}
		}
		return c, nil
	case *hdl.MinTypMax:
		l, err := buildList(in, n.Min, n.Typ, n.Max)
		if err != nil {
			return nil, err
		}
		return &MinTypMax{l[0], l[1], l[2]}, nil
	case *hdl.Call:
		l, err := buildList(in, n.Args...)
		if err != nil {
			return nil, err
		}
		if n.System {
			return &SysCall{Name: n.Name, Args: l}, nil
		}
		return &FuncCall{Name: n.Name, Args: l}, nil
	case *hdl.Unary:
		op, ok := unaryOps[n.Op]
		if !ok {
			return nil, parseError(in, n, "invalid unary operator "+n.Op)
		}
		x, err := build(in, n.X)
		if err != nil {
			return nil, err
		}
		return &Unary{op, x}, nil
	case *hdl.Binary:
		op, ok := binaryOps[n.Op]
		if !ok {
			return nil, parseError(in, n, "invalid binary operator "+n.Op)
		}
		l, err := buildList(in, n.X, n.Y)
		if err != nil {
			return nil, err
		}
		return &Binary{op, l[0], l[1]}, nil
	case *hdl.Cond:
		l, err := buildList(in, n.Cond, n.T, n.F)
		if err != nil {
			return nil, err
		}
		return &Ternary{l[0], l[1], l[2]}, nil
	}
	return nil, errors.Errorf("in %q: unsupported syntax node %T", in, n)
}

// buildList builds a list of expressions. nil nodes yield nil expressions.
func buildList(in string, nodes ...hdl.Node) ([]Expr, error) {
	l := make([]Expr, len(nodes))
	for i, n := range nodes {
		if n == nil {
			continue
		}
		e, err := build(in, n)
		if err != nil {
			return nil, err
		}
		l[i] = e
	}
	return l, nil
}

func parseError(in string, n hdl.Node, msg string) error {
	return errors.Errorf("in %q at pos %d: %s", in, n.Pos()+1, msg)
}
