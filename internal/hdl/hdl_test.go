// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hdl

import (
	"testing"

	"github.com/db47h/vlsim/internal/lex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNumber(t *testing.T) {
	td := []struct {
		in   string
		want Number
	}{
		{"0", Number{Kind: NumInt}},
		{"+17", Number{Kind: NumInt, Int: 17}},
		{"-2147483648", Number{Kind: NumInt, Int: -2147483648}},
		{"2147483648", Number{Kind: NumBits, Bits: []uint8{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1}}},
		{"3'b1z?", Number{Kind: NumBits, Bits: []uint8{BZ, BZ, B1}}},
		{"'h?", Number{Kind: NumBits, Bits: []uint8{BZ, BZ, BZ, BZ}}},
		{"6'o7x", Number{Kind: NumBits, Bits: []uint8{BX, BX, BX, B1, B1, B1}}},
		{"'d0", Number{Kind: NumBits, Bits: []uint8{B0}}},
		{"3'dz", Number{Kind: NumBits, Bits: []uint8{BZ, BZ, BZ}}},
		{"1_6'h1_0", Number{Kind: NumBits, Bits: []uint8{0, 0, 0, 0, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}}},
		{"2.5e-1", Number{Kind: NumReal, Real: 0.25}},
		{`"x\"y"`, Number{Kind: NumString, Str: `x"y`}},
	}
	for _, d := range td {
		n, err := ParseNumber(d.in)
		if assert.NoError(t, err, d.in) {
			assert.Equal(t, d.want, n, d.in)
		}
	}
}

func TestParseNumberErrors(t *testing.T) {
	td := []struct {
		in, msg string
	}{
		{"", `in "" at pos 1: empty literal`},
		{"x'b1", `in "x'b1" at pos 1: invalid literal size`},
		{"4'", `in "4'" at pos 3: missing base`},
		{"4's", `in "4's" at pos 4: missing base`},
		{"4'h", `in "4'h" at pos 4: missing digits`},
		{"4'hg", `in "4'hg" at pos 4: invalid digit "g"`},
		{"4'o8", `in "4'o8" at pos 4: invalid digit "8"`},
		{"4'k1", `in "4'k1" at pos 3: invalid base "k"`},
		{"4'dx1", `in "4'dx1" at pos 4: invalid decimal digits`},
		{".5", `in ".5" at pos 1: malformed real literal`},
		{"-99999999999", `in "-99999999999" at pos 1: integer literal out of range`},
		{"1048577'b1", `in "1048577'b1" at pos 1: literal size too large`},
		{"4294967296'b1", `in "4294967296'b1" at pos 1: literal size too large`},
	}
	for _, d := range td {
		_, err := ParseNumber(d.in)
		if assert.Error(t, err, d.in) {
			assert.Equal(t, d.msg, err.Error())
		}
	}

	n, err := ParseNumber("1048576'b1")
	if assert.NoError(t, err) {
		assert.Len(t, n.Bits, MaxWidth)
	}
}

func lexAll(input string) []lex.Item {
	l := Lexer(input)
	var items []lex.Item
	for {
		i := l.Lex()
		items = append(items, i)
		if i.Type == EOF || i.Type == lex.Error {
			return items
		}
	}
}

func TestLexer(t *testing.T) {
	items := lexAll(`a[3:0] !== {2{$b}} ^~ 4'sb1x "s\"" 1.5e+3 _x$`)
	want := []lex.Item{
		{Type: Ident, Pos: 0, Value: "a"},
		{Type: Operator, Pos: 1, Value: "["},
		{Type: Num, Pos: 2, Value: "3"},
		{Type: Operator, Pos: 3, Value: ":"},
		{Type: Num, Pos: 4, Value: "0"},
		{Type: Operator, Pos: 5, Value: "]"},
		{Type: Operator, Pos: 7, Value: "!=="},
		{Type: Operator, Pos: 11, Value: "{"},
		{Type: Num, Pos: 12, Value: "2"},
		{Type: Operator, Pos: 13, Value: "{"},
		{Type: SysIdent, Pos: 14, Value: "$b"},
		{Type: Operator, Pos: 16, Value: "}"},
		{Type: Operator, Pos: 17, Value: "}"},
		{Type: Operator, Pos: 19, Value: "^~"},
		{Type: Num, Pos: 22, Value: "4'sb1x"},
		{Type: Num, Pos: 29, Value: `"s\""`},
		{Type: Num, Pos: 35, Value: "1.5e+3"},
		{Type: Ident, Pos: 42, Value: "_x$"},
		{Type: EOF, Pos: 45, Value: "end of input"},
	}
	assert.Equal(t, want, items)

	items = lexAll("a # b")
	assert.Equal(t, lex.Item{Type: Raw, Pos: 2, Value: '#'}, items[1])
	assert.Equal(t, EOF, items[2].Type)

	items = lexAll(`"abc`)
	assert.Equal(t, lex.Error, items[0].Type)
}

func TestParseExpr(t *testing.T) {
	n, err := ParseExpr("a || b && c | d ^ e & f == g < h << i + j * k")
	require.NoError(t, err)
	// every operator binds tighter than the one on its left
	ops := []string{"||", "&&", "|", "^", "&", "==", "<", "<<", "+", "*"}
	for _, op := range ops {
		b, ok := n.(*Binary)
		require.True(t, ok, op)
		assert.Equal(t, op, b.Op)
		n = b.Y
	}
	assert.Equal(t, &Name{At(44), "k"}, n)

	n, err = ParseExpr("a - b - c")
	require.NoError(t, err)
	b := n.(*Binary)
	assert.Equal(t, &Name{At(8), "c"}, b.Y)
	assert.IsType(t, (*Binary)(nil), b.X)

	n, err = ParseExpr("a ? b : c ? d : e")
	require.NoError(t, err)
	c := n.(*Cond)
	assert.IsType(t, (*Cond)(nil), c.F)
	assert.Equal(t, lex.Pos(2), c.Pos())

	n, err = ParseExpr("-a + -2")
	require.NoError(t, err)
	b = n.(*Binary)
	assert.IsType(t, (*Unary)(nil), b.X)
	assert.Equal(t, &NumberLit{At(5), Number{Kind: NumInt, Int: -2}}, b.Y)

	n, err = ParseExpr("-(1)")
	require.NoError(t, err)
	assert.Equal(t, &NumberLit{At(0), Number{Kind: NumInt, Int: -1}}, n)

	n, err = ParseExpr("{n{a, b[0]}}")
	require.NoError(t, err)
	cat := n.(*Concat)
	assert.Equal(t, &Name{At(1), "n"}, cat.Rep)
	assert.Len(t, cat.Members, 2)
	assert.IsType(t, (*Index)(nil), cat.Members[1])

	n, err = ParseExpr("f(x, (1:2:3), $t)")
	require.NoError(t, err)
	call := n.(*Call)
	assert.Equal(t, "f", call.Name)
	assert.False(t, call.System)
	require.Len(t, call.Args, 3)
	assert.IsType(t, (*MinTypMax)(nil), call.Args[1])
	assert.Equal(t, &Call{At(14), "$t", true, nil}, call.Args[2])
}

func TestParseExprErrors(t *testing.T) {
	td := []struct {
		in, msg string
	}{
		{"", `in "" at pos 1: empty expression`},
		{"   ", `in "   " at pos 4: empty expression`},
		{"a +", `in "a +" at pos 4: unexpected end of input`},
		{"a)", `in "a)" at pos 2: unexpected ")"`},
		{"(1:2)", `in "(1:2)" at pos 5: expected ':', got ")"`},
		{"{}", `in "{}" at pos 2: unexpected "}"`},
		{"$", `in "$" at pos 1: unexpected '$'`},
		{"4'b2", `in "4'b2" at pos 1: in "4'b2" at pos 4: invalid digit "2"`},
	}
	for _, d := range td {
		_, err := ParseExpr(d.in)
		if assert.Error(t, err, d.in) {
			assert.Equal(t, d.msg, err.Error())
		}
	}
}
