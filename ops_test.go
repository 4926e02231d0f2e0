// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package vlsim_test

import (
	"math"
	"strings"
	"testing"

	"github.com/db47h/vlsim"
	"github.com/stretchr/testify/assert"
)

type binOp func(z, x, y *vlsim.Value) *vlsim.Value

var (
	add     binOp = (*vlsim.Value).Add
	sub     binOp = (*vlsim.Value).Sub
	mul     binOp = (*vlsim.Value).Mul
	div     binOp = (*vlsim.Value).Div
	rem     binOp = (*vlsim.Value).Rem
	shl     binOp = (*vlsim.Value).Shl
	shr     binOp = (*vlsim.Value).Shr
	eq      binOp = (*vlsim.Value).Eq
	neq     binOp = (*vlsim.Value).Neq
	caseEq  binOp = (*vlsim.Value).CaseEq
	caseNeq binOp = (*vlsim.Value).CaseNeq
	casexEq binOp = (*vlsim.Value).CasexEq
	casezEq binOp = (*vlsim.Value).CasezEq
	logAnd  binOp = (*vlsim.Value).LogAnd
	logOr   binOp = (*vlsim.Value).LogOr
	lt      binOp = (*vlsim.Value).Lt
	le      binOp = (*vlsim.Value).Le
	gt      binOp = (*vlsim.Value).Gt
	ge      binOp = (*vlsim.Value).Ge
	and     binOp = (*vlsim.Value).And
	or      binOp = (*vlsim.Value).Or
	xor     binOp = (*vlsim.Value).Xor
	xnor    binOp = (*vlsim.Value).Xnor
	merge   binOp = (*vlsim.Value).Merge
)

type binTest struct {
	name string
	op   binOp
	x, y *vlsim.Value
	want string
}

func v(text string) *vlsim.Value { return vlsim.MustParse(text) }

func xs(w int) string { return vlsim.NewX(w).String() }

func runBin(t *testing.T, tests []binTest) {
	t.Helper()
	for _, tt := range tests {
		got := tt.op(new(vlsim.Value), tt.x, tt.y)
		assert.Equal(t, tt.want, got.String(), "%s(%v, %v)", tt.name, tt.x, tt.y)
	}
}

func TestArith(t *testing.T) {
	runBin(t, []binTest{
		{"add", add, v("5"), v("4'b0011"), "4'b1000"},
		{"add", add, v("4'b0011"), v("5"), "4'b1000"},
		{"add", add, v("4'b1111"), v("4'b0001"), "5'b10000"},
		{"add", add, v("4'b1x01"), v("4'b0001"), "4'bxx10"},
		{"add", add, v("3"), v("4"), "7"},
		{"add", add, v("1.5"), v("2"), "3.5"},
		{"add", add, v("4'b0010"), v("0.5"), "2.5"},
		{"add", add, v("4'b001x"), v("0.5"), "1'bx"},
		{"add", add, vlsim.NewTime(5), v("3"), "8t"},
		{"add", add, v(`"ab"`), v("1"), xs(32)},
		{"add", add, v("2147483647"), v("1"), "-2147483648"},

		{"sub", sub, v("4'b0101"), v("4'b0011"), "4'b0010"},
		{"sub", sub, v("4'b0000"), v("4'b0001"), "4'b1111"},
		{"sub", sub, v("4'b0011"), v("1"), "4'b0010"},
		{"sub", sub, v("3"), v("5"), "-2"},
		{"sub", sub, v("2.5"), v("1"), "1.5"},
		{"sub", sub, vlsim.NewTime(5), vlsim.NewTime(2), "3t"},
		{"sub", sub, v("4'b0z01"), v("1"), "4'bxx00"},

		{"mul", mul, v("4'b0011"), v("4'b0101"), "8'b00001111"},
		{"mul", mul, v("4'b1111"), v("4'b1111"), "8'b11100001"},
		{"mul", mul, v("4'b001x"), v("2"), xs(36)},
		{"mul", mul, v("3"), v("-4"), "-12"},
		{"mul", mul, v("4'b0011"), v("2"), "6"},
		{"mul", mul, v("1.5"), v("2"), "3"},
		{"mul", mul, vlsim.NewTime(3), v("2"), "6t"},
		{"mul", mul, v(`"a"`), v(`"b"`), "2'bxx"},

		{"div", div, v("3'b010"), v("0"), xs(32)},
		{"div", div, v("8'd7"), v("8'd2"), "8'b00000011"},
		{"div", div, v("7"), v("2"), "3"},
		{"div", div, v("-7"), v("2"), "-3"},
		{"div", div, v("7.0"), v("2"), "3.5"},
		{"div", div, v("1"), v("0.5"), "2"},
		{"div", div, v("1"), v("0.0"), xs(32)},
		{"div", div, v("4'b1000"), v("2"), "4"},
		{"div", div, v("4'b1000"), v("4'b00x1"), "4'bxxxx"},
		{"div", div, vlsim.NewTime(9), v("2"), "4t"},
		{"div", div, v("8"), v("40'h100_0000_0000"), xs(40)},
		{"div", div, v("4'b1000"), v("40'h100_0000_0000"), "40'b" + strings.Repeat("0", 40)},

		{"rem", rem, v("8'd7"), v("8'd2"), "8'b00000001"},
		{"rem", rem, v("-7"), v("2"), "-1"},
		{"rem", rem, v("7.0"), v("2"), xs(32)},
		{"rem", rem, v("7"), v("4'b0000"), xs(32)},
		{"rem", rem, vlsim.NewTime(9), v("2"), "1t"},
	})
}

func TestNeg(t *testing.T) {
	z := new(vlsim.Value)
	assert.Equal(t, "4'b1111", z.Neg(v("4'b0001")).String())
	assert.Equal(t, "4'b0000", z.Neg(v("4'b0000")).String())
	assert.Equal(t, "4'bxxxx", z.Neg(v("4'b000x")).String())
	assert.Equal(t, "-3", z.Neg(v("3")).String())
	assert.Equal(t, "-1.5", z.Neg(v("1.5")).String())
	assert.Equal(t, "1'bx", z.Neg(v(`"s"`)).String())
	assert.Equal(t, "4'b1010", z.Plus(v("4'b1010")).String())
}

func TestShift(t *testing.T) {
	runBin(t, []binTest{
		{"shl", shl, v("8'b00000001"), v("2"), "8'b00000100"},
		{"shl", shl, v("8'b00000001"), v("-2"), "8'b00000100"},
		{"shr", shr, v("8'b10000000"), v("7"), "8'b00000001"},
		{"shr", shr, v("8'b1x000000"), v("6"), "8'b0000001x"},
		{"shl", shl, v("4'b0011"), v("2'b10"), "6'b001100"},
		{"shr", shr, v("4'b1100"), v("2'b10"), "4'b0011"},
		{"shl", shl, v("4'b0011"), vlsim.NewTime(1), "5'b00110"},
		{"shl", shl, v("4'b0011"), v("1'bx"), "4'bxxxx"},
		{"shr", shr, v("4'b0011"), v("2'bz1"), "4'bxxxx"},
		{"shl", shl, v("1"), v("4"), "16"},
		{"shr", shr, v("-1"), v("28"), "15"},
		{"shl", shl, v("1"), v("40"), "0"},
		{"shl", shl, vlsim.NewTime(1), v("40"), "1099511627776t"},
		{"shl", shl, v("1.5"), v("1"), "1'bx"},
		{"shl", shl, v("4'b0001"), v(`"a"`), "4'bxxxx"},
	})
}

func TestEquality(t *testing.T) {
	runBin(t, []binTest{
		{"eq", eq, v("4'bxx01"), v("4'bxx01"), "1'bx"},
		{"case_eq", caseEq, v("4'bxx01"), v("4'bxx01"), "1'b1"},
		{"eq", eq, v("4'b0101"), v("5"), "1'b1"},
		{"eq", eq, v("2'b01"), v("4'b0001"), "1'b1"},
		{"eq", eq, v("2'b01"), v("4'b0101"), "1'b0"},
		{"eq", eq, v("1.0"), v("1"), "1'b1"},
		{"eq", eq, v("4'b0001"), v("1.0"), "1'b1"},
		{"eq", eq, v("-1"), vlsim.NewTime(1<<32 - 1), "1'b1"},
		{"eq", eq, v(`"abc"`), v(`"abc"`), "1'bx"},
		{"neq", neq, v("4'b0101"), v("4'b0100"), "1'b1"},
		{"neq", neq, v("4'b0101"), v("4'b0101"), "1'b0"},
		{"neq", neq, v("4'b0z01"), v("4'b0101"), "1'bx"},

		{"case_eq", caseEq, v(`"abc"`), v(`"abc"`), "1'b1"},
		{"case_eq", caseEq, v(`"abc"`), v("1"), "1'b0"},
		{"case_eq", caseEq, v("2'bx1"), v("4'b00x1"), "1'b1"},
		{"case_eq", caseEq, v("4'b01x1"), v("4'b01z1"), "1'b0"},
		{"case_eq", caseEq, v("5"), v("3'b101"), "1'b1"},
		{"case_neq", caseNeq, v("4'b01x1"), v("4'b01z1"), "1'b1"},
		{"case_neq", caseNeq, v("4'b01x1"), v("4'b01x1"), "1'b0"},

		{"casex", casexEq, v("4'b01x1"), v("4'b0111"), "1'b1"},
		{"casex", casexEq, v("4'b0101"), v("4'b0111"), "1'b0"},
		{"casex", casexEq, v("4'b0z01"), v("4'b0x11"), "1'b0"},
		{"casex", casexEq, v("2'b01"), v("4'bx001"), "1'b1"},
		{"casex", casexEq, v("2'b01"), v("4'b1001"), "1'b0"},
		{"casez", casezEq, v("4'b01z1"), v("4'b0101"), "1'b1"},
		{"casez", casezEq, v("4'b01x1"), v("4'b0101"), "1'b0"},
		{"casez", casezEq, v("4'b01x1"), v("4'b01x1"), "1'b1"},
		{"casez", casezEq, v("4'b01?1"), v("4'b0111"), "1'b1"},
	})
}

func TestLogical(t *testing.T) {
	runBin(t, []binTest{
		{"and", logAnd, v("4'b0101"), v("1"), "1'b1"},
		{"and", logAnd, v("4'b00x0"), v("1"), "1'b0"},
		{"and", logAnd, v("1'bx"), v("1"), "1'bx"},
		{"and", logAnd, v("1'bx"), v("0"), "1'b0"},
		{"and", logAnd, v("2.5"), v("4'b0010"), "1'b1"},
		{"and", logAnd, v(`"s"`), v("1"), "1'bx"},
		{"and", logAnd, v(`"s"`), v("0"), "1'bx"},
		{"and", logAnd, v("4'b0000"), v(`""`), "1'bx"},
		{"or", logOr, v("1'bx"), v("0"), "1'bx"},
		{"or", logOr, v("1'bx"), v("1"), "1'b1"},
		{"or", logOr, v("4'b0000"), v("0.0"), "1'b0"},
		{"or", logOr, v("4'b0x01"), v("0"), "1'b1"},
		{"or", logOr, v("1"), v(`"s"`), "1'bx"},
	})
	z := new(vlsim.Value)
	assert.Equal(t, "1'b1", z.LogNot(v("4'b0000")).String())
	assert.Equal(t, "1'bx", z.LogNot(v("1'bx")).String())
	assert.Equal(t, "1'b0", z.LogNot(v("3")).String())
	assert.Equal(t, "1'b1", z.LogNot(vlsim.NewTime(0)).String())
	assert.Equal(t, "1'bx", z.LogNot(v(`"s"`)).String())
}

func TestRelational(t *testing.T) {
	nan := vlsim.NewReal(math.NaN())
	runBin(t, []binTest{
		{"lt", lt, v("4'b0011"), v("4'b0101"), "1'b1"},
		{"lt", lt, v("4'b0101"), v("4'b0011"), "1'b0"},
		{"gt", gt, v("-1"), v("1"), "1'b0"},
		{"lt", lt, v("4'b1111"), v("-1"), "1'b1"},
		{"le", le, v("3"), v("3"), "1'b1"},
		{"ge", ge, v("4'b0x00"), v("1"), "1'bx"},
		{"lt", lt, v("4'b0011"), v("3.5"), "1'b1"},
		{"gt", gt, v("3.5"), v("4'b0011"), "1'b1"},
		{"ge", ge, v("4'b0100"), v("3.5"), "1'b1"},
		{"lt", lt, v(`"a"`), v("1"), "1'bx"},
		{"lt", lt, nan, v("1"), "1'b0"},
		{"ge", ge, v("1"), nan, "1'b0"},
		{"lt", lt, vlsim.NewTime(5), v("6"), "1'b1"},
		{"gt", gt, v("40'h100_0000_0000"), v("-1"), "1'b1"},
		{"le", le, v("8'hff"), vlsim.NewTime(255), "1'b1"},
		{"lt", lt, v("8'hff"), vlsim.NewTime(255), "1'b0"},
	})
}

func TestBitwise(t *testing.T) {
	runBin(t, []binTest{
		{"and", and, v("4'b1100"), v("4'b1010"), "4'b1000"},
		{"or", or, v("4'b1100"), v("4'b1010"), "4'b1110"},
		{"xor", xor, v("4'b1100"), v("4'b1010"), "4'b0110"},
		{"xnor", xnor, v("4'b1100"), v("4'b1010"), "4'b1001"},
		{"and", and, v("4'b1x0z"), v("4'b1111"), "4'b1x0x"},
		{"or", or, v("4'b1x0z"), v("4'b0000"), "4'b1x0x"},
		{"or", or, v("4'bxxxx"), v("4'b1111"), "4'b1111"},
		{"xor", xor, v("1'bz"), v("1'b0"), "1'bx"},
		{"and", and, v("2'b11"), v("4'b0111"), "4'b0011"},
		{"and", and, v("12"), v("10"), "8"},
		{"or", or, v("12"), vlsim.NewTime(3), "15t"},
		{"xnor", xnor, v("0"), v("-1"), "0"},
		{"and", and, v("1.5"), v("1"), "1'bx"},
		{"and", and, v(`"s"`), v("1"), xs(32)},
	})
	w := new(vlsim.Value).And(v("4'b0001"), v("1"))
	assert.Equal(t, vlsim.IntWidth, w.Width())
	assert.Equal(t, int32(1), w.Int())
}

func TestCompl(t *testing.T) {
	z := new(vlsim.Value)
	assert.Equal(t, "2", z.Compl(v("5")).String())
	assert.Equal(t, "1", z.Compl(v("0")).String())
	assert.Equal(t, "0", z.Compl(v("-1")).String())
	assert.Equal(t, "4'b01xx", z.Compl(v("4'b10xz")).String())
	assert.Equal(t, "1'bx", z.Compl(v("1.0")).String())
	assert.Equal(t, "1t", z.Compl(vlsim.NewTime(6)).String())
}

func TestReduce(t *testing.T) {
	type red func(z, x *vlsim.Value) *vlsim.Value
	var (
		rand  red = (*vlsim.Value).ReduceAnd
		rnand red = (*vlsim.Value).ReduceNand
		ror   red = (*vlsim.Value).ReduceOr
		rnor  red = (*vlsim.Value).ReduceNor
		rxor  red = (*vlsim.Value).ReduceXor
		rxnor red = (*vlsim.Value).ReduceXnor
	)
	tests := []struct {
		op   red
		x    string
		want string
	}{
		{rand, "4'b1111", "1'b1"},
		{rand, "4'b1101", "1'b0"},
		{rand, "4'b11x1", "1'bx"},
		{rand, "4'b0x11", "1'b0"},
		{rand, "1'bz", "1'bx"},
		{rand, "5", "1'b0"},
		{rand, "1.0", "1'bx"},
		{rnand, "4'b1111", "1'b0"},
		{rnand, "4'b11x1", "1'bx"},
		{ror, "4'b0000", "1'b0"},
		{ror, "4'b0x00", "1'bx"},
		{ror, "4'b0x10", "1'b1"},
		{ror, "5", "1'b1"},
		{rnor, "4'b0000", "1'b1"},
		{rnor, "4'bz000", "1'bx"},
		{rxor, "4'b0111", "1'b1"},
		{rxor, "4'b01x1", "1'bx"},
		{rxnor, "4'b0111", "1'b0"},
		{rxnor, "4'b0110", "1'b1"},
		{rxor, `"ab"`, "1'bx"},
	}
	for _, tt := range tests {
		got := tt.op(new(vlsim.Value), v(tt.x))
		assert.Equal(t, tt.want, got.String(), tt.x)
	}
}

func TestMerge(t *testing.T) {
	runBin(t, []binTest{
		{"merge", merge, v("4'b1010"), v("4'b1010"), "4'b1010"},
		{"merge", merge, v("4'b1010"), v("4'b1000"), "4'b10x0"},
		{"merge", merge, v("4'b1z10"), v("4'b1z10"), "4'b1x10"},
		{"merge", merge, v("2'b10"), v("4'b0010"), "4'b0010"},
		{"merge", merge, v("3"), v("3"), "32'b" + strings.Repeat("0", 30) + "11"},
		{"merge", merge, v("1.0"), v("2"), "0"},
		{"merge", merge, v(`"a"`), v(`"a"`), "0"},
	})
}
