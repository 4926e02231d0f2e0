// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package vltest

import "github.com/db47h/vlsim"

// Gate level reference circuits built from bitwise operators only. They are
// meant to be compared with CompareKnown against the arithmetic operators.
// Arguments are owned by the returned expressions: pass a copy to reuse one.

func bin(op vlsim.Op, x, y vlsim.Expr) vlsim.Expr { return &vlsim.Binary{Op: op, X: x, Y: y} }

func bit(name string, i int) vlsim.Expr {
	return &vlsim.BitSelect{Name: name, Index: vlsim.Lit(vlsim.NewInt(int32(i)))}
}

// HalfAdder returns the sum and carry of a + b.
//
//	s = a ^ b
//	c = a & b
//
func HalfAdder(a, b vlsim.Expr) (s, c vlsim.Expr) {
	return bin(vlsim.OpXor, a, b), bin(vlsim.OpAnd, a.Copy(), b.Copy())
}

// FullAdder returns the sum and carry of a + b + cin.
//
func FullAdder(a, b, cin vlsim.Expr) (s, cout vlsim.Expr) {
	s0, c0 := HalfAdder(a, b)
	s, c1 := HalfAdder(s0, cin)
	return s, bin(vlsim.OpOr, c0, c1)
}

// AdderN returns a ripple carry adder of the bits wide variables a and b. The
// result is bits+1 wide, carry out first. bits must be at least 1.
//
func AdderN(a, b string, bits int) vlsim.Expr {
	var s, c vlsim.Expr
	sums := make([]vlsim.Expr, bits+1)
	for i := 0; i < bits; i++ {
		if i == 0 {
			s, c = HalfAdder(bit(a, i), bit(b, i))
		} else {
			s, c = FullAdder(bit(a, i), bit(b, i), c)
		}
		sums[bits-i] = s
	}
	sums[0] = c
	return &vlsim.Concat{Members: sums}
}

// Mux returns a single bit multiplexer: a if sel is 0, b otherwise.
//
//	out = a & ~sel | b & sel
//
func Mux(a, b, sel vlsim.Expr) vlsim.Expr {
	return bin(vlsim.OpOr,
		bin(vlsim.OpAnd, a, &vlsim.Unary{Op: vlsim.OpCompl, X: sel}),
		bin(vlsim.OpAnd, b, sel.Copy()))
}

// MuxN returns a bits wide multiplexer of the variables a and b.
//
func MuxN(a, b string, sel vlsim.Expr, bits int) vlsim.Expr {
	out := make([]vlsim.Expr, bits)
	for i := 0; i < bits; i++ {
		out[bits-1-i] = Mux(bit(a, i), bit(b, i), sel.Copy())
	}
	return &vlsim.Concat{Members: out}
}
