// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package vlsim

import "math"

// setBit1 sets z to the single bit b.
func (z *Value) setBit1(b Bit) *Value {
	return z.setOwnedBits([]Bit{b})
}

func (z *Value) setBool(b bool) *Value {
	if b {
		return z.setBit1(Hi)
	}
	return z.setBit1(Lo)
}

// eq returns the result of x == y.
func eq(x, y *Value) Bit {
	switch {
	case anyKind(x, y, KindString) || unknown(x, y):
		return X
	case anyKind(x, y, KindReal):
		return boolBit(x.Real() == y.Real())
	case x.kind == KindInt && y.kind == KindInt:
		return boolBit(x.i == y.i)
	}
	p, _ := x.pattern()
	q, _ := y.pattern()
	return boolBit(compareBits(p, q) == 0)
}

func boolBit(b bool) Bit {
	if b {
		return Hi
	}
	return Lo
}

// Eq sets z to the single bit result of x == y and returns z. The result is X
// if either operand is a string or an unknown bit vector. Bit patterns are
// compared over their full width, the narrower one being zero extended.
//
func (z *Value) Eq(x, y *Value) *Value {
	return z.setBit1(eq(deref(x), deref(y)))
}

// Neq sets z to the single bit result of x != y and returns z.
//
func (z *Value) Neq(x, y *Value) *Value {
	return z.setBit1(eq(deref(x), deref(y)).Not())
}

// wildcard tells if a pair of bits matches in case equality variants.
type wildcard func(a, b Bit) bool

func exactMatch(a, b Bit) bool { return a == b }

func xMatch(a, b Bit) bool { return a == b || a.IsX() || b.IsX() }

func zMatch(a, b Bit) bool { return a == b || a == Z || b == Z }

func caseEq(x, y *Value, match wildcard) bool {
	switch {
	case x.kind == KindString && y.kind == KindString:
		return x.s == y.s
	case anyKind(x, y, KindString):
		return false
	case anyKind(x, y, KindReal):
		r, s := x.Real(), y.Real()
		return r == s || math.IsNaN(r) && math.IsNaN(s)
	}
	p, _ := x.pattern()
	q, _ := y.pattern()
	for i := max(len(p), len(q)) - 1; i >= 0; i-- {
		if !match(extBit(p, i), extBit(q, i)) {
			return false
		}
	}
	return true
}

// CaseEq sets z to the single bit result of x === y and returns z. X and Z bits
// are compared as ordinary symbols, so the result is never X.
//
func (z *Value) CaseEq(x, y *Value) *Value {
	return z.setBool(caseEq(deref(x), deref(y), exactMatch))
}

// CaseNeq sets z to the single bit result of x !== y and returns z.
//
func (z *Value) CaseNeq(x, y *Value) *Value {
	return z.setBool(!caseEq(deref(x), deref(y), exactMatch))
}

// CasexEq sets z to the result of the casex comparison of x and y and returns
// z: X and Z bits in either operand match anything.
//
func (z *Value) CasexEq(x, y *Value) *Value {
	return z.setBool(caseEq(deref(x), deref(y), xMatch))
}

// CasezEq sets z to the result of the casez comparison of x and y and returns
// z: Z bits in either operand match anything, X bits must match exactly.
//
func (z *Value) CasezEq(x, y *Value) *Value {
	return z.setBool(caseEq(deref(x), deref(y), zMatch))
}

// cmp compares x and y. ok is false if the result is unknown, or if either
// operand is NaN.
func cmp(x, y *Value) (c int, ok bool) {
	switch {
	case anyKind(x, y, KindString) || unknown(x, y):
		return 0, false
	case anyKind(x, y, KindReal):
		r, s := x.Real(), y.Real()
		switch {
		case math.IsNaN(r) || math.IsNaN(s):
			return 0, false
		case r < s:
			return -1, true
		case r > s:
			return 1, true
		}
		return 0, true
	case anyKind(x, y, KindBits):
		p, _ := x.pattern()
		q, _ := y.pattern()
		return compareBits(p, q), true
	case anyKind(x, y, KindTime):
		t, u := x.Time(), y.Time()
		switch {
		case t < u:
			return -1, true
		case t > u:
			return 1, true
		}
		return 0, true
	}
	switch {
	case x.i < y.i:
		return -1, true
	case x.i > y.i:
		return 1, true
	}
	return 0, true
}

func (z *Value) rel(x, y *Value, f func(c int) bool) *Value {
	x, y = deref(x), deref(y)
	c, ok := cmp(x, y)
	if !ok {
		if anyKind(x, y, KindReal) && !unknown(x, y) && !anyKind(x, y, KindString) {
			// NaN
			return z.setBit1(Lo)
		}
		return z.setBit1(X)
	}
	return z.setBool(f(c))
}

// Lt sets z to the single bit result of x < y and returns z.
//
// Bit vectors compare as unsigned numbers, integers as signed ones. If either
// operand is real, both are compared as reals. A string or unknown operand
// yields X.
//
func (z *Value) Lt(x, y *Value) *Value {
	return z.rel(x, y, func(c int) bool { return c < 0 })
}

// Le sets z to the single bit result of x <= y and returns z.
//
func (z *Value) Le(x, y *Value) *Value {
	return z.rel(x, y, func(c int) bool { return c <= 0 })
}

// Gt sets z to the single bit result of x > y and returns z.
//
func (z *Value) Gt(x, y *Value) *Value {
	return z.rel(x, y, func(c int) bool { return c > 0 })
}

// Ge sets z to the single bit result of x >= y and returns z.
//
func (z *Value) Ge(x, y *Value) *Value {
	return z.rel(x, y, func(c int) bool { return c >= 0 })
}
