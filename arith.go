// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package vlsim

import "math/big"

// Operand promotion for binary operators, in priority order:
//
//	string operand      => X filled bit vector
//	unknown bit vector  => X filled bit vector
//	real operand        => real
//	time operand        => time
//	otherwise           => integer, or bit vector for bit vector only operands
//
// Widths of the X filled results depend on the operator.

func anyKind(x, y *Value, k Kind) bool { return x.kind == k || y.kind == k }

func unknown(x, y *Value) bool { return x.IsX() || y.IsX() }

// deref returns v, or the evaluated concatenation v refers to.
func deref(v *Value) *Value {
	v.check()
	if v.kind != KindConcat {
		return v
	}
	return v.cat.s.concat(v.cat.members, nil)
}

// addOperand returns the bits of v as they enter the addition algorithm.
func addOperand(v *Value) []Bit {
	switch v.kind {
	case KindInt:
		return intSpan(v.i)
	case KindTime:
		return spanBits(v.t)
	}
	return v.bits
}

// Plus sets z to x and returns z.
//
func (z *Value) Plus(x *Value) *Value {
	return z.Set(deref(x))
}

// Add sets z to the sum x+y and returns z.
//
// If either operand is a bit vector, so is the result. Its width is that of
// the widest operand, grown by one bit only if the carry out is definitely 1.
// Integer and time operands enter the sum with their minimal significant bit
// span.
//
func (z *Value) Add(x, y *Value) *Value {
	x, y = deref(x), deref(y)
	switch {
	case anyKind(x, y, KindString):
		return z.SetX(max(x.Width(), y.Width()))
	case anyKind(x, y, KindBits):
		if anyKind(x, y, KindReal) {
			if unknown(x, y) {
				return z.SetX(1)
			}
			return z.SetReal(x.Real() + y.Real())
		}
		return z.setOwnedBits(growAdd(addOperand(x), addOperand(y)))
	case anyKind(x, y, KindReal):
		return z.SetReal(x.Real() + y.Real())
	case anyKind(x, y, KindTime):
		return z.SetTime(x.Time() + y.Time())
	}
	return z.SetInt(x.i + y.i)
}

// Sub sets z to the difference x-y and returns z.
//
// Bit vector differences are computed as x + ^y + 1 over the width of the
// widest operand.
//
func (z *Value) Sub(x, y *Value) *Value {
	x, y = deref(x), deref(y)
	switch {
	case anyKind(x, y, KindString):
		return z.SetX(max(x.Width(), y.Width()))
	case anyKind(x, y, KindBits):
		if anyKind(x, y, KindReal) {
			if unknown(x, y) {
				return z.SetX(1)
			}
			return z.SetReal(x.Real() - y.Real())
		}
		return z.setOwnedBits(subBits(addOperand(x), addOperand(y)))
	case anyKind(x, y, KindReal):
		return z.SetReal(x.Real() - y.Real())
	case anyKind(x, y, KindTime):
		return z.SetTime(x.Time() - y.Time())
	}
	return z.SetInt(x.i - y.i)
}

// Neg sets z to -x and returns z. Bit vectors are negated in two's complement
// within their own width.
//
func (z *Value) Neg(x *Value) *Value {
	x = deref(x)
	switch x.kind {
	case KindInt:
		return z.SetInt(-x.i)
	case KindTime:
		return z.SetTime(-x.t)
	case KindReal:
		return z.SetReal(-x.r)
	case KindBits:
		return z.setOwnedBits(subBits([]Bit{Lo}, x.bits))
	}
	return z.SetX(1)
}

func bitsToBig(bits []Bit) *big.Int {
	n := new(big.Int)
	for i, b := range bits {
		if b == Hi {
			n.SetBit(n, i, 1)
		}
	}
	return n
}

func bigToBits(n *big.Int, w int) []Bit {
	bits := make([]Bit, w)
	for i := range bits {
		bits[i] = Bit(n.Bit(i))
	}
	return bits
}

// Mul sets z to the product x*y and returns z.
//
// The product of two bit vectors is an exact, unsigned, w1+w2 bits wide
// vector. A bit vector mixed with a scalar is read as an unsigned integer.
//
func (z *Value) Mul(x, y *Value) *Value {
	x, y = deref(x), deref(y)
	switch {
	case anyKind(x, y, KindString) || unknown(x, y):
		return z.SetX(x.Width() + y.Width())
	case anyKind(x, y, KindReal):
		return z.SetReal(x.Real() * y.Real())
	case anyKind(x, y, KindTime):
		return z.SetTime(x.Time() * y.Time())
	case x.kind == KindBits && y.kind == KindBits:
		p := new(big.Int).Mul(bitsToBig(x.bits), bitsToBig(y.bits))
		return z.setOwnedBits(bigToBits(p, len(x.bits)+len(y.bits)))
	case anyKind(x, y, KindBits):
		return z.SetInt(int32(x.Uint() * y.Uint()))
	}
	return z.SetInt(x.i * y.i)
}

// Div sets z to the quotient x/y and returns z. Integer division truncates
// toward zero. Division by zero yields an X filled vector of width
// max(w1, w2).
//
func (z *Value) Div(x, y *Value) *Value {
	return z.divmod(x, y, false)
}

// Rem sets z to the remainder x%y and returns z. The remainder of a real
// division is undefined and yields an X filled vector.
//
func (z *Value) Rem(x, y *Value) *Value {
	return z.divmod(x, y, true)
}

func (z *Value) divmod(x, y *Value, rem bool) *Value {
	x, y = deref(x), deref(y)
	w := max(x.Width(), y.Width())
	if anyKind(x, y, KindString) || unknown(x, y) || y.isZero() {
		return z.SetX(w)
	}
	switch {
	case anyKind(x, y, KindReal):
		if rem {
			return z.SetX(w)
		}
		return z.SetReal(x.Real() / y.Real())
	case anyKind(x, y, KindTime):
		d := y.Time()
		if d == 0 {
			return z.SetX(w)
		}
		if rem {
			return z.SetTime(x.Time() % d)
		}
		return z.SetTime(x.Time() / d)
	case x.kind == KindBits && y.kind == KindBits:
		q, m := new(big.Int).QuoRem(bitsToBig(x.bits), bitsToBig(y.bits), new(big.Int))
		if rem {
			q = m
		}
		return z.setOwnedBits(bigToBits(q, w))
	case anyKind(x, y, KindBits):
		// a wide divisor may be zero once truncated
		d := y.Uint()
		if d == 0 {
			return z.SetX(w)
		}
		if rem {
			return z.SetInt(int32(x.Uint() % d))
		}
		return z.SetInt(int32(x.Uint() / d))
	}
	if rem {
		return z.SetInt(x.i % y.i)
	}
	return z.SetInt(x.i / y.i)
}
