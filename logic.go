// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package vlsim

// truth returns whether v has at least one 1 bit and at least one 0 bit.
// Scalars are either truthy or falsy. Strings are neither.
func truth(v *Value) (h, l bool) {
	m := v.BitSet()
	return m&HMask != 0, m&LMask != 0
}

// LogAnd sets z to the single bit result of x && y and returns z.
//
// The result is 1 if both operands have a 1 bit, 0 if either operand has a 0
// bit, X otherwise. It is always X if an operand is a string.
//
func (z *Value) LogAnd(x, y *Value) *Value {
	x, y = deref(x), deref(y)
	if x.kind == KindString || y.kind == KindString {
		return z.setBit1(X)
	}
	h1, l1 := truth(x)
	h2, l2 := truth(y)
	switch {
	case h1 && h2:
		return z.setBit1(Hi)
	case l1 || l2:
		return z.setBit1(Lo)
	}
	return z.setBit1(X)
}

// LogOr sets z to the single bit result of x || y and returns z.
//
// The result is 1 if either operand has a 1 bit, 0 if both operands have a 0
// bit, X otherwise. It is always X if an operand is a string.
//
func (z *Value) LogOr(x, y *Value) *Value {
	x, y = deref(x), deref(y)
	if x.kind == KindString || y.kind == KindString {
		return z.setBit1(X)
	}
	h1, l1 := truth(x)
	h2, l2 := truth(y)
	switch {
	case h1 || h2:
		return z.setBit1(Hi)
	case l1 && l2:
		return z.setBit1(Lo)
	}
	return z.setBit1(X)
}

// LogNot sets z to the single bit result of !x and returns z.
//
func (z *Value) LogNot(x *Value) *Value {
	h, l := truth(deref(x))
	switch {
	case h:
		return z.setBit1(Lo)
	case l:
		return z.setBit1(Hi)
	}
	return z.setBit1(X)
}

// bitwise applies f to the bit patterns of x and y.
func (z *Value) bitwise(x, y *Value, f func(a, b Bit) Bit, ints func(a, b uint64) uint64) *Value {
	x, y = deref(x), deref(y)
	switch {
	case anyKind(x, y, KindString):
		return z.SetX(max(x.Width(), y.Width()))
	case anyKind(x, y, KindReal):
		return z.SetX(1)
	case anyKind(x, y, KindBits):
		p, _ := x.pattern()
		q, _ := y.pattern()
		bits := make([]Bit, max(len(p), len(q)))
		for i := range bits {
			bits[i] = f(extBit(p, i), extBit(q, i))
		}
		return z.setOwnedBits(bits)
	case anyKind(x, y, KindTime):
		return z.SetTime(ints(x.Time(), y.Time()))
	}
	return z.SetInt(int32(ints(uint64(uint32(x.i)), uint64(uint32(y.i)))))
}

// And sets z to the bitwise x & y and returns z.
//
// If either operand is a bit vector, the result is a bit vector as wide as
// the widest operand. A real operand yields a single X bit.
//
func (z *Value) And(x, y *Value) *Value {
	return z.bitwise(x, y, And, func(a, b uint64) uint64 { return a & b })
}

// Or sets z to the bitwise x | y and returns z.
//
func (z *Value) Or(x, y *Value) *Value {
	return z.bitwise(x, y, Or, func(a, b uint64) uint64 { return a | b })
}

// Xor sets z to the bitwise x ^ y and returns z.
//
func (z *Value) Xor(x, y *Value) *Value {
	return z.bitwise(x, y, Xor, func(a, b uint64) uint64 { return a ^ b })
}

// Xnor sets z to the bitwise x ~^ y and returns z.
//
func (z *Value) Xnor(x, y *Value) *Value {
	return z.bitwise(x, y,
		func(a, b Bit) Bit { return Xor(a, b).Not() },
		func(a, b uint64) uint64 { return ^(a ^ b) })
}

// spanMask returns a mask covering the minimal significant bit span of u.
func spanMask(u uint64) uint64 {
	m := uint64(1)
	for c := u >> 1; c != 0; c >>= 1 {
		m = m<<1 | 1
	}
	return m
}

// Compl sets z to the bitwise complement ~x and returns z.
//
// Integer and time values are complemented within their minimal significant
// bit span only: ~5 is 2. Complemented X and Z bits are X.
//
func (z *Value) Compl(x *Value) *Value {
	x = deref(x)
	switch x.kind {
	case KindInt:
		u := uint64(uint32(x.i))
		return z.SetInt(int32(^u & spanMask(u)))
	case KindTime:
		return z.SetTime(^x.t & spanMask(x.t))
	case KindBits:
		bits := make([]Bit, len(x.bits))
		for i, b := range x.bits {
			bits[i] = b.Not()
		}
		return z.setOwnedBits(bits)
	}
	return z.SetX(1)
}

func (z *Value) reduce(x *Value, f func(a, b Bit) Bit, invert bool) *Value {
	p, ok := deref(x).pattern()
	if !ok || len(p) == 0 {
		return z.setBit1(X)
	}
	r := p[0]
	if r == Z {
		r = X
	}
	for _, b := range p[1:] {
		r = f(r, b)
	}
	if invert {
		r = r.Not()
	}
	return z.setBit1(r)
}

// ReduceAnd sets z to the AND of all the bits of x and returns z.
//
func (z *Value) ReduceAnd(x *Value) *Value { return z.reduce(x, And, false) }

// ReduceNand sets z to the complemented AND of all the bits of x and returns z.
//
func (z *Value) ReduceNand(x *Value) *Value { return z.reduce(x, And, true) }

// ReduceOr sets z to the OR of all the bits of x and returns z.
//
func (z *Value) ReduceOr(x *Value) *Value { return z.reduce(x, Or, false) }

// ReduceNor sets z to the complemented OR of all the bits of x and returns z.
//
func (z *Value) ReduceNor(x *Value) *Value { return z.reduce(x, Or, true) }

// ReduceXor sets z to the XOR of all the bits of x and returns z.
//
func (z *Value) ReduceXor(x *Value) *Value { return z.reduce(x, Xor, false) }

// ReduceXnor sets z to the complemented XOR of all the bits of x and returns
// z.
//
func (z *Value) ReduceXnor(x *Value) *Value { return z.reduce(x, Xor, true) }

// Merge sets z to the bitwise merge of x and y, as produced by a conditional
// expression with an unknown condition, and returns z. Equal bits pass
// through, other bits are X. Z bits are X. The result is as wide as the widest
// operand. Reals and strings merge to the integer 0.
//
func (z *Value) Merge(x, y *Value) *Value {
	x, y = deref(x), deref(y)
	p, ok1 := x.pattern()
	q, ok2 := y.pattern()
	if !ok1 || !ok2 {
		return z.SetInt(0)
	}
	bits := make([]Bit, max(len(p), len(q)))
	for i := range bits {
		a, b := extBit(p, i), extBit(q, i)
		if a == b && a != Z {
			bits[i] = a
		} else {
			bits[i] = X
		}
	}
	return z.setOwnedBits(bits)
}
