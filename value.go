// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package vlsim

import (
	"strconv"
	"strings"
)

// Native widths of the scalar kinds.
//
const (
	IntWidth  = 32
	TimeWidth = 64
)

// Kind identifies the live payload of a Value.
//
type Kind uint8

// Value kinds. The zero Value is the integer 0.
//
const (
	KindInt Kind = iota
	KindBits
	KindTime
	KindReal
	KindString
	KindConcat
)

var kindNames = [...]string{
	KindInt:    "int",
	KindBits:   "bits",
	KindTime:   "time",
	KindReal:   "real",
	KindString: "string",
	KindConcat: "concat",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// A Value is the operand and result type of every operation. Exactly one
// payload is live at a time, as told by Kind.
//
// Values allocated from an Arena are transient: they must not be used once the
// arena has been reset. Use Copy to keep one.
//
// Operations follow the math/big convention: the receiver is set to the result
// and returned, so that
//
//	z := arena.New().Add(x, y)
//
// sets a fresh value to x + y. The receiver may alias the operands.
//
type Value struct {
	kind Kind
	i    int32
	t    uint64
	r    float64
	s    string
	bits []Bit // lsb first
	cat  *concatRef

	arena *Arena
	gen   uint32
}

// concatRef is the payload of a KindConcat value: a non-owning view on a list
// of member expressions, msb first.
type concatRef struct {
	s       *Session
	members []Expr
}

// NewInt returns a new integer value.
//
func NewInt(i int32) *Value { return new(Value).SetInt(i) }

// NewTime returns a new simulation time value.
//
func NewTime(t uint64) *Value { return new(Value).SetTime(t) }

// NewReal returns a new real value.
//
func NewReal(r float64) *Value { return new(Value).SetReal(r) }

// NewString returns a new string value.
//
func NewString(s string) *Value { return new(Value).SetString(s) }

// NewX returns a new bit vector of width w filled with X.
//
func NewX(w int) *Value { return new(Value).SetX(w) }

// NewBits returns a new bit vector. Bits are given lsb first.
//
func NewBits(bits ...Bit) *Value { return new(Value).SetBits(bits) }

// check panics if v is a transient value whose arena was reset since it was
// allocated.
func (v *Value) check() {
	if v.arena != nil && v.gen != v.arena.gen {
		panic("vlsim: use of transient Value after arena reset")
	}
}

func (v *Value) clear() {
	v.kind = KindInt
	v.i, v.t, v.r, v.s = 0, 0, 0, ""
	v.bits = v.bits[:0]
	v.cat = nil
}

// Kind returns the kind of v.
//
func (v *Value) Kind() Kind {
	v.check()
	return v.kind
}

// SetInt sets z to the integer i and returns z.
//
func (z *Value) SetInt(i int32) *Value {
	z.clear()
	z.i = i
	return z
}

// SetTime sets z to the time value t and returns z.
//
func (z *Value) SetTime(t uint64) *Value {
	z.clear()
	z.kind = KindTime
	z.t = t
	return z
}

// SetReal sets z to the real r and returns z.
//
func (z *Value) SetReal(r float64) *Value {
	z.clear()
	z.kind = KindReal
	z.r = r
	return z
}

// SetString sets z to the string s and returns z.
//
func (z *Value) SetString(s string) *Value {
	z.clear()
	z.kind = KindString
	z.s = s
	return z
}

// SetX sets z to a w bits wide vector filled with X and returns z.
// It panics if w < 1.
//
func (z *Value) SetX(w int) *Value {
	return z.fill(w, X)
}

func (z *Value) fill(w int, b Bit) *Value {
	if w < 1 {
		panic("vlsim: invalid bit vector width " + strconv.Itoa(w))
	}
	bits := z.bits[:0]
	z.clear()
	z.kind = KindBits
	for i := 0; i < w; i++ {
		bits = append(bits, b)
	}
	z.bits = bits
	return z
}

// SetBits sets z to a copy of the given bit vector (lsb first) and returns z.
// An empty slice sets z to a single X bit.
//
func (z *Value) SetBits(bits []Bit) *Value {
	if len(bits) == 0 {
		return z.SetX(1)
	}
	buf := append(z.bits[:0:0], bits...)
	z.clear()
	z.kind = KindBits
	z.bits = buf
	return z
}

// setOwnedBits is like SetBits but takes ownership of bits.
func (z *Value) setOwnedBits(bits []Bit) *Value {
	if len(bits) == 0 {
		return z.SetX(1)
	}
	z.clear()
	z.kind = KindBits
	z.bits = bits
	return z
}

// SetBit sets bit i of the bit vector z to b. The vector grows with 0 bits as
// needed. If z is not a bit vector, it is first converted to one.
//
func (z *Value) SetBit(i int, b Bit) *Value {
	z.check()
	if z.kind != KindBits {
		p, ok := z.pattern()
		if !ok {
			p = []Bit{X}
		}
		z.setOwnedBits(append([]Bit(nil), p...))
	}
	for len(z.bits) <= i {
		z.bits = append(z.bits, Lo)
	}
	z.bits[i] = b
	return z
}

// Set sets z to a deep copy of x and returns z.
//
func (z *Value) Set(x *Value) *Value {
	x.check()
	if z == x {
		return z
	}
	switch x.kind {
	case KindInt:
		z.SetInt(x.i)
	case KindTime:
		z.SetTime(x.t)
	case KindReal:
		z.SetReal(x.r)
	case KindString:
		z.SetString(x.s)
	case KindBits:
		z.SetBits(x.bits)
	case KindConcat:
		z.clear()
		z.kind = KindConcat
		z.cat = &concatRef{s: x.cat.s, members: x.cat.members}
	}
	return z
}

// Copy returns a deep copy of v that is not tied to any arena.
//
func (v *Value) Copy() *Value {
	return new(Value).Set(v)
}

// Width returns the bit width of v: the vector size for bit vectors, IntWidth
// for integers, TimeWidth for times and 1 for kinds that carry no bit width.
//
func (v *Value) Width() int {
	v.check()
	switch v.kind {
	case KindBits:
		return len(v.bits)
	case KindInt:
		return IntWidth
	case KindTime:
		return TimeWidth
	}
	return 1
}

// IsX returns true if v is a bit vector with at least one X or Z bit.
//
func (v *Value) IsX() bool {
	v.check()
	if v.kind != KindBits {
		return false
	}
	for _, b := range v.bits {
		if b.IsX() {
			return true
		}
	}
	return false
}

// BitSet returns a combination of HMask and LMask telling if the bit vector v
// has at least one 1 bit and/or at least one 0 bit. Scalar kinds report HMask
// if non-zero, LMask otherwise. Strings report 0.
//
func (v *Value) BitSet() int {
	v.check()
	switch v.kind {
	case KindBits:
		m := 0
		for _, b := range v.bits {
			switch b {
			case Hi:
				m |= HMask
			case Lo:
				m |= LMask
			}
		}
		return m
	case KindInt:
		return truthMask(v.i != 0)
	case KindTime:
		return truthMask(v.t != 0)
	case KindReal:
		return truthMask(v.r != 0)
	}
	return 0
}

func truthMask(b bool) int {
	if b {
		return HMask
	}
	return LMask
}

// Bit returns bit i of v's bit pattern. Bits beyond the width read as 0.
// Kinds without a bit pattern read as X.
//
func (v *Value) Bit(i int) Bit {
	v.check()
	p, ok := v.pattern()
	if !ok {
		return X
	}
	if i < 0 || i >= len(p) {
		return Lo
	}
	return p[i]
}

// Bits returns a copy of the bit pattern of v, lsb first. Integers yield
// IntWidth bits, times TimeWidth bits. Reals and strings yield a single X.
//
func (v *Value) Bits() []Bit {
	v.check()
	p, ok := v.pattern()
	if !ok {
		return []Bit{X}
	}
	return append([]Bit(nil), p...)
}

// pattern returns the bit pattern of v. For bit vectors, the returned slice is
// v's own storage and must not be modified.
func (v *Value) pattern() ([]Bit, bool) {
	switch v.kind {
	case KindBits:
		return v.bits, true
	case KindInt:
		return uintBits(uint64(uint32(v.i)), IntWidth), true
	case KindTime:
		return uintBits(v.t, TimeWidth), true
	}
	return nil, false
}

// uintBits returns the w low bits of u.
func uintBits(u uint64, w int) []Bit {
	bits := make([]Bit, w)
	for i := range bits {
		if i < 64 && (u>>uint(i))&1 != 0 {
			bits[i] = Hi
		}
	}
	return bits
}

// spanBits returns the bits of u up to its most significant 1 bit, and at
// least one bit.
func spanBits(u uint64) []Bit {
	w := 1
	for c := u >> 1; c != 0; c >>= 1 {
		w++
	}
	return uintBits(u, w)
}

// bitsUint returns the unsigned value of the 64 low bits of bits. X and Z read
// as 0.
func bitsUint(bits []Bit) uint64 {
	var u uint64
	for i, b := range bits {
		if i >= 64 {
			break
		}
		if b == Hi {
			u |= 1 << uint(i)
		}
	}
	return u
}

// Int returns v converted to an integer. Bit vectors are truncated to their
// IntWidth low bits, X and Z bits reading as 0. Reals are truncated toward 0.
//
func (v *Value) Int() int32 {
	v.check()
	switch v.kind {
	case KindInt:
		return v.i
	case KindBits:
		return int32(uint32(bitsUint(v.bits)))
	case KindTime:
		return int32(v.t)
	case KindReal:
		return int32(int64(v.r))
	}
	return 0
}

// Uint returns v converted to an unsigned integer.
//
func (v *Value) Uint() uint32 {
	v.check()
	if v.kind == KindReal {
		return uint32(int64(v.r))
	}
	return uint32(v.Int())
}

// Time returns v converted to a time value. Integers are sign extended.
//
func (v *Value) Time() uint64 {
	v.check()
	switch v.kind {
	case KindInt:
		return uint64(int64(v.i))
	case KindBits:
		return bitsUint(v.bits)
	case KindTime:
		return v.t
	case KindReal:
		return uint64(int64(v.r))
	}
	return 0
}

// Real returns v converted to a real. Bit vectors read as unsigned.
//
func (v *Value) Real() float64 {
	v.check()
	switch v.kind {
	case KindInt:
		return float64(v.i)
	case KindBits:
		var r float64
		for i := len(v.bits) - 1; i >= 0; i-- {
			r *= 2
			if v.bits[i] == Hi {
				r++
			}
		}
		return r
	case KindTime:
		return float64(v.t)
	case KindReal:
		return v.r
	}
	return 0
}

// Str returns the payload of a string value, or "".
//
func (v *Value) Str() string {
	v.check()
	return v.s
}

// isZero reports if v is numerically zero in its own kind.
func (v *Value) isZero() bool {
	switch v.kind {
	case KindInt:
		return v.i == 0
	case KindTime:
		return v.t == 0
	case KindReal:
		return v.r == 0
	case KindBits:
		for _, b := range v.bits {
			if b != Lo {
				return false
			}
		}
		return true
	}
	return false
}

// String returns a Verilog style representation of v.
//
func (v *Value) String() string {
	v.check()
	switch v.kind {
	case KindInt:
		return strconv.Itoa(int(v.i))
	case KindTime:
		return strconv.FormatUint(v.t, 10) + "t"
	case KindReal:
		return strconv.FormatFloat(v.r, 'g', -1, 64)
	case KindString:
		return strconv.Quote(v.s)
	case KindConcat:
		var b strings.Builder
		b.WriteByte('{')
		for i, e := range v.cat.members {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(e.String())
		}
		b.WriteByte('}')
		return b.String()
	}
	var b strings.Builder
	b.WriteString(strconv.Itoa(len(v.bits)))
	b.WriteString("'b")
	for i := len(v.bits) - 1; i >= 0; i-- {
		b.WriteString(v.bits[i].String())
	}
	return b.String()
}

// Identical returns true if x and y have the same kind and payload. Bit vectors
// must have the same width and the same symbols, X and Z included.
//
func Identical(x, y *Value) bool {
	x.check()
	y.check()
	if x.kind != y.kind {
		return false
	}
	switch x.kind {
	case KindInt:
		return x.i == y.i
	case KindTime:
		return x.t == y.t
	case KindReal:
		return x.r == y.r
	case KindString:
		return x.s == y.s
	case KindConcat:
		return x.cat.s == y.cat.s && len(x.cat.members) == len(y.cat.members)
	}
	if len(x.bits) != len(y.bits) {
		return false
	}
	for i := range x.bits {
		if x.bits[i] != y.bits[i] {
			return false
		}
	}
	return true
}
