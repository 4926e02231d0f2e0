// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package vlsim

import "github.com/db47h/vlsim/internal/hdl"

// MaxWidth is the largest bit vector width produced by a literal, a left
// shift, a part select or a concatenation. Wider literals are rejected by
// ParseValue and ParseExpr, wider results are X.
//
const MaxWidth = hdl.MaxWidth

// shiftAmount returns the magnitude of a shift amount and whether it was given
// as a bit vector or time value. ok is false if the amount is unknown.
func shiftAmount(n *Value) (amt uint64, vector bool, ok bool) {
	switch n.kind {
	case KindInt:
		i := int64(n.i)
		if i < 0 {
			i = -i
		}
		return uint64(i), false, true
	case KindReal:
		i := int64(n.r)
		if i < 0 {
			i = -i
		}
		return uint64(i), false, true
	case KindTime:
		return n.t, true, true
	case KindBits:
		if hasX(n.bits) {
			return 0, true, false
		}
		for _, b := range n.bits[min(len(n.bits), 64):] {
			if b == Hi {
				return MaxWidth, true, true
			}
		}
		return bitsUint(n.bits), true, true
	}
	return 0, false, false
}

// Shl sets z to x << n and returns z.
//
// Shifting an integer or time value yields the same kind. A bit vector keeps
// its width when shifted by an integer, and grows by the shift amount when
// shifted by a bit vector or time value. Vacated bits are 0. An unknown shift
// amount yields an X filled vector of the width of x.
//
func (z *Value) Shl(x, n *Value) *Value {
	return z.shift(x, n, true)
}

// Shr sets z to x >> n and returns z. This is a logical shift: vacated bits
// are 0 and the width of x is kept.
//
func (z *Value) Shr(x, n *Value) *Value {
	return z.shift(x, n, false)
}

func (z *Value) shift(x, n *Value, left bool) *Value {
	x, n = deref(x), deref(n)
	if x.kind == KindReal || x.kind == KindString || x.kind == KindConcat {
		return z.SetX(1)
	}
	amt, vector, ok := shiftAmount(n)
	if !ok {
		return z.SetX(x.Width())
	}
	switch x.kind {
	case KindInt:
		u := uint32(x.i)
		if amt >= IntWidth {
			return z.SetInt(0)
		}
		if left {
			return z.SetInt(int32(u << amt))
		}
		return z.SetInt(int32(u >> amt))
	case KindTime:
		if amt >= TimeWidth {
			return z.SetTime(0)
		}
		if left {
			return z.SetTime(x.t << amt)
		}
		return z.SetTime(x.t >> amt)
	}

	w := len(x.bits)
	if left && vector {
		w = max(w, int(min(uint64(w)+min(amt, MaxWidth), MaxWidth)))
	}
	bits := make([]Bit, w)
	for i := range bits {
		var j uint64
		if left {
			if uint64(i) < amt {
				continue
			}
			j = uint64(i) - amt
		} else {
			j = uint64(i) + amt
		}
		if j < uint64(len(x.bits)) {
			bits[i] = x.bits[j]
		}
	}
	return z.setOwnedBits(bits)
}
