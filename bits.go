// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package vlsim

// addBits adds the bit vectors a and b into a fresh vector of width w, and
// returns it. If carry is true, an initial carry-in of 1 is used.
//
// Bits are processed lsb first. Beyond the width of an operand, a pending
// carry is injected as a 1 bit of that operand and cleared. As soon as an X or
// Z bit is met, it and all the bits above are set to X.
//
func addBits(a, b []Bit, w int, carry bool) []Bit {
	s := make([]Bit, w)
	c := 0
	if carry {
		c = 1
	}
	for i := 0; i < w; i++ {
		x := Lo
		if i >= len(a) {
			if c != 0 {
				x, c = Hi, 0
			}
		} else {
			x = a[i]
		}
		y := Lo
		if i >= len(b) {
			if c != 0 {
				y, c = Hi, 0
			}
		} else {
			y = b[i]
		}
		if x.IsX() || y.IsX() {
			for ; i < w; i++ {
				s[i] = X
			}
			return s
		}
		sum := int(x) + int(y) + c
		s[i] = Bit(sum & 1)
		c = sum >> 1
	}
	return s
}

// growAdd returns a + b. The result is one bit wider than the widest operand
// only if the carry out is definitely 1.
func growAdd(a, b []Bit) []Bit {
	w := max(len(a), len(b)) + 1
	s := addBits(a, b, w, false)
	if s[w-1] != Hi {
		s = s[:w-1]
	}
	return s
}

// subBits returns a - b in two's complement, over max(len(a), len(b)) bits.
// The subtrahend is zero extended before being complemented.
func subBits(a, b []Bit) []Bit {
	w := max(len(a), len(b))
	nb := make([]Bit, w)
	for i := range nb {
		if i < len(b) {
			nb[i] = b[i]
		}
		switch nb[i] {
		case Lo:
			nb[i] = Hi
		case Hi:
			nb[i] = Lo
		}
	}
	return addBits(a, nb, w, true)
}

// xBits returns a vector of w X bits.
func xBits(w int) []Bit {
	s := make([]Bit, w)
	for i := range s {
		s[i] = X
	}
	return s
}

// hasX reports if any bit in bits is X or Z.
func hasX(bits []Bit) bool {
	for _, b := range bits {
		if b.IsX() {
			return true
		}
	}
	return false
}

// extBit returns bits[i], or Lo if i is out of range.
func extBit(bits []Bit, i int) Bit {
	if i < len(bits) {
		return bits[i]
	}
	return Lo
}

// intSpan returns the bits of an integer operand entering the addition
// algorithm: its minimal significant span, or the full word if negative.
func intSpan(i int32) []Bit {
	if i < 0 {
		return uintBits(uint64(uint32(i)), IntWidth)
	}
	return spanBits(uint64(i))
}

// compareBits compares the unsigned values of two definite bit vectors and
// returns -1, 0 or +1.
func compareBits(a, b []Bit) int {
	for i := max(len(a), len(b)) - 1; i >= 0; i-- {
		x, y := extBit(a, i), extBit(b, i)
		if x != y {
			if x == Hi {
				return 1
			}
			return -1
		}
	}
	return 0
}
