// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package vlsim

// A Bit is a 4-state logic symbol.
//
type Bit uint8

// Bit values. Lo and Hi are 0 and 1 so that they can be summed directly.
//
const (
	Lo Bit = iota
	Hi
	X
	Z
)

// IsX returns true if b is X or Z.
//
func (b Bit) IsX() bool { return b > Hi }

// Not returns the complement of b. X and Z complement to X.
//
func (b Bit) Not() Bit {
	switch b {
	case Lo:
		return Hi
	case Hi:
		return Lo
	}
	return X
}

// String implements fmt.Stringer.
//
func (b Bit) String() string {
	switch b {
	case Lo:
		return "0"
	case Hi:
		return "1"
	case Z:
		return "z"
	}
	return "x"
}

// And returns a AND b.
//
//	0 & any = 0
//	1 & 1   = 1
//	else      x
//
func And(a, b Bit) Bit {
	if a == Hi && b == Hi {
		return Hi
	}
	if a == Lo || b == Lo {
		return Lo
	}
	return X
}

// Or returns a OR b.
//
//	1 | any = 1
//	0 | 0   = 0
//	else      x
//
func Or(a, b Bit) Bit {
	if a == Hi || b == Hi {
		return Hi
	}
	if a == Lo && b == Lo {
		return Lo
	}
	return X
}

// Xor returns a XOR b. Any unknown input yields x.
//
func Xor(a, b Bit) Bit {
	if a.IsX() || b.IsX() {
		return X
	}
	if a != b {
		return Hi
	}
	return Lo
}

// Bits masks returned by Value.BitSet.
//
const (
	HMask = 1 << iota // at least one bit is 1
	LMask             // at least one bit is 0
)
