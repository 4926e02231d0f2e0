// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hdl

import (
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Bit symbols of a Number's Bits, in the same order as the evaluator's.
//
const (
	B0 uint8 = iota
	B1
	BX
	BZ
)

// MaxWidth is the largest size of a bit vector literal.
//
const MaxWidth = 1 << 20

// NumKind is the kind of a Number.
//
type NumKind int

// Number kinds.
//
const (
	NumInt NumKind = iota
	NumBits
	NumReal
	NumString
)

// A Number is a literal constant.
//
type Number struct {
	Kind NumKind
	Int  int32
	Bits []uint8 // lsb first
	Real float64
	Str  string
}

// ParseNumber reads a literal: an unsized decimal integer, a real, a quoted
// string or a based number such as 4'b10xz, 8'hff or 'o17. Integers and reals
// may have a leading minus sign. Underscores in digits are ignored and '?' is
// a synonym for z.
//
// Unsized based numbers are as wide as their digits, or as wide as the
// minimal span of their value for decimal ones. Sized numbers are truncated or
// extended to their size. Extension uses the most significant digit if it is x
// or z, 0 otherwise.
//
// Unsized decimal integers that do not fit in 32 bits yield bit vectors.
//
func ParseNumber(text string) (Number, error) {
	var n Number
	if text == "" {
		return n, numError(text, 0, "empty literal")
	}
	if text[0] == '"' {
		s, err := strconv.Unquote(text)
		if err != nil {
			return n, numError(text, 0, "malformed string literal")
		}
		return Number{Kind: NumString, Str: s}, nil
	}
	if q := strings.IndexByte(text, '\''); q >= 0 {
		return parseBased(text, q)
	}
	neg := false
	digits := text
	if digits[0] == '-' || digits[0] == '+' {
		neg = digits[0] == '-'
		digits = digits[1:]
	}
	digits = strings.Replace(digits, "_", "", -1)
	if strings.ContainsAny(digits, ".eE") {
		r, err := strconv.ParseFloat(digits, 64)
		if err != nil || digits == "" || digits[0] < '0' || digits[0] > '9' {
			return n, numError(text, 0, "malformed real literal")
		}
		if neg {
			r = -r
		}
		return Number{Kind: NumReal, Real: r}, nil
	}
	v, ok := new(big.Int).SetString(digits, 10)
	if !ok || digits[0] < '0' || digits[0] > '9' {
		return n, numError(text, 0, "malformed integer literal")
	}
	if neg {
		v.Neg(v)
	}
	if v.IsInt64() && v.Int64() >= math.MinInt32 && v.Int64() <= math.MaxInt32 {
		return Number{Kind: NumInt, Int: int32(v.Int64())}, nil
	}
	if neg {
		return n, numError(text, 0, "integer literal out of range")
	}
	if v.BitLen() > MaxWidth {
		return n, numError(text, 0, "literal size too large")
	}
	return Number{Kind: NumBits, Bits: bigBits(v, v.BitLen())}, nil
}

func bigBits(v *big.Int, w int) []uint8 {
	bits := make([]uint8, w)
	for i := range bits {
		bits[i] = uint8(v.Bit(i))
	}
	return bits
}

var baseBits = map[byte]uint{'b': 1, 'o': 3, 'h': 4}

func parseBased(text string, q int) (Number, error) {
	var n Number
	size := -1
	if q > 0 {
		s, err := strconv.Atoi(strings.Replace(text[:q], "_", "", -1))
		if err != nil || s <= 0 {
			return n, numError(text, 0, "invalid literal size")
		}
		if s > MaxWidth {
			return n, numError(text, 0, "literal size too large")
		}
		size = s
	}
	if q+1 >= len(text) {
		return n, numError(text, q+1, "missing base")
	}
	base := text[q+1] | 0x20
	if base == 's' {
		// signed literals are read as unsigned ones
		q++
		if q+1 >= len(text) {
			return n, numError(text, q+1, "missing base")
		}
		base = text[q+1] | 0x20
	}
	digits := strings.Replace(text[q+2:], "_", "", -1)
	if digits == "" {
		return n, numError(text, q+2, "missing digits")
	}
	var bits []uint8
	if base == 'd' {
		switch c := digits[0] | 0x20; {
		case len(digits) == 1 && c == 'x':
			bits = []uint8{BX}
		case len(digits) == 1 && (c == 'z' || c == '?'):
			bits = []uint8{BZ}
		default:
			v, ok := new(big.Int).SetString(digits, 10)
			if !ok || digits[0] < '0' || digits[0] > '9' {
				return n, numError(text, q+2, "invalid decimal digits")
			}
			bits = bigBits(v, max(v.BitLen(), 1))
		}
	} else {
		bpd, ok := baseBits[base]
		if !ok {
			return n, numError(text, q+1, "invalid base "+strconv.Quote(string(text[q+1])))
		}
		bits = make([]uint8, 0, len(digits)*int(bpd))
		for i := len(digits) - 1; i >= 0; i-- {
			c := digits[i] | 0x20
			var sym uint8
			var d uint64
			switch {
			case c == 'x':
				sym = BX
			case c == 'z' || digits[i] == '?':
				sym = BZ
			default:
				v, err := strconv.ParseUint(string(digits[i]), 1<<bpd, 8)
				if err != nil {
					return n, numError(text, q+2+i, "invalid digit "+strconv.Quote(string(digits[i])))
				}
				d = v
			}
			for j := uint(0); j < bpd; j++ {
				if sym != B0 {
					bits = append(bits, sym)
				} else {
					bits = append(bits, uint8(d>>j&1))
				}
			}
		}
	}
	if size > 0 {
		bits = resize(bits, size)
	} else if len(bits) > MaxWidth {
		return n, numError(text, 0, "literal size too large")
	}
	return Number{Kind: NumBits, Bits: bits}, nil
}

// resize truncates or extends bits to w bits.
func resize(bits []uint8, w int) []uint8 {
	if len(bits) >= w {
		return bits[:w]
	}
	ext := B0
	if top := bits[len(bits)-1]; top == BX || top == BZ {
		ext = top
	}
	for len(bits) < w {
		bits = append(bits, ext)
	}
	return bits
}

func numError(in string, pos int, msg string) error {
	return errors.Errorf("in %q at pos %d: %s", in, pos+1, msg)
}
