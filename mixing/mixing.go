// Package mixing implements the numeric mixing function: a deterministic
// integer transform that spreads a godel number over eight bounded values.
//
// It has no security property whatsoever. It exists so previously generated
// mixed sequences can be reproduced exactly.
package mixing

import (
	"math/bits"

	"github.com/zone42/glyphs/internal/primes"
)

const (
	// Len is the number of values in a Vector.
	Len = 8

	// Modulus bounds every Vector value.
	Modulus = 1 << 16

	expPeriod = 10
)

// Vector is the output of Mix. Every value is in [0, Modulus).
type Vector [Len]uint64

// Slice returns the vector as a slice.
func (v Vector) Slice() []uint64 {
	out := make([]uint64, Len)
	copy(out, v[:])
	return out
}

// Mix spreads godel over Len values:
//
//	exp   = floor(log2(godel+1)) mod 10
//	v[i]  = godel * prime_i^exp mod 65536
//
// curve and band are accepted but do not take part in the result; existing
// mixed sequences were generated that way and must stay reproducible.
func Mix(godel, curve, band uint64) Vector {
	_, _ = curve, band

	exp := Exponent(godel)
	base := godel % Modulus

	var v Vector
	for i := range v {
		v[i] = (base * powMod(primes.At(i), exp, Modulus)) % Modulus
	}
	return v
}

// Exponent returns floor(log2(godel+1)) mod 10.
func Exponent(godel uint64) uint64 {
	var log2 int
	if godel == ^uint64(0) {
		// godel+1 == 2^64
		log2 = 64
	} else {
		log2 = bits.Len64(godel+1) - 1
	}
	return uint64(log2) % expPeriod
}

// powMod computes base^exp mod m for m <= 2^32 without overflow.
func powMod(base, exp, m uint64) uint64 {
	result := uint64(1) % m
	base %= m
	for exp > 0 {
		if exp&1 == 1 {
			result = (result * base) % m
		}
		base = (base * base) % m
		exp >>= 1
	}
	return result
}
