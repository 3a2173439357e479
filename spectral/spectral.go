package spectral

import (
	"math"

	"github.com/zone42/glyphs/internal/primes"
)

const (
	// FourierLen is the number of Fourier coefficients in a Shadow.
	FourierLen = 8

	// Modulus bounds every Fourier coefficient and Hecke eigenvalue.
	Modulus = 1000

	// quarter is the bottom of the spectrum; eigenvalues never fall below it.
	quarter = 0.25
)

// SymmetryClasses is the ten-fold way, indexed by godel mod 10.
var SymmetryClasses = [10]string{"A", "AIII", "AI", "BDI", "D", "DIII", "AII", "CII", "C", "CI"}

// Shadow holds the derived attributes of a triple.
type Shadow struct {
	Godel uint64
	Curve uint64
	Band  uint64

	// Eigenvalue is 0.25 + r² with r = (Godel mod 100) / 100. Only the last
	// two digits count; (Godel mod 1000) / 100 would give 12.1525 for 12345.
	Eigenvalue float64
	// SpectralParameter is sqrt(Eigenvalue - 0.25).
	SpectralParameter float64
	// Fourier[n-1] is (Godel * n) mod 1000 for n = 1..8.
	Fourier [FourierLen]uint64
	// Symmetry is SymmetryClasses[Godel mod 10].
	Symmetry string

	hecke [primes.Count]uint64
}

// Derive computes the Shadow of a triple. It is total over all inputs.
func Derive(godel, curve, band uint64) Shadow {
	s := Shadow{
		Godel: godel,
		Curve: curve,
		Band:  band,
	}

	residue := godel % Modulus

	r := float64(residue%100) / 100.0
	// The explicit conversion keeps r*r from being fused into an FMA, so the
	// result is identical on every architecture.
	s.Eigenvalue = quarter + float64(r*r)
	s.SpectralParameter = math.Sqrt(s.Eigenvalue - quarter)

	// (g*n) mod m == ((g mod m)*n) mod m, which keeps the product far from overflow.
	for n := uint64(1); n <= FourierLen; n++ {
		s.Fourier[n-1] = (residue * n) % Modulus
	}

	s.Symmetry = SymmetryClasses[godel%uint64(len(SymmetryClasses))]

	for i := range s.hecke {
		s.hecke[i] = (residue * primes.At(i)) % Modulus
	}

	return s
}

// Hecke returns a fresh prime -> eigenvalue map.
func (s Shadow) Hecke() map[uint64]uint64 {
	m := make(map[uint64]uint64, len(s.hecke))
	for i, v := range s.hecke {
		m[primes.At(i)] = v
	}
	return m
}

// HeckeAt returns the i-th (prime, eigenvalue) pair in ascending prime order.
func (s Shadow) HeckeAt(i int) (prime, value uint64) {
	return primes.At(i), s.hecke[i]
}

// HeckeLen returns the number of Hecke eigenvalues.
func (s Shadow) HeckeLen() int {
	return len(s.hecke)
}

// ScaledEigenvalue returns floor(Eigenvalue * 1000).
func (s Shadow) ScaledEigenvalue() uint64 {
	return uint64(math.Floor(s.Eigenvalue * 1000))
}

// ScaledSpectralParameter returns floor(SpectralParameter * 1000).
func (s Shadow) ScaledSpectralParameter() uint64 {
	return uint64(math.Floor(s.SpectralParameter * 1000))
}
