package testutil

import (
	"math"
	"math/rand"
	"strings"
	"sync"

	"github.com/zone42/glyphs"
	"github.com/zone42/glyphs/lattice"
	"github.com/zone42/glyphs/zone"
)

// noiseRunes are symbols outside the lattice alphabet.
var noiseRunes = []string{"a", "Z", "7", "☃", "🚀", "x"}

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand = rand.New(rand.NewSource(r.seed))
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Uint64 returns a pseudo-random uint64.
func (r *RNG) Uint64() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Uint64()
}

// Triple returns a triple with every field uniform over the uint64 range.
func (r *RNG) Triple() glyphs.Triple {
	r.mu.Lock()
	defer r.mu.Unlock()
	return glyphs.Triple{
		Godel: r.rand.Uint64(),
		Curve: r.rand.Uint64(),
		Band:  r.rand.Uint64(),
	}
}

// Triples returns n uniform triples.
func (r *RNG) Triples(n int) []glyphs.Triple {
	out := make([]glyphs.Triple, n)
	for i := range out {
		out[i] = r.Triple()
	}
	return out
}

// CatalogTriples returns the canonical triples of n curves drawn uniformly
// from the catalog.
func (r *RNG) CatalogTriples(n int) []glyphs.Triple {
	out := make([]glyphs.Triple, n)
	for i := range out {
		out[i] = catalogTriple(uint64(r.Intn(zone.TotalCurves)))
	}
	return out
}

// SkewedTriples returns the canonical triples of n catalog curves whose
// zones follow a Zipf distribution with skew s. s=1.5 puts most curves into
// a handful of zones.
func (r *RNG) SkewedTriples(n int, s float64) []glyphs.Triple {
	r.mu.Lock()
	defer r.mu.Unlock()

	perZone := uint64(zone.TotalCurves / zone.Count)
	out := make([]glyphs.Triple, n)
	for i := range out {
		z := uint64(r.zipfLocked(zone.Count, s))
		k := uint64(r.rand.Int63n(int64(perZone)))
		out[i] = catalogTriple(k*zone.Count + z)
	}
	return out
}

func catalogTriple(curve uint64) glyphs.Triple {
	godel, c, band := zone.TripleForCurve(curve)
	return glyphs.Triple{Godel: godel, Curve: c, Band: band}
}

// Zipf returns a Zipfian-distributed value in [0, n).
// P(k) ∝ 1/k^s where s is the skew parameter.
func (r *RNG) Zipf(n int, s float64) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.zipfLocked(n, s)
}

// zipfLocked samples by inverse transform (caller must hold lock).
func (r *RNG) zipfLocked(n int, s float64) int {
	if n <= 1 {
		return 0
	}

	var hns float64
	for i := 1; i <= n; i++ {
		hns += 1.0 / math.Pow(float64(i), s)
	}

	u := r.rand.Float64() * hns
	var cumulative float64
	for k := 1; k <= n; k++ {
		cumulative += 1.0 / math.Pow(float64(k), s)
		if u <= cumulative {
			return k - 1
		}
	}

	return n - 1
}

// GlyphString returns n symbols drawn uniformly from the lattice.
func (r *RNG) GlyphString(n int) string {
	return r.NoisyGlyphString(n, 0)
}

// NoisyGlyphString returns n symbols where each one is replaced by a
// symbol outside the alphabet with probability noise.
func (r *RNG) NoisyGlyphString(n int, noise float64) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	var sb strings.Builder
	for range n {
		if noise > 0 && r.rand.Float64() < noise {
			sb.WriteString(noiseRunes[r.rand.Intn(len(noiseRunes))])
			continue
		}
		sb.WriteString(string(lattice.Lookup(uint64(r.rand.Intn(lattice.Size)))))
	}
	return sb.String()
}
