// Package testutil provides deterministic input generators for glyphs tests
// and benchmarks.
//
// This package is intended for use in tests and benchmarks only.
//
// # Triples
//
//	rng := testutil.NewRNG(seed)
//	t := rng.Triple()                  // uniform over the full uint64 range
//	ts := rng.CatalogTriples(100)      // curves drawn uniformly from the catalog
//	ts = rng.SkewedTriples(100, 1.5)   // Zipf-skewed zones, for hot-shard tests
//
// # Glyph strings
//
//	s := rng.GlyphString(8)            // valid lattice symbols only
//	s = rng.NoisyGlyphString(8, 0.25)  // a quarter of the symbols unknown
package testutil
