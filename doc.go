// Package glyphs encodes small integer triples into short sequences of
// visual symbols and decodes such sequences back into an approximation of
// the original triple.
//
// A triple is an identifier (the "godel number"), a curve index into an
// external catalog and a frequency band. Encoding is deterministic; decoding
// is total but lossy by construction and is not an inverse of encoding.
//
// # Quick Start
//
//	ctx := context.Background()
//	enc, _ := glyphs.New()
//
//	rec := enc.Encode(ctx, glyphs.Triple{Godel: 12345, Curve: 100, Band: 0})
//	fmt.Println(rec.Glyphs, rec.DisplayURL, rec.CatalogURL)
//
//	dec := enc.DecodeString(ctx, rec.Glyphs)
//	fmt.Println(dec.Godel, dec.Curve, dec.Band)
//
// # Forward Transform
//
// Encode derives the spectral Shadow of the triple (see package spectral)
// and maps the eight values
//
//	godel, curve, band, floor(eigenvalue*1000), floor(spectralParameter*1000),
//	fourier[0], fourier[1], fourier[2]
//
// through the symbol lattice (see package lattice). EncodeMixed feeds the
// output of the mixing function (see package mixing) into the lattice
// instead.
//
// # Reverse Transform
//
// Decode looks up each symbol's lattice index and recombines them:
//
//	godel' = Σ index_i * prime_(i mod 15)  mod 1,000,000
//	curve' = godel' mod 4968
//	band'  = curve' / 828
//
// Symbols outside the alphabet count as 0 and are flagged in
// Decoded.Missing. Decoding never fails.
//
// # Text Input
//
// EncodeText reads the triple out of a text blob (see package extract) and
// encodes it. Extraction is all or nothing; failures wrap ErrMalformedInput.
//
// # Batches and Archives
//
// EncodeBatch fans out over a bounded worker pool. Records can be persisted
// as zone-sharded, compressed archives in any blob store (see packages
// archive and blobstore).
package glyphs
