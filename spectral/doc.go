// Package spectral derives the "Maass shadow" of a godel number: a small,
// immutable bundle of spectral-looking attributes computed once from an
// (identifier, curve, band) triple.
//
// Every field is a pure function of the triple; recomputing a Shadow from
// the same input yields bit-identical floating point and integer values.
//
//	s := spectral.Derive(12345, 100, 0)
//	s.Eigenvalue // 0.4525
//	s.Symmetry   // "DIII"
package spectral
