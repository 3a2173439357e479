// Package lattice maps bounded integers onto a fixed alphabet of 32 visual
// symbols arranged as 8 groups of 4.
//
// Forward lookup uses the low five bits of a value:
//
//	group = v mod 8
//	slot  = (v / 8) mod 4
//
// Reverse lookup recovers group + slot*8, a representative in [0, 32). It is
// not an inverse of the forward arithmetic: everything above the low five
// bits is lost. Symbols outside the alphabet reverse to 0 and are reported as
// not found; they never cause an error.
package lattice
