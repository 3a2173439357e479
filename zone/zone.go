// Package zone partitions the curve catalog into a fixed number of zones.
//
// The catalog holds TotalCurves curves split evenly over Count zones; a
// curve belongs to zone curve mod Count. Archives shard their records by
// zone.
package zone

import (
	"errors"
	"fmt"
)

const (
	// Count is the number of zones.
	Count = 24
	// TotalCurves is the size of the curve catalog.
	TotalCurves = 4968
	// CurvesPerZone is the contiguous span synced per zone.
	CurvesPerZone = TotalCurves / Count
	// BandWidth is the number of curves per frequency band.
	BandWidth = 828
	// GodelOffset is added to a curve index to form its godel number.
	GodelOffset = 1000
)

// ErrInvalidZone is returned for zone numbers outside [0, Count).
var ErrInvalidZone = errors.New("invalid zone")

// Span is a half-open range of curve indices.
type Span struct {
	Start uint64
	End   uint64
	Count uint64
}

// Of returns the zone of a curve.
func Of(curve uint64) int {
	return int(curve % Count)
}

// Range returns the contiguous curve span assigned to zone z.
func Range(z int) (Span, error) {
	if z < 0 || z >= Count {
		return Span{}, fmt.Errorf("%w: %d", ErrInvalidZone, z)
	}
	start := uint64(z) * CurvesPerZone
	return Span{Start: start, End: start + CurvesPerZone, Count: CurvesPerZone}, nil
}

// TripleForCurve derives the canonical (godel, curve, band) triple of a
// catalog curve.
func TripleForCurve(curve uint64) (godel, c, band uint64) {
	return curve + GodelOffset, curve, curve / BandWidth
}

// ShardName returns the blob name of zone z's shard with the given suffix.
func ShardName(z int, suffix string) string {
	return fmt.Sprintf("ec_lattice_shard_%d%s", z, suffix)
}
