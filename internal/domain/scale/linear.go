// Package scale maps data domains onto pixel ranges.
package scale

import "math"

// Linear is a continuous linear mapping from [d0, d1] to [r0, r1].
// Either interval may be reversed.
type Linear struct {
	d0, d1 float64
	r0, r1 float64
}

// NewLinear builds a linear scale.
func NewLinear(domainMin, domainMax, rangeStart, rangeEnd float64) Linear {
	return Linear{d0: domainMin, d1: domainMax, r0: rangeStart, r1: rangeEnd}
}

// Domain returns the domain bounds as given.
func (s Linear) Domain() (float64, float64) { return s.d0, s.d1 }

// Range returns the range bounds as given.
func (s Linear) Range() (float64, float64) { return s.r0, s.r1 }

// Map projects v into the range. A degenerate domain maps everything to the
// range midpoint.
func (s Linear) Map(v float64) float64 {
	span := s.d1 - s.d0
	t := 0.5
	if span != 0 {
		t = (v - s.d0) / span
	}
	return s.r0 + t*(s.r1-s.r0)
}

// Invert maps a range value back into the domain.
func (s Linear) Invert(px float64) float64 {
	span := s.r1 - s.r0
	t := 0.5
	if span != 0 {
		t = (px - s.r0) / span
	}
	return s.d0 + t*(s.d1-s.d0)
}

// Ticks returns roughly count human-friendly values inside the domain.
func (s Linear) Ticks(count int) []float64 {
	return Ticks(s.d0, s.d1, count)
}

// Extent returns the minimum and maximum of values. ok is false for an
// empty input; NaNs are skipped.
func Extent(values []float64) (lo, hi float64, ok bool) {
	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}
		if !ok {
			lo, hi, ok = v, v, true
			continue
		}
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi, ok
}
