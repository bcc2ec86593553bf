// SPDX-License-Identifier: EPL-2.0

package mix

import "sort"

// Envelope is a time-varying gain curve applied to a track on top of its
// scalar gain. ValueAt must be a pure function of t.
type Envelope interface {
	ValueAt(t float64) float64
}

// BreakpointEnvelope is a piecewise-linear Envelope over control points.
// Outside the first and last points the edge value is held.
type BreakpointEnvelope struct {
	times  []float64
	values []float64
}

// NewBreakpointEnvelope builds an envelope from parallel control point
// slices. times must be strictly increasing, values non-negative.
func NewBreakpointEnvelope(times, values []float64) (*BreakpointEnvelope, error) {
	if len(times) == 0 || len(times) != len(values) {
		return nil, ErrInvalidEnvelope
	}
	for i := range times {
		if i > 0 && times[i] <= times[i-1] {
			return nil, ErrInvalidEnvelope
		}
		if values[i] < 0 {
			return nil, ErrInvalidEnvelope
		}
	}

	e := &BreakpointEnvelope{
		times:  make([]float64, len(times)),
		values: make([]float64, len(values)),
	}
	copy(e.times, times)
	copy(e.values, values)

	return e, nil
}

func (e *BreakpointEnvelope) ValueAt(t float64) float64 {
	if t <= e.times[0] {
		return e.values[0]
	}
	last := len(e.times) - 1
	if t >= e.times[last] {
		return e.values[last]
	}

	// First index with times[i] > t; the segment is [i-1, i].
	i := sort.SearchFloat64s(e.times, t)
	if e.times[i] == t {
		return e.values[i]
	}
	frac := (t - e.times[i-1]) / (e.times[i] - e.times[i-1])

	return e.values[i-1] + frac*(e.values[i]-e.values[i-1])
}
