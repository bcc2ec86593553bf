// SPDX-License-Identifier: EPL-2.0

package mix

import "sort"

// TimeTrack maps global playback time to a track's local time, for
// non-constant playback speed. WarpTime must be monotonic non-decreasing and
// a pure function of its argument. SpeedBounds reports the range the curve's
// derivative stays within; the Mixer sizes each track's variable-rate
// resampler from it.
type TimeTrack interface {
	WarpTime(t float64) float64
	SpeedBounds() (lo, hi float64)
}

type warpMode int

const (
	warpConstant warpMode = iota
	warpTimeTrack
	warpScrub
)

// WarpOptions selects the time-warp policy for one Mixer instance.
// Exactly one mode is active, chosen at construction via DefaultWarp,
// TimeTrackWarp or ScrubWarp.
type WarpOptions struct {
	mode               warpMode
	tt                 TimeTrack
	minSpeed, maxSpeed float64
}

// DefaultWarp plays at constant unit speed: local time equals global time.
func DefaultWarp() WarpOptions {
	return WarpOptions{}
}

// TimeTrackWarp drives playback speed from a time-track curve.
func TimeTrackWarp(tt TimeTrack) WarpOptions {
	return WarpOptions{mode: warpTimeTrack, tt: tt}
}

// ScrubWarp enables interactive variable-speed playback with the given speed
// bounds. Speeds must be strictly positive with minSpeed <= maxSpeed; the
// instantaneous speed is then supplied through Mixer.SetTimesAndSpeed.
func ScrubWarp(minSpeed, maxSpeed float64) (WarpOptions, error) {
	if !(minSpeed > 0) || minSpeed > maxSpeed {
		return WarpOptions{}, ErrInvalidSpeed
	}
	return WarpOptions{mode: warpScrub, minSpeed: minSpeed, maxSpeed: maxSpeed}, nil
}

// SpeedCurve is a piecewise-linear playback speed over global time,
// implementing TimeTrack. WarpTime is the running integral of the speed, so
// the produced local time is monotonic as long as speeds are positive, which
// the constructor enforces.
type SpeedCurve struct {
	times  []float64
	speeds []float64
	warped []float64 // WarpTime at each control point
}

// NewSpeedCurve builds a curve from parallel control point slices. times
// must be strictly increasing and speeds strictly positive. Before the first
// and after the last point the edge speed is held constant.
func NewSpeedCurve(times, speeds []float64) (*SpeedCurve, error) {
	if len(times) == 0 || len(times) != len(speeds) {
		return nil, ErrInvalidCurve
	}
	for i := range times {
		if i > 0 && times[i] <= times[i-1] {
			return nil, ErrInvalidCurve
		}
		if !(speeds[i] > 0) {
			return nil, ErrInvalidCurve
		}
	}

	c := &SpeedCurve{
		times:  make([]float64, len(times)),
		speeds: make([]float64, len(speeds)),
		warped: make([]float64, len(times)),
	}
	copy(c.times, times)
	copy(c.speeds, speeds)

	// Local time at each control point, anchored so that WarpTime(0) == 0.
	c.warped[0] = times[0] * speeds[0]
	for i := 1; i < len(times); i++ {
		dt := times[i] - times[i-1]
		c.warped[i] = c.warped[i-1] + dt*(speeds[i-1]+speeds[i])/2
	}

	return c, nil
}

// SpeedAt returns the instantaneous speed at global time t.
func (c *SpeedCurve) SpeedAt(t float64) float64 {
	if t <= c.times[0] {
		return c.speeds[0]
	}
	last := len(c.times) - 1
	if t >= c.times[last] {
		return c.speeds[last]
	}

	i := sort.SearchFloat64s(c.times, t)
	if c.times[i] == t {
		return c.speeds[i]
	}
	frac := (t - c.times[i-1]) / (c.times[i] - c.times[i-1])

	return c.speeds[i-1] + frac*(c.speeds[i]-c.speeds[i-1])
}

// WarpTime returns the local time reached at global time t: the integral of
// the speed from global time zero.
func (c *SpeedCurve) WarpTime(t float64) float64 {
	if t <= c.times[0] {
		return c.warped[0] - (c.times[0]-t)*c.speeds[0]
	}
	last := len(c.times) - 1
	if t >= c.times[last] {
		return c.warped[last] + (t-c.times[last])*c.speeds[last]
	}

	i := sort.SearchFloat64s(c.times, t)
	if c.times[i] == t {
		return c.warped[i]
	}
	dt := t - c.times[i-1]
	s := c.SpeedAt(t)

	return c.warped[i-1] + dt*(c.speeds[i-1]+s)/2
}

// SpeedBounds reports the extreme speeds over the whole curve.
func (c *SpeedCurve) SpeedBounds() (lo, hi float64) {
	lo, hi = c.speeds[0], c.speeds[0]
	for _, s := range c.speeds[1:] {
		if s < lo {
			lo = s
		}
		if s > hi {
			hi = s
		}
	}
	return lo, hi
}
