// SPDX-License-Identifier: EPL-2.0

package mix

import (
	"errors"
	"math"
	"testing"
)

func TestScrubWarp_Validation(t *testing.T) {
	t.Parallel()

	if _, err := ScrubWarp(0, 2); !errors.Is(err, ErrInvalidSpeed) {
		t.Errorf("ScrubWarp(0, 2) error = %v, want ErrInvalidSpeed", err)
	}
	if _, err := ScrubWarp(-1, 2); !errors.Is(err, ErrInvalidSpeed) {
		t.Errorf("ScrubWarp(-1, 2) error = %v, want ErrInvalidSpeed", err)
	}
	if _, err := ScrubWarp(2, 1); !errors.Is(err, ErrInvalidSpeed) {
		t.Errorf("ScrubWarp(2, 1) error = %v, want ErrInvalidSpeed", err)
	}
	if _, err := ScrubWarp(0.5, 0.5); err != nil {
		t.Errorf("ScrubWarp(0.5, 0.5) error = %v, want nil", err)
	}
}

func TestNewSpeedCurve_Validation(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		times  []float64
		speeds []float64
	}{
		{"empty", nil, nil},
		{"length mismatch", []float64{0, 1}, []float64{1}},
		{"non-increasing times", []float64{0, 1, 1}, []float64{1, 1, 1}},
		{"zero speed", []float64{0, 1}, []float64{1, 0}},
		{"negative speed", []float64{0, 1}, []float64{-1, 1}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if _, err := NewSpeedCurve(tc.times, tc.speeds); !errors.Is(err, ErrInvalidCurve) {
				t.Errorf("NewSpeedCurve() error = %v, want ErrInvalidCurve", err)
			}
		})
	}
}

func TestSpeedCurve_SpeedAt(t *testing.T) {
	t.Parallel()

	c, err := NewSpeedCurve([]float64{1, 3}, []float64{1, 2})
	if err != nil {
		t.Fatalf("NewSpeedCurve() error = %v", err)
	}

	cases := []struct {
		t    float64
		want float64
	}{
		{0, 1},   // before the first point: edge hold
		{1, 1},   // at a control point
		{2, 1.5}, // midway: linear interpolation
		{3, 2},
		{5, 2}, // after the last point: edge hold
	}
	for _, tc := range cases {
		if got := c.SpeedAt(tc.t); math.Abs(got-tc.want) > 1e-12 {
			t.Errorf("SpeedAt(%g) = %g, want %g", tc.t, got, tc.want)
		}
	}
}

func TestSpeedCurve_WarpTime(t *testing.T) {
	t.Parallel()

	// Speed ramps 1 to 2 over [1, 3]; the integral of a linear ramp is a
	// quadratic, checked at its knees and against the anchor WarpTime(0) == 0.
	c, err := NewSpeedCurve([]float64{1, 3}, []float64{1, 2})
	if err != nil {
		t.Fatalf("NewSpeedCurve() error = %v", err)
	}

	cases := []struct {
		t    float64
		want float64
	}{
		{0, 0},
		{1, 1},     // unit speed over [0, 1]
		{2, 2.25},  // 1 + integral of ramp 1..1.5 over one second
		{3, 4},     // 1 + trapezoid (1+2)/2 * 2
		{4, 6},     // edge speed 2 held past the last point
		{-1, -1},   // edge speed 1 held before the first point
	}
	for _, tc := range cases {
		if got := c.WarpTime(tc.t); math.Abs(got-tc.want) > 1e-12 {
			t.Errorf("WarpTime(%g) = %g, want %g", tc.t, got, tc.want)
		}
	}
}

func TestSpeedCurve_Monotonic(t *testing.T) {
	t.Parallel()

	c, err := NewSpeedCurve([]float64{0, 0.5, 2, 3}, []float64{0.5, 3, 0.1, 1})
	if err != nil {
		t.Fatalf("NewSpeedCurve() error = %v", err)
	}

	prev := c.WarpTime(-1)
	for step := 0; step <= 400; step++ {
		tt := -1 + float64(step)*0.01
		got := c.WarpTime(tt)
		if got < prev {
			t.Fatalf("WarpTime not monotonic at t=%g: %g < %g", tt, got, prev)
		}
		prev = got
	}

	lo, hi := c.SpeedBounds()
	if lo != 0.1 || hi != 3 {
		t.Errorf("SpeedBounds() = (%g, %g), want (0.1, 3)", lo, hi)
	}
}
