// SPDX-License-Identifier: EPL-2.0

// Package mixtest provides mock sample sources for testing.
package mixtest

import (
	"io"
	"math"
)

// MockSource is a test helper that generates one mono stream on demand.
// It implements the mix.SampleSource interface (without importing it to
// avoid cycles).
type MockSource struct {
	sampleRate   int
	totalSamples int64
	waveform     func(sample int64) float32
}

// NewMockSource creates a mock source of totalSamples samples whose values
// come from waveform, indexed by absolute sample position.
func NewMockSource(sampleRate int, totalSamples int64, waveform func(sample int64) float32) *MockSource {
	return &MockSource{
		sampleRate:   sampleRate,
		totalSamples: totalSamples,
		waveform:     waveform,
	}
}

// NewSilentSource creates a mock source that generates silence (all zeros).
func NewSilentSource(sampleRate int, totalSamples int64) *MockSource {
	return NewMockSource(sampleRate, totalSamples, func(int64) float32 {
		return 0
	})
}

// NewSineSource creates a mock source that generates a sine wave.
func NewSineSource(sampleRate int, totalSamples int64, frequency float64) *MockSource {
	return NewMockSource(sampleRate, totalSamples, func(sample int64) float32 {
		t := float64(sample) / float64(sampleRate)
		return float32(math.Sin(2 * math.Pi * frequency * t))
	})
}

// NewConstantSource creates a mock source with constant value.
func NewConstantSource(sampleRate int, totalSamples int64, value float32) *MockSource {
	return NewMockSource(sampleRate, totalSamples, func(int64) float32 {
		return value
	})
}

// NewRampSource creates a mock source whose sample at position i is i scaled
// by step, convenient for checking exact read positions.
func NewRampSource(sampleRate int, totalSamples int64, step float32) *MockSource {
	return NewMockSource(sampleRate, totalSamples, func(sample int64) float32 {
		return float32(sample) * step
	})
}

func (m *MockSource) SampleRate() int { return m.sampleRate }
func (m *MockSource) Len() int64      { return m.totalSamples }

func (m *MockSource) ReadAt(dst []float32, pos int64) (int, error) {
	if pos >= m.totalSamples {
		return 0, io.EOF
	}
	if pos < 0 {
		pos = 0
	}

	n := len(dst)
	if avail := m.totalSamples - pos; int64(n) > avail {
		n = int(avail)
	}
	for i := range n {
		dst[i] = m.waveform(pos + int64(i))
	}

	if pos+int64(n) >= m.totalSamples {
		return n, io.EOF
	}
	return n, nil
}
