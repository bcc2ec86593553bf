// SPDX-License-Identifier: EPL-2.0

package sources

import "io"

// Memory is an in-memory mono sample source. It is immutable after
// construction and therefore safe for concurrent reads.
type Memory struct {
	rate    int
	samples []float32
}

// NewMemory wraps samples as a source at the given rate. The slice is
// borrowed, not copied; the caller must not mutate it afterwards.
func NewMemory(rate int, samples []float32) (*Memory, error) {
	if rate <= 0 {
		return nil, ErrInvalidRate
	}
	return &Memory{rate: rate, samples: samples}, nil
}

func (m *Memory) SampleRate() int { return m.rate }
func (m *Memory) Len() int64      { return int64(len(m.samples)) }

// ReadAt fills dst from absolute position pos. Reads at or past the end
// return io.EOF; a read ending exactly at the end reports its full count
// alongside io.EOF.
func (m *Memory) ReadAt(dst []float32, pos int64) (int, error) {
	if pos < 0 {
		return 0, ErrInvalidPosition
	}
	if pos >= int64(len(m.samples)) {
		return 0, io.EOF
	}

	n := copy(dst, m.samples[pos:])
	if pos+int64(n) >= int64(len(m.samples)) {
		return n, io.EOF
	}
	return n, nil
}

// deinterleave splits interleaved frames into one Memory source per channel.
func deinterleave(rate, channels int, data []float32) ([]*Memory, error) {
	if len(data) == 0 {
		return nil, ErrNoAudio
	}

	frames := len(data) / channels
	out := make([]*Memory, channels)
	for c := range out {
		samples := make([]float32, frames)
		for f := range frames {
			samples[f] = data[f*channels+c]
		}
		src, err := NewMemory(rate, samples)
		if err != nil {
			return nil, err
		}
		out[c] = src
	}

	return out, nil
}
