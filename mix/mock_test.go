// SPDX-License-Identifier: EPL-2.0

package mix

import (
	"github.com/ik5/mixdown/internal/mixtest"
)

// failingSource wraps a mock source and fails every read at or past failAt,
// simulating a damaged region of the underlying storage.
type failingSource struct {
	*mixtest.MockSource
	failAt int64
	err    error
}

func (f *failingSource) ReadAt(dst []float32, pos int64) (int, error) {
	if pos >= f.failAt {
		return 0, f.err
	}
	return f.MockSource.ReadAt(dst, pos)
}

// unityTrack wraps a source with unity gain and centered pan.
func unityTrack(src SampleSource) Track {
	return Track{Source: src, Gain: 1}
}

// drain runs the mixer to termination, returning every produced sample of
// channel c decoded back to float32. Interleaved mixers decode from the
// single packed buffer, planar mixers from the channel buffer.
func drain(t interface {
	Fatalf(format string, args ...any)
}, m *Mixer, c, blockSize int) []float32 {
	var out []float32
	width := m.format.Width()

	for {
		n, err := m.Process(blockSize)
		if err != nil {
			t.Fatalf("Process() error = %v", err)
		}
		if n == 0 {
			return out
		}

		if m.interleaved {
			buf := m.Buffer()
			for j := 0; j < n; j++ {
				off := (j*m.numChannels + c) * width
				out = append(out, UnpackSample(m.format, buf, off))
			}
		} else {
			buf := m.ChannelBuffer(c)
			for j := 0; j < n; j++ {
				out = append(out, UnpackSample(m.format, buf, j*width))
			}
		}
	}
}
