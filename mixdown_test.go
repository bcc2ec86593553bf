// SPDX-License-Identifier: EPL-2.0

package mixdown

import (
	"bytes"
	"errors"
	"io"
	"math"
	"testing"

	"github.com/ik5/mixdown/internal/mixtest"
	"github.com/ik5/mixdown/mix"
	"github.com/ik5/mixdown/sources"
)

func TestMixToFloat32_SumsTracks(t *testing.T) {
	t.Parallel()

	mixed, err := MixToFloat32([]mix.Track{
		{Source: mixtest.NewConstantSource(8000, 8000, 0.25), Gain: 1},
		{Source: mixtest.NewConstantSource(8000, 8000, 0.5), Gain: 1},
	}, 8000, 1024)
	if err != nil {
		t.Fatalf("MixToFloat32() error = %v", err)
	}

	if len(mixed) != 8000 {
		t.Fatalf("mixed %d samples, want 8000", len(mixed))
	}
	for i, v := range mixed {
		if math.Abs(float64(v)-0.75) > 1e-6 {
			t.Fatalf("mixed[%d] = %g, want 0.75", i, v)
		}
	}
}

func TestMixToFloat32_ResamplesTrack(t *testing.T) {
	t.Parallel()

	// A one second track at half the output rate mixes to roughly one second
	// of output, within the resampler's flush tolerance.
	mixed, err := MixToFloat32([]mix.Track{
		{Source: mixtest.NewSineSource(22050, 22050, 440), Gain: 1},
	}, 44100, 4096)
	if err != nil {
		t.Fatalf("MixToFloat32() error = %v", err)
	}

	want := 44100
	if len(mixed) < want-256 || len(mixed) > want {
		t.Errorf("mixed %d samples, want ≈%d", len(mixed), want)
	}
}

// brokenSource fails every read, simulating unreadable storage.
type brokenSource struct {
	*mixtest.MockSource
	err error
}

func (b *brokenSource) ReadAt([]float32, int64) (int, error) {
	return 0, b.err
}

func TestMixToFloat32_SurfacesReadErrors(t *testing.T) {
	t.Parallel()

	errDisk := errors.New("read: i/o timeout")
	src := &brokenSource{
		MockSource: mixtest.NewConstantSource(8000, 8000, 1),
		err:        errDisk,
	}

	if _, err := MixToFloat32([]mix.Track{{Source: src, Gain: 1}}, 8000, 1024); !errors.Is(err, errDisk) {
		t.Errorf("MixToFloat32() error = %v, want wrapped %v", err, errDisk)
	}
}

// memWriteSeeker is an in-memory io.WriteSeeker for the WAV encoder.
type memWriteSeeker struct {
	data []byte
	pos  int64
}

func (m *memWriteSeeker) Write(p []byte) (int, error) {
	if need := m.pos + int64(len(p)); need > int64(len(m.data)) {
		grown := make([]byte, need)
		copy(grown, m.data)
		m.data = grown
	}
	copy(m.data[m.pos:], p)
	m.pos += int64(len(p))
	return len(p), nil
}

func (m *memWriteSeeker) Seek(offset int64, whence int) (int64, error) {
	switch whence {
	case io.SeekStart:
		m.pos = offset
	case io.SeekCurrent:
		m.pos += offset
	case io.SeekEnd:
		m.pos = int64(len(m.data)) + offset
	}
	return m.pos, nil
}

func TestRenderWAV_RoundTrip(t *testing.T) {
	t.Parallel()

	var ws memWriteSeeker
	err := RenderWAV(&ws, []mix.Track{
		{Source: mixtest.NewConstantSource(8000, 800, 0.5), Gain: 1},
	}, 8000, 2, 16, 256)
	if err != nil {
		t.Fatalf("RenderWAV() error = %v", err)
	}

	chans, err := sources.FromWAV(bytes.NewReader(ws.data))
	if err != nil {
		t.Fatalf("FromWAV() on rendered output error = %v", err)
	}
	if len(chans) != 2 {
		t.Fatalf("rendered %d channels, want 2", len(chans))
	}
	for c, src := range chans {
		if src.SampleRate() != 8000 {
			t.Errorf("channel %d rate = %d, want 8000", c, src.SampleRate())
		}
		if src.Len() != 800 {
			t.Errorf("channel %d length = %d, want 800", c, src.Len())
		}
	}

	// Center pan: each channel carries 0.5 / sqrt(2).
	want := 0.5 * math.Sqrt2 / 2
	buf := make([]float32, 800)
	for c, src := range chans {
		src.ReadAt(buf, 0)
		for i, v := range buf {
			if math.Abs(float64(v)-want) > 1e-3 {
				t.Fatalf("channel %d sample %d = %g, want %g", c, i, v, want)
			}
		}
	}
}

func TestRenderWAV_RejectsBadDepth(t *testing.T) {
	t.Parallel()

	var ws memWriteSeeker
	err := RenderWAV(&ws, []mix.Track{
		{Source: mixtest.NewSilentSource(8000, 100), Gain: 1},
	}, 8000, 1, 8, 256)
	if !errors.Is(err, ErrInvalidBitDepth) {
		t.Errorf("RenderWAV(depth 8) error = %v, want ErrInvalidBitDepth", err)
	}
}
