// SPDX-License-Identifier: EPL-2.0

package sources

import (
	"errors"
	"io"
	"testing"
)

func TestNewMemory_Validation(t *testing.T) {
	t.Parallel()

	if _, err := NewMemory(0, nil); !errors.Is(err, ErrInvalidRate) {
		t.Errorf("NewMemory(0, nil) error = %v, want ErrInvalidRate", err)
	}
	if _, err := NewMemory(-44100, nil); !errors.Is(err, ErrInvalidRate) {
		t.Errorf("NewMemory(-44100, nil) error = %v, want ErrInvalidRate", err)
	}
}

func TestMemory_ReadAt(t *testing.T) {
	t.Parallel()

	m, err := NewMemory(8000, []float32{0, 1, 2, 3, 4})
	if err != nil {
		t.Fatalf("NewMemory() error = %v", err)
	}
	if m.SampleRate() != 8000 || m.Len() != 5 {
		t.Fatalf("shape = (%d, %d), want (8000, 5)", m.SampleRate(), m.Len())
	}

	dst := make([]float32, 3)

	// Interior read.
	n, err := m.ReadAt(dst, 1)
	if n != 3 || err != nil {
		t.Fatalf("ReadAt(1) = (%d, %v), want (3, nil)", n, err)
	}
	for i, want := range []float32{1, 2, 3} {
		if dst[i] != want {
			t.Errorf("dst[%d] = %g, want %g", i, dst[i], want)
		}
	}

	// Short read at the tail carries io.EOF with the partial count.
	n, err = m.ReadAt(dst, 3)
	if n != 2 || !errors.Is(err, io.EOF) {
		t.Fatalf("ReadAt(3) = (%d, %v), want (2, io.EOF)", n, err)
	}

	// Read ending exactly at the end also reports io.EOF.
	n, err = m.ReadAt(dst[:2], 3)
	if n != 2 || !errors.Is(err, io.EOF) {
		t.Fatalf("ReadAt(3) short dst = (%d, %v), want (2, io.EOF)", n, err)
	}

	// Past the end.
	n, err = m.ReadAt(dst, 5)
	if n != 0 || !errors.Is(err, io.EOF) {
		t.Fatalf("ReadAt(5) = (%d, %v), want (0, io.EOF)", n, err)
	}

	// Repeated and overlapping reads are stable.
	again := make([]float32, 3)
	if _, err := m.ReadAt(again, 1); err != nil {
		t.Fatalf("ReadAt(1) repeat error = %v", err)
	}
	for i := range again {
		if again[i] != dst0(m, 1+int64(i)) {
			t.Errorf("repeat read diverged at %d", i)
		}
	}

	// Negative position is a caller bug, not EOF.
	if _, err := m.ReadAt(dst, -1); !errors.Is(err, ErrInvalidPosition) {
		t.Errorf("ReadAt(-1) error = %v, want ErrInvalidPosition", err)
	}
}

// dst0 reads one sample for comparison.
func dst0(m *Memory, pos int64) float32 {
	var one [1]float32
	m.ReadAt(one[:], pos)
	return one[0]
}

func TestDeinterleave(t *testing.T) {
	t.Parallel()

	chans, err := deinterleave(8000, 2, []float32{0, 10, 1, 11, 2, 12})
	if err != nil {
		t.Fatalf("deinterleave() error = %v", err)
	}
	if len(chans) != 2 {
		t.Fatalf("got %d channels, want 2", len(chans))
	}

	left := make([]float32, 3)
	right := make([]float32, 3)
	chans[0].ReadAt(left, 0)
	chans[1].ReadAt(right, 0)
	for i := range 3 {
		if left[i] != float32(i) {
			t.Errorf("left[%d] = %g, want %d", i, left[i], i)
		}
		if right[i] != float32(10+i) {
			t.Errorf("right[%d] = %g, want %d", i, right[i], 10+i)
		}
	}

	if _, err := deinterleave(8000, 2, nil); !errors.Is(err, ErrNoAudio) {
		t.Errorf("deinterleave(nil) error = %v, want ErrNoAudio", err)
	}
}
