// SPDX-License-Identifier: EPL-2.0

package sources

import (
	"fmt"
	"io"
)

// asReadSeeker returns r unchanged when it can seek; otherwise the whole
// stream is slurped into memory. go-audio decoders need random access, and
// whole-file decoding buffers everything anyway.
func asReadSeeker(r io.Reader) io.ReadSeeker {
	if rs, ok := r.(io.ReadSeeker); ok {
		return rs
	}
	data, err := io.ReadAll(r)
	if err != nil {
		data = nil
	}
	return &memSeeker{data: data}
}

// memSeeker implements io.ReadSeeker over an in-memory byte slice.
type memSeeker struct {
	data   []byte
	offset int64
}

func (m *memSeeker) Read(p []byte) (int, error) {
	if m.offset >= int64(len(m.data)) {
		return 0, io.EOF
	}
	n := copy(p, m.data[m.offset:])
	m.offset += int64(n)
	return n, nil
}

func (m *memSeeker) Seek(offset int64, whence int) (int64, error) {
	var pos int64
	switch whence {
	case io.SeekStart:
		pos = offset
	case io.SeekCurrent:
		pos = m.offset + offset
	case io.SeekEnd:
		pos = int64(len(m.data)) + offset
	default:
		return 0, fmt.Errorf("sources: invalid whence %d", whence)
	}
	if pos < 0 {
		return 0, fmt.Errorf("sources: negative seek position")
	}
	m.offset = pos
	return pos, nil
}
