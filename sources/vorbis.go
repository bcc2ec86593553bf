// SPDX-License-Identifier: EPL-2.0

package sources

import (
	"errors"
	"fmt"
	"io"

	"github.com/jfreymuth/oggvorbis"
)

// FromOgg decodes a whole Ogg Vorbis stream into one Memory source per
// channel.
func FromOgg(r io.Reader) ([]*Memory, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("sources: decoding ogg: %w", err)
	}

	var data []float32
	buf := make([]float32, 4096)
	for {
		n, err := dec.Read(buf)
		data = append(data, buf[:n]...)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("sources: decoding ogg: %w", err)
		}
		if n == 0 {
			break
		}
	}

	return deinterleave(dec.SampleRate(), dec.Channels(), data)
}
