// SPDX-License-Identifier: EPL-2.0

package sources

import (
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"

	"github.com/ik5/mixdown/utils"
)

// FromMP3 decodes a whole MP3 stream into one Memory source per channel.
// go-mp3 always emits two channels of 16-bit little-endian PCM.
func FromMP3(r io.Reader) ([]*Memory, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("sources: decoding mp3: %w", err)
	}

	raw, err := io.ReadAll(dec)
	if err != nil {
		return nil, fmt.Errorf("sources: decoding mp3: %w", err)
	}

	samples := make([]float32, len(raw)/2)
	for i := range samples {
		v := int16(uint16(raw[2*i]) | uint16(raw[2*i+1])<<8)
		samples[i] = utils.Int16ToFloat32(v)
	}

	return deinterleave(dec.SampleRate(), 2, samples)
}
