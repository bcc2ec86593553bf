// SPDX-License-Identifier: EPL-2.0

package sources

import (
	"fmt"
	"io"

	"github.com/go-audio/wav"
)

// FromWAV decodes a whole WAV stream into one Memory source per channel.
func FromWAV(r io.Reader) ([]*Memory, error) {
	dec := wav.NewDecoder(asReadSeeker(r))
	if !dec.IsValidFile() {
		return nil, ErrNotWavFile
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("sources: decoding wav: %w", err)
	}
	if buf == nil || buf.Format == nil || len(buf.Data) == 0 {
		return nil, ErrNoAudio
	}

	depth := buf.SourceBitDepth
	if depth == 0 {
		depth = int(dec.BitDepth)
	}

	return deinterleave(buf.Format.SampleRate, buf.Format.NumChannels,
		intToFloat(buf.Data, depth))
}

// intToFloat normalizes PCM integers of the given bit depth into [-1, 1).
func intToFloat(data []int, bitDepth int) []float32 {
	if bitDepth < 2 || bitDepth > 32 {
		bitDepth = 16
	}
	scale := 1 / float32(int64(1)<<(bitDepth-1))

	out := make([]float32, len(data))
	for i, v := range data {
		out[i] = float32(v) * scale
	}
	return out
}
