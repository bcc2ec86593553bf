// SPDX-License-Identifier: EPL-2.0

package sources

import (
	"fmt"
	"io"

	"github.com/go-audio/aiff"
)

// FromAIFF decodes a whole AIFF stream into one Memory source per channel.
func FromAIFF(r io.Reader) ([]*Memory, error) {
	dec := aiff.NewDecoder(asReadSeeker(r))
	if !dec.IsValidFile() {
		return nil, ErrNotAiffFile
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("sources: decoding aiff: %w", err)
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
