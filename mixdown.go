// SPDX-License-Identifier: EPL-2.0

package mixdown

import (
	"errors"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/ik5/mixdown/mix"
	"github.com/ik5/mixdown/utils"
)

// ErrInvalidBitDepth is returned by RenderWAV for bit depths other than 16
// and 24.
var ErrInvalidBitDepth = errors.New("mixdown: bit depth must be 16 or 24")

// MixToFloat32 is a high-level convenience function that mixes tracks down
// to a single mono float32 stream at the given rate.
//
// Tracks at other sample rates are resampled; gain, pan and envelopes apply
// as configured on each track. bufferSize controls the block size of the
// underlying engine (4096 is a good default). Read failures are fatal, so a
// damaged source yields an error rather than a silently truncated mix.
//
// For multi-channel output, routing or time warping, build a mix.Mixer
// directly.
func MixToFloat32(tracks []mix.Track, rate, bufferSize int) ([]float32, error) {
	m, err := mix.NewMixer(mix.Config{
		Tracks:      tracks,
		Rate:        rate,
		NumChannels: 1,
		BufferSize:  bufferSize,
		Interleaved: true,
		Format:      mix.FormatFloat32,
		Strict:      true,
	})
	if err != nil {
		return nil, err
	}

	// Pre-size for two seconds and grow as needed.
	mixed := make([]float32, 0, rate*2)
	for {
		n, err := m.Process(bufferSize)
		if err != nil {
			return nil, fmt.Errorf("mixdown: %w", err)
		}
		if n == 0 {
			return mixed, nil
		}

		buf := m.Buffer()
		for j := 0; j < n; j++ {
			mixed = append(mixed, mix.UnpackSample(mix.FormatFloat32, buf, j*4))
		}
	}
}

// RenderWAV mixes tracks and writes the result as a PCM WAV stream: the full
// extent of all tracks, at the given rate and channel count, at 16 or 24
// bits per sample.
//
// Stereo output applies constant-power panning from each track's Pan; other
// channel counts send every track to every channel at its gain. The mix runs
// in strict mode, so a source read failure aborts the render instead of
// writing a corrupt file.
func RenderWAV(w io.WriteSeeker, tracks []mix.Track, rate, numChannels, bitDepth, bufferSize int) error {
	if bitDepth != 16 && bitDepth != 24 {
		return ErrInvalidBitDepth
	}

	m, err := mix.NewMixer(mix.Config{
		Tracks:      tracks,
		Rate:        rate,
		NumChannels: numChannels,
		BufferSize:  bufferSize,
		Interleaved: true,
		Format:      mix.FormatFloat32,
		Strict:      true,
	})
	if err != nil {
		return err
	}

	enc := wav.NewEncoder(w, rate, bitDepth, numChannels, 1)
	block := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: numChannels, SampleRate: rate},
		Data:           make([]int, bufferSize*numChannels),
		SourceBitDepth: bitDepth,
	}

	for {
		n, err := m.Process(bufferSize)
		if err != nil {
			return fmt.Errorf("mixdown: %w", err)
		}
		if n == 0 {
			break
		}

		buf := m.Buffer()
		block.Data = block.Data[:n*numChannels]
		for j := range block.Data {
			v := mix.UnpackSample(mix.FormatFloat32, buf, j*4)
			if bitDepth == 16 {
				block.Data[j] = int(utils.Float32ToInt16(v))
			} else {
				block.Data[j] = int(utils.Float32ToInt24(v))
			}
		}

		if err := enc.Write(block); err != nil {
			return fmt.Errorf("mixdown: writing wav: %w", err)
		}
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("mixdown: closing wav: %w", err)
	}
	return nil
}
