// SPDX-License-Identifier: EPL-2.0

// Package mix implements the mixing engine: it pulls samples from multiple
// tracks, applies per-track gain, pan and envelopes, resamples each track to
// a common output rate under an optional time warp, routes tracks to output
// channels and packs the result into PCM buffers.
//
// # Tracks and Sources
//
// A track wraps a SampleSource with its mixing parameters:
//
//	type SampleSource interface {
//	    SampleRate() int
//	    Len() int64
//	    ReadAt(dst []float32, pos int64) (int, error)
//	}
//
// ReadAt is positional, so the engine can reposition freely without the
// source keeping a cursor. Reads past the end return io.EOF with a short
// count; the engine treats the region beyond Len as silence.
//
// # Mixing
//
// A Mixer is built from an explicit Config and driven block by block:
//
//	m, err := mix.NewMixer(mix.Config{
//	    Tracks:      tracks,
//	    Rate:        44100,
//	    NumChannels: 2,
//	    BufferSize:  4096,
//	    Interleaved: true,
//	    Format:      mix.FormatInt16,
//	})
//	for {
//	    n, err := m.Process(4096)
//	    if err != nil || n == 0 {
//	        break
//	    }
//	    // consume n samples from m.Buffer()
//	}
//
// Process returning 0 is the termination signal: every track is exhausted
// for the configured time range, and further calls keep returning 0.
//
// # Time Warp
//
// Playback speed is selected at construction through WarpOptions:
// DefaultWarp for constant unit speed, TimeTrackWarp to drive the speed from
// a curve, ScrubWarp for interactive variable speed updated via
// SetTimesAndSpeed. Under a warp every track runs through a variable-rate
// resampler whose ratio follows the instantaneous speed.
//
// # Routing
//
// A MixerSpec is a track-by-channel boolean matrix deciding which tracks
// feed which output channels. Without a spec every track feeds every
// channel, with constant-power panning applied when the output is stereo.
//
// # Output
//
// Accumulation happens in float32. The final packing format is chosen per
// Mixer: FormatInt16 and FormatInt24 round and saturate, FormatFloat32
// passes the accumulated values through unclamped. Output is either one
// interleaved buffer or one planar buffer per channel.
package mix
