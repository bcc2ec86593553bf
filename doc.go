// SPDX-License-Identifier: EPL-2.0

// Package mixdown mixes multiple audio tracks of arbitrary sample rates into
// a single stream, with per-track gain, panning, envelopes, channel routing
// and optional time warping.
//
// # Architecture
//
// The library is organized as focused packages:
//   - mix: the mixing engine (Mixer, MixerSpec, warp policies, envelopes)
//   - resample: fixed and variable rate sample rate conversion
//   - sources: mix.SampleSource implementations (memory, WAV, AIFF, MP3, Ogg)
//   - utils: sample format conversion and interpolation primitives
//
// The root package provides high-level convenience functions for the common
// cases; use the mix package directly for block-by-block control.
//
// # Quick Start
//
// Mix two in-memory tracks down to one mono float stream:
//
//	a, _ := sources.NewMemory(44100, samplesA)
//	b, _ := sources.NewMemory(44100, samplesB)
//	mixed, err := mixdown.MixToFloat32([]mix.Track{
//	    {Source: a, Gain: 1},
//	    {Source: b, Gain: 0.5, Pan: 0.3},
//	}, 44100, 4096)
//
// Render the same tracks to a 16-bit stereo WAV file:
//
//	f, _ := os.Create("out.wav")
//	err := mixdown.RenderWAV(f, tracks, 44100, 2, 16, 4096)
//
// # Sample Format
//
// Audio samples are represented as float32 in the range [-1.0, 1.0]:
//   - 0.0 represents silence
//   - 1.0 represents maximum positive amplitude
//   - -1.0 represents maximum negative amplitude
//
// Tracks at other sample rates are converted transparently; the mix happens
// at one output rate chosen by the caller.
package mixdown
