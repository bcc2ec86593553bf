// SPDX-License-Identifier: EPL-2.0

// Package resample converts contiguous mono float32 buffers between sample
// rates, either at a fixed ratio or with a continuously variable ratio.
//
// # Modes
//
// A Resampler is constructed in one of two modes, chosen explicitly with a
// tagged Mode value:
//
//	r, err := resample.New(resample.QualityHigh, resample.Fixed(44100, 48000))
//	r, err := resample.New(resample.QualityHigh, resample.Variable(0.5, 2.0))
//
// Fixed mode converts at the constant ratio dstRate/srcRate and is backed by
// the pure-Go go-audio-resampler engine (polyphase FIR, Kaiser window).
// Variable mode accepts an updated ratio on every Process call, which is what
// interactive variable-speed playback (scrubbing) and time-warped playback
// need; it tracks the stream with a Catmull-Rom cubic interpolator so the
// ratio can change between any two calls without a discontinuity.
//
// # Quality
//
// Four presets are accepted, ordered fastest to best:
//
//	QualityLow, QualityMedium, QualityHigh, QualityBest
//
// Higher presets cost more CPU and reconstruct the signal more faithfully.
// In Variable mode the preset is accepted for interface symmetry; the cubic
// tracker is the single algorithm that supports instantaneous ratio updates.
//
// # Streaming contract
//
//	consumed, produced := r.Process(factor, in, last, out)
//
// Process never reads past len(in) and never writes past len(out). Input that
// was consumed but not yet emitted stays buffered inside the Resampler and is
// delivered by later calls; no tail samples are ever dropped. Passing
// last=true declares end of input and flushes everything still held in the
// filter state. After the final flush, Process keeps returning zero counts.
package resample
