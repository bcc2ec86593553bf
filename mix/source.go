// SPDX-License-Identifier: EPL-2.0

package mix

// SampleSource is the read contract the engine consumes tracks through.
// Implementations present random-access, possibly cached reads of one mono
// stream; blocking, caching and storage belong behind this interface, not in
// the engine. ReadAt with overlapping or repeated ranges must be safe.
type SampleSource interface {
	// SampleRate of the stream in Hz.
	SampleRate() int
	// Len is the total number of samples available.
	Len() int64
	// ReadAt fills dst with samples starting at absolute position pos.
	// Returns the number of samples written; a short count near the end of
	// the stream is not an error. Read failures are reported so the engine
	// can apply its strict or zero-fill policy.
	ReadAt(dst []float32, pos int64) (int, error)
}

// Track binds a sample source to its mixing parameters. The Mixer borrows
// the source and never closes or mutates it; the caller keeps it alive for
// the Mixer's lifetime.
type Track struct {
	Source SampleSource

	// Gain is the scalar track gain. Use 1 for unity; the zero value mutes
	// the track.
	Gain float64

	// Pan in [-1, 1], -1 hard left. Only honoured for two-channel output.
	Pan float64

	// Env, when non-nil, is a gain curve sampled at the track's local time.
	Env Envelope
}
