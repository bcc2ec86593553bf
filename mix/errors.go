// SPDX-License-Identifier: EPL-2.0

package mix

import "errors"

var (
	ErrNoTracks              = errors.New("mixer: no input tracks")
	ErrNilSource             = errors.New("mixer: track has nil source")
	ErrInvalidRate           = errors.New("mixer: sample rate must be positive")
	ErrInvalidChannels       = errors.New("mixer: channel count must be positive")
	ErrInvalidBufferSize     = errors.New("mixer: buffer size must be positive")
	ErrInvalidFormat         = errors.New("mixer: unknown sample format")
	ErrReversedRange         = errors.New("mixer: start time is after stop time")
	ErrExplicitRangeRequired = errors.New("mixer: warped playback requires an explicit time range")
	ErrSpecMismatch          = errors.New("mixer: routing spec does not match track or channel counts")
	ErrNotScrubbing          = errors.New("mixer: SetTimesAndSpeed requires scrub warp mode")
	ErrNonMonotonicWarp      = errors.New("mixer: time track moved backward")

	ErrInvalidSpeed    = errors.New("mix: speeds must be positive with min <= max")
	ErrInvalidCurve    = errors.New("mix: speed curve needs increasing times and positive speeds")
	ErrInvalidEnvelope = errors.New("mix: envelope needs increasing times and matching values")

	ErrSpecDimensions  = errors.New("mixer spec: track and channel counts must be positive")
	ErrChannelRange    = errors.New("mixer spec: channel count out of range")
	ErrIndexRange      = errors.New("mixer spec: index out of range")
)
