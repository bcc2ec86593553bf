// SPDX-License-Identifier: EPL-2.0

package sources

import "errors"

var (
	ErrInvalidRate     = errors.New("sources: sample rate must be positive")
	ErrInvalidPosition = errors.New("sources: negative read position")
	ErrNoAudio         = errors.New("sources: no audio data")
	ErrNotWavFile      = errors.New("sources: not a valid WAV file")
	ErrNotAiffFile     = errors.New("sources: not a valid AIFF file")
)
