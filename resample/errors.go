// SPDX-License-Identifier: EPL-2.0

package resample

import "errors"

var (
	ErrInvalidQuality = errors.New("invalid resampler quality")
	ErrInvalidRate    = errors.New("sample rates must be positive")
	ErrInvalidFactor  = errors.New("factor range must be positive with min <= max")
)
