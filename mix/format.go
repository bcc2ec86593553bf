// SPDX-License-Identifier: EPL-2.0

package mix

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/ik5/mixdown/utils"
)

// SampleFormat is the packed output sample format.
type SampleFormat int

const (
	// FormatInt16 packs samples as little-endian signed 16-bit PCM.
	FormatInt16 SampleFormat = iota
	// FormatInt24 packs samples as little-endian signed 24-bit PCM, three
	// bytes per sample.
	FormatInt24
	// FormatFloat32 packs samples as little-endian IEEE 754 float32,
	// passed through without clamping.
	FormatFloat32
)

// Width returns the packed size of one sample in bytes.
func (f SampleFormat) Width() int {
	switch f {
	case FormatInt16:
		return 2
	case FormatInt24:
		return 3
	case FormatFloat32:
		return 4
	}
	return 0
}

func (f SampleFormat) String() string {
	switch f {
	case FormatInt16:
		return "int16"
	case FormatInt24:
		return "int24"
	case FormatFloat32:
		return "float32"
	}
	return fmt.Sprintf("SampleFormat(%d)", int(f))
}

func (f SampleFormat) valid() bool {
	return f == FormatInt16 || f == FormatInt24 || f == FormatFloat32
}

// packSample writes one accumulated sample into dst at byte offset off.
// Integer formats round (half away from zero) and saturate at the format
// boundaries; float passes through.
func packSample(f SampleFormat, dst []byte, off int, v float32) {
	switch f {
	case FormatInt16:
		binary.LittleEndian.PutUint16(dst[off:], uint16(utils.Float32ToInt16(v)))
	case FormatInt24:
		u := uint32(utils.Float32ToInt24(v))
		dst[off] = byte(u)
		dst[off+1] = byte(u >> 8)
		dst[off+2] = byte(u >> 16)
	case FormatFloat32:
		binary.LittleEndian.PutUint32(dst[off:], math.Float32bits(v))
	}
}

// UnpackSample reads back one packed sample from src at byte offset off.
func UnpackSample(f SampleFormat, src []byte, off int) float32 {
	switch f {
	case FormatInt16:
		return utils.Int16ToFloat32(int16(binary.LittleEndian.Uint16(src[off:])))
	case FormatInt24:
		u := uint32(src[off]) | uint32(src[off+1])<<8 | uint32(src[off+2])<<16
		return utils.Int24ToFloat32(int32(u<<8) >> 8)
	case FormatFloat32:
		return math.Float32frombits(binary.LittleEndian.Uint32(src[off:]))
	}
	return 0
}
