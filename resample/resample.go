// SPDX-License-Identifier: EPL-2.0

package resample

import (
	"fmt"

	resampler "github.com/tphakala/go-audio-resampler"

	"github.com/ik5/mixdown/utils"
)

// Quality selects a conversion preset, ordered fastest to best.
type Quality int

const (
	QualityLow Quality = iota
	QualityMedium
	QualityHigh
	QualityBest
)

func (q Quality) String() string {
	switch q {
	case QualityLow:
		return "low"
	case QualityMedium:
		return "medium"
	case QualityHigh:
		return "high"
	case QualityBest:
		return "best"
	}
	return fmt.Sprintf("Quality(%d)", int(q))
}

// Mode is the conversion mode, chosen at construction.
// Use Fixed or Variable to build one.
type Mode struct {
	variable             bool
	srcRate, dstRate     int
	minFactor, maxFactor float64
}

// Fixed requests constant-rate conversion from srcRate to dstRate.
func Fixed(srcRate, dstRate int) Mode {
	return Mode{srcRate: srcRate, dstRate: dstRate}
}

// Variable requests variable-rate conversion. The per-call factor passed to
// Process is clamped into [minFactor, maxFactor]. A factor is the output to
// input length ratio: factor 2 produces two output samples per input sample.
func Variable(minFactor, maxFactor float64) Mode {
	return Mode{variable: true, minFactor: minFactor, maxFactor: maxFactor}
}

// engine is the streaming surface of the constant-rate backend.
type engine interface {
	Process(in []float32) ([]float32, error)
	Flush() ([]float32, error)
}

// Resampler converts one mono stream. Not safe for concurrent use.
type Resampler struct {
	quality Quality
	mode    Mode

	// constant-rate state
	eng     engine
	pending []float32
	flushed bool
	broken  bool

	// variable-rate state: a four sample window around the read cursor.
	// hist[1] is the sample at the integer part of the cursor, frac the
	// fractional part between hist[1] and hist[2].
	hist     [4]float32
	primed   int
	tailPads int
	frac     float64
}

// New builds a Resampler for the given quality and mode.
// A construction error means the instance must not be used; the Mixer treats
// it as fatal rather than letting a track silently produce nothing.
func New(q Quality, m Mode) (*Resampler, error) {
	if q < QualityLow || q > QualityBest {
		return nil, ErrInvalidQuality
	}

	r := &Resampler{quality: q, mode: m}

	if m.variable {
		if !(m.minFactor > 0) || m.minFactor > m.maxFactor {
			return nil, ErrInvalidFactor
		}
		return r, nil
	}

	if m.srcRate <= 0 || m.dstRate <= 0 {
		return nil, ErrInvalidRate
	}

	eng, err := newEngine(m.srcRate, m.dstRate, q)
	if err != nil {
		return nil, fmt.Errorf("resample: %w", err)
	}
	r.eng = eng

	return r, nil
}

func newEngine(srcRate, dstRate int, q Quality) (engine, error) {
	preset := resampler.QualityMedium
	switch q {
	case QualityLow:
		preset = resampler.QualityQuick
	case QualityMedium:
		preset = resampler.QualityMedium
	case QualityHigh:
		preset = resampler.QualityHigh
	case QualityBest:
		preset = resampler.QualityVeryHigh
	}

	return resampler.NewEngineFloat32(float64(srcRate), float64(dstRate), preset)
}

// Ratio reports the fixed conversion factor, or the factor bounds in
// variable mode.
func (r *Resampler) Ratio() (min, max float64) {
	if r.mode.variable {
		return r.mode.minFactor, r.mode.maxFactor
	}
	f := float64(r.mode.dstRate) / float64(r.mode.srcRate)
	return f, f
}

// Process converts up to len(in) input samples into out.
//
// In fixed mode factor is ignored. last declares end of input: the call (and
// subsequent calls) flush whatever the conversion state still holds, even if
// in is empty. Returns how many input samples were consumed and how many
// output samples were written. Both counts are zero once the stream is fully
// drained.
func (r *Resampler) Process(factor float64, in []float32, last bool, out []float32) (consumed, produced int) {
	if r.broken || len(out) == 0 {
		return 0, 0
	}
	if r.mode.variable {
		return r.processVariable(factor, in, last, out)
	}
	return r.processFixed(in, last, out)
}

func (r *Resampler) processFixed(in []float32, last bool, out []float32) (int, int) {
	produced := r.drainPending(out)
	consumed := 0

	if len(in) > 0 && !r.flushed {
		got, err := r.eng.Process(in)
		if err != nil {
			r.broken = true
			return 0, produced
		}
		consumed = len(in)
		produced += r.deliver(got, out[produced:])
	}

	if last && !r.flushed {
		r.flushed = true
		got, err := r.eng.Flush()
		if err != nil {
			r.broken = true
			return consumed, produced
		}
		produced += r.deliver(got, out[produced:])
	}

	return consumed, produced
}

// drainPending copies buffered output into out and retains the rest.
func (r *Resampler) drainPending(out []float32) int {
	n := copy(out, r.pending)
	r.pending = r.pending[n:]
	return n
}

// deliver copies got into out, keeping any overflow for the next call.
func (r *Resampler) deliver(got, out []float32) int {
	n := copy(out, got)
	if n < len(got) {
		r.pending = append(r.pending, got[n:]...)
	}
	return n
}

func (r *Resampler) processVariable(factor float64, in []float32, last bool, out []float32) (int, int) {
	if factor < r.mode.minFactor {
		factor = r.mode.minFactor
	} else if factor > r.mode.maxFactor {
		factor = r.mode.maxFactor
	}
	step := 1 / factor

	consumed, produced := 0, 0
	for produced < len(out) {
		// The window needs three samples (the first is replicated into the
		// back-fill slot) before the cursor has valid neighbours.
		if r.primed < 3 {
			if consumed < len(in) {
				r.push(in[consumed])
				consumed++
				continue
			}
			if last && r.primed > 0 && r.tailPads < 2 {
				r.push(r.hist[3])
				r.tailPads++
				continue
			}
			break
		}

		for r.frac >= 1 {
			switch {
			case consumed < len(in):
				r.push(in[consumed])
				consumed++
			case last && r.tailPads < 2:
				// Repeat the edge sample so interpolation can reach the
				// final real sample before the stream ends.
				r.push(r.hist[3])
				r.tailPads++
			default:
				return consumed, produced
			}
			r.frac--
		}

		out[produced] = utils.CubicInterpolate(r.hist[0], r.hist[1], r.hist[2], r.hist[3], float32(r.frac))
		produced++
		r.frac += step
	}

	return consumed, produced
}

func (r *Resampler) push(v float32) {
	if r.primed == 0 {
		r.hist = [4]float32{v, v, v, v}
		r.primed = 1
		return
	}
	r.hist[0], r.hist[1], r.hist[2] = r.hist[1], r.hist[2], r.hist[3]
	r.hist[3] = v
	if r.primed < 4 {
		r.primed++
	}
}

// Reset drops all buffered input and output and restores the state the
// Resampler had right after construction. Used when playback repositions
// discontinuously, so stale filter state cannot smear across the jump.
func (r *Resampler) Reset() {
	r.pending = nil
	r.flushed = false
	r.frac = 0
	r.primed = 0
	r.tailPads = 0
	r.hist = [4]float32{}

	if !r.mode.variable && !r.broken {
		eng, err := newEngine(r.mode.srcRate, r.mode.dstRate, r.quality)
		if err != nil {
			r.broken = true
			return
		}
		r.eng = eng
	}
}
