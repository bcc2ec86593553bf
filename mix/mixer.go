// SPDX-License-Identifier: EPL-2.0

package mix

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/rkusa/gm/math32"

	"github.com/ik5/mixdown/resample"
)

// Per-track lookahead queue sizing. The queue absorbs the mismatch between
// the chunks a resampler wants to see and the block sizes the caller asks
// for; unread tail samples survive across Process calls.
const (
	queueMaxLen = 65536
	processLen  = 1024
)

// Config describes one Mixer. All knobs are explicit; the engine reads no
// global state.
type Config struct {
	// Tracks to mix. Borrowed: the caller keeps sources alive and unchanged
	// in identity for the Mixer's lifetime.
	Tracks []Track

	// Warp selects the time-warp policy (DefaultWarp, TimeTrackWarp or
	// ScrubWarp).
	Warp WarpOptions

	// StartTime and StopTime bound processing in global seconds. Equal
	// values mean "the full occupied extent of all tracks", resolved at
	// construction; that sentinel requires constant-speed mode.
	StartTime, StopTime float64

	// Output shape.
	NumChannels int
	BufferSize  int
	Interleaved bool
	Rate        int
	Format      SampleFormat

	// HighQuality selects the best resampler preset instead of the fast
	// one.
	HighQuality bool

	// Spec optionally routes tracks to channels. When nil every track
	// feeds every channel. Borrowed like Tracks.
	Spec *MixerSpec

	// Strict makes source read failures fatal to Process. When false a
	// damaged region plays as silence, which is the right trade for live
	// playback; export paths want Strict to avoid writing a bad file.
	Strict bool
}

// Mixer merges multiple, possibly differently-rated, time-warped tracks into
// one output stream, applying gain, panning, envelopes and resampling.
//
// A Mixer is single-threaded: Process, Reposition, Restart and
// SetTimesAndSpeed must be serialized by the caller.
type Mixer struct {
	tracks      []Track
	warp        WarpOptions
	spec        *MixerSpec
	strict      bool
	applyGains  bool
	highQuality bool

	rate        float64
	rateInt     int
	numChannels int
	bufferSize  int
	interleaved bool
	format      SampleFormat

	t0, t1 float64
	time   float64
	speed  float64

	// Per-track streaming state.
	fillPos    []int64 // next source sample to fetch
	resamplers []*resample.Resampler
	queues     [][]float32
	qStart     []int
	qLen       []int

	// Scratch and output, sized once at construction; Process does not
	// allocate.
	flags   []bool
	gains   []float32
	scratch []float32
	temp    [][]float32
	buffers [][]byte
}

// NewMixer builds a Mixer. Construction fails, rather than degrading, when a
// per-track resampler cannot be initialized or the configuration is invalid.
func NewMixer(cfg Config) (*Mixer, error) {
	if len(cfg.Tracks) == 0 {
		return nil, ErrNoTracks
	}
	for i := range cfg.Tracks {
		if cfg.Tracks[i].Source == nil {
			return nil, fmt.Errorf("track %d: %w", i, ErrNilSource)
		}
		if cfg.Tracks[i].Source.SampleRate() <= 0 {
			return nil, fmt.Errorf("track %d: %w", i, ErrInvalidRate)
		}
	}
	if cfg.Rate <= 0 {
		return nil, ErrInvalidRate
	}
	if cfg.NumChannels < 1 {
		return nil, ErrInvalidChannels
	}
	if cfg.BufferSize < 1 {
		return nil, ErrInvalidBufferSize
	}
	if !cfg.Format.valid() {
		return nil, ErrInvalidFormat
	}
	if cfg.Spec != nil &&
		(cfg.Spec.NumTracks() != len(cfg.Tracks) || cfg.Spec.NumChannels() != cfg.NumChannels) {
		return nil, ErrSpecMismatch
	}
	if cfg.StartTime > cfg.StopTime {
		return nil, ErrReversedRange
	}

	variable := cfg.Warp.mode != warpConstant

	t0, t1 := cfg.StartTime, cfg.StopTime
	if t0 == t1 {
		if variable {
			return nil, ErrExplicitRangeRequired
		}
		t0 = 0
		t1 = 0
		for i := range cfg.Tracks {
			src := cfg.Tracks[i].Source
			if ext := float64(src.Len()) / float64(src.SampleRate()); ext > t1 {
				t1 = ext
			}
		}
	}

	m := &Mixer{
		tracks:      cfg.Tracks,
		warp:        cfg.Warp,
		spec:        cfg.Spec,
		strict:      cfg.Strict,
		applyGains:  true,
		highQuality: cfg.HighQuality,
		rate:        float64(cfg.Rate),
		rateInt:     cfg.Rate,
		numChannels: cfg.NumChannels,
		bufferSize:  cfg.BufferSize,
		interleaved: cfg.Interleaved,
		format:      cfg.Format,
		t0:          t0,
		t1:          t1,
		time:        t0,
		speed:       1,
	}

	if cfg.Warp.mode == warpScrub {
		m.speed = clampSpeed(1, cfg.Warp.minSpeed, cfg.Warp.maxSpeed)
	}

	if err := m.makeResamplers(variable); err != nil {
		return nil, err
	}

	m.flags = make([]bool, m.numChannels)
	m.gains = make([]float32, m.numChannels)
	m.scratch = make([]float32, m.bufferSize)
	m.temp = make([][]float32, m.numChannels)
	for c := range m.temp {
		m.temp[c] = make([]float32, m.bufferSize)
	}

	width := m.format.Width()
	if m.interleaved {
		m.buffers = [][]byte{make([]byte, m.bufferSize*m.numChannels*width)}
	} else {
		m.buffers = make([][]byte, m.numChannels)
		for c := range m.buffers {
			m.buffers[c] = make([]byte, m.bufferSize*width)
		}
	}

	m.fillPos = make([]int64, len(m.tracks))
	m.resetStreams()

	return m, nil
}

func (m *Mixer) makeResamplers(variable bool) error {
	quality := resample.QualityMedium
	if m.highQuality {
		quality = resample.QualityBest
	}

	var lo, hi float64
	if variable {
		switch m.warp.mode {
		case warpScrub:
			lo, hi = m.warp.minSpeed, m.warp.maxSpeed
		case warpTimeTrack:
			lo, hi = m.warp.tt.SpeedBounds()
		}
		if !(lo > 0) || lo > hi {
			return ErrInvalidSpeed
		}
	}

	m.resamplers = make([]*resample.Resampler, len(m.tracks))
	m.queues = make([][]float32, len(m.tracks))
	m.qStart = make([]int, len(m.tracks))
	m.qLen = make([]int, len(m.tracks))

	for i := range m.tracks {
		trackRate := m.tracks[i].Source.SampleRate()

		var mode resample.Mode
		switch {
		case variable:
			base := m.rate / float64(trackRate)
			mode = resample.Variable(base/hi, base/lo)
		case trackRate != m.rateInt:
			mode = resample.Fixed(trackRate, m.rateInt)
		default:
			continue
		}

		r, err := resample.New(quality, mode)
		if err != nil {
			return fmt.Errorf("mixer: track %d resampler: %w", i, err)
		}
		m.resamplers[i] = r
		m.queues[i] = make([]float32, queueMaxLen)
	}

	return nil
}

// ApplyTrackGains toggles whether per-track gain and pan are applied. When
// off every track mixes at unity, which export paths use to capture raw
// unmixed levels.
func (m *Mixer) ApplyTrackGains(apply bool) {
	m.applyGains = apply
}

// CurrentTime reports the unwarped global time cursor in seconds. Useful
// for progress reporting; always within the configured bounds.
func (m *Mixer) CurrentTime() float64 {
	return m.time
}

// Buffer returns the packed output of the last Process call: the interleaved
// buffer in interleaved mode, channel 0 otherwise. The view is valid only
// until the next Process call; size the read by the produced count times
// Format.Width() (times NumChannels when interleaved).
func (m *Mixer) Buffer() []byte {
	return m.buffers[0]
}

// ChannelBuffer returns one channel's packed output in planar mode, or nil
// in interleaved mode or for an out-of-range channel.
func (m *Mixer) ChannelBuffer(c int) []byte {
	if m.interleaved || c < 0 || c >= len(m.buffers) {
		return nil
	}
	return m.buffers[c]
}

// Process mixes up to maxSamples output samples (bounded by the configured
// block size) into the output buffers and advances the time cursor by the
// produced count over the output rate.
//
// Returns 0 exactly when every track is exhausted for the configured range;
// that is the sole termination signal and repeats on further calls. Read
// errors surface only in strict mode; a non-monotonic time track surfaces in
// any mode.
func (m *Mixer) Process(maxSamples int) (int, error) {
	if maxSamples <= 0 {
		return 0, nil
	}
	maxOut := maxSamples
	if maxOut > m.bufferSize {
		maxOut = m.bufferSize
	}
	if rem := m.remaining(); rem < int64(maxOut) {
		maxOut = int(rem)
	}
	if maxOut <= 0 {
		return 0, nil
	}

	for c := range m.temp {
		clear(m.temp[c][:maxOut])
	}

	out := 0
	for i := range m.tracks {
		m.trackFlags(i)
		m.trackGains(i)

		var (
			n   int
			err error
		)
		if m.resamplers[i] != nil {
			n, err = m.mixVariableRate(i, maxOut)
		} else {
			n, err = m.mixSameRate(i, maxOut)
		}
		if err != nil {
			return 0, err
		}
		if n > out {
			out = n
		}
	}

	if out > 0 {
		m.pack(out)
	}
	m.time += float64(out) / m.rate
	if m.time > m.t1 {
		m.time = m.t1
	}

	return out, nil
}

// remaining is the output sample count left before the stop time.
func (m *Mixer) remaining() int64 {
	return int64(math.Round((m.t1 - m.time) * m.rate))
}

// mixSameRate is the fast path for a track already at the output rate with
// no active warp: a direct block read, envelope and accumulate.
func (m *Mixer) mixSameRate(i, maxOut int) (int, error) {
	trk := &m.tracks[i]
	src := trk.Source
	pos := m.fillPos[i]
	srcLen := src.Len()
	if pos >= srcLen {
		return 0, nil
	}

	slen := int64(maxOut)
	if avail := srcLen - pos; avail < slen {
		slen = avail
	}

	n, err := src.ReadAt(m.scratch[:slen], pos)
	if err != nil && !errors.Is(err, io.EOF) {
		if m.strict {
			return 0, fmt.Errorf("mixer: track %d read at %d: %w", i, pos, err)
		}
		n = 0 // damaged region plays as silence
	}
	for j := n; j < int(slen); j++ {
		m.scratch[j] = 0
	}

	if trk.Env != nil {
		trackRate := float64(src.SampleRate())
		t := float64(pos) / trackRate
		inv := 1 / trackRate
		for j := 0; j < int(slen); j++ {
			m.scratch[j] *= float32(trk.Env.ValueAt(t + float64(j)*inv))
		}
	}

	m.accumulate(m.scratch[:slen])
	m.fillPos[i] = pos + slen

	return int(slen), nil
}

// mixVariableRate feeds a track through its lookahead queue and resampler:
// refill the queue from the source, hand the resampler chunks at the current
// warp factor, accumulate whatever it produces.
func (m *Mixer) mixVariableRate(i, maxOut int) (int, error) {
	trk := &m.tracks[i]
	srcLen := trk.Source.Len()
	trackRate := float64(trk.Source.SampleRate())
	res := m.resamplers[i]

	out := 0
	for out < maxOut {
		if m.qLen[i] < processLen && m.fillPos[i] < srcLen {
			if err := m.refillQueue(i, srcLen); err != nil {
				return 0, err
			}
		}

		chunk := m.qLen[i]
		if chunk > processLen {
			chunk = processLen
		}
		// Only the final chunk of the final refill may flush the resampler.
		last := m.fillPos[i] >= srcLen && chunk == m.qLen[i]

		factor, err := m.warpFactor(trackRate, out, maxOut)
		if err != nil {
			return 0, err
		}

		q := m.queues[i][m.qStart[i] : m.qStart[i]+chunk]
		consumed, produced := res.Process(factor, q, last, m.scratch[out:maxOut])
		m.qStart[i] += consumed
		m.qLen[i] -= consumed
		out += produced

		if produced == 0 && (last || consumed == 0) {
			break
		}
	}

	if out > 0 {
		m.accumulate(m.scratch[:out])
	}

	return out, nil
}

// refillQueue tops the track's queue up from the source, applying the
// envelope at the samples' local times while they are still at the source
// rate.
func (m *Mixer) refillQueue(i int, srcLen int64) error {
	trk := &m.tracks[i]

	if m.qStart[i] > 0 {
		copy(m.queues[i], m.queues[i][m.qStart[i]:m.qStart[i]+m.qLen[i]])
		m.qStart[i] = 0
	}

	want := queueMaxLen - m.qLen[i]
	if avail := srcLen - m.fillPos[i]; int64(want) > avail {
		want = int(avail)
	}
	if want <= 0 {
		return nil
	}

	dst := m.queues[i][m.qLen[i] : m.qLen[i]+want]
	n, err := trk.Source.ReadAt(dst, m.fillPos[i])
	if err != nil && !errors.Is(err, io.EOF) {
		if m.strict {
			return fmt.Errorf("mixer: track %d read at %d: %w", i, m.fillPos[i], err)
		}
		n = 0
	}
	for j := n; j < want; j++ {
		dst[j] = 0
	}

	if trk.Env != nil {
		trackRate := float64(trk.Source.SampleRate())
		t := float64(m.fillPos[i]) / trackRate
		inv := 1 / trackRate
		for j := 0; j < want; j++ {
			dst[j] *= float32(trk.Env.ValueAt(t + float64(j)*inv))
		}
	}

	m.qLen[i] += want
	m.fillPos[i] += int64(want)

	return nil
}

// warpFactor is the resampling ratio for the chunk starting out samples into
// the current block: (outputRate / trackRate) divided by the playback speed
// over the chunk's global time window.
func (m *Mixer) warpFactor(trackRate float64, out, maxOut int) (float64, error) {
	base := m.rate / trackRate

	switch m.warp.mode {
	case warpScrub:
		return base / m.speed, nil
	case warpTimeTrack:
		t := m.time + float64(out)/m.rate
		tEnd := m.time + float64(maxOut)/m.rate
		if tEnd <= t {
			tEnd = t + 1/m.rate
		}
		speed := (m.warp.tt.WarpTime(tEnd) - m.warp.tt.WarpTime(t)) / (tEnd - t)
		if speed <= 0 {
			return 0, ErrNonMonotonicWarp
		}
		return base / speed, nil
	}

	return base, nil
}

// trackFlags resolves the routing row for track i into m.flags.
func (m *Mixer) trackFlags(i int) {
	for c := range m.flags {
		if m.spec != nil {
			m.flags[c] = m.spec.Get(i, c)
		} else {
			m.flags[c] = true
		}
	}
}

// trackGains resolves per-channel gains for track i into m.gains.
func (m *Mixer) trackGains(i int) {
	if !m.applyGains {
		for c := range m.gains {
			m.gains[c] = 1
		}
		return
	}

	trk := &m.tracks[i]
	g := float32(trk.Gain)
	if m.numChannels == 2 {
		l, r := panGains(float32(trk.Pan))
		m.gains[0] = g * l
		m.gains[1] = g * r
		return
	}
	for c := range m.gains {
		m.gains[c] = g
	}
}

// panGains is the constant-power pan law for a mono source into stereo.
func panGains(pan float32) (l, r float32) {
	if pan > 1 {
		pan = 1
	} else if pan < -1 {
		pan = -1
	}
	const coef = math32.Pi / 4
	return math32.Sincos((1 - pan) * coef)
}

// accumulate adds src into every routed channel's accumulator with that
// channel's gain.
func (m *Mixer) accumulate(src []float32) {
	for c := 0; c < m.numChannels; c++ {
		if !m.flags[c] {
			continue
		}
		g := m.gains[c]
		if g == 0 {
			continue
		}
		dst := m.temp[c]
		for j, v := range src {
			dst[j] += v * g
		}
	}
}

// pack converts the float accumulators into the requested output format and
// layout.
func (m *Mixer) pack(out int) {
	width := m.format.Width()
	if m.interleaved {
		dst := m.buffers[0]
		for j := 0; j < out; j++ {
			for c := 0; c < m.numChannels; c++ {
				packSample(m.format, dst, (j*m.numChannels+c)*width, m.temp[c][j])
			}
		}
		return
	}
	for c := 0; c < m.numChannels; c++ {
		dst := m.buffers[c]
		for j := 0; j < out; j++ {
			packSample(m.format, dst, j*width, m.temp[c][j])
		}
	}
}

// Restart rewinds to the start time and clears all per-track queue and
// resampler state.
func (m *Mixer) Restart() {
	m.time = m.t0
	m.resetStreams()
}

// Reposition moves the time cursor to t. Queue and resampler state is
// flushed so the discontinuity cannot smear into the next block. skipping
// suppresses clamping to the configured bounds, for callers that seek
// outside them temporarily (loop wrap lookahead).
func (m *Mixer) Reposition(t float64, skipping bool) {
	if !skipping {
		if t < m.t0 {
			t = m.t0
		}
		if t > m.t1 {
			t = m.t1
		}
	}
	m.time = t
	m.resetStreams()
}

// SetTimesAndSpeed atomically updates the active bounds and, for scrub mode,
// the instantaneous speed, taking effect on the next Process call. Speeds
// outside the constructed scrub range are clamped, not rejected: live scrub
// input may momentarily overshoot and should not error mid-gesture. Source
// cursors are deliberately left alone so audio stays continuous; use
// Reposition for an actual jump.
func (m *Mixer) SetTimesAndSpeed(t0, t1, speed float64) error {
	if m.warp.mode != warpScrub {
		return ErrNotScrubbing
	}
	if t0 > t1 {
		return ErrReversedRange
	}

	m.t0 = t0
	m.t1 = t1
	m.speed = clampSpeed(speed, m.warp.minSpeed, m.warp.maxSpeed)
	m.time = t0

	return nil
}

func clampSpeed(speed, lo, hi float64) float64 {
	if speed < lo {
		return lo
	}
	if speed > hi {
		return hi
	}
	return speed
}

// localTime maps global time to a track's local fetch time at reposition
// points.
func (m *Mixer) localTime(t float64) float64 {
	if m.warp.mode == warpTimeTrack {
		return m.warp.tt.WarpTime(t)
	}
	return t
}

// resetStreams reseats every track cursor at the current time and drops
// in-flight queue and resampler state.
func (m *Mixer) resetStreams() {
	lt := m.localTime(m.time)
	for i := range m.tracks {
		trackRate := float64(m.tracks[i].Source.SampleRate())
		pos := int64(math.Round(lt * trackRate))
		if pos < 0 {
			pos = 0
		}
		m.fillPos[i] = pos
		m.qStart[i] = 0
		m.qLen[i] = 0
		if m.resamplers[i] != nil {
			m.resamplers[i].Reset()
		}
	}
}
