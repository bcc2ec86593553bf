// SPDX-License-Identifier: EPL-2.0

package mix

// MixerSpec is a boolean track-by-channel routing matrix: entry (i, c) means
// track i contributes to output channel c. The matrix is allocated for
// maxNumChannels once; SetNumChannels moves the active channel count within
// that bound without losing assignments for channels that survive.
//
// MixerSpec is not safe for concurrent use, and must not be mutated while a
// Process call referencing it is running.
type MixerSpec struct {
	numTracks      int
	numChannels    int
	maxNumChannels int
	routes         [][]bool
}

// NewMixerSpec allocates a routing matrix for numTracks tracks and up to
// maxNumChannels channels, all entries off. The active channel count starts
// at maxNumChannels.
func NewMixerSpec(numTracks, maxNumChannels int) (*MixerSpec, error) {
	if numTracks < 1 || maxNumChannels < 1 {
		return nil, ErrSpecDimensions
	}

	s := &MixerSpec{
		numTracks:      numTracks,
		numChannels:    maxNumChannels,
		maxNumChannels: maxNumChannels,
		routes:         make([][]bool, numTracks),
	}
	for i := range s.routes {
		s.routes[i] = make([]bool, maxNumChannels)
	}

	return s, nil
}

// SetNumChannels changes the active channel count. Counts outside
// [1, MaxNumChannels] are rejected and leave the spec unchanged. Assignments
// for channels below min(old, new) are preserved; newly activated channels
// start with all entries off.
func (s *MixerSpec) SetNumChannels(n int) error {
	if n < 1 || n > s.maxNumChannels {
		return ErrChannelRange
	}
	for c := s.numChannels; c < n; c++ {
		for i := range s.routes {
			s.routes[i][c] = false
		}
	}
	s.numChannels = n
	return nil
}

func (s *MixerSpec) NumTracks() int      { return s.numTracks }
func (s *MixerSpec) NumChannels() int    { return s.numChannels }
func (s *MixerSpec) MaxNumChannels() int { return s.maxNumChannels }

// Set routes track i to channel c (or unroutes it).
func (s *MixerSpec) Set(i, c int, on bool) error {
	if i < 0 || i >= s.numTracks || c < 0 || c >= s.numChannels {
		return ErrIndexRange
	}
	s.routes[i][c] = on
	return nil
}

// Get reports whether track i feeds channel c. Out-of-range indices read as
// unrouted.
func (s *MixerSpec) Get(i, c int) bool {
	if i < 0 || i >= s.numTracks || c < 0 || c >= s.numChannels {
		return false
	}
	return s.routes[i][c]
}

// Clone returns a deep copy of the spec.
func (s *MixerSpec) Clone() *MixerSpec {
	dup := &MixerSpec{
		numTracks:      s.numTracks,
		numChannels:    s.numChannels,
		maxNumChannels: s.maxNumChannels,
		routes:         make([][]bool, s.numTracks),
	}
	for i := range s.routes {
		dup.routes[i] = make([]bool, s.maxNumChannels)
		copy(dup.routes[i], s.routes[i])
	}
	return dup
}
