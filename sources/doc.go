// SPDX-License-Identifier: EPL-2.0

// Package sources provides mix.SampleSource implementations backed by memory
// and by decoded audio files.
//
// The mixing engine reads tracks positionally, so file-backed sources are
// decoded up front into per-channel Memory buffers rather than streamed:
//
//	chans, err := sources.FromWAV(f)
//	// chans[0] is the left channel, chans[1] the right
//
// Every decoder returns one Memory source per channel, all sharing the
// file's sample rate. Supported containers are WAV and AIFF (via go-audio),
// MP3 (via go-mp3) and Ogg Vorbis (via oggvorbis).
package sources
