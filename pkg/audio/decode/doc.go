// ABOUTME: Audio decoder package for multiple container formats
// ABOUTME: Converts WAV, MP3, FLAC, Ogg Vorbis and Ogg Opus to mono 16-bit PCM
// Package decode converts encoded audio files into the runtime's canonical
// PCM format: signed 16-bit mono at 48 kHz.
//
// Supports: WAV, MP3, FLAC, Ogg Vorbis, Ogg Opus
//
// Multi-channel input is downmixed by averaging all channels rather than
// selecting one, which avoids phase cancellation artifacts. Input at other
// sample rates is resampled.
//
// All functions are pure and callable from any goroutine.
//
// Example:
//
//	pcm, err := decode.ToMono16(fileBytes)
package decode
