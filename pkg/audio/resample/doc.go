// ABOUTME: Resampling package for sample rate conversion
// ABOUTME: Provides linear interpolation between arbitrary PCM rates
// Package resample converts mono 16-bit PCM between sample rates.
//
// The runtime uploads all buffers at a single canonical rate; decoders use
// this package to convert anything else. Linear interpolation is adequate
// for short one-shot effects; long-form material is out of scope.
package resample
