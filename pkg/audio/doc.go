// ABOUTME: Audio fundamentals package providing core types and utilities
// ABOUTME: Defines PCM, listener and playback types shared across the runtime
// Package audio provides the value types exchanged with the spatial audio runtime.
//
// This package defines the core types used throughout the bevy-openal library:
//   - PCM: decoded mono 16-bit audio with its sample rate
//   - ListenerFrame: a snapshot of the listener's spatial state
//   - OneShotParams: position, gain and pitch for a single playback request
//   - RenderMode / DistanceModel: output and attenuation configuration
//
// All types are plain values with no backend handles; they are safe to build
// on any goroutine and hand to the runtime.
package audio
