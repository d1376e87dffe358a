// ABOUTME: Package doc for the public runtime API
// ABOUTME: Describes the command-thread model and basic usage
//
// Package openal provides a real-time spatial audio runtime on top of a
// dynamically loaded OpenAL library. A Runtime owns a single background
// goroutine that talks to the native backend; callers submit commands
// from any goroutine and read back an immutable status snapshot.
//
// Commands never block the caller: the queue is bounded and submissions
// are rejected with ErrQueueFull when the runtime falls behind. Listener
// updates are coalesced so only the freshest frame reaches the device.
//
// A missing native library is not fatal. New still returns a usable
// Runtime that accepts every command and simply renders nothing, so
// game code does not need an audio special case.
package openal
