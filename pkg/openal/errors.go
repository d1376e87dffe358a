// ABOUTME: Public error values for the runtime API
// ABOUTME: Re-exports engine sentinels callers are expected to match
package openal

import (
	"errors"

	"github.com/zrisher/bevy-openal/internal/engine"
)

var (
	// ErrBackendUnavailable means no OpenAL library could be loaded.
	// The runtime still works, it just renders nothing.
	ErrBackendUnavailable = errors.New("openal backend unavailable")

	// ErrRuntimeClosed means the runtime has been closed.
	ErrRuntimeClosed = errors.New("runtime closed")

	// ErrQueueFull means the command queue was full and the command
	// was dropped. Dropped commands are counted in Status.
	ErrQueueFull = errors.New("command queue full")

	// ErrDuplicateKey means a sample key is already registered.
	ErrDuplicateKey = engine.ErrDuplicateKey

	// ErrUnknownKey means a sample key is not registered.
	ErrUnknownKey = engine.ErrUnknownKey

	// ErrDeviceNotReady means the device is closed or mid-reopen.
	ErrDeviceNotReady = engine.ErrDeviceNotReady
)
