// ABOUTME: Sentinel errors for engine operations
// ABOUTME: Shared across device, registry and voice pool
package engine

import "errors"

var (
	// ErrDeviceNotReady means the device/context is not open.
	ErrDeviceNotReady = errors.New("audio device not ready")

	// ErrDuplicateKey means a buffer key is already registered.
	ErrDuplicateKey = errors.New("buffer key already registered")

	// ErrUnknownKey means a buffer key is not registered.
	ErrUnknownKey = errors.New("unknown buffer key")

	// ErrBufferTooLarge means sample data exceeds the backend's 32-bit limits.
	ErrBufferTooLarge = errors.New("buffer data exceeds backend limits")

	// ErrOpenDevice means the backend refused to open a device.
	ErrOpenDevice = errors.New("failed to open audio device")

	// ErrCreateContext means device opened but context creation failed.
	ErrCreateContext = errors.New("failed to create audio context")
)
