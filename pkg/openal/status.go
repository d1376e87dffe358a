// ABOUTME: Immutable runtime status snapshot
// ABOUTME: Published by the runtime goroutine, read by anyone
package openal

import "github.com/zrisher/bevy-openal/pkg/audio"

// DeviceState describes the lifecycle of the backend device.
type DeviceState int

const (
	// DeviceClosed means no device is open.
	DeviceClosed DeviceState = iota
	// DeviceOpen means the device and context are live.
	DeviceOpen
	// DeviceReopening means the device is being torn down and rebuilt
	// for a render-mode change.
	DeviceReopening
	// DeviceFailed means the last open attempt failed.
	DeviceFailed
)

func (s DeviceState) String() string {
	switch s {
	case DeviceClosed:
		return "closed"
	case DeviceOpen:
		return "open"
	case DeviceReopening:
		return "reopening"
	case DeviceFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Status is a point-in-time snapshot of the runtime. Snapshots are
// immutable; each read returns a consistent view without locking.
type Status struct {
	// LibraryLoaded reports whether the native library was found.
	LibraryLoaded bool
	// LibraryPath is where the native library was loaded from.
	LibraryPath string

	// Device is the backend device lifecycle state.
	Device DeviceState
	// RenderMode is the mode the device was last opened with.
	RenderMode audio.RenderMode
	// DistanceModel is the active attenuation model.
	DistanceModel audio.DistanceModel

	// OutputMode is the device's reported output configuration
	// ("stereo-hrtf", "5.1", ...), empty when unknown.
	OutputMode string
	// OutputModeRaw is the backend enum behind OutputMode.
	OutputModeRaw int32
	// HRTFActive reports whether the device confirmed HRTF rendering.
	HRTFActive bool

	// Muted reports whether output is gated off at the listener.
	Muted bool
	// LoopPlaying reports whether the dedicated loop voice is bound.
	LoopPlaying bool

	// LoadedBuffers is the number of registered sample keys.
	LoadedBuffers int
	// ActiveVoices is the number of voices currently bound, including
	// the loop voice.
	ActiveVoices int
	// VoiceCapacity is the size of the one-shot voice pool.
	VoiceCapacity int

	// VoicesStarved counts one-shot plays rejected for lack of a free
	// voice since startup.
	VoicesStarved uint64
	// CommandsDropped counts commands rejected by a full queue since
	// startup.
	CommandsDropped int64

	// LastError holds the most recent asynchronous failure, empty when
	// none has occurred yet.
	LastError string
}
