// ABOUTME: OpenAL function table and constants
// ABOUTME: Defines the typed call surface bound from the native library
package al

import "unsafe"

// AL and ALC constants, from the OpenAL 1.1 headers and the
// ALC_SOFT_HRTF / ALC_SOFT_output_mode extension specs.
const (
	None = 0
	True = 1

	Position    = 0x1004
	Velocity    = 0x1006
	Looping     = 0x1007
	Orientation = 0x100F
	Gain        = 0x100A
	Pitch       = 0x1003
	Buffer      = 0x1009
	SourceState = 0x1010

	Initial = 0x1011
	Playing = 0x1012
	Paused  = 0x1013
	Stopped = 0x1014

	FormatMono16 = 0x1101

	InverseDistance         = 0xD001
	InverseDistanceClamped  = 0xD002
	LinearDistance          = 0xD003
	LinearDistanceClamped   = 0xD004
	ExponentDistance        = 0xD005
	ExponentDistanceClamped = 0xD006

	ALCFrequency = 0x1007
)

// Extension names probed once per device open.
const (
	ExtHRTF       = "ALC_SOFT_HRTF"
	ExtOutputMode = "ALC_SOFT_output_mode"
	ExtEFX        = "ALC_EXT_EFX"
)

// API is the resolved OpenAL entry points. All fields are required; Load
// fails if any symbol is missing. Device and context handles are opaque
// uintptrs owned by the runtime goroutine.
//
// Tests substitute a recorded implementation; see the altest package.
type API struct {
	GenBuffers    func(n int32, buffers *uint32)
	DeleteBuffers func(n int32, buffers *uint32)
	BufferData    func(buffer uint32, format int32, data unsafe.Pointer, size int32, freq int32)

	GenSources    func(n int32, sources *uint32)
	DeleteSources func(n int32, sources *uint32)
	Sourcei       func(source uint32, param int32, value int32)
	Sourcef       func(source uint32, param int32, value float32)
	Source3f      func(source uint32, param int32, x, y, z float32)
	SourcePlay    func(source uint32)
	SourceStop    func(source uint32)
	GetSourcei    func(source uint32, param int32, value *int32)

	Listenerf     func(param int32, value float32)
	Listener3f    func(param int32, x, y, z float32)
	Listenerfv    func(param int32, values *float32)
	DistanceModel func(model int32)
	GetError      func() int32

	OpenDevice         func(name *byte) uintptr
	CloseDevice        func(device uintptr) bool
	CreateContext      func(device uintptr, attrs *int32) uintptr
	DestroyContext     func(context uintptr)
	MakeContextCurrent func(context uintptr) bool
	ContextError       func(device uintptr) int32
	GetIntegerv        func(device uintptr, param int32, size int32, values *int32)
	IsExtensionPresent func(device uintptr, name string) bool
	GetEnumValue       func(device uintptr, name string) int32
}

// CString returns a null-terminated copy of s for the few entry points
// that take raw C string pointers.
func CString(s string) *byte {
	b := make([]byte, len(s)+1)
	copy(b, s)
	return &b[0]
}
