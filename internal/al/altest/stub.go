// ABOUTME: In-memory OpenAL stub for tests
// ABOUTME: Records calls and simulates device, buffer and source state
package altest

import (
	"sync"
	"unsafe"

	"github.com/zrisher/bevy-openal/internal/al"
)

// Stub simulates the OpenAL call surface without a native library. All
// methods are safe to call from multiple goroutines, so tests can inspect
// state while a runtime goroutine is driving the API.
type Stub struct {
	mu sync.Mutex

	nextBuffer uint32
	nextSource uint32

	buffers        map[uint32]BufferUpload
	deletedBuffers []uint32
	sources        map[uint32]*sourceState
	deletedSources []uint32

	listenerGain float32
	listenerPos  [3]float32
	devicesOpen  int
	contextsLive int
	lastAttrs    []int32

	failOpenDevice  bool
	failContext     bool
	failMakeCurrent bool

	extensions map[string]bool
	enumValues map[string]int32
	intValues  map[int32]int32
}

// BufferUpload records one alBufferData call.
type BufferUpload struct {
	Size int32
	Freq int32
}

type sourceState struct {
	state   int32
	buffer  int32
	looping bool
	gain    float32
	pitch   float32
}

// New returns a stub with one working default device and no extensions.
func New() *Stub {
	return &Stub{
		listenerGain: 1.0,
		buffers:      make(map[uint32]BufferUpload),
		sources:      make(map[uint32]*sourceState),
		extensions:   make(map[string]bool),
		enumValues:   make(map[string]int32),
		intValues:    make(map[int32]int32),
	}
}

// API returns a function table driving this stub.
func (s *Stub) API() *al.API {
	return &al.API{
		GenBuffers: func(n int32, buffers *uint32) {
			s.mu.Lock()
			defer s.mu.Unlock()
			ids := unsafe.Slice(buffers, int(n))
			for i := range ids {
				s.nextBuffer++
				s.buffers[s.nextBuffer] = BufferUpload{}
				ids[i] = s.nextBuffer
			}
		},
		DeleteBuffers: func(n int32, buffers *uint32) {
			s.mu.Lock()
			defer s.mu.Unlock()
			ids := unsafe.Slice(buffers, int(n))
			for _, id := range ids {
				delete(s.buffers, id)
				s.deletedBuffers = append(s.deletedBuffers, id)
			}
		},
		BufferData: func(buffer uint32, format int32, data unsafe.Pointer, size int32, freq int32) {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.buffers[buffer] = BufferUpload{Size: size, Freq: freq}
		},
		GenSources: func(n int32, sources *uint32) {
			s.mu.Lock()
			defer s.mu.Unlock()
			ids := unsafe.Slice(sources, int(n))
			for i := range ids {
				s.nextSource++
				s.sources[s.nextSource] = &sourceState{state: al.Initial, gain: 1, pitch: 1}
				ids[i] = s.nextSource
			}
		},
		DeleteSources: func(n int32, sources *uint32) {
			s.mu.Lock()
			defer s.mu.Unlock()
			ids := unsafe.Slice(sources, int(n))
			for _, id := range ids {
				delete(s.sources, id)
				s.deletedSources = append(s.deletedSources, id)
			}
		},
		Sourcei: func(source uint32, param int32, value int32) {
			s.mu.Lock()
			defer s.mu.Unlock()
			src, ok := s.sources[source]
			if !ok {
				return
			}
			switch param {
			case al.Buffer:
				src.buffer = value
			case al.Looping:
				src.looping = value != 0
			}
		},
		Sourcef: func(source uint32, param int32, value float32) {
			s.mu.Lock()
			defer s.mu.Unlock()
			src, ok := s.sources[source]
			if !ok {
				return
			}
			switch param {
			case al.Gain:
				src.gain = value
			case al.Pitch:
				src.pitch = value
			}
		},
		Source3f:   func(source uint32, param int32, x, y, z float32) {},
		SourcePlay: func(source uint32) {
			s.mu.Lock()
			defer s.mu.Unlock()
			if src, ok := s.sources[source]; ok {
				src.state = al.Playing
			}
		},
		SourceStop: func(source uint32) {
			s.mu.Lock()
			defer s.mu.Unlock()
			if src, ok := s.sources[source]; ok {
				src.state = al.Stopped
			}
		},
		GetSourcei: func(source uint32, param int32, value *int32) {
			s.mu.Lock()
			defer s.mu.Unlock()
			if src, ok := s.sources[source]; ok && param == al.SourceState {
				*value = src.state
			}
		},
		Listenerf: func(param int32, value float32) {
			s.mu.Lock()
			defer s.mu.Unlock()
			if param == al.Gain {
				s.listenerGain = value
			}
		},
		Listener3f: func(param int32, x, y, z float32) {
			s.mu.Lock()
			defer s.mu.Unlock()
			if param == al.Position {
				s.listenerPos = [3]float32{x, y, z}
			}
		},
		Listenerfv:    func(param int32, values *float32) {},
		DistanceModel: func(model int32) {},
		GetError:      func() int32 { return al.None },

		OpenDevice: func(name *byte) uintptr {
			s.mu.Lock()
			defer s.mu.Unlock()
			if s.failOpenDevice {
				return 0
			}
			s.devicesOpen++
			return 1
		},
		CloseDevice: func(device uintptr) bool {
			s.mu.Lock()
			defer s.mu.Unlock()
			if s.devicesOpen > 0 {
				s.devicesOpen--
			}
			return true
		},
		CreateContext: func(device uintptr, attrs *int32) uintptr {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.lastAttrs = readAttrs(attrs)
			if s.failContext {
				return 0
			}
			s.contextsLive++
			return 2
		},
		DestroyContext: func(context uintptr) {
			s.mu.Lock()
			defer s.mu.Unlock()
			if s.contextsLive > 0 {
				s.contextsLive--
			}
		},
		MakeContextCurrent: func(context uintptr) bool {
			s.mu.Lock()
			defer s.mu.Unlock()
			return !s.failMakeCurrent
		},
		ContextError: func(device uintptr) int32 { return al.None },
		GetIntegerv: func(device uintptr, param int32, size int32, values *int32) {
			s.mu.Lock()
			defer s.mu.Unlock()
			*values = s.intValues[param]
		},
		IsExtensionPresent: func(device uintptr, name string) bool {
			s.mu.Lock()
			defer s.mu.Unlock()
			return s.extensions[name]
		},
		GetEnumValue: func(device uintptr, name string) int32 {
			s.mu.Lock()
			defer s.mu.Unlock()
			return s.enumValues[name]
		},
	}
}

// readAttrs copies the zero-terminated attribute list.
func readAttrs(attrs *int32) []int32 {
	if attrs == nil {
		return nil
	}
	const maxAttrs = 32
	raw := unsafe.Slice(attrs, maxAttrs)
	var out []int32
	for _, v := range raw {
		if v == 0 {
			break
		}
		out = append(out, v)
	}
	return out
}

// FailOpenDevice makes subsequent alcOpenDevice calls fail.
func (s *Stub) FailOpenDevice(fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failOpenDevice = fail
}

// FailCreateContext makes subsequent alcCreateContext calls fail.
func (s *Stub) FailCreateContext(fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failContext = fail
}

// FailMakeCurrent makes subsequent alcMakeContextCurrent calls fail.
func (s *Stub) FailMakeCurrent(fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failMakeCurrent = fail
}

// SetExtension controls alcIsExtensionPresent for name.
func (s *Stub) SetExtension(name string, present bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.extensions[name] = present
}

// SetEnumValue controls alcGetEnumValue for name.
func (s *Stub) SetEnumValue(name string, value int32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.enumValues[name] = value
}

// SetIntValue controls alcGetIntegerv for param.
func (s *Stub) SetIntValue(param, value int32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.intValues[param] = value
}

// FinishPlaying marks every playing non-looping source as stopped, as a
// device would after the bound buffers run out.
func (s *Stub) FinishPlaying() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, src := range s.sources {
		if src.state == al.Playing && !src.looping {
			src.state = al.Stopped
		}
	}
}

// PlayingSources returns how many sources are currently playing.
func (s *Stub) PlayingSources() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, src := range s.sources {
		if src.state == al.Playing {
			n++
		}
	}
	return n
}

// LiveBuffers returns how many buffer objects exist.
func (s *Stub) LiveBuffers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.buffers)
}

// LiveSources returns how many source objects exist.
func (s *Stub) LiveSources() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sources)
}

// Upload returns the recorded alBufferData call for a buffer.
func (s *Stub) Upload(buffer uint32) (BufferUpload, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.buffers[buffer]
	return u, ok
}

// DeletedBuffers returns the ids passed to alDeleteBuffers, in order.
func (s *Stub) DeletedBuffers() []uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]uint32, len(s.deletedBuffers))
	copy(out, s.deletedBuffers)
	return out
}

// ListenerPosition returns the last alListener3f(AL_POSITION) value.
func (s *Stub) ListenerPosition() [3]float32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listenerPos
}

// ListenerGain returns the last alListenerf(AL_GAIN) value.
func (s *Stub) ListenerGain() float32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listenerGain
}

// DevicesOpen returns how many devices are currently open.
func (s *Stub) DevicesOpen() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.devicesOpen
}

// ContextsLive returns how many contexts are currently live.
func (s *Stub) ContextsLive() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.contextsLive
}

// LastContextAttrs returns the attribute list of the most recent
// alcCreateContext call, without the terminator.
func (s *Stub) LastContextAttrs() []int32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]int32, len(s.lastAttrs))
	copy(out, s.lastAttrs)
	return out
}
