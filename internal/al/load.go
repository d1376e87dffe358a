// ABOUTME: Dynamic loading of the OpenAL shared library
// ABOUTME: Searches the executable directory then the system path, binds symbols
package al

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/ebitengine/purego"
)

var (
	// ErrNotFound means no OpenAL library could be located.
	ErrNotFound = errors.New("openal library not found")

	// ErrMissingSymbol means the library loaded but lacks required entry points.
	ErrMissingSymbol = errors.New("openal library missing required symbol")
)

// Lib is a loaded OpenAL library with its bound function table.
type Lib struct {
	API

	Path   string
	handle uintptr
}

// candidates returns the library file names to try on this platform.
func candidates() []string {
	switch runtime.GOOS {
	case "windows":
		return []string{"OpenAL32.dll", "soft_oal.dll"}
	case "darwin":
		return []string{"libopenal.dylib", "OpenAL.framework/OpenAL"}
	default:
		return []string{"libopenal.so.1", "libopenal.so"}
	}
}

// Load locates the OpenAL library and resolves every required entry point.
// A bundled copy next to the running executable wins over the system one.
func Load() (*Lib, error) {
	names := candidates()

	var paths []string
	if exe, err := os.Executable(); err == nil {
		dir := filepath.Dir(exe)
		for _, name := range names {
			paths = append(paths, filepath.Join(dir, name))
		}
	}
	paths = append(paths, names...)

	var handle uintptr
	var loaded string
	for _, path := range paths {
		h, err := openLibrary(path)
		if err != nil {
			continue
		}
		handle = h
		loaded = path
		break
	}
	if handle == 0 {
		return nil, fmt.Errorf("%w: tried %s", ErrNotFound, strings.Join(paths, ", "))
	}

	lib := &Lib{Path: loaded, handle: handle}
	if err := lib.bind(); err != nil {
		closeLibrary(handle)
		return nil, err
	}

	log.Printf("al: loaded %s", loaded)
	return lib, nil
}

// Close unloads the library. The function table is invalid afterwards.
func (l *Lib) Close() {
	if l.handle != 0 {
		closeLibrary(l.handle)
		l.handle = 0
	}
}

// bind resolves all required symbols, collecting every missing name so a
// broken installation is reported in one error.
func (l *Lib) bind() error {
	symbols := []struct {
		name string
		fptr any
	}{
		{"alGenBuffers", &l.GenBuffers},
		{"alDeleteBuffers", &l.DeleteBuffers},
		{"alBufferData", &l.BufferData},
		{"alGenSources", &l.GenSources},
		{"alDeleteSources", &l.DeleteSources},
		{"alSourcei", &l.Sourcei},
		{"alSourcef", &l.Sourcef},
		{"alSource3f", &l.Source3f},
		{"alSourcePlay", &l.SourcePlay},
		{"alSourceStop", &l.SourceStop},
		{"alGetSourcei", &l.GetSourcei},
		{"alListenerf", &l.Listenerf},
		{"alListener3f", &l.Listener3f},
		{"alListenerfv", &l.Listenerfv},
		{"alDistanceModel", &l.DistanceModel},
		{"alGetError", &l.GetError},
		{"alcOpenDevice", &l.OpenDevice},
		{"alcCloseDevice", &l.CloseDevice},
		{"alcCreateContext", &l.CreateContext},
		{"alcDestroyContext", &l.DestroyContext},
		{"alcMakeContextCurrent", &l.MakeContextCurrent},
		{"alcGetError", &l.ContextError},
		{"alcGetIntegerv", &l.GetIntegerv},
		{"alcIsExtensionPresent", &l.IsExtensionPresent},
		{"alcGetEnumValue", &l.GetEnumValue},
	}

	var missing []string
	for _, s := range symbols {
		if _, err := lookupSymbol(l.handle, s.name); err != nil {
			missing = append(missing, s.name)
			continue
		}
		purego.RegisterLibFunc(s.fptr, l.handle, s.name)
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingSymbol, strings.Join(missing, ", "))
	}
	return nil
}
