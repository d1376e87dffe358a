// ABOUTME: Buffer registry mapping application keys to backend buffers
// ABOUTME: Retains PCM for reopen rebuilds and defers in-use destruction
package engine

import (
	"fmt"
	"log"
	"math"
	"unsafe"

	"github.com/zrisher/bevy-openal/internal/al"
	"github.com/zrisher/bevy-openal/pkg/audio"
)

// BufferRegistry owns the mapping from application buffer keys to backend
// buffer objects. It retains the decoded PCM for every key so buffers can
// be re-uploaded after a device reopen.
//
// Unregistering a key whose buffer is still bound to a playing voice
// removes the key immediately but parks the backend object on a retire
// list; it is deleted once the last referencing voice ends. Must only be
// used from the runtime goroutine.
type BufferRegistry struct {
	api     *al.API
	entries map[uint32]*bufferEntry
	retired []retiredBuffer
}

type bufferEntry struct {
	pcm  audio.PCM
	id   uint32 // backend buffer, 0 while not uploaded
	refs int    // live voices bound to this buffer
}

type retiredBuffer struct {
	id   uint32
	refs int
}

// NewBufferRegistry creates an empty registry.
func NewBufferRegistry(api *al.API) *BufferRegistry {
	return &BufferRegistry{
		api:     api,
		entries: make(map[uint32]*bufferEntry),
	}
}

// Register records PCM under key. The backend object is created by Upload;
// registration itself works with the device closed.
func (r *BufferRegistry) Register(key uint32, pcm audio.PCM) error {
	if _, ok := r.entries[key]; ok {
		return fmt.Errorf("%w: %d", ErrDuplicateKey, key)
	}
	r.entries[key] = &bufferEntry{pcm: pcm}
	return nil
}

// Unregister removes key. If voices still reference the backend buffer its
// destruction is deferred; the key itself is immediately reusable.
func (r *BufferRegistry) Unregister(key uint32) error {
	entry, ok := r.entries[key]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownKey, key)
	}
	delete(r.entries, key)

	if entry.id == 0 {
		return nil
	}
	if entry.refs > 0 {
		r.retired = append(r.retired, retiredBuffer{id: entry.id, refs: entry.refs})
		return nil
	}
	r.deleteBuffer(entry.id)
	return nil
}

// Upload creates the backend buffer object for key and fills it with the
// retained samples. Requires an open context.
func (r *BufferRegistry) Upload(key uint32) error {
	entry, ok := r.entries[key]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownKey, key)
	}
	if entry.id != 0 {
		return nil
	}

	byteLen := len(entry.pcm.Samples) * 2
	if byteLen > math.MaxInt32 || entry.pcm.SampleRate > math.MaxInt32 {
		return fmt.Errorf("%w: key %d", ErrBufferTooLarge, key)
	}

	var id uint32
	r.api.GenBuffers(1, &id)
	if err := alError(r.api, "alGenBuffers"); err != nil {
		return err
	}
	if id == 0 {
		return fmt.Errorf("backend returned invalid buffer handle for key %d", key)
	}

	var data unsafe.Pointer
	if len(entry.pcm.Samples) > 0 {
		data = unsafe.Pointer(&entry.pcm.Samples[0])
	}
	r.api.BufferData(id, al.FormatMono16, data, int32(byteLen), int32(entry.pcm.SampleRate))
	if err := alError(r.api, "alBufferData"); err != nil {
		r.api.DeleteBuffers(1, &id)
		return err
	}

	entry.id = id
	return nil
}

// UploadAll uploads every registered buffer that has no backend object
// yet, typically after a device (re)open. Per-key failures are logged and
// do not stop the rebuild.
func (r *BufferRegistry) UploadAll() {
	for key := range r.entries {
		if err := r.Upload(key); err != nil {
			log.Printf("engine: uploading buffer %d: %v", key, err)
		}
	}
}

// Acquire returns the backend buffer for key and pins it against
// unregistration until Release.
func (r *BufferRegistry) Acquire(key uint32) (uint32, error) {
	entry, ok := r.entries[key]
	if !ok {
		return 0, fmt.Errorf("%w: %d", ErrUnknownKey, key)
	}
	if entry.id == 0 {
		return 0, ErrDeviceNotReady
	}
	entry.refs++
	return entry.id, nil
}

// Release unpins a backend buffer previously returned by Acquire. Retired
// buffers are deleted once their last reference drops.
func (r *BufferRegistry) Release(id uint32) {
	if id == 0 {
		return
	}

	for _, entry := range r.entries {
		if entry.id == id {
			if entry.refs > 0 {
				entry.refs--
			}
			return
		}
	}

	for i := range r.retired {
		if r.retired[i].id != id {
			continue
		}
		r.retired[i].refs--
		if r.retired[i].refs <= 0 {
			r.deleteBuffer(id)
			r.retired = append(r.retired[:i], r.retired[i+1:]...)
		}
		return
	}
}

// Rebind points the registry at a newly loaded backend. Only valid while
// no backend objects exist; registered PCM carries over unchanged.
func (r *BufferRegistry) Rebind(api *al.API) {
	r.api = api
}

// Destroy deletes every backend buffer, including retired ones. Retained
// PCM survives so a later open can rebuild.
func (r *BufferRegistry) Destroy() {
	for _, entry := range r.entries {
		if entry.id != 0 {
			r.deleteBuffer(entry.id)
			entry.id = 0
			entry.refs = 0
		}
	}
	for _, ret := range r.retired {
		r.deleteBuffer(ret.id)
	}
	r.retired = nil
}

// Has reports whether key is registered.
func (r *BufferRegistry) Has(key uint32) bool {
	_, ok := r.entries[key]
	return ok
}

// Len returns the number of registered keys.
func (r *BufferRegistry) Len() int { return len(r.entries) }

// RetiredLen returns how many buffers await deferred destruction.
func (r *BufferRegistry) RetiredLen() int { return len(r.retired) }

func (r *BufferRegistry) deleteBuffer(id uint32) {
	r.api.DeleteBuffers(1, &id)
	if err := alError(r.api, "alDeleteBuffers"); err != nil {
		log.Printf("engine: deleting buffer %d: %v", id, err)
	}
}
