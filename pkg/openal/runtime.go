// ABOUTME: The spatial audio runtime and its command goroutine
// ABOUTME: Owns the backend engine; callers submit commands and read status
package openal

import (
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"github.com/zrisher/bevy-openal/internal/al"
	"github.com/zrisher/bevy-openal/internal/engine"
	"github.com/zrisher/bevy-openal/pkg/audio"
)

// tickInterval bounds how stale listener state and voice recycling can
// get while the command queue is idle.
const tickInterval = 5 * time.Millisecond

const (
	defaultVoiceCapacity = 32
	defaultQueueDepth    = 256
	defaultSampleRate    = 48000
)

// Config controls runtime construction. The zero value is usable;
// unset fields fall back to defaults.
type Config struct {
	// RenderMode selects the output rendering strategy.
	RenderMode audio.RenderMode
	// DistanceModel selects the attenuation model.
	DistanceModel audio.DistanceModel
	// VoiceCapacity is the number of simultaneous one-shot voices.
	VoiceCapacity int
	// PreferredSampleRate is requested from the device; 0 keeps the
	// device default.
	PreferredSampleRate int
	// PreferredDevice names the output device; empty opens the default.
	PreferredDevice string
	// QueueDepth bounds the command queue.
	QueueDepth int
}

// DefaultConfig returns the defaults: auto rendering, inverse-clamped
// attenuation, 32 voices, 48kHz.
func DefaultConfig() Config {
	return Config{
		RenderMode:          audio.RenderAuto,
		DistanceModel:       audio.DistanceInverseClamped,
		VoiceCapacity:       defaultVoiceCapacity,
		PreferredSampleRate: defaultSampleRate,
		QueueDepth:          defaultQueueDepth,
	}
}

func (c Config) withDefaults() Config {
	if c.VoiceCapacity <= 0 {
		c.VoiceCapacity = defaultVoiceCapacity
	}
	if c.QueueDepth <= 0 {
		c.QueueDepth = defaultQueueDepth
	}
	if c.PreferredSampleRate < 0 {
		c.PreferredSampleRate = 0
	}
	return c
}

// Runtime is the public handle to the audio system. All methods are safe
// to call from any goroutine; the native backend is only ever touched by
// the runtime's own goroutine.
type Runtime struct {
	cfg     Config
	lib     *al.Lib
	api     *al.API
	libPath string
	load    func() (*al.Lib, error)

	cmds     chan command
	listener atomic.Pointer[audio.ListenerFrame]
	status   atomic.Pointer[Status]
	dropped  atomic.Int64
	closed   atomic.Bool
	quit     chan struct{}
	done     chan struct{}

	// Everything below is owned by the runtime goroutine.
	dev         *engine.Device
	registry    *engine.BufferRegistry
	pool        *engine.VoicePool
	devState    DeviceState
	mode        audio.RenderMode
	model       audio.DistanceModel
	muted       bool
	loopOn      bool
	loopKey     uint32
	loopParams  audio.OneShotParams
	lastApplied *audio.ListenerFrame
	lastErr     string
}

// New loads the OpenAL library and starts the runtime goroutine. When no
// library can be loaded the returned error wraps ErrBackendUnavailable
// but the Runtime is still valid: every command is accepted and silently
// renders nothing, and a later SetRenderMode retries the load.
func New(cfg Config) (*Runtime, error) {
	lib, err := al.Load()

	var api *al.API
	var path string
	if err == nil {
		api = &lib.API
		path = lib.Path
	} else {
		log.Printf("openal: running silent: %v", err)
	}

	r := newRuntime(cfg, api, path, err, al.Load)
	r.lib = lib
	if err != nil {
		return r, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	return r, nil
}

// newRuntime wires a runtime around an already-resolved function table.
// load is invoked again when a render-mode change finds no backend.
func newRuntime(cfg Config, api *al.API, libPath string, loadErr error, load func() (*al.Lib, error)) *Runtime {
	cfg = cfg.withDefaults()

	r := &Runtime{
		cfg:     cfg,
		api:     api,
		libPath: libPath,
		load:    load,

		cmds: make(chan command, cfg.QueueDepth),
		quit: make(chan struct{}),
		done: make(chan struct{}),

		dev:      engine.NewDevice(api),
		registry: engine.NewBufferRegistry(api),
		pool:     engine.NewVoicePool(api, cfg.VoiceCapacity),
		devState: DeviceClosed,
		mode:     cfg.RenderMode,
		model:    cfg.DistanceModel,
	}
	if loadErr != nil {
		r.lastErr = loadErr.Error()
	}

	r.publish()
	go r.run()
	return r
}

// SetRenderMode switches the rendering strategy. The device is torn down
// and reopened on the runtime goroutine; registered samples are
// re-uploaded and an active loop restarts automatically.
func (r *Runtime) SetRenderMode(mode audio.RenderMode) error {
	return r.submit(command{op: opSetRenderMode, mode: mode})
}

// SetMuted gates all output on or off without touching voice state.
func (r *Runtime) SetMuted(muted bool) error {
	return r.submit(command{op: opSetMuted, muted: muted})
}

// SetDistanceModel switches the attenuation model.
func (r *Runtime) SetDistanceModel(model audio.DistanceModel) error {
	return r.submit(command{op: opSetDistanceModel, model: model})
}

// RegisterSample stores decoded PCM under key. Registration conflicts
// surface through Status.LastError, not the return value.
func (r *Runtime) RegisterSample(key uint32, pcm audio.PCM) error {
	return r.submit(command{op: opRegisterSample, key: key, pcm: pcm})
}

// UnregisterSample frees key. A buffer still bound to playing voices is
// destroyed once the last voice ends; the key is reusable immediately.
func (r *Runtime) UnregisterSample(key uint32) error {
	return r.submit(command{op: opUnregisterSample, key: key})
}

// PlayOneShot starts a fire-and-forget voice for key. When every voice
// is busy the play is dropped and counted in Status.VoicesStarved.
func (r *Runtime) PlayOneShot(key uint32, params audio.OneShotParams) error {
	return r.submit(command{op: opPlayOneShot, key: key, params: params})
}

// StartLoop starts key on the dedicated looping voice, replacing any
// current loop. The loop survives render-mode reopens.
func (r *Runtime) StartLoop(key uint32, params audio.OneShotParams) error {
	return r.submit(command{op: opStartLoop, key: key, params: params})
}

// StopLoop stops the looping voice if one is playing.
func (r *Runtime) StopLoop() error {
	return r.submit(command{op: opStopLoop})
}

// SetListener publishes a listener frame. Frames are coalesced: only the
// freshest one reaches the device, so calling this every game tick is
// fine even when the runtime briefly falls behind.
func (r *Runtime) SetListener(frame audio.ListenerFrame) error {
	if r.closed.Load() {
		return ErrRuntimeClosed
	}
	f := frame
	r.listener.Store(&f)
	return nil
}

// Status returns the most recent snapshot. Never blocks.
func (r *Runtime) Status() Status {
	return *r.status.Load()
}

// Close stops the runtime goroutine, destroys all backend state and
// unloads the library. Safe to call once; later calls and any command
// submitted after return ErrRuntimeClosed.
func (r *Runtime) Close() error {
	if !r.closed.CompareAndSwap(false, true) {
		return ErrRuntimeClosed
	}
	close(r.quit)
	<-r.done
	if r.lib != nil {
		r.lib.Close()
	}
	return nil
}

func (r *Runtime) submit(cmd command) error {
	if r.closed.Load() {
		return ErrRuntimeClosed
	}
	select {
	case r.cmds <- cmd:
		return nil
	default:
		r.dropped.Add(1)
		return ErrQueueFull
	}
}

// run is the runtime goroutine: open the device, then serve commands and
// periodic ticks until Close.
func (r *Runtime) run() {
	defer close(r.done)

	r.openDevice()
	r.publish()

	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-r.quit:
			r.teardown()
			r.publish()
			return
		case cmd := <-r.cmds:
			r.apply(cmd)
			r.publish()
		case <-ticker.C:
			r.tick()
			r.publish()
		}
	}
}

func (r *Runtime) apply(cmd command) {
	switch cmd.op {
	case opSetRenderMode:
		if cmd.mode == r.mode && r.devState == DeviceOpen {
			return
		}
		r.mode = cmd.mode
		if r.api == nil {
			// No backend yet: a mode switch re-invokes the full load
			// sequence before opening
			if r.retryLoad() {
				r.openDevice()
			}
			return
		}
		r.reopen()

	case opSetMuted:
		r.muted = cmd.muted
		if r.devState == DeviceOpen {
			r.fail(r.dev.SetMuted(cmd.muted))
		}

	case opSetDistanceModel:
		r.model = cmd.model
		if r.devState == DeviceOpen {
			r.fail(r.dev.SetDistanceModel(cmd.model))
		}

	case opRegisterSample:
		if err := r.registry.Register(cmd.key, cmd.pcm); err != nil {
			r.fail(err)
			return
		}
		if r.devState == DeviceOpen {
			r.fail(r.registry.Upload(cmd.key))
		}

	case opUnregisterSample:
		r.fail(r.registry.Unregister(cmd.key))
		if r.loopOn && r.loopKey == cmd.key {
			// The loop keeps playing its retired buffer, but there is
			// no key left to restart it from after a reopen.
			r.loopOn = false
		}

	case opPlayOneShot:
		id, err := r.registry.Acquire(cmd.key)
		if err != nil {
			r.fail(err)
			return
		}
		if !r.pool.PlayOneShot(id, cmd.params) {
			r.registry.Release(id)
		}

	case opStartLoop:
		id, err := r.registry.Acquire(cmd.key)
		if err != nil {
			r.fail(err)
			return
		}
		if old := r.pool.StartLoop(id, cmd.params); old != 0 {
			r.registry.Release(old)
		}
		r.loopOn = true
		r.loopKey = cmd.key
		r.loopParams = cmd.params

	case opStopLoop:
		if old := r.pool.StopLoop(); old != 0 {
			r.registry.Release(old)
		}
		r.loopOn = false
	}
}

func (r *Runtime) tick() {
	if r.devState == DeviceOpen {
		if frame := r.listener.Load(); frame != nil && frame != r.lastApplied {
			r.fail(r.dev.SetListener(*frame))
			r.lastApplied = frame
		}
	}
	for _, id := range r.pool.Tick() {
		r.registry.Release(id)
	}
}

// openDevice opens with the current mode and rebuilds engine state on
// top: sources, buffer uploads, listener, mute and loop.
func (r *Runtime) openDevice() {
	if r.api == nil {
		return
	}

	if err := r.dev.Open(r.mode, r.model, r.cfg.PreferredSampleRate, r.cfg.PreferredDevice); err != nil {
		r.devState = DeviceFailed
		r.lastErr = err.Error()
		log.Printf("openal: opening device: %v", err)
		return
	}
	r.devState = DeviceOpen

	if err := r.pool.Init(); err != nil {
		r.fail(err)
	}
	r.registry.UploadAll()

	if r.muted {
		r.fail(r.dev.SetMuted(true))
	}

	frame := r.listener.Load()
	if frame == nil {
		def := audio.DefaultListener()
		frame = &def
	}
	r.fail(r.dev.SetListener(*frame))
	r.lastApplied = frame

	if r.loopOn {
		r.restartLoop()
	}
}

// retryLoad attempts the library load again for a runtime constructed
// without a backend. On success the engine components are rebound to the
// fresh function table; registered PCM is retained throughout, so the
// following open rebuilds every buffer.
func (r *Runtime) retryLoad() bool {
	if r.api != nil || r.load == nil {
		return r.api != nil
	}

	lib, err := r.load()
	if err != nil {
		r.fail(fmt.Errorf("retrying backend load: %w", err))
		return false
	}

	r.lib = lib
	r.api = &lib.API
	r.libPath = lib.Path
	r.dev = engine.NewDevice(r.api)
	r.registry.Rebind(r.api)
	r.pool = engine.NewVoicePool(r.api, r.cfg.VoiceCapacity)
	log.Printf("openal: backend loaded on retry: %s", lib.Path)
	return true
}

// reopen tears the device down and opens it again with the current mode,
// keeping registered samples and the loop across the gap.
func (r *Runtime) reopen() {
	if r.api == nil {
		return
	}

	r.devState = DeviceReopening
	r.publish()

	for _, id := range r.pool.Destroy() {
		r.registry.Release(id)
	}
	r.registry.Destroy()
	r.dev.Close()

	r.openDevice()
}

func (r *Runtime) restartLoop() {
	id, err := r.registry.Acquire(r.loopKey)
	if err != nil {
		r.fail(fmt.Errorf("restarting loop: %w", err))
		r.loopOn = false
		return
	}
	if old := r.pool.StartLoop(id, r.loopParams); old != 0 {
		r.registry.Release(old)
	}
}

func (r *Runtime) teardown() {
	for _, id := range r.pool.Destroy() {
		r.registry.Release(id)
	}
	r.registry.Destroy()
	r.dev.Close()
	r.devState = DeviceClosed
}

// fail records an asynchronous command failure in the status snapshot.
func (r *Runtime) fail(err error) {
	if err == nil {
		return
	}
	r.lastErr = err.Error()
	log.Printf("openal: %v", err)
}

// publish stores a fresh status snapshot. Runtime goroutine only, except
// the single call before the goroutine starts.
func (r *Runtime) publish() {
	s := &Status{
		LibraryLoaded: r.api != nil,
		LibraryPath:   r.libPath,

		Device:        r.devState,
		RenderMode:    r.mode,
		DistanceModel: r.model,

		Muted:       r.muted,
		LoopPlaying: r.pool.LoopActive(),

		LoadedBuffers: r.registry.Len(),
		ActiveVoices:  r.pool.Active(),
		VoiceCapacity: r.pool.Capacity(),

		VoicesStarved:   r.pool.Starved(),
		CommandsDropped: r.dropped.Load(),
		LastError:       r.lastErr,
	}
	if r.devState == DeviceOpen {
		s.HRTFActive = r.dev.HRTFActive()
		s.OutputMode, s.OutputModeRaw = r.dev.OutputMode()
	}
	r.status.Store(s)
}
