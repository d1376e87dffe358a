// ABOUTME: Fixed-capacity pool of backend sources for one-shot playback
// ABOUTME: Recycles finished voices by polling playback state each tick
package engine

import (
	"fmt"
	"log"

	"github.com/zrisher/bevy-openal/internal/al"
	"github.com/zrisher/bevy-openal/pkg/audio"
)

// VoicePool owns a fixed set of backend sources for one-shot playback
// plus one dedicated looping slot. When every slot is busy a play request
// is dropped and counted, never queued: one-shot audio is best-effort.
//
// There is no stealing or prioritization here; that belongs to a layer
// above the runtime. Must only be used from the runtime goroutine.
type VoicePool struct {
	api      *al.API
	capacity int
	voices   []voice

	loopSource uint32
	loopBuffer uint32
	loopActive bool

	starved uint64
}

type voice struct {
	source uint32
	buffer uint32
	active bool
}

// NewVoicePool creates a pool for capacity simultaneous one-shots.
func NewVoicePool(api *al.API, capacity int) *VoicePool {
	return &VoicePool{api: api, capacity: capacity}
}

// Init generates the source objects. Requires an open context; call again
// after every device reopen.
func (p *VoicePool) Init() error {
	if len(p.voices) > 0 {
		return nil
	}

	ids := make([]uint32, p.capacity+1)
	p.api.GenSources(int32(len(ids)), &ids[0])
	if err := alError(p.api, "alGenSources"); err != nil {
		return err
	}
	for _, id := range ids {
		if id == 0 {
			return fmt.Errorf("backend returned invalid source handle")
		}
	}

	p.voices = make([]voice, p.capacity)
	for i := range p.voices {
		p.voices[i].source = ids[i]
	}
	p.loopSource = ids[p.capacity]
	return nil
}

// PlayOneShot binds buffer to an idle voice and starts it. Returns false
// when the pool is starved; the request is dropped and counted.
func (p *VoicePool) PlayOneShot(buffer uint32, params audio.OneShotParams) bool {
	idle := -1
	for i := range p.voices {
		if !p.voices[i].active {
			idle = i
			break
		}
	}
	if idle < 0 {
		p.starved++
		return false
	}

	v := &p.voices[idle]
	p.startSource(v.source, buffer, params, false)
	v.buffer = buffer
	v.active = true
	return true
}

// StartLoop binds buffer to the looping slot and starts it, replacing any
// current loop. Returns the backend buffer released by the replacement,
// or 0 if none.
func (p *VoicePool) StartLoop(buffer uint32, params audio.OneShotParams) uint32 {
	released := p.StopLoop()
	p.startSource(p.loopSource, buffer, params, true)
	p.loopBuffer = buffer
	p.loopActive = true
	return released
}

// StopLoop stops the looping slot. Returns the released backend buffer,
// or 0 if no loop was active.
func (p *VoicePool) StopLoop() uint32 {
	if !p.loopActive {
		return 0
	}
	p.api.SourceStop(p.loopSource)
	p.api.Sourcei(p.loopSource, al.Buffer, 0)
	if err := alError(p.api, "alSourceStop(loop)"); err != nil {
		log.Printf("engine: stopping loop: %v", err)
	}

	released := p.loopBuffer
	p.loopBuffer = 0
	p.loopActive = false
	return released
}

// Tick polls every active voice and recycles those the backend reports
// stopped. Returns the backend buffers released by retired voices.
func (p *VoicePool) Tick() []uint32 {
	var released []uint32
	for i := range p.voices {
		v := &p.voices[i]
		if !v.active {
			continue
		}

		var state int32
		p.api.GetSourcei(v.source, al.SourceState, &state)
		if alError(p.api, "alGetSourcei") != nil {
			continue
		}
		if state == al.Stopped {
			p.api.Sourcei(v.source, al.Buffer, 0)
			released = append(released, v.buffer)
			v.buffer = 0
			v.active = false
		}
	}
	return released
}

// Active returns the number of currently playing voices, loop included.
func (p *VoicePool) Active() int {
	n := 0
	for i := range p.voices {
		if p.voices[i].active {
			n++
		}
	}
	if p.loopActive {
		n++
	}
	return n
}

// Starved returns how many play requests were dropped for lack of a slot.
func (p *VoicePool) Starved() uint64 { return p.starved }

// Capacity returns the configured number of one-shot slots.
func (p *VoicePool) Capacity() int { return p.capacity }

// LoopActive reports whether the looping slot is playing.
func (p *VoicePool) LoopActive() bool { return p.loopActive }

// Destroy stops and deletes every source. Returns the backend buffers
// that were still bound so the registry can release them.
func (p *VoicePool) Destroy() []uint32 {
	var released []uint32
	if id := p.StopLoop(); id != 0 {
		released = append(released, id)
	}

	for i := range p.voices {
		v := &p.voices[i]
		if v.active {
			p.api.SourceStop(v.source)
			released = append(released, v.buffer)
		}
	}

	if len(p.voices) > 0 {
		ids := make([]uint32, 0, len(p.voices)+1)
		for i := range p.voices {
			ids = append(ids, p.voices[i].source)
		}
		ids = append(ids, p.loopSource)
		p.api.DeleteSources(int32(len(ids)), &ids[0])
		if err := alError(p.api, "alDeleteSources"); err != nil {
			log.Printf("engine: deleting sources: %v", err)
		}
	}

	p.voices = nil
	p.loopSource = 0
	return released
}

// startSource binds and plays one source with sanitized spatial state.
func (p *VoicePool) startSource(source, buffer uint32, params audio.OneShotParams, looping bool) {
	pos := params.Position.Sanitize()

	p.api.Sourcei(source, al.Buffer, int32(buffer))
	if looping {
		p.api.Sourcei(source, al.Looping, al.True)
	} else {
		p.api.Sourcei(source, al.Looping, 0)
	}
	p.api.Sourcef(source, al.Gain, params.Gain)
	p.api.Sourcef(source, al.Pitch, params.Pitch)
	p.api.Source3f(source, al.Position, pos.X, pos.Y, pos.Z)
	p.api.SourcePlay(source)
	if err := alError(p.api, "alSourcePlay"); err != nil {
		log.Printf("engine: starting source %d: %v", source, err)
	}
}
