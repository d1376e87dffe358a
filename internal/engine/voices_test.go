// ABOUTME: Tests for the fixed voice pool
// ABOUTME: Covers starvation, recycling, looping and teardown
package engine

import (
	"testing"

	"github.com/zrisher/bevy-openal/internal/al/altest"
	"github.com/zrisher/bevy-openal/pkg/audio"
)

func TestVoicePoolStarvation(t *testing.T) {
	stub := altest.New()
	pool := NewVoicePool(stub.API(), 2)
	if err := pool.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	if !pool.PlayOneShot(10, audio.DefaultOneShot()) {
		t.Fatal("first play rejected")
	}
	if !pool.PlayOneShot(11, audio.DefaultOneShot()) {
		t.Fatal("second play rejected")
	}
	if pool.PlayOneShot(12, audio.DefaultOneShot()) {
		t.Error("third play should starve on a pool of 2")
	}

	if got := stub.PlayingSources(); got != 2 {
		t.Errorf("expected 2 playing sources, got %d", got)
	}
	if pool.Starved() != 1 {
		t.Errorf("expected 1 starved play, got %d", pool.Starved())
	}
	if pool.Active() != 2 {
		t.Errorf("expected 2 active voices, got %d", pool.Active())
	}
}

func TestVoicePoolRecycle(t *testing.T) {
	stub := altest.New()
	pool := NewVoicePool(stub.API(), 1)
	if err := pool.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	if !pool.PlayOneShot(10, audio.DefaultOneShot()) {
		t.Fatal("play rejected")
	}
	if released := pool.Tick(); len(released) != 0 {
		t.Fatalf("voice retired while still playing: %v", released)
	}

	stub.FinishPlaying()
	released := pool.Tick()
	if len(released) != 1 || released[0] != 10 {
		t.Fatalf("expected buffer 10 released, got %v", released)
	}
	if pool.Active() != 0 {
		t.Errorf("expected 0 active voices after retire, got %d", pool.Active())
	}

	// Slot is reusable on the next play
	if !pool.PlayOneShot(11, audio.DefaultOneShot()) {
		t.Error("recycled slot rejected play")
	}
}

func TestVoicePoolLoop(t *testing.T) {
	stub := altest.New()
	pool := NewVoicePool(stub.API(), 2)
	if err := pool.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	if released := pool.StartLoop(20, audio.DefaultOneShot()); released != 0 {
		t.Errorf("fresh loop released buffer %d", released)
	}
	if !pool.LoopActive() {
		t.Error("loop not active after start")
	}

	// The loop source never competes with one-shots
	if !pool.PlayOneShot(10, audio.DefaultOneShot()) || !pool.PlayOneShot(11, audio.DefaultOneShot()) {
		t.Error("loop consumed a one-shot slot")
	}

	// Replacing the loop releases the old buffer
	if released := pool.StartLoop(21, audio.DefaultOneShot()); released != 20 {
		t.Errorf("expected old loop buffer 20 released, got %d", released)
	}

	if released := pool.StopLoop(); released != 21 {
		t.Errorf("expected loop buffer 21 released, got %d", released)
	}
	if pool.LoopActive() {
		t.Error("loop still active after stop")
	}
	if released := pool.StopLoop(); released != 0 {
		t.Errorf("stopping an idle loop released buffer %d", released)
	}
}

func TestVoicePoolLoopSurvivesTick(t *testing.T) {
	stub := altest.New()
	pool := NewVoicePool(stub.API(), 1)
	if err := pool.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	pool.StartLoop(20, audio.DefaultOneShot())
	pool.PlayOneShot(10, audio.DefaultOneShot())

	stub.FinishPlaying()
	released := pool.Tick()
	if len(released) != 1 || released[0] != 10 {
		t.Fatalf("expected only the one-shot buffer released, got %v", released)
	}
	if !pool.LoopActive() {
		t.Error("tick retired the loop voice")
	}
}

func TestVoicePoolDestroy(t *testing.T) {
	stub := altest.New()
	pool := NewVoicePool(stub.API(), 3)
	if err := pool.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	if stub.LiveSources() != 4 {
		t.Fatalf("expected 4 sources (3 one-shot + loop), got %d", stub.LiveSources())
	}

	pool.PlayOneShot(10, audio.DefaultOneShot())
	pool.StartLoop(20, audio.DefaultOneShot())

	released := pool.Destroy()
	if len(released) != 2 {
		t.Errorf("expected 2 bound buffers released, got %v", released)
	}
	if stub.LiveSources() != 0 {
		t.Errorf("expected all sources deleted, got %d", stub.LiveSources())
	}
	if stub.PlayingSources() != 0 {
		t.Errorf("sources still playing after destroy")
	}
}
