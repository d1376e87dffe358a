// ABOUTME: Tests for core audio value types
// ABOUTME: Covers vector sanitation and sample conversion helpers
package audio

import (
	"math"
	"testing"
)

func TestVec3Sanitize(t *testing.T) {
	v := Vec3{1, 2, 3}
	if got := v.Sanitize(); got != v {
		t.Errorf("finite vector changed: %v", got)
	}

	nan := float32(math.NaN())
	bad := Vec3{nan, 0, 0}
	if got := bad.Sanitize(); got != (Vec3{}) {
		t.Errorf("expected zero vector for NaN input, got %v", got)
	}

	inf := float32(math.Inf(1))
	bad = Vec3{0, inf, 0}
	if got := bad.Sanitize(); got != (Vec3{}) {
		t.Errorf("expected zero vector for Inf input, got %v", got)
	}
}

func TestVec3SanitizeDirection(t *testing.T) {
	fallback := Vec3{0, 0, -1}

	if got := (Vec3{}).SanitizeDirection(fallback); got != fallback {
		t.Errorf("zero vector should fall back, got %v", got)
	}

	nan := float32(math.NaN())
	if got := (Vec3{nan, nan, nan}).SanitizeDirection(fallback); got != fallback {
		t.Errorf("NaN vector should fall back, got %v", got)
	}

	got := (Vec3{0, 3, 0}).SanitizeDirection(fallback)
	if math.Abs(float64(got.Y)-1.0) > 1e-6 || got.X != 0 || got.Z != 0 {
		t.Errorf("expected unit Y vector, got %v", got)
	}
}

func TestClampInt16(t *testing.T) {
	if got := ClampInt16(40000); got != math.MaxInt16 {
		t.Errorf("expected clamp to MaxInt16, got %d", got)
	}
	if got := ClampInt16(-40000); got != math.MinInt16 {
		t.Errorf("expected clamp to MinInt16, got %d", got)
	}
	if got := ClampInt16(1234); got != 1234 {
		t.Errorf("expected passthrough, got %d", got)
	}
}

func TestSampleFromFloat32(t *testing.T) {
	if got := SampleFromFloat32(0); got != 0 {
		t.Errorf("expected 0, got %d", got)
	}
	if got := SampleFromFloat32(2.0); got != 32767 {
		t.Errorf("expected clamp to 32767, got %d", got)
	}
	if got := SampleFromFloat32(-2.0); got != -32767 {
		t.Errorf("expected clamp to -32767, got %d", got)
	}
}

func TestPCMDuration(t *testing.T) {
	pcm := PCM{SampleRate: 48000, Samples: make([]int16, 48000)}
	if got := pcm.Duration(); got != 1.0 {
		t.Errorf("expected 1s, got %f", got)
	}

	empty := PCM{}
	if got := empty.Duration(); got != 0 {
		t.Errorf("expected 0 for empty PCM, got %f", got)
	}
}
