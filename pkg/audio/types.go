// ABOUTME: Core audio value types
// ABOUTME: Defines PCM buffers, vectors, listener frames and playback params
package audio

import "math"

// PCM is decoded audio in the canonical runtime format: signed 16-bit
// mono samples at SampleRate hertz.
type PCM struct {
	SampleRate int
	Samples    []int16
}

// Duration returns the playback length in seconds.
func (p PCM) Duration() float64 {
	if p.SampleRate <= 0 {
		return 0
	}
	return float64(len(p.Samples)) / float64(p.SampleRate)
}

// Vec3 is a point or direction in the game's 3D space.
type Vec3 struct {
	X, Y, Z float32
}

// IsFinite reports whether all components are finite numbers.
func (v Vec3) IsFinite() bool {
	return !math.IsNaN(float64(v.X)) && !math.IsInf(float64(v.X), 0) &&
		!math.IsNaN(float64(v.Y)) && !math.IsInf(float64(v.Y), 0) &&
		!math.IsNaN(float64(v.Z)) && !math.IsInf(float64(v.Z), 0)
}

// Sanitize replaces non-finite vectors with the zero vector. The backend
// treats NaN positions as undefined behavior, so they never reach it.
func (v Vec3) Sanitize() Vec3 {
	if v.IsFinite() {
		return v
	}
	return Vec3{}
}

// SanitizeDirection normalizes v, falling back to fallback when v is not
// finite or too short to carry a direction.
func (v Vec3) SanitizeDirection(fallback Vec3) Vec3 {
	if !v.IsFinite() {
		return fallback
	}
	lenSq := float64(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
	if lenSq < 1e-4 {
		return fallback
	}
	inv := float32(1.0 / math.Sqrt(lenSq))
	return Vec3{v.X * inv, v.Y * inv, v.Z * inv}
}

// ListenerFrame is a snapshot of the listening point's spatial state.
// Only the most recent frame matters; the runtime coalesces updates.
type ListenerFrame struct {
	Position Vec3
	Forward  Vec3
	Up       Vec3
	Velocity Vec3
}

// DefaultListener returns a listener at the origin looking down -Z.
func DefaultListener() ListenerFrame {
	return ListenerFrame{
		Forward: Vec3{0, 0, -1},
		Up:      Vec3{0, 1, 0},
	}
}

// OneShotParams configures a single spatial playback request.
type OneShotParams struct {
	Position Vec3
	Gain     float32
	Pitch    float32
}

// DefaultOneShot returns params for unity gain and pitch at the origin.
func DefaultOneShot() OneShotParams {
	return OneShotParams{Gain: 1.0, Pitch: 1.0}
}

// ClampInt16 clamps a 32-bit intermediate sample into int16 range.
func ClampInt16(v int32) int16 {
	if v > math.MaxInt16 {
		return math.MaxInt16
	}
	if v < math.MinInt16 {
		return math.MinInt16
	}
	return int16(v)
}

// SampleFromFloat32 converts a float sample in [-1, 1] to int16,
// clamping out-of-range input.
func SampleFromFloat32(s float32) int16 {
	if s > 1 {
		s = 1
	} else if s < -1 {
		s = -1
	}
	return int16(s * 32767)
}
