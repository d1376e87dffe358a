// ABOUTME: Tests for the linear resampler
// ABOUTME: Covers upsampling, downsampling and identity passthrough
package resample

import "testing"

func TestMono16Identity(t *testing.T) {
	input := []int16{1, 2, 3, 4}
	output := Mono16(input, 48000, 48000)

	if len(output) != len(input) {
		t.Fatalf("expected %d samples, got %d", len(input), len(output))
	}
	for i := range input {
		if output[i] != input[i] {
			t.Errorf("sample %d changed: %d -> %d", i, input[i], output[i])
		}
	}
}

func TestMono16Upsample(t *testing.T) {
	input := make([]int16, 2400) // 100ms at 24kHz
	for i := range input {
		input[i] = int16(i % 100)
	}

	output := Mono16(input, 24000, 48000)

	want := 4800
	tolerance := 4
	if len(output) < want-tolerance || len(output) > want+tolerance {
		t.Errorf("expected ~%d samples, got %d", want, len(output))
	}
}

func TestMono16Downsample(t *testing.T) {
	input := make([]int16, 9600) // 100ms at 96kHz
	output := Mono16(input, 96000, 48000)

	want := 4800
	tolerance := 8
	if len(output) < want-tolerance || len(output) > want+tolerance {
		t.Errorf("expected ~%d samples, got %d", want, len(output))
	}
}

func TestMono16Interpolates(t *testing.T) {
	// Doubling the rate of a ramp should place midpoints between samples
	input := []int16{0, 100, 200, 300}
	output := Mono16(input, 24000, 48000)

	if len(output) < 4 {
		t.Fatalf("expected at least 4 samples, got %d", len(output))
	}
	if output[0] != 0 {
		t.Errorf("expected first sample 0, got %d", output[0])
	}
	if output[1] != 50 {
		t.Errorf("expected interpolated sample 50, got %d", output[1])
	}
}

func TestMono16Empty(t *testing.T) {
	output := Mono16(nil, 44100, 48000)
	if len(output) != 0 {
		t.Errorf("expected empty output, got %d samples", len(output))
	}
}

func TestOutputLen(t *testing.T) {
	if got := OutputLen(2400, 24000, 48000); got != 4800 {
		t.Errorf("expected 4800, got %d", got)
	}
	if got := OutputLen(4800, 48000, 48000); got != 4800 {
		t.Errorf("identity: expected 4800, got %d", got)
	}
}
