// ABOUTME: Tests for container sniffing and decode normalization
// ABOUTME: Uses synthetic WAV input and malformed payloads per container
package decode

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math"
	"testing"
)

// buildWAV assembles a minimal PCM 16-bit RIFF/WAVE file
func buildWAV(sampleRate, channels int, samples []int16) []byte {
	var data bytes.Buffer
	for _, s := range samples {
		binary.Write(&data, binary.LittleEndian, s)
	}

	blockAlign := channels * 2
	var buf bytes.Buffer
	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, uint32(36+data.Len()))
	buf.WriteString("WAVE")
	buf.WriteString("fmt ")
	binary.Write(&buf, binary.LittleEndian, uint32(16))
	binary.Write(&buf, binary.LittleEndian, uint16(1)) // PCM
	binary.Write(&buf, binary.LittleEndian, uint16(channels))
	binary.Write(&buf, binary.LittleEndian, uint32(sampleRate))
	binary.Write(&buf, binary.LittleEndian, uint32(sampleRate*blockAlign))
	binary.Write(&buf, binary.LittleEndian, uint16(blockAlign))
	binary.Write(&buf, binary.LittleEndian, uint16(16))
	buf.WriteString("data")
	binary.Write(&buf, binary.LittleEndian, uint32(data.Len()))
	buf.Write(data.Bytes())
	return buf.Bytes()
}

func TestToMono16StereoWAV(t *testing.T) {
	// 100ms stereo sine at the canonical rate
	frames := 4800
	samples := make([]int16, frames*2)
	for i := 0; i < frames; i++ {
		v := int16(10000 * math.Sin(2*math.Pi*440*float64(i)/48000))
		samples[i*2] = v
		samples[i*2+1] = v
	}

	pcm, err := ToMono16(buildWAV(48000, 2, samples))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	if pcm.SampleRate != 48000 {
		t.Errorf("expected 48000Hz, got %d", pcm.SampleRate)
	}
	if len(pcm.Samples) != frames {
		t.Errorf("expected %d mono samples, got %d", frames, len(pcm.Samples))
	}
}

func TestToMono16DownmixAverages(t *testing.T) {
	// Distinct L/R values must average, not pick a channel
	samples := []int16{100, 300, -200, 200, 1000, 2000}
	pcm, err := ToMono16(buildWAV(48000, 2, samples))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	want := []int16{200, 0, 1500}
	if len(pcm.Samples) != len(want) {
		t.Fatalf("expected %d samples, got %d", len(want), len(pcm.Samples))
	}
	for i, w := range want {
		if pcm.Samples[i] != w {
			t.Errorf("sample %d: expected %d, got %d", i, w, pcm.Samples[i])
		}
	}
}

func TestToMono16Resamples(t *testing.T) {
	frames := 2400 // 100ms at 24kHz
	samples := make([]int16, frames)
	pcm, err := ToMono16(buildWAV(24000, 1, samples))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	if pcm.SampleRate != TargetRate {
		t.Errorf("expected %dHz after resample, got %d", TargetRate, pcm.SampleRate)
	}
	want := 4800
	tolerance := 8
	if len(pcm.Samples) < want-tolerance || len(pcm.Samples) > want+tolerance {
		t.Errorf("expected ~%d samples, got %d", want, len(pcm.Samples))
	}
}

func TestToMono16UnknownFormat(t *testing.T) {
	_, err := ToMono16([]byte("this is not audio at all, not even close"))
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestToMono16Empty(t *testing.T) {
	_, err := ToMono16(nil)
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat for empty input, got %v", err)
	}
}

func TestToMono16MalformedContainers(t *testing.T) {
	cases := []struct {
		name string
		data []byte
	}{
		{"truncated wav", []byte("RIFF\x00\x00\x00\x00WAVE")},
		{"flac garbage", append([]byte("fLaC"), bytes.Repeat([]byte{0xAB}, 64)...)},
		{"ogg garbage", append([]byte("OggS"), bytes.Repeat([]byte{0xCD}, 64)...)},
		{"ogg opus garbage", append([]byte("OggS\x00\x00OpusHead\x01\x02"), bytes.Repeat([]byte{0x11}, 64)...)},
		{"mp3 garbage", append([]byte{0xFF, 0xFB}, bytes.Repeat([]byte{0xEE}, 64)...)},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			// Must return a typed error, never panic
			_, err := ToMono16(c.data)
			if err == nil {
				t.Fatal("expected error for malformed input, got nil")
			}
			if !errors.Is(err, ErrMalformed) && !errors.Is(err, ErrUnsupportedFormat) {
				t.Errorf("expected decode error sentinel, got %v", err)
			}
		})
	}
}

func TestDownmixAvg(t *testing.T) {
	mono := downmixAvg([]int16{10, 20, 30}, 1)
	if len(mono) != 3 {
		t.Errorf("mono passthrough changed length: %d", len(mono))
	}

	quad := downmixAvg([]int16{100, 200, 300, 400}, 4)
	if len(quad) != 1 || quad[0] != 250 {
		t.Errorf("expected [250], got %v", quad)
	}

	// Trailing partial frame is dropped
	odd := downmixAvg([]int16{1, 2, 3}, 2)
	if len(odd) != 1 {
		t.Errorf("expected 1 frame, got %d", len(odd))
	}
}

func TestSniffing(t *testing.T) {
	if !isWAV(buildWAV(48000, 1, []int16{0})) {
		t.Error("wav not recognized")
	}
	if !isFLAC([]byte("fLaC....")) {
		t.Error("flac not recognized")
	}
	if !isOgg([]byte("OggS....")) {
		t.Error("ogg not recognized")
	}
	if !isOggOpus([]byte("OggS..OpusHead..")) {
		t.Error("ogg opus not recognized")
	}
	if isOggOpus([]byte("OggS..vorbis....")) {
		t.Error("ogg vorbis misidentified as opus")
	}
	if !isMP3([]byte("ID3....")) {
		t.Error("id3-tagged mp3 not recognized")
	}
	if !isMP3([]byte{0xFF, 0xFB, 0x90}) {
		t.Error("bare mp3 frame not recognized")
	}
	if isMP3([]byte("RIFF")) {
		t.Error("wav misidentified as mp3")
	}
}
