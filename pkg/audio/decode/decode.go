// ABOUTME: Container sniffing and the top-level decode entry point
// ABOUTME: Dispatches to per-format decoders and normalizes the result
package decode

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/zrisher/bevy-openal/pkg/audio"
	"github.com/zrisher/bevy-openal/pkg/audio/resample"
)

// TargetRate is the canonical sample rate of decoded buffers.
const TargetRate = 48000

var (
	// ErrUnsupportedFormat means the input is not a recognized container.
	ErrUnsupportedFormat = errors.New("unsupported audio format")

	// ErrMalformed means the container was recognized but could not be decoded.
	ErrMalformed = errors.New("malformed audio data")
)

var (
	riffMagic = []byte("RIFF")
	waveMagic = []byte("WAVE")
	flacMagic = []byte("fLaC")
	oggMagic  = []byte("OggS")
	opusMagic = []byte("OpusHead")
	id3Magic  = []byte("ID3")
)

// ToMono16 decodes an audio file into mono 16-bit PCM at TargetRate.
//
// The container is identified from the leading bytes. Multi-channel audio
// is downmixed by averaging; other sample rates are resampled. Malformed
// input returns an error, never a panic.
func ToMono16(data []byte) (pcm audio.PCM, err error) {
	// Third-party decoders are not trusted to survive corrupt input
	defer func() {
		if r := recover(); r != nil {
			pcm = audio.PCM{}
			err = fmt.Errorf("%w: decoder panic: %v", ErrMalformed, r)
		}
	}()

	switch {
	case isWAV(data):
		pcm, err = decodeWAV(data)
	case isFLAC(data):
		pcm, err = decodeFLAC(data)
	case isOgg(data):
		if isOggOpus(data) {
			pcm, err = decodeOpus(data)
		} else {
			pcm, err = decodeVorbis(data)
		}
	case isMP3(data):
		pcm, err = decodeMP3(data)
	default:
		return audio.PCM{}, ErrUnsupportedFormat
	}
	if err != nil {
		return audio.PCM{}, err
	}

	if pcm.SampleRate != TargetRate {
		pcm.Samples = resample.Mono16(pcm.Samples, pcm.SampleRate, TargetRate)
		pcm.SampleRate = TargetRate
	}
	return pcm, nil
}

func isWAV(data []byte) bool {
	return len(data) >= 12 && bytes.Equal(data[:4], riffMagic) && bytes.Equal(data[8:12], waveMagic)
}

func isFLAC(data []byte) bool {
	return len(data) >= 4 && bytes.Equal(data[:4], flacMagic)
}

func isOgg(data []byte) bool {
	return len(data) >= 4 && bytes.Equal(data[:4], oggMagic)
}

// isOggOpus looks for the OpusHead packet in the first page
func isOggOpus(data []byte) bool {
	head := data
	if len(head) > 512 {
		head = head[:512]
	}
	return bytes.Contains(head, opusMagic)
}

func isMP3(data []byte) bool {
	if len(data) >= 3 && bytes.Equal(data[:3], id3Magic) {
		return true
	}
	// Bare MPEG frame sync: 11 set bits
	return len(data) >= 2 && data[0] == 0xFF && data[1]&0xE0 == 0xE0
}

// downmixAvg collapses interleaved samples to mono by averaging all
// channels per frame. Trailing partial frames are dropped.
func downmixAvg(samples []int16, channels int) []int16 {
	if channels <= 1 {
		return samples
	}

	frames := len(samples) / channels
	mono := make([]int16, frames)

	for i := 0; i < frames; i++ {
		var sum int32
		for ch := 0; ch < channels; ch++ {
			sum += int32(samples[i*channels+ch])
		}
		mono[i] = audio.ClampInt16(sum / int32(channels))
	}

	return mono
}
