// ABOUTME: WAV decoder
// ABOUTME: Decodes RIFF/WAVE PCM files via go-audio
package decode

import (
	"bytes"
	"fmt"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/zrisher/bevy-openal/pkg/audio"
)

// decodeWAV reads a RIFF/WAVE file into mono 16-bit PCM at the file's rate
func decodeWAV(data []byte) (audio.PCM, error) {
	d := wav.NewDecoder(bytes.NewReader(data))
	if !d.IsValidFile() {
		return audio.PCM{}, fmt.Errorf("%w: invalid wav file", ErrMalformed)
	}

	buf, err := d.FullPCMBuffer()
	if err != nil {
		return audio.PCM{}, fmt.Errorf("%w: reading wav data: %v", ErrMalformed, err)
	}
	if buf == nil || buf.Format == nil || buf.Format.NumChannels < 1 || buf.Format.SampleRate < 1 {
		return audio.PCM{}, fmt.Errorf("%w: wav missing format chunk", ErrMalformed)
	}

	samples := intBufferToInt16(buf)
	return audio.PCM{
		SampleRate: buf.Format.SampleRate,
		Samples:    downmixAvg(samples, buf.Format.NumChannels),
	}, nil
}

// intBufferToInt16 scales go-audio integer samples to 16-bit range
// regardless of the source bit depth.
func intBufferToInt16(buf *goaudio.IntBuffer) []int16 {
	depth := buf.SourceBitDepth
	if depth == 0 {
		depth = 16
	}
	shift := depth - 16

	out := make([]int16, len(buf.Data))
	for i, v := range buf.Data {
		switch {
		case shift > 0:
			out[i] = audio.ClampInt16(int32(v >> shift))
		case shift < 0:
			out[i] = audio.ClampInt16(int32(v << -shift))
		default:
			out[i] = audio.ClampInt16(int32(v))
		}
	}
	return out
}
