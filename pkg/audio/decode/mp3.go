// ABOUTME: MP3 decoder
// ABOUTME: Decodes MPEG audio via hajimehoshi/go-mp3
package decode

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/hajimehoshi/go-mp3"

	"github.com/zrisher/bevy-openal/pkg/audio"
)

// decodeMP3 reads an MPEG stream into mono 16-bit PCM at the stream's rate.
// go-mp3 always emits 16-bit stereo regardless of the source channel layout.
func decodeMP3(data []byte) (audio.PCM, error) {
	d, err := mp3.NewDecoder(bytes.NewReader(data))
	if err != nil {
		return audio.PCM{}, fmt.Errorf("%w: creating mp3 decoder: %v", ErrMalformed, err)
	}

	raw, err := io.ReadAll(d)
	if err != nil {
		return audio.PCM{}, fmt.Errorf("%w: reading mp3 frames: %v", ErrMalformed, err)
	}

	samples := make([]int16, len(raw)/2)
	for i := range samples {
		samples[i] = int16(binary.LittleEndian.Uint16(raw[i*2:]))
	}

	return audio.PCM{
		SampleRate: d.SampleRate(),
		Samples:    downmixAvg(samples, 2),
	}, nil
}
