// ABOUTME: Ogg Vorbis decoder
// ABOUTME: Decodes Vorbis streams via jfreymuth/oggvorbis
package decode

import (
	"bytes"
	"fmt"

	"github.com/jfreymuth/oggvorbis"

	"github.com/zrisher/bevy-openal/pkg/audio"
)

// decodeVorbis reads an Ogg Vorbis stream into mono 16-bit PCM
func decodeVorbis(data []byte) (audio.PCM, error) {
	floats, format, err := oggvorbis.ReadAll(bytes.NewReader(data))
	if err != nil {
		return audio.PCM{}, fmt.Errorf("%w: reading vorbis stream: %v", ErrMalformed, err)
	}
	if format.Channels < 1 || format.SampleRate < 1 {
		return audio.PCM{}, fmt.Errorf("%w: vorbis stream has no format", ErrMalformed)
	}

	samples := make([]int16, len(floats))
	for i, f := range floats {
		samples[i] = audio.SampleFromFloat32(f)
	}

	return audio.PCM{
		SampleRate: format.SampleRate,
		Samples:    downmixAvg(samples, format.Channels),
	}, nil
}
