// ABOUTME: FLAC decoder
// ABOUTME: Decodes FLAC streams frame by frame via mewkiz/flac
package decode

import (
	"bytes"
	"fmt"
	"io"

	"github.com/mewkiz/flac"

	"github.com/zrisher/bevy-openal/pkg/audio"
)

// decodeFLAC reads a FLAC stream into mono 16-bit PCM at the stream's rate
func decodeFLAC(data []byte) (audio.PCM, error) {
	stream, err := flac.Parse(bytes.NewReader(data))
	if err != nil {
		return audio.PCM{}, fmt.Errorf("%w: parsing flac stream: %v", ErrMalformed, err)
	}
	defer stream.Close()

	channels := int(stream.Info.NChannels)
	if channels < 1 {
		return audio.PCM{}, fmt.Errorf("%w: flac stream has no channels", ErrMalformed)
	}
	shift := int(stream.Info.BitsPerSample) - 16

	var mono []int16
	for {
		frame, err := stream.ParseNext()
		if err == io.EOF {
			break
		}
		if err != nil {
			return audio.PCM{}, fmt.Errorf("%w: reading flac frame: %v", ErrMalformed, err)
		}
		if len(frame.Subframes) == 0 {
			continue
		}

		// Average channels per sample position, then scale to 16 bits
		blockLen := len(frame.Subframes[0].Samples)
		for i := 0; i < blockLen; i++ {
			var sum int64
			n := 0
			for _, sub := range frame.Subframes {
				if i < len(sub.Samples) {
					sum += int64(sub.Samples[i])
					n++
				}
			}
			if n == 0 {
				continue
			}
			avg := int32(sum / int64(n))
			switch {
			case shift > 0:
				mono = append(mono, audio.ClampInt16(avg>>shift))
			case shift < 0:
				mono = append(mono, audio.ClampInt16(avg<<-shift))
			default:
				mono = append(mono, audio.ClampInt16(avg))
			}
		}
	}

	return audio.PCM{
		SampleRate: int(stream.Info.SampleRate),
		Samples:    mono,
	}, nil
}
