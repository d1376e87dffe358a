// ABOUTME: Ogg Opus decoder
// ABOUTME: Decodes Opus streams via the hraban/opus stream API
package decode

import (
	"bytes"
	"fmt"
	"io"

	opus "gopkg.in/hraban/opus.v2"

	"github.com/zrisher/bevy-openal/pkg/audio"
)

// opusRate is fixed by the codec; Opus always decodes at 48 kHz.
const opusRate = 48000

// decodeOpus reads an Ogg Opus stream into mono 16-bit PCM
func decodeOpus(data []byte) (audio.PCM, error) {
	channels, err := opusHeadChannels(data)
	if err != nil {
		return audio.PCM{}, err
	}

	stream, err := opus.NewStream(bytes.NewReader(data))
	if err != nil {
		return audio.PCM{}, fmt.Errorf("%w: creating opus stream: %v", ErrMalformed, err)
	}
	defer stream.Close()

	var samples []int16
	frame := make([]int16, 5760*channels) // max opus frame is 120ms
	for {
		n, err := stream.Read(frame)
		if err == io.EOF {
			break
		}
		if err != nil {
			return audio.PCM{}, fmt.Errorf("%w: reading opus frames: %v", ErrMalformed, err)
		}
		samples = append(samples, frame[:n*channels]...)
	}

	return audio.PCM{
		SampleRate: opusRate,
		Samples:    downmixAvg(samples, channels),
	}, nil
}

// opusHeadChannels extracts the channel count from the OpusHead packet in
// the first Ogg page; the stream API does not expose it.
func opusHeadChannels(data []byte) (int, error) {
	head := data
	if len(head) > 512 {
		head = head[:512]
	}
	idx := bytes.Index(head, opusMagic)
	if idx < 0 || idx+10 > len(data) {
		return 0, fmt.Errorf("%w: missing OpusHead packet", ErrMalformed)
	}
	channels := int(data[idx+9])
	if channels < 1 {
		return 0, fmt.Errorf("%w: OpusHead reports zero channels", ErrMalformed)
	}
	return channels, nil
}
