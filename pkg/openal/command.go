// ABOUTME: Internal command envelope for the runtime queue
// ABOUTME: One struct covers every operation kind
package openal

import "github.com/zrisher/bevy-openal/pkg/audio"

type opKind int

const (
	opSetRenderMode opKind = iota
	opSetMuted
	opSetDistanceModel
	opRegisterSample
	opUnregisterSample
	opPlayOneShot
	opStartLoop
	opStopLoop
)

// command carries one queued operation. Unused fields stay zero.
type command struct {
	op opKind

	key    uint32
	pcm    audio.PCM
	params audio.OneShotParams

	mode  audio.RenderMode
	model audio.DistanceModel
	muted bool
}
