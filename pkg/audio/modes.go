// ABOUTME: Render mode and distance model enumerations
// ABOUTME: Provides string parsing and formatting for configuration surfaces
package audio

import "strings"

// RenderMode selects how spatial audio is presented to the output device.
// Changing the active mode requires a device reopen.
type RenderMode int

const (
	// RenderAuto lets the backend pick its default output configuration.
	RenderAuto RenderMode = iota
	// RenderStereoClean requests plain stereo with no binaural processing.
	RenderStereoClean
	// RenderHeadphonesHRTF requests binaural HRTF rendering.
	RenderHeadphonesHRTF
	// RenderSurroundAuto requests discrete multichannel output when available.
	RenderSurroundAuto
)

// String returns the canonical short name for the mode.
func (m RenderMode) String() string {
	switch m {
	case RenderStereoClean:
		return "stereo"
	case RenderHeadphonesHRTF:
		return "hrtf"
	case RenderSurroundAuto:
		return "surround"
	default:
		return "auto"
	}
}

// ParseRenderMode parses a render mode name. It accepts the canonical
// names plus a few aliases used in config files.
func ParseRenderMode(value string) (RenderMode, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "auto":
		return RenderAuto, true
	case "stereo", "stereo-clean":
		return RenderStereoClean, true
	case "hrtf", "headphones":
		return RenderHeadphonesHRTF, true
	case "surround", "surround-auto":
		return RenderSurroundAuto, true
	default:
		return RenderAuto, false
	}
}

// DistanceModel selects the attenuation curve applied to spatial voices.
type DistanceModel int

const (
	DistanceNone DistanceModel = iota
	DistanceInverse
	DistanceInverseClamped
	DistanceLinear
	DistanceLinearClamped
	DistanceExponent
	DistanceExponentClamped
)

// String returns the canonical short name for the model.
func (m DistanceModel) String() string {
	switch m {
	case DistanceInverse:
		return "inverse"
	case DistanceInverseClamped:
		return "inverse-clamp"
	case DistanceLinear:
		return "linear"
	case DistanceLinearClamped:
		return "linear-clamp"
	case DistanceExponent:
		return "exponent"
	case DistanceExponentClamped:
		return "exponent-clamp"
	default:
		return "none"
	}
}

// ParseDistanceModel parses a distance model name.
func ParseDistanceModel(value string) (DistanceModel, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "none", "off":
		return DistanceNone, true
	case "inverse":
		return DistanceInverse, true
	case "inverse-clamp", "inverse-clamped":
		return DistanceInverseClamped, true
	case "linear":
		return DistanceLinear, true
	case "linear-clamp", "linear-clamped":
		return DistanceLinearClamped, true
	case "exponent":
		return DistanceExponent, true
	case "exponent-clamp", "exponent-clamped":
		return DistanceExponentClamped, true
	default:
		return DistanceNone, false
	}
}
