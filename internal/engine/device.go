// ABOUTME: OpenAL device and context lifecycle
// ABOUTME: Builds render-mode attributes and probes HRTF/output-mode state
package engine

import (
	"fmt"
	"log"

	"github.com/zrisher/bevy-openal/internal/al"
	"github.com/zrisher/bevy-openal/pkg/audio"
)

// Caps records which ALC extensions the open device advertises. Probed
// once per open and held as flags; never re-probed per call.
type Caps struct {
	HRTF       bool
	OutputMode bool
	EFX        bool
}

// attrsCap bounds the context attribute list; stubs and the real backend
// both read until the zero terminator within this backing array.
const attrsCap = 32

// Device owns the backend device and context handles. It must only be
// used from the runtime goroutine.
type Device struct {
	api *al.API

	device  uintptr
	context uintptr
	open    bool

	caps          Caps
	hrtfActive    bool
	outputMode    string
	outputModeRaw int32
	model         audio.DistanceModel
}

// NewDevice wraps an OpenAL function table. The device starts closed.
func NewDevice(api *al.API) *Device {
	return &Device{api: api}
}

// Open creates the device and context for the requested render mode.
// preferredRate of 0 keeps the device default; preferredDevice of ""
// opens the default device. On failure the device stays closed.
func (d *Device) Open(mode audio.RenderMode, model audio.DistanceModel, preferredRate int, preferredDevice string) error {
	if d.open {
		d.Close()
	}

	var name *byte
	if preferredDevice != "" {
		name = al.CString(preferredDevice)
	}

	dev := d.api.OpenDevice(name)
	if dev == 0 {
		return fmt.Errorf("%w: %q", ErrOpenDevice, preferredDevice)
	}

	caps := Caps{
		HRTF:       d.api.IsExtensionPresent(dev, al.ExtHRTF),
		OutputMode: d.api.IsExtensionPresent(dev, al.ExtOutputMode),
		EFX:        d.api.IsExtensionPresent(dev, al.ExtEFX),
	}

	attrs := d.buildAttrs(dev, caps, mode, preferredRate)
	ctx := d.api.CreateContext(dev, &attrs[0])
	if ctx == 0 {
		d.api.CloseDevice(dev)
		return ErrCreateContext
	}
	if !d.api.MakeContextCurrent(ctx) {
		d.api.DestroyContext(ctx)
		d.api.CloseDevice(dev)
		return fmt.Errorf("%w: could not make context current", ErrCreateContext)
	}

	d.device = dev
	d.context = ctx
	d.open = true
	d.caps = caps
	d.hrtfActive = d.queryHRTFActive()
	d.outputMode, d.outputModeRaw = d.queryOutputMode()

	if err := d.SetDistanceModel(model); err != nil {
		log.Printf("engine: setting distance model: %v", err)
	}

	return nil
}

// Close tears down the context and device. Buffer and source objects must
// already be destroyed by their owners.
func (d *Device) Close() {
	if !d.open {
		return
	}

	d.api.MakeContextCurrent(0)
	d.api.DestroyContext(d.context)
	d.api.CloseDevice(d.device)

	d.device = 0
	d.context = 0
	d.open = false
	d.caps = Caps{}
	d.hrtfActive = false
	d.outputMode = ""
	d.outputModeRaw = 0
}

// IsOpen reports whether a device and context are live.
func (d *Device) IsOpen() bool { return d.open }

// Caps returns the extension flags probed at open.
func (d *Device) Caps() Caps { return d.caps }

// HRTFActive reports whether the device confirmed HRTF rendering.
func (d *Device) HRTFActive() bool { return d.hrtfActive }

// OutputMode returns the device's reported output mode name and raw enum.
func (d *Device) OutputMode() (string, int32) { return d.outputMode, d.outputModeRaw }

// SetMuted gates all output through the listener gain.
func (d *Device) SetMuted(muted bool) error {
	if !d.open {
		return ErrDeviceNotReady
	}
	gain := float32(1.0)
	if muted {
		gain = 0.0
	}
	d.api.Listenerf(al.Gain, gain)
	return d.checkAL("alListenerf(AL_GAIN)")
}

// SetListener applies a listener frame to backend listener state.
// Non-finite input is sanitized rather than rejected.
func (d *Device) SetListener(frame audio.ListenerFrame) error {
	if !d.open {
		return ErrDeviceNotReady
	}

	pos := frame.Position.Sanitize()
	vel := frame.Velocity.Sanitize()
	d.api.Listener3f(al.Position, pos.X, pos.Y, pos.Z)
	d.api.Listener3f(al.Velocity, vel.X, vel.Y, vel.Z)

	fwd := frame.Forward.SanitizeDirection(audio.Vec3{Z: -1})
	up := frame.Up.SanitizeDirection(audio.Vec3{Y: 1})
	orientation := [6]float32{fwd.X, fwd.Y, fwd.Z, up.X, up.Y, up.Z}
	d.api.Listenerfv(al.Orientation, &orientation[0])

	return d.checkAL("alListenerfv(AL_ORIENTATION)")
}

// SetDistanceModel applies the attenuation model to the current context.
func (d *Device) SetDistanceModel(model audio.DistanceModel) error {
	if !d.open {
		return ErrDeviceNotReady
	}

	var value int32
	switch model {
	case audio.DistanceInverse:
		value = al.InverseDistance
	case audio.DistanceInverseClamped:
		value = al.InverseDistanceClamped
	case audio.DistanceLinear:
		value = al.LinearDistance
	case audio.DistanceLinearClamped:
		value = al.LinearDistanceClamped
	case audio.DistanceExponent:
		value = al.ExponentDistance
	case audio.DistanceExponentClamped:
		value = al.ExponentDistanceClamped
	default:
		value = al.None
	}

	d.api.DistanceModel(value)
	if err := d.checkAL("alDistanceModel"); err != nil {
		return err
	}
	d.model = model
	return nil
}

// buildAttrs assembles the zero-terminated context attribute list for the
// requested render mode, using only extensions the device advertises.
func (d *Device) buildAttrs(dev uintptr, caps Caps, mode audio.RenderMode, preferredRate int) []int32 {
	attrs := make([]int32, 0, attrsCap)

	if preferredRate > 0 {
		attrs = append(attrs, al.ALCFrequency, int32(preferredRate))
	}

	if mode == audio.RenderHeadphonesHRTF && caps.HRTF {
		if key := d.api.GetEnumValue(dev, "ALC_HRTF_SOFT"); key != 0 {
			attrs = append(attrs, key, al.True)
		}
	}

	if caps.OutputMode {
		if key := d.api.GetEnumValue(dev, "ALC_OUTPUT_MODE_SOFT"); key != 0 {
			var want int32
			switch mode {
			case audio.RenderStereoClean, audio.RenderHeadphonesHRTF:
				want = d.api.GetEnumValue(dev, "ALC_STEREO_SOFT")
			default:
				// Auto and SurroundAuto both let the device pick
				want = d.api.GetEnumValue(dev, "ALC_ANY_SOFT")
			}
			if want != 0 {
				attrs = append(attrs, key, want)
			}
		}
	}

	attrs = append(attrs, 0)
	return attrs
}

// queryHRTFActive asks the open device whether HRTF rendering actually
// engaged; a request in the attribute list is not a guarantee.
func (d *Device) queryHRTFActive() bool {
	if !d.caps.HRTF {
		return false
	}

	if key := d.api.GetEnumValue(d.device, "ALC_HRTF_SOFT"); key != 0 {
		var value int32
		d.api.GetIntegerv(d.device, key, 1, &value)
		if d.checkALC("alcGetIntegerv(ALC_HRTF_SOFT)") == nil {
			return value != 0
		}
	}

	key := d.api.GetEnumValue(d.device, "ALC_HRTF_STATUS_SOFT")
	if key == 0 {
		return false
	}
	var value int32
	d.api.GetIntegerv(d.device, key, 1, &value)
	if d.checkALC("alcGetIntegerv(ALC_HRTF_STATUS_SOFT)") != nil {
		return false
	}

	enabled := d.api.GetEnumValue(d.device, "ALC_HRTF_ENABLED_SOFT")
	required := d.api.GetEnumValue(d.device, "ALC_HRTF_REQUIRED_SOFT")
	detected := d.api.GetEnumValue(d.device, "ALC_HRTF_HEADPHONES_DETECTED_SOFT")
	return value != 0 && (value == enabled || value == required || value == detected)
}

var outputModeNames = []struct {
	enum  string
	label string
}{
	{"ALC_MONO_SOFT", "mono"},
	{"ALC_STEREO_SOFT", "stereo"},
	{"ALC_STEREO_BASIC_SOFT", "stereo-basic"},
	{"ALC_STEREO_UHJ_SOFT", "stereo-uhj"},
	{"ALC_STEREO_HRTF_SOFT", "stereo-hrtf"},
	{"ALC_QUAD_SOFT", "quad"},
	{"ALC_5POINT1_SOFT", "5.1"},
	{"ALC_6POINT1_SOFT", "6.1"},
	{"ALC_7POINT1_SOFT", "7.1"},
	{"ALC_BFORMAT3D_SOFT", "bformat3d"},
	{"ALC_ANY_SOFT", "auto"},
}

// queryOutputMode resolves the device's active output mode to a label.
func (d *Device) queryOutputMode() (string, int32) {
	if !d.caps.OutputMode {
		return "", 0
	}

	key := d.api.GetEnumValue(d.device, "ALC_OUTPUT_MODE_SOFT")
	if key == 0 {
		return "", 0
	}

	var value int32
	d.api.GetIntegerv(d.device, key, 1, &value)
	if d.checkALC("alcGetIntegerv(ALC_OUTPUT_MODE_SOFT)") != nil {
		return "", 0
	}

	for _, m := range outputModeNames {
		if enum := d.api.GetEnumValue(d.device, m.enum); enum != 0 && enum == value {
			return m.label, value
		}
	}
	return "unknown", value
}

// alError drains the AL error state after a call.
func alError(api *al.API, call string) error {
	if code := api.GetError(); code != al.None {
		log.Printf("engine: al error 0x%x from %s", code, call)
		return fmt.Errorf("al error 0x%x from %s", code, call)
	}
	return nil
}

func (d *Device) checkAL(call string) error {
	return alError(d.api, call)
}

// checkALC drains the ALC error state for the open device.
func (d *Device) checkALC(call string) error {
	if code := d.api.ContextError(d.device); code != al.None {
		log.Printf("engine: alc error 0x%x from %s", code, call)
		return fmt.Errorf("alc error 0x%x from %s", code, call)
	}
	return nil
}
