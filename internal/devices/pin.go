package devices

import "github.com/srobo/sbot-simulator/internal/physics"

// GPIOPinMode is the mode a GPIO pin is configured for. It is tracked for
// every pin kind, including the ones (ultrasonic, microswitch, pressure,
// reflectance) whose mode has no effect on behaviour — the firmware lets you
// set it, it just doesn't do anything, so neither do we.
type GPIOPinMode string

const (
	PinInput       GPIOPinMode = "INPUT"
	PinInputPullup GPIOPinMode = "INPUT_PULLUP"
	PinOutput      GPIOPinMode = "OUTPUT"
)

const analogMax = 1023

// Pin is a single GPIO-capable pin on the Arduino board. Every Pin kind
// below is a "Null or real" variant of this interface: the sensor kinds
// other than EmptyPin and LEDPin always carry a physics.Handle, since they
// have no meaningful behaviour without one.
type Pin interface {
	Mode() GPIOPinMode
	SetMode(mode GPIOPinMode)
	Digital() bool
	SetDigital(value bool)
	Analog() int
}

type pinBase struct {
	mode GPIOPinMode
}

func (p *pinBase) Mode() GPIOPinMode       { return p.mode }
func (p *pinBase) SetMode(mode GPIOPinMode) { p.mode = mode }

// EmptyPin is an unconfigured pin with no attached sensor or actuator: plain
// read/write storage, matching the firmware's power-on default.
type EmptyPin struct {
	pinBase
	digital bool
	analog  int
}

func NewEmptyPin() *EmptyPin {
	return &EmptyPin{pinBase: pinBase{mode: PinInput}}
}

func (p *EmptyPin) Digital() bool          { return p.digital }
func (p *EmptyPin) SetDigital(value bool)  { p.digital = value }
func (p *EmptyPin) Analog() int            { return p.analog }

// UltrasonicPin reports a distance reading in millimetres via Distance; its
// generic Analog and Digital readings are always 0 and false.
type UltrasonicPin struct {
	pinBase
	handle physics.Handle
}

func NewUltrasonicPin(handle physics.Handle) *UltrasonicPin {
	return &UltrasonicPin{pinBase: pinBase{mode: PinInput}, handle: handle}
}

func (p *UltrasonicPin) Digital() bool         { return false }
func (p *UltrasonicPin) SetDigital(value bool) {}
func (p *UltrasonicPin) Analog() int           { return 0 }

// Distance returns the echo distance in millimetres, read via the
// ultrasonic-echo command rather than the generic pin Analog/Digital path.
func (p *UltrasonicPin) Distance() int {
	return int(p.handle.Value())
}

// MicroSwitchPin is a plain momentary switch: digital high when pressed,
// full-scale analog reading mirrors the digital state.
type MicroSwitchPin struct {
	pinBase
	handle physics.Handle
}

func NewMicroSwitchPin(handle physics.Handle) *MicroSwitchPin {
	return &MicroSwitchPin{pinBase: pinBase{mode: PinInput}, handle: handle}
}

func (p *MicroSwitchPin) Digital() bool {
	return p.handle.Value() != 0
}

func (p *MicroSwitchPin) SetDigital(value bool) {}

func (p *MicroSwitchPin) Analog() int {
	if p.Digital() {
		return analogMax
	}
	return 0
}

// PressureSensorPin reports the handle's raw force value, clamped to
// 0..1023, as its analog reading; its digital reading is a threshold over
// the analog value.
type PressureSensorPin struct {
	pinBase
	handle physics.Handle
}

func NewPressureSensorPin(handle physics.Handle) *PressureSensorPin {
	return &PressureSensorPin{pinBase: pinBase{mode: PinInput}, handle: handle}
}

func (p *PressureSensorPin) Digital() bool         { return p.Analog() > analogMax/2 }
func (p *PressureSensorPin) SetDigital(value bool) {}
func (p *PressureSensorPin) Analog() int           { return clampInt(int(p.handle.Value()), 0, analogMax) }

// ReflectanceSensorPin reports a greyscale camera sample as an analog value;
// its digital reading is a threshold over the analog value.
type ReflectanceSensorPin struct {
	pinBase
	handle physics.Handle
}

func NewReflectanceSensorPin(handle physics.Handle) *ReflectanceSensorPin {
	return &ReflectanceSensorPin{pinBase: pinBase{mode: PinInput}, handle: handle}
}

func (p *ReflectanceSensorPin) Digital() bool         { return p.Analog() > analogMax/2 }
func (p *ReflectanceSensorPin) SetDigital(value bool) {}

func (p *ReflectanceSensorPin) Analog() int {
	grey := p.handle.Value()
	return int(mapRange(grey, 0, 255, 0, analogMax))
}

// LEDPin is a pin wired to a single-colour LED: digital high lights it,
// digital low turns it off. It has no analog reading.
type LEDPin struct {
	pinBase
	led *LED
}

func NewLEDPin(led *LED) *LEDPin {
	return &LEDPin{pinBase: pinBase{mode: PinOutput}, led: led}
}

func (p *LEDPin) Digital() bool { return p.led.GetColour() > 0 }

func (p *LEDPin) SetDigital(value bool) {
	if value {
		p.led.SetColour(1)
	} else {
		p.led.SetColour(0)
	}
}

func (p *LEDPin) Analog() int { return 0 }
