package devices

import (
	"testing"

	"github.com/srobo/sbot-simulator/internal/physics"
)

func TestEmptyPinReadWrite(t *testing.T) {
	p := NewEmptyPin()
	if p.Mode() != PinInput {
		t.Fatalf("Mode() = %v, want PinInput", p.Mode())
	}

	p.SetMode(PinOutput)
	if p.Mode() != PinOutput {
		t.Fatalf("Mode() after SetMode = %v, want PinOutput", p.Mode())
	}

	p.SetDigital(true)
	if !p.Digital() {
		t.Fatal("Digital() = false after SetDigital(true)")
	}
}

func TestUltrasonicPinDistance(t *testing.T) {
	handle := &physics.FakeHandle{RawValue: 150}
	p := NewUltrasonicPin(handle)

	if got := p.Distance(); got != 150 {
		t.Fatalf("Distance() = %d, want 150", got)
	}
	if p.Digital() {
		t.Fatal("UltrasonicPin.Digital() should always be false")
	}
}

func TestMicroSwitchPinThreshold(t *testing.T) {
	handle := &physics.FakeHandle{RawValue: 0}
	p := NewMicroSwitchPin(handle)

	if p.Digital() {
		t.Fatal("Digital() = true with raw value 0")
	}
	if got := p.Analog(); got != 0 {
		t.Fatalf("Analog() = %d, want 0", got)
	}

	handle.RawValue = 1
	if !p.Digital() {
		t.Fatal("Digital() = false with raw value 1")
	}
	if got := p.Analog(); got != analogMax {
		t.Fatalf("Analog() = %d, want %d", got, analogMax)
	}
}

func TestPressureSensorPinClampsAnalog(t *testing.T) {
	handle := &physics.FakeHandle{RawValue: 5000}
	p := NewPressureSensorPin(handle)

	if got := p.Analog(); got != analogMax {
		t.Fatalf("Analog() = %d, want clamped %d", got, analogMax)
	}
	if !p.Digital() {
		t.Fatal("Digital() = false with an above-threshold analog reading")
	}
}

func TestReflectanceSensorPinMapsGreyscale(t *testing.T) {
	handle := &physics.FakeHandle{RawValue: 255}
	p := NewReflectanceSensorPin(handle)

	if got := p.Analog(); got != analogMax {
		t.Fatalf("Analog() = %d, want %d for full-white input", got, analogMax)
	}

	handle.RawValue = 0
	if got := p.Analog(); got != 0 {
		t.Fatalf("Analog() = %d, want 0 for full-black input", got)
	}
}

func TestLEDPinDrivesLED(t *testing.T) {
	led := NewNullLED()
	p := NewLEDPin(led)

	if p.Digital() {
		t.Fatal("Digital() = true before any SetDigital")
	}

	p.SetDigital(true)
	if !p.Digital() {
		t.Fatal("Digital() = false after SetDigital(true)")
	}
	if led.GetColour() == 0 {
		t.Fatal("underlying LED was not lit by SetDigital(true)")
	}

	p.SetDigital(false)
	if led.GetColour() != 0 {
		t.Fatal("underlying LED was not turned off by SetDigital(false)")
	}
}
