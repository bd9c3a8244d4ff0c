package devices

import (
	"testing"

	"github.com/srobo/sbot-simulator/internal/physics"
)

func TestMotorSetGetRoundTrip(t *testing.T) {
	m := NewNullMotor()

	m.SetPower(500)
	if got := m.GetPower(); got != 500 {
		t.Fatalf("GetPower() = %d, want 500", got)
	}
	if !m.Enabled() {
		t.Fatal("Enabled() = false, want true after SetPower")
	}
}

func TestMotorDisablePreservesPower(t *testing.T) {
	// spec.md S1: MOT:0:DISABLE leaves GET? reporting the old power.
	m := NewNullMotor()
	m.SetPower(500)

	m.Disable()

	if m.Enabled() {
		t.Fatal("Enabled() = true after Disable")
	}
	if got := m.GetPower(); got != 500 {
		t.Fatalf("GetPower() after Disable = %d, want 500", got)
	}
}

func TestMotorDeadbandCoercion(t *testing.T) {
	m := NewNullMotor()

	for _, power := range []int32{1, -10, 49} {
		m.SetPower(power)
		if got := m.GetPower(); got != 0 {
			t.Errorf("SetPower(%d): GetPower() = %d, want 0 (within deadband)", power, got)
		}
	}
}

func TestMotorVelocityMapping(t *testing.T) {
	handle := &physics.FakeHandle{MaxVel: 10}
	m := NewMotor(handle, nil)

	m.SetPower(MaxMotorPower)
	if handle.Velocity != 10 {
		t.Errorf("full power: Velocity = %v, want 10", handle.Velocity)
	}

	m.SetPower(MinMotorPower)
	if handle.Velocity != -10 {
		t.Errorf("min power: Velocity = %v, want -10", handle.Velocity)
	}

	m.SetPower(0)
	if handle.Velocity != 0 {
		t.Errorf("zero power: Velocity = %v, want 0", handle.Velocity)
	}
}
