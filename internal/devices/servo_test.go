package devices

import (
	"testing"

	"github.com/srobo/sbot-simulator/internal/physics"
)

func TestServoDefaultPositionIsCentre(t *testing.T) {
	s := NewNullServo()
	want := int32((MinServoPosition + MaxServoPosition) / 2)
	if got := s.GetPosition(); got != want {
		t.Fatalf("GetPosition() = %d, want %d (centre)", got, want)
	}
	if s.Enabled() {
		t.Fatal("Enabled() = true before any SetPosition")
	}
}

func TestServoSetGetRoundTrip(t *testing.T) {
	s := NewNullServo()

	s.SetPosition(1500)
	if got := s.GetPosition(); got != 1500 {
		t.Fatalf("GetPosition() = %d, want 1500", got)
	}
	if !s.Enabled() {
		t.Fatal("Enabled() = false, want true after SetPosition")
	}
}

func TestServoDisablePreservesPosition(t *testing.T) {
	s := NewNullServo()
	s.SetPosition(1200)

	s.Disable()

	if s.Enabled() {
		t.Fatal("Enabled() = true after Disable")
	}
	if got := s.GetPosition(); got != 1200 {
		t.Fatalf("GetPosition() after Disable = %d, want 1200", got)
	}
}

func TestServoPositionMapping(t *testing.T) {
	handle := &physics.FakeHandle{MinPos: -1, MaxPos: 1}
	s := NewServo(handle, nil)

	s.SetPosition(MaxServoPosition)
	if handle.Position <= 0.9 || handle.Position >= 1 {
		t.Errorf("max position: Position = %v, want just under 1", handle.Position)
	}

	s.SetPosition(MinServoPosition)
	if handle.Position >= -0.9 || handle.Position <= -1 {
		t.Errorf("min position: Position = %v, want just above -1", handle.Position)
	}
}
