package boards

import (
	"testing"

	"github.com/srobo/sbot-simulator/internal/devices"
	"github.com/srobo/sbot-simulator/internal/physics"
)

func newTestArduinoBoard() (*ArduinoBoard, []devices.Pin) {
	pins := make([]devices.Pin, 8)
	for i := range pins {
		pins[i] = devices.NewEmptyPin()
	}
	return NewArduinoBoard(pins), pins
}

func TestArduinoBoardVersion(t *testing.T) {
	b, _ := newTestArduinoBoard()
	if got := b.Handle("v"); got.Text != "SRduino:4.3" {
		t.Fatalf("v = %q, want SRduino:4.3", got.Text)
	}
}

func TestArduinoBoardDigitalWriteThenRead(t *testing.T) {
	b, _ := newTestArduinoBoard()

	if got := b.Handle("ha"); !got.NoReply {
		t.Fatalf("ha (digital write high) should produce no reply, got %+v", got)
	}
	if got := b.Handle("ra"); got.Text != "h" {
		t.Fatalf("ra after ha = %q, want h", got.Text)
	}

	b.Handle("la")
	if got := b.Handle("ra"); got.Text != "l" {
		t.Fatalf("ra after la = %q, want l", got.Text)
	}
}

func TestArduinoBoardUnknownLeadingCharIsSilentlyIgnored(t *testing.T) {
	b, _ := newTestArduinoBoard()
	if got := b.Handle("zzz"); !got.NoReply {
		t.Fatalf("unknown command should produce no reply, got %+v", got)
	}
}

func TestArduinoBoardUltrasound(t *testing.T) {
	// spec.md S3: "ucd" -> trigger pin 'c' (index 2), echo pin 'd' (index 3).
	handle := &physics.FakeHandle{RawValue: 250}
	pins := make([]devices.Pin, 8)
	for i := range pins {
		pins[i] = devices.NewEmptyPin()
	}
	pins[3] = devices.NewUltrasonicPin(handle)
	b := NewArduinoBoard(pins)

	got := b.Handle("ucd")
	if got.Text != "250" {
		t.Fatalf("ucd = %q, want 250", got.Text)
	}
}

func TestArduinoBoardUltrasoundOnNonUltrasonicPinReportsZero(t *testing.T) {
	b, _ := newTestArduinoBoard()
	got := b.Handle("ucd")
	if got.Text != "0" {
		t.Fatalf("ucd on a plain pin = %q, want 0", got.Text)
	}
}
