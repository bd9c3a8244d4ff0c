package boards

import (
	"testing"

	"github.com/srobo/sbot-simulator/internal/devices"
)

func newTestLEDBoard(n int) *LEDBoard {
	leds := make([]*devices.LED, n)
	for i := range leds {
		leds[i] = devices.NewNullLED()
	}
	return NewLEDBoard("KCH0", leds)
}

func TestLEDBoardSlotSetGet(t *testing.T) {
	b := newTestLEDBoard(6)

	if got := b.Handle("LED:0:SET:1:0:1"); got.Text != "ACK" {
		t.Fatalf("LED:0:SET:1:0:1 = %q, want ACK", got.Text)
	}
	if got := b.Handle("LED:0:GET?"); got.Text != "1:0:1" {
		t.Fatalf("LED:0:GET? = %q, want 1:0:1 (magenta)", got.Text)
	}
}

func TestLEDBoardRejectsInvalidColour(t *testing.T) {
	b := newTestLEDBoard(6)
	if got := b.Handle("LED:0:SET:1:1:1:1"); got.Text != "NACK:Missing LED colour" {
		t.Fatalf("LED:0:SET:1:1:1:1 = %q, want missing-colour NACK", got.Text)
	}
}

func TestLEDBoardStartSlotIsABooleanNotATriple(t *testing.T) {
	b := newTestLEDBoard(6)

	if got := b.Handle("LED:START:SET:1"); got.Text != "ACK" {
		t.Fatalf("LED:START:SET:1 = %q, want ACK", got.Text)
	}
	if got := b.Handle("LED:START:GET?"); got.Text != "1" {
		t.Fatalf("LED:START:GET? = %q, want a single boolean token, not an RGB triple", got.Text)
	}
}

func TestLEDBoardStatusIsACK(t *testing.T) {
	b := newTestLEDBoard(6)
	if got := b.Handle("*STATUS?"); got.Text != "ACK" {
		t.Fatalf("*STATUS? = %q, want ACK", got.Text)
	}
}

func TestLEDBoardResetTurnsAllOff(t *testing.T) {
	b := newTestLEDBoard(6)
	b.Handle("LED:0:SET:1:1:1")

	b.Handle("*RESET")
	if got := b.Handle("LED:0:GET?"); got.Text != "0:0:0" {
		t.Fatalf("LED:0:GET? after reset = %q, want 0:0:0", got.Text)
	}
}
