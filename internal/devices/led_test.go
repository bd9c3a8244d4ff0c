package devices

import (
	"testing"

	"github.com/srobo/sbot-simulator/internal/physics"
)

func TestColourIndexRoundTrip(t *testing.T) {
	for want, rgb := range RGBColours {
		got, ok := ColourIndex(rgb)
		if !ok {
			t.Fatalf("ColourIndex(%+v) not found", rgb)
		}
		if got != want {
			t.Errorf("ColourIndex(%+v) = %d, want %d", rgb, got, want)
		}
	}
}

func TestColourIndexUnknownTriple(t *testing.T) {
	if _, ok := ColourIndex(RGB{1, 2, 3}); ok {
		t.Fatal("ColourIndex of an out-of-table triple should fail")
	}
}

func TestLEDSetGetRoundTrip(t *testing.T) {
	l := NewNullLED()
	if l.GetColour() != 0 {
		t.Fatalf("GetColour() = %d, want 0 (OFF) before any SetColour", l.GetColour())
	}

	l.SetColour(5)
	if got := l.GetColour(); got != 5 {
		t.Fatalf("GetColour() = %d, want 5", got)
	}
}

func TestLEDPhysicsBacked(t *testing.T) {
	handle := &physics.FakeHandle{}
	l := NewLED(handle)

	l.SetColour(3)
	if handle.Colour != 3 {
		t.Errorf("handle.Colour = %d, want 3", handle.Colour)
	}
	if got := l.GetColour(); got != 3 {
		t.Errorf("GetColour() = %d, want 3", got)
	}
}
