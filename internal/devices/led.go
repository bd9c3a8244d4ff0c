package devices

import "github.com/srobo/sbot-simulator/internal/physics"

// RGB is a single {r,g,b} triple of 0/1 values, as used by the LED hat's
// LED:<n>:SET:<r>:<g>:<b> command.
type RGB struct{ R, G, B int }

// RGBColours is the fixed, total 8-entry colour table shared by every LED
// hat slot (spec.md §3). The index IS the wire value.
var RGBColours = [8]RGB{
	{0, 0, 0}, // OFF
	{1, 0, 0}, // RED
	{1, 1, 0}, // YELLOW
	{0, 1, 0}, // GREEN
	{0, 1, 1}, // CYAN
	{0, 0, 1}, // BLUE
	{1, 0, 1}, // MAGENTA
	{1, 1, 1}, // WHITE
}

// ColourIndex returns the table index whose triple matches rgb. Every
// {0,1}^3 triple appears exactly once in RGBColours, so this always
// succeeds for valid input.
func ColourIndex(rgb RGB) (int, bool) {
	for i, c := range RGBColours {
		if c == rgb {
			return i, true
		}
	}
	return 0, false
}

// LED is a single colour-indexed LED. A LED built with a nil physics.Handle
// is the Null variant.
type LED struct {
	handle physics.Handle
	colour int
}

func NewLED(handle physics.Handle) *LED { return &LED{handle: handle} }
func NewNullLED() *LED                  { return &LED{} }

// SetColour sets the LED to the given table index (already validated by the
// caller to be in [0,7]).
func (l *LED) SetColour(colour int) {
	l.colour = colour
	if l.handle != nil {
		l.handle.Set(colour)
	}
}

func (l *LED) GetColour() int {
	if l.handle != nil {
		return l.handle.Get()
	}
	return l.colour
}
