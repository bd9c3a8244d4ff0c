package boards

import (
	"strconv"

	"github.com/srobo/sbot-simulator/internal/devices"
)

// ledStartIndex is the start-button LED's fixed slot, reserved per
// spec.md §9 ("the start-button LED ... overlaps with the general LED
// range in some configurations; treat the index as reserved").
const ledStartIndex = 4

// LEDBoard implements the long dialect for the Student Robotics LED hat
// (spec.md §4.3.1, §6).
type LEDBoard struct {
	Identity
	leds []*devices.LED
}

func NewLEDBoard(assetTag string, leds []*devices.LED) *LEDBoard {
	return &LEDBoard{
		Identity: Identity{BoardCode: "KCHv1B", AssetTag: assetTag},
		leds:     leds,
	}
}

func (b *LEDBoard) Handle(cmd string) Reply {
	toks := splitTokens(cmd)
	switch toks[0] {
	case "*IDN?":
		return b.IDN()
	case "*STATUS?":
		return ACK()
	case "*RESET":
		for _, l := range b.leds {
			l.SetColour(0)
		}
		return ACK()
	case "LED":
		return b.handleLED(toks)
	default:
		return NACK("Unknown command")
	}
}

func (b *LEDBoard) handleLED(toks []string) Reply {
	if len(toks) < 2 {
		return NACK("Missing LED number")
	}
	if toks[1] == "START" {
		return b.handleStart(toks[2:])
	}
	n, ok := parseIndex(toks[1])
	if !ok || n >= len(b.leds) {
		return NACK("Invalid LED number")
	}
	return b.handleSlot(n, toks[2:])
}

func (b *LEDBoard) handleSlot(n int, rest []string) Reply {
	if n >= len(b.leds) {
		return NACK("Invalid LED number")
	}
	led := b.leds[n]
	if len(rest) == 0 {
		return NACK("Unknown command")
	}
	switch rest[0] {
	case "GET?":
		c := devices.RGBColours[led.GetColour()]
		return TextReply(strconv.Itoa(c.R) + ":" + strconv.Itoa(c.G) + ":" + strconv.Itoa(c.B))
	case "SET":
		return b.handleSet(led, rest[1:])
	default:
		return NACK("Unknown command")
	}
}

// handleStart handles LED:START:{SET:<0|1>|GET?}, which addresses the
// fixed start-button LED slot as a single bit rather than an RGB triple.
func (b *LEDBoard) handleStart(rest []string) Reply {
	if ledStartIndex >= len(b.leds) {
		return NACK("Invalid LED number")
	}
	led := b.leds[ledStartIndex]
	if len(rest) == 0 {
		return NACK("Unknown command")
	}
	switch rest[0] {
	case "GET?":
		return TextReply(boolToken(led.GetColour() > 0))
	case "SET":
		return b.handleSet(led, rest[1:])
	default:
		return NACK("Unknown command")
	}
}

// handleSet handles both the 3-channel LED:<n>:SET:<r>:<g>:<b> form and the
// single-bit LED:START:SET:<0|1> form (rest has length 3 or 1 respectively).
func (b *LEDBoard) handleSet(led *devices.LED, rest []string) Reply {
	if len(rest) == 1 {
		v, ok := parseBoolToken(rest[0])
		if !ok {
			return NACK("Invalid LED state")
		}
		if v {
			led.SetColour(1)
		} else {
			led.SetColour(0)
		}
		return ACK()
	}
	if len(rest) != 3 {
		return NACK("Missing LED colour")
	}
	var rgb devices.RGB
	vals := [3]*int{&rgb.R, &rgb.G, &rgb.B}
	for i, tok := range rest {
		v, ok := parseBoolToken(tok)
		if !ok {
			return NACK("Invalid LED colour")
		}
		if v {
			*vals[i] = 1
		}
	}
	idx, ok := devices.ColourIndex(rgb)
	if !ok {
		return NACK("Invalid LED colour")
	}
	led.SetColour(idx)
	return ACK()
}
