package boards

import (
	"strconv"
	"strings"

	"github.com/srobo/sbot-simulator/internal/devices"
)

// numPowerOutputs is fixed by the power board's hardware: rails 0-5 are
// switched user outputs, rail 6 is the always-on brain rail.
const numPowerOutputs = 7

// brainOutputIndex cannot be switched off: OUT:6:SET is always rejected.
const brainOutputIndex = 6

// PowerBoard implements the long dialect for the Student Robotics power
// board (spec.md §4.3.1, §6).
type PowerBoard struct {
	Identity
	outputs [numPowerOutputs]*devices.Output
	battery *devices.Output // current-draw hook only; voltage is fixed
	buzzer  *devices.Buzzer
	button  *devices.Button
	runLED  bool
	errLED  bool
}

func NewPowerBoard(assetTag string) *PowerBoard {
	b := &PowerBoard{
		Identity: Identity{BoardCode: "PBv4B", AssetTag: assetTag},
		buzzer:   devices.NewBuzzer(),
		button:   devices.NewButton(),
	}
	for i := range b.outputs {
		b.outputs[i] = devices.NewOutput()
	}
	return b
}

func (b *PowerBoard) Handle(cmd string) Reply {
	toks := splitTokens(cmd)
	switch toks[0] {
	case "*IDN?":
		return b.IDN()
	case "*STATUS?":
		// Fixed per spec.md §4.3.1: not reactive to live output/buzzer state.
		return TextReply("0,0,0,0,0,0,0:25:0:5000")
	case "*RESET":
		for _, o := range b.outputs {
			o.SetEnabled(false)
		}
		b.buzzer.SetNote(0, 0)
		b.runLED = false
		b.errLED = false
		return ACK()
	case "BTN":
		return b.handleButton(toks)
	case "OUT":
		return b.handleOutput(toks)
	case "BATT":
		return b.handleBattery(toks)
	case "LED":
		return b.handleLED(toks)
	case "NOTE":
		return b.handleNote(toks)
	default:
		return NACK("Unknown command")
	}
}

func (b *PowerBoard) handleButton(toks []string) Reply {
	if len(toks) != 3 || toks[1] != "START" || toks[2] != "GET?" {
		return NACK("Unknown command")
	}
	return TextReply(boolToken(b.button.State()) + ":0")
}

func (b *PowerBoard) handleOutput(toks []string) Reply {
	if len(toks) < 3 {
		return NACK("Missing output number")
	}
	n, ok := parseIndex(toks[1])
	if !ok || n >= numPowerOutputs {
		return NACK("Invalid output number")
	}
	out := b.outputs[n]
	switch toks[2] {
	case "GET?":
		return TextReply(boolToken(out.Enabled()))
	case "I?":
		return TextReply(strconv.Itoa(int(out.GetCurrent())))
	case "SET":
		if n == brainOutputIndex {
			return NACK("Brain output cannot be controlled")
		}
		if len(toks) != 4 {
			return NACK("Missing output state")
		}
		v, ok := parseBoolToken(toks[3])
		if !ok {
			return NACK("Invalid output state")
		}
		out.SetEnabled(v)
		return ACK()
	default:
		return NACK("Unknown command")
	}
}

func (b *PowerBoard) handleBattery(toks []string) Reply {
	if len(toks) != 2 {
		return NACK("Unknown command")
	}
	switch toks[1] {
	case "V?":
		return TextReply("12000")
	case "I?":
		total := 0
		for _, o := range b.outputs {
			total += int(o.GetCurrent())
		}
		return TextReply(strconv.Itoa(total))
	default:
		return NACK("Unknown command")
	}
}

func (b *PowerBoard) handleLED(toks []string) Reply {
	if len(toks) < 2 {
		return NACK("Missing LED name")
	}
	var state *bool
	switch toks[1] {
	case "RUN":
		state = &b.runLED
	case "ERR":
		state = &b.errLED
	default:
		return NACK("Invalid LED name")
	}
	if len(toks) < 3 {
		return NACK("Unknown command")
	}
	switch toks[2] {
	case "GET?":
		return TextReply(boolToken(*state))
	case "SET":
		if len(toks) != 4 {
			return NACK("Missing LED state")
		}
		switch strings.ToUpper(toks[3]) {
		case "0":
			*state = false
		case "1", "F":
			*state = true
		default:
			return NACK("Invalid LED state")
		}
		return ACK()
	default:
		return NACK("Unknown command")
	}
}

func (b *PowerBoard) handleNote(toks []string) Reply {
	if len(toks) == 2 && toks[1] == "GET?" {
		freq, dur := b.buzzer.GetNote()
		return TextReply(strconv.Itoa(int(freq)) + ":" + strconv.Itoa(int(dur)))
	}
	if len(toks) != 3 {
		return NACK("Missing note frequency")
	}
	freq, ok := parseSignedInt(toks[1])
	if !ok {
		return NACK("Invalid note frequency")
	}
	if freq < 0 || freq >= 10000 {
		return NACK("Invalid note frequency")
	}
	dur, ok := parseSignedInt(toks[2])
	if !ok {
		return NACK("Invalid note duration")
	}
	if dur < 0 {
		return NACK("Invalid note duration")
	}
	b.buzzer.SetNote(int32(freq), int32(dur))
	return ACK()
}
