package boards

import (
	"strconv"

	"github.com/srobo/sbot-simulator/internal/devices"
)

// ArduinoVersion is the firmware version reported by the `v` command.
const ArduinoVersion = "4.3"

// ArduinoBoard implements the compact single-character dialect
// (spec.md §4.3.2). Unlike the long-dialect boards it has no *IDN?/*STATUS?
// surface; `v` is its only identity command.
type ArduinoBoard struct {
	pins []devices.Pin
}

func NewArduinoBoard(pins []devices.Pin) *ArduinoBoard {
	return &ArduinoBoard{pins: pins}
}

// pinIndex decodes a single pin-operand character using the 'a'+index
// mapping; ok is false for anything outside 'a'..'z'.
func pinIndex(c byte) (int, bool) {
	if c < 'a' || c > 'z' {
		return 0, false
	}
	return int(c - 'a'), true
}

func (b *ArduinoBoard) pinAt(c byte) (devices.Pin, bool) {
	idx, ok := pinIndex(c)
	if !ok || idx >= len(b.pins) {
		return nil, false
	}
	return b.pins[idx], true
}

func (b *ArduinoBoard) Handle(cmd string) Reply {
	if cmd == "" {
		return NoReplyReply()
	}
	switch cmd[0] {
	case 'v':
		return TextReply("SRduino:" + ArduinoVersion)
	case 'a':
		return b.analogRead(cmd)
	case 'r':
		return b.digitalRead(cmd)
	case 'l':
		return b.digitalWrite(cmd, false)
	case 'h':
		return b.digitalWrite(cmd, true)
	case 'i':
		return b.setMode(cmd, devices.PinInput)
	case 'o':
		return b.setMode(cmd, devices.PinOutput)
	case 'p':
		return b.setMode(cmd, devices.PinInputPullup)
	case 'u':
		return b.ultrasound(cmd)
	default:
		// Unknown leading character is ignored (spec.md §4.3.2).
		return NoReplyReply()
	}
}

func (b *ArduinoBoard) analogRead(cmd string) Reply {
	if len(cmd) < 2 {
		return TextReply("0")
	}
	pin, ok := b.pinAt(cmd[1])
	if !ok {
		return TextReply("0")
	}
	return TextReply(strconv.Itoa(pin.Analog()))
}

func (b *ArduinoBoard) digitalRead(cmd string) Reply {
	if len(cmd) < 2 {
		return TextReply("l")
	}
	pin, ok := b.pinAt(cmd[1])
	if !ok {
		return TextReply("l")
	}
	if pin.Digital() {
		return TextReply("h")
	}
	return TextReply("l")
}

func (b *ArduinoBoard) digitalWrite(cmd string, value bool) Reply {
	if len(cmd) < 2 {
		return NoReplyReply()
	}
	pin, ok := b.pinAt(cmd[1])
	if !ok {
		return NoReplyReply()
	}
	pin.SetDigital(value)
	return NoReplyReply()
}

func (b *ArduinoBoard) setMode(cmd string, mode devices.GPIOPinMode) Reply {
	if len(cmd) < 2 {
		return NoReplyReply()
	}
	pin, ok := b.pinAt(cmd[1])
	if !ok {
		return NoReplyReply()
	}
	pin.SetMode(mode)
	return NoReplyReply()
}

// ultrasound handles u<t><e>: trigger pin t, echo pin e. The reply is the
// echo distance in mm, or 0 if the echo pin isn't an UltrasonicPin.
func (b *ArduinoBoard) ultrasound(cmd string) Reply {
	if len(cmd) < 3 {
		return TextReply("0")
	}
	echoPin, ok := b.pinAt(cmd[2])
	if !ok {
		return TextReply("0")
	}
	ultrasonic, ok := echoPin.(*devices.UltrasonicPin)
	if !ok {
		return TextReply("0")
	}
	return TextReply(strconv.Itoa(ultrasonic.Distance()))
}
