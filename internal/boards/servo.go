package boards

import (
	"strconv"

	"github.com/srobo/sbot-simulator/internal/devices"
)

// ServoBoard implements the long dialect for the Student Robotics servo
// board (spec.md §4.3.1, §6). Servo count is fixed by configuration.
type ServoBoard struct {
	Identity
	servos       []*devices.Servo
	watchdogFail bool
	pgood        bool
}

func NewServoBoard(assetTag string, servos []*devices.Servo) *ServoBoard {
	return &ServoBoard{
		Identity: Identity{BoardCode: "SBv4B", AssetTag: assetTag},
		servos:   servos,
		pgood:    true,
	}
}

func (b *ServoBoard) Handle(cmd string) Reply {
	toks := splitTokens(cmd)
	switch toks[0] {
	case "*IDN?":
		return b.IDN()
	case "*STATUS?":
		return TextReply(pythonBoolToken(b.watchdogFail) + ":" + pythonBoolToken(b.pgood))
	case "*RESET":
		for _, s := range b.servos {
			s.Disable()
		}
		return ACK()
	case "SERVO":
		return b.handleServo(toks)
	default:
		return NACK("Unknown command")
	}
}

func (b *ServoBoard) handleServo(toks []string) Reply {
	if len(toks) < 2 {
		return NACK("Missing servo number")
	}
	switch toks[1] {
	case "I?":
		total := int32(0)
		for _, s := range b.servos {
			total += s.GetCurrent()
		}
		return TextReply(strconv.Itoa(int(total)))
	case "V?":
		return TextReply("5000")
	}
	n, ok := parseIndex(toks[1])
	if !ok || n >= len(b.servos) {
		return NACK("Invalid servo number")
	}
	s := b.servos[n]
	if len(toks) < 3 {
		return NACK("Missing command")
	}
	switch toks[2] {
	case "GET?":
		return TextReply(strconv.Itoa(int(s.GetPosition())))
	case "DISABLE":
		s.Disable()
		return ACK()
	case "SET":
		if len(toks) != 4 {
			return NACK("Missing servo position")
		}
		p, ok := parseSignedInt(toks[3])
		if !ok || p < devices.MinServoPosition || p > devices.MaxServoPosition {
			return NACK("Invalid servo position")
		}
		s.SetPosition(int32(p))
		return ACK()
	default:
		return NACK("Unknown command")
	}
}
