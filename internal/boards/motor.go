package boards

import (
	"strconv"

	"github.com/srobo/sbot-simulator/internal/devices"
)

// MotorBoard implements the long dialect for the Student Robotics motor
// board (spec.md §4.3.1, §6). Motor count is fixed by configuration at
// construction time.
type MotorBoard struct {
	Identity
	motors []*devices.Motor
}

func NewMotorBoard(assetTag string, motors []*devices.Motor) *MotorBoard {
	return &MotorBoard{
		Identity: Identity{BoardCode: "MBv4B", AssetTag: assetTag},
		motors:   motors,
	}
}

func (b *MotorBoard) Handle(cmd string) Reply {
	toks := splitTokens(cmd)
	switch toks[0] {
	case "*IDN?":
		return b.IDN()
	case "*STATUS?":
		return TextReply("0,0:12000")
	case "*RESET":
		for _, m := range b.motors {
			m.Disable()
		}
		return ACK()
	case "MOT":
		return b.handleMotor(toks)
	default:
		return NACK("Unknown command")
	}
}

func (b *MotorBoard) handleMotor(toks []string) Reply {
	if len(toks) < 2 {
		return NACK("Missing motor number")
	}
	if toks[1] == "I?" {
		total := int32(0)
		for _, m := range b.motors {
			total += m.GetCurrent()
		}
		return TextReply(strconv.Itoa(int(total)))
	}
	n, ok := parseIndex(toks[1])
	if !ok || n >= len(b.motors) {
		return NACK("Invalid motor number")
	}
	m := b.motors[n]
	if len(toks) < 3 {
		return NACK("Missing command")
	}
	switch toks[2] {
	case "GET?":
		return TextReply(boolToken(m.Enabled()) + ":" + strconv.Itoa(int(m.GetPower())))
	case "DISABLE":
		m.Disable()
		return ACK()
	case "I?":
		return TextReply(strconv.Itoa(int(m.GetCurrent())))
	case "SET":
		if len(toks) != 4 {
			return NACK("Missing motor power")
		}
		p, ok := parseSignedInt(toks[3])
		if !ok || p < devices.MinMotorPower || p > devices.MaxMotorPower {
			return NACK("Invalid motor power")
		}
		m.SetPower(int32(p))
		return ACK()
	default:
		return NACK("Unknown command")
	}
}
