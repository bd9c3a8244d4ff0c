package boards

import (
	"time"

	"github.com/srobo/sbot-simulator/internal/physics"
)

// TimeServerBoard implements the long dialect's time-server surface
// (spec.md §4.3.3). It has no device state of its own; TIME? and SLEEP
// both read through directly to the physics facade.
type TimeServerBoard struct {
	Identity
	facade    *physics.Facade
	startTime time.Time
}

func NewTimeServerBoard(assetTag string, facade *physics.Facade, startTime time.Time) *TimeServerBoard {
	return &TimeServerBoard{
		Identity:  Identity{BoardCode: "TSv1a", AssetTag: assetTag},
		facade:    facade,
		startTime: startTime,
	}
}

func (b *TimeServerBoard) Handle(cmd string) Reply {
	toks := splitTokens(cmd)
	switch toks[0] {
	case "*IDN?":
		return b.IDN()
	case "*STATUS?":
		return TextReply("0")
	case "TIME?":
		return b.handleTime()
	case "SLEEP":
		return b.handleSleep(toks)
	default:
		return NACK("Unknown command")
	}
}

func (b *TimeServerBoard) handleTime() Reply {
	now := b.facade.Now()
	t := b.startTime.Add(time.Duration(now * float64(time.Second)))
	return TextReply(t.Format("2006-01-02T15:04:05.000"))
}

func (b *TimeServerBoard) handleSleep(toks []string) Reply {
	if len(toks) != 2 {
		return NACK("Missing sleep duration")
	}
	ms, ok := parseSignedInt(toks[1])
	if !ok || ms < 0 {
		return NACK("Invalid sleep duration")
	}
	b.facade.Step(int32(ms))
	return ACK()
}
