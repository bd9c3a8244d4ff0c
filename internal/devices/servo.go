package devices

import (
	"math/rand"

	"github.com/srobo/sbot-simulator/internal/physics"
)

// MinServoPosition and MaxServoPosition bound the pulse-width setpoint, in
// microseconds (spec.md §3).
const (
	MinServoPosition = 1000
	MaxServoPosition = 2000

	servoJitterStdPct = 0.005 // 0.5% of full scale, spec.md §4.2
)

// Servo is a position-controlled servo. A Servo built with a nil
// physics.Handle is the Null variant.
type Servo struct {
	handle  physics.Handle
	jitter  *jitter
	enabled bool
	position int32
}

// NewServo builds a physics-backed servo; src seeds the jitter distribution.
func NewServo(handle physics.Handle, src rand.Source) *Servo {
	return &Servo{
		handle:   handle,
		jitter:   newJitter(float64(MaxServoPosition)*servoJitterStdPct, src),
		position: (MinServoPosition + MaxServoPosition) / 2,
	}
}

// NewNullServo builds a Servo with no physics coupling.
func NewNullServo() *Servo {
	return &Servo{position: (MinServoPosition + MaxServoPosition) / 2}
}

// SetPosition applies a already-validated pulse-width setpoint.
func (s *Servo) SetPosition(position int32) {
	s.position = position
	s.enabled = true

	if s.handle == nil {
		return
	}
	jittered := s.jitter.apply(float64(position))
	jittered = clampFloat(jittered, MinServoPosition, MaxServoPosition)
	minPos, maxPos := s.handle.MinPosition(), s.handle.MaxPosition()
	s.handle.SetPosition(mapRange(jittered, MinServoPosition, MaxServoPosition, minPos+0.001, maxPos-0.001))
}

// Disable stops actuation but leaves the last reported position unchanged,
// matching the firmware (original_source's servo.py: "TODO use
// setAvailableForce to simulate disabled").
func (s *Servo) Disable() {
	s.enabled = false
}

func (s *Servo) GetPosition() int32 { return s.position }
func (s *Servo) Enabled() bool      { return s.enabled }

// GetCurrent always reports 0 for the same reason as Motor.GetCurrent.
func (s *Servo) GetCurrent() int32 { return 0 }
