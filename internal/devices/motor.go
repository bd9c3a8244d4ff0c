package devices

import (
	"log"
	"math/rand"

	"github.com/srobo/sbot-simulator/internal/physics"
)

// MinMotorPower and MaxMotorPower bound the board-level power setpoint
// (spec.md §3: "Motor power ... in [-1000,+1000]").
const (
	MinMotorPower = -1000
	MaxMotorPower = 1000

	motorJitterStdPct  = 0.01 // 1% of full scale, spec.md §4.2
	motorDeadbandPct   = 0.05 // 5% of full scale is coerced to 0
	motorDeadbandValue = int32(float64(MaxMotorPower) * motorDeadbandPct)
)

// Motor is a power-controlled wheel/output motor. A Motor built with a nil
// physics.Handle is the Null variant: it tracks the same state but has no
// physics coupling.
type Motor struct {
	handle  physics.Handle
	jitter  *jitter
	enabled bool
	power   int32
}

// NewMotor builds a physics-backed motor. src seeds the jitter distribution;
// pass nil in tests to get a deterministic zero-jitter motor.
func NewMotor(handle physics.Handle, src rand.Source) *Motor {
	sigma := float64(MaxMotorPower) * motorJitterStdPct
	if src == nil {
		sigma = 0
	}
	return &Motor{
		handle: handle,
		jitter: newJitter(sigma, src),
	}
}

// NewNullMotor builds a Motor with no physics coupling.
func NewNullMotor() *Motor {
	return &Motor{}
}

// SetPower applies power (already validated to be in range by the board)
// to the motor, applying firmware-accurate jitter and deadband coercion.
func (m *Motor) SetPower(power int32) {
	if absInt32(power) < motorDeadbandValue {
		if power != 0 {
			log.Printf("WARN: motor power %d is within the deadband, coercing to 0", power)
		}
		power = 0
	}
	m.power = power
	m.enabled = true

	if m.handle == nil {
		return
	}
	jittered := m.jitter.apply(float64(power))
	jittered = clampFloat(jittered, MinMotorPower, MaxMotorPower)
	maxVel := m.handle.MaxVelocity()
	m.handle.SetVelocity(mapRange(jittered, MinMotorPower, MaxMotorPower, -maxVel, maxVel))
}

// Disable stops the motor. It does not reset the last commanded power, only
// the enabled flag (S1: MOT:0:DISABLE leaves GET? reporting the old power).
func (m *Motor) Disable() {
	m.enabled = false
	if m.handle != nil {
		m.handle.SetVelocity(0)
	}
}

func (m *Motor) GetPower() int32 { return m.power }
func (m *Motor) Enabled() bool   { return m.enabled }

// GetCurrent always reports 0: the physics engine has no torque-feedback
// model for this generation of board firmware (see original_source's motor.py).
func (m *Motor) GetCurrent() int32 { return 0 }
