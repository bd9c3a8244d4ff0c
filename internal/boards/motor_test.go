package boards

import (
	"testing"

	"github.com/srobo/sbot-simulator/internal/devices"
)

func newTestMotorBoard(n int) *MotorBoard {
	motors := make([]*devices.Motor, n)
	for i := range motors {
		motors[i] = devices.NewNullMotor()
	}
	return NewMotorBoard("MOT0", motors)
}

func TestMotorBoardSetGet(t *testing.T) {
	// spec.md S1.
	b := newTestMotorBoard(4)

	if got := b.Handle("MOT:0:SET:500"); got.Text != "ACK" {
		t.Fatalf("MOT:0:SET:500 = %q, want ACK", got.Text)
	}
	if got := b.Handle("MOT:0:GET?"); got.Text != "1:500" {
		t.Fatalf("MOT:0:GET? = %q, want 1:500", got.Text)
	}
}

func TestMotorBoardDisableLeavesPowerReported(t *testing.T) {
	// spec.md S1: MOT:0:DISABLE leaves GET? reporting the old power with
	// enabled=0.
	b := newTestMotorBoard(4)
	b.Handle("MOT:0:SET:500")

	if got := b.Handle("MOT:0:DISABLE"); got.Text != "ACK" {
		t.Fatalf("MOT:0:DISABLE = %q, want ACK", got.Text)
	}
	if got := b.Handle("MOT:0:GET?"); got.Text != "0:500" {
		t.Fatalf("MOT:0:GET? after disable = %q, want 0:500", got.Text)
	}
}

func TestMotorBoardRejectsOutOfRangePower(t *testing.T) {
	b := newTestMotorBoard(4)
	if got := b.Handle("MOT:0:SET:1001"); got.Text != "NACK:Invalid motor power" {
		t.Fatalf("MOT:0:SET:1001 = %q, want invalid-power NACK", got.Text)
	}
}

func TestMotorBoardRejectsInvalidMotorNumber(t *testing.T) {
	b := newTestMotorBoard(4)
	if got := b.Handle("MOT:9:GET?"); got.Text != "NACK:Invalid motor number" {
		t.Fatalf("MOT:9:GET? = %q, want invalid-motor NACK", got.Text)
	}
}

func TestMotorBoardTotalCurrent(t *testing.T) {
	b := newTestMotorBoard(4)
	if got := b.Handle("MOT:I?"); got.Text != "0" {
		t.Fatalf("MOT:I? = %q, want 0", got.Text)
	}
}
