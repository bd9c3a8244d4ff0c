package supervisor

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/srobo/sbot-simulator/internal/arena"
	"github.com/srobo/sbot-simulator/internal/physics"
)

type fakeRecorder struct {
	calls []string
}

func (r *fakeRecorder) StartAnimation(path string) error      { r.calls = append(r.calls, "StartAnimation"); return nil }
func (r *fakeRecorder) StopAnimation() error                   { r.calls = append(r.calls, "StopAnimation"); return nil }
func (r *fakeRecorder) StartVideo(path string, _ [2]int) error { r.calls = append(r.calls, "StartVideo"); return nil }
func (r *fakeRecorder) StopVideo() error                       { r.calls = append(r.calls, "StopVideo"); return nil }
func (r *fakeRecorder) CaptureStill(path string) error         { r.calls = append(r.calls, "CaptureStill"); return nil }

func newTestSupervisor(t *testing.T, numZones int) (*Supervisor, *physics.FakeEngine, *physics.Facade, *arena.Arena) {
	t.Helper()
	engine := physics.NewFakeEngine(50)
	facade := physics.NewFacade(engine)
	for zone := 0; zone < numZones; zone++ {
		engine.CustomDataSet(fmt.Sprintf("ROBOT%d", zone), "")
	}
	ar := arena.New(t.TempDir())
	sup := New(facade, ar, &fakeRecorder{}, numZones)
	return sup, engine, facade, ar
}

// TestWaitForReadyProgressesHandshake covers testable property 8: the
// customData handshake progresses ""-> prestart (armed) -> ready (robot
// signals), which the supervisor then recognises.
func TestWaitForReadyProgressesHandshake(t *testing.T) {
	sup, engine, facade, _ := newTestSupervisor(t, 1)
	sup.armAll()

	v, _ := facade.CustomDataGet("ROBOT0")
	if v != customDataPrestart {
		t.Fatalf("after armAll, customData = %q, want %q", v, customDataPrestart)
	}

	engine.CustomDataSet("ROBOT0", customDataReady)

	if err := sup.waitForReady(); err != nil {
		t.Fatalf("waitForReady: %v", err)
	}
	if !sup.robots[0].registeredReady {
		t.Fatal("robot was not marked registeredReady")
	}
}

// TestWaitForReadyTimesOut covers testable property 9: a robot that never
// reports ready causes a timeout after readyTimeoutSeconds of simulated time.
func TestWaitForReadyTimesOut(t *testing.T) {
	sup, _, _, _ := newTestSupervisor(t, 1)
	sup.armAll()
	// ROBOT0's customData stays at "prestart" forever: never ready.

	if err := sup.waitForReady(); err == nil {
		t.Fatal("waitForReady should time out when no robot reports ready")
	}
}

func TestRemoveUnoccupiedRobotsDropsZonesWithoutRobotPy(t *testing.T) {
	sup, engine, _, ar := newTestSupervisor(t, 2)

	if err := writeRobotPy(ar, 0); err != nil {
		t.Fatalf("writeRobotPy: %v", err)
	}
	// Zone 1 has no robot.py.

	sup.removeUnoccupiedRobots()

	if len(sup.robots) != 1 || sup.robots[0].Zone != 0 {
		t.Fatalf("robots after removeUnoccupiedRobots = %+v, want only zone 0", sup.robots)
	}
	if _, ok := engine.CustomDataGet("ROBOT1"); ok {
		t.Fatal("ROBOT1's custom data node should have been removed")
	}
}

func writeRobotPy(ar *arena.Arena, zone int) error {
	path := ar.ZoneRobotPath(zone)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte("# robot"), 0o644)
}
