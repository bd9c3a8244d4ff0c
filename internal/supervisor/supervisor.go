// Package supervisor implements the competition supervisor's per-match
// handshake and lighting control (spec.md §4.7).
package supervisor

import (
	"fmt"
	"log"

	"github.com/srobo/sbot-simulator/internal/arena"
	"github.com/srobo/sbot-simulator/internal/monitor"
	"github.com/srobo/sbot-simulator/internal/physics"
)

const (
	customDataUnarmed  = ""
	customDataPrestart = "prestart"
	customDataReady    = "ready"
	customDataStart    = "start"

	readyTimeoutSeconds = 5.0
)

// Recorder captures match media. It is a separate, ambient concern from the
// Physics Host Facade's narrow simulation-stepping surface (spec.md §4.1);
// the supervisor is constructed with one explicitly, mirroring how it's
// given an explicit *physics.Facade rather than reaching for a global.
type Recorder interface {
	StartAnimation(path string) error
	StopAnimation() error
	StartVideo(path string, resolution [2]int) error
	StopVideo() error
	CaptureStill(path string) error
}

// RobotData tracks one zone's robot node through the start handshake
// (spec.md §4.7).
type RobotData struct {
	Zone            int
	NodeName        string
	registeredReady bool
}

func (r *RobotData) arm(facade *physics.Facade) {
	facade.CustomDataSet(r.NodeName, customDataPrestart)
}

func (r *RobotData) isReady(facade *physics.Facade) bool {
	v, _ := facade.CustomDataGet(r.NodeName)
	return v == customDataReady
}

func (r *RobotData) release(facade *physics.Facade) {
	facade.CustomDataSet(r.NodeName, customDataStart)
}

// Supervisor drives one match's robot handshake, lighting, and recording.
type Supervisor struct {
	facade   *physics.Facade
	arena    *arena.Arena
	recorder Recorder
	robots   []*RobotData

	hub *monitor.Hub
}

// SetHub attaches the ambient monitor dashboard hub, so handshake-phase and
// lighting-cue events get broadcast alongside the per-board command events
// the socket server and usercode runner already forward. Optional: a nil hub
// (the default) disables this.
func (s *Supervisor) SetHub(hub *monitor.Hub) {
	s.hub = hub
}

func (s *Supervisor) broadcastPhase(phase string, data interface{}) {
	if s.hub == nil {
		return
	}
	s.hub.Broadcast(monitor.Event{Type: phase, Data: data})
}

func New(facade *physics.Facade, ar *arena.Arena, recorder Recorder, numZones int) *Supervisor {
	s := &Supervisor{facade: facade, arena: ar, recorder: recorder}
	for zone := 0; zone < numZones; zone++ {
		nodeName := fmt.Sprintf("ROBOT%d", zone)
		if _, ok := facade.CustomDataGet(nodeName); !ok {
			log.Printf("zone %d: failed to resolve node %s, skipping", zone, nodeName)
			continue
		}
		s.robots = append(s.robots, &RobotData{Zone: zone, NodeName: nodeName})
	}
	return s
}

// removeUnoccupiedRobots removes every robot node whose zone has no
// robot.py, per spec.md §4.7 step 2.
func (s *Supervisor) removeUnoccupiedRobots() {
	kept := s.robots[:0]
	for _, r := range s.robots {
		if s.arena.HasRobot(r.Zone) {
			kept = append(kept, r)
		} else {
			s.facade.NodeRemove(r.NodeName)
		}
	}
	s.robots = kept
}

func (s *Supervisor) armAll() {
	for _, r := range s.robots {
		r.arm(s.facade)
	}
	s.broadcastPhase("phase", "armed")
}

func (s *Supervisor) releaseAll() {
	for _, r := range s.robots {
		r.release(s.facade)
	}
	s.broadcastPhase("phase", "released")
}

// waitForReady steps simulated time in basic-step increments until every
// robot has reported ready, or raises a timeout if readyTimeoutSeconds of
// simulated time elapse first (spec.md §4.7 step 4, testable property 9).
func (s *Supervisor) waitForReady() error {
	deadline := s.facade.Now() + readyTimeoutSeconds
	basicStepMS := s.facade.BasicStepMS()

	for s.facade.Now() < deadline {
		s.facade.Step(basicStepMS)

		allReady := true
		for _, r := range s.robots {
			if !r.registeredReady {
				if r.isReady(s.facade) {
					log.Printf("Robot in zone %d is ready.", r.Zone)
					r.registeredReady = true
					s.broadcastPhase("robot_ready", r.Zone)
				} else {
					allReady = false
				}
			}
		}
		if allReady {
			return nil
		}
	}

	var pending []int
	for _, r := range s.robots {
		if !r.registeredReady {
			pending = append(pending, r.Zone)
		}
	}
	return fmt.Errorf("robots in zones %v failed to initialise within %.1f seconds", pending, readyTimeoutSeconds)
}

// Run executes the full per-match sequence (spec.md §4.7 steps 1-8).
func (s *Supervisor) Run(match *arena.Match) error {
	s.removeUnoccupiedRobots()
	s.armAll()

	if err := s.waitForReady(); err != nil {
		return err
	}

	basicStepMS := s.facade.BasicStepMS()
	animPath := s.arena.RecordingPath(match.MatchNumber, "html")
	if err := s.recorder.StartAnimation(animPath); err != nil {
		return fmt.Errorf("starting animation recording: %w", err)
	}
	s.facade.Step(basicStepMS)

	recordVideo := match.RecordingConfig.Enabled
	videoPath := s.arena.RecordingPath(match.MatchNumber, "mp4")
	if recordVideo {
		if err := s.recorder.StartVideo(videoPath, match.RecordingConfig.Resolution); err != nil {
			return fmt.Errorf("starting video recording: %w", err)
		}
	}

	s.releaseAll()
	s.facade.SetMode(physics.ModeFast)

	matchTimesteps := int((match.Duration * 1000) / float64(basicStepMS))
	lighting := NewLightingEngine(s.facade, "AMBIENT", matchTimesteps, basicStepMS)
	lighting.SetEffectCallback(func(name string) {
		s.broadcastPhase("lighting_cue", name)
	})
	for step := 0; step < matchTimesteps; step++ {
		lighting.Service(step)
		s.facade.Step(basicStepMS)
	}

	s.facade.Step(basicStepMS)
	stillPath := s.arena.RecordingPath(match.MatchNumber, "jpg")
	if err := s.recorder.CaptureStill(stillPath); err != nil {
		return fmt.Errorf("capturing still image: %w", err)
	}

	if recordVideo {
		if err := s.recorder.StopVideo(); err != nil {
			return fmt.Errorf("stopping video recording: %w", err)
		}
	}
	if err := s.recorder.StopAnimation(); err != nil {
		return fmt.Errorf("stopping animation recording: %w", err)
	}
	s.broadcastPhase("phase", "complete")
	return nil
}
