// Command competition-supervisor drives one match's robot handshake and
// lighting program (spec.md §4.7).
package main

import (
	"log"
	"net"
	"net/http"

	"github.com/srobo/sbot-simulator/internal/arena"
	"github.com/srobo/sbot-simulator/internal/monitor"
	"github.com/srobo/sbot-simulator/internal/physics"
	"github.com/srobo/sbot-simulator/internal/supervisor"
)

// numZones is the fixed arena zone count; a real deployment reads this from
// arena configuration, out of scope for this repository per spec.md §6.
const numZones = 4

// nullRecorder discards all recording calls. The production recorder
// depends on the external simulation host's animation/video capture API,
// which (like the physics engine itself) is out of scope here.
type nullRecorder struct{}

func (nullRecorder) StartAnimation(path string) error             { log.Printf("recording animation to %s (no-op recorder)", path); return nil }
func (nullRecorder) StopAnimation() error                         { return nil }
func (nullRecorder) StartVideo(path string, _ [2]int) error        { log.Printf("recording video to %s (no-op recorder)", path); return nil }
func (nullRecorder) StopVideo() error                              { return nil }
func (nullRecorder) CaptureStill(path string) error                { log.Printf("capturing still to %s (no-op recorder)", path); return nil }

func main() {
	ar, err := arena.FromEnv()
	if err != nil {
		log.Fatal(err)
	}
	match, err := ar.LoadMatch()
	if err != nil {
		log.Fatal(err)
	}

	// See cmd/usercode-runner: the production physics engine is an external
	// dependency this repository doesn't construct itself.
	engine := physics.NewFakeEngine(32)
	facade := physics.NewFacade(engine)

	sup := supervisor.New(facade, ar, nullRecorder{}, numZones)

	// Ambient status dashboard (see cmd/usercode-runner): reports handshake
	// phase and lighting-cue events for local debugging.
	hub := monitor.NewHub()
	sup.SetHub(hub)
	if ln, err := net.Listen("tcp", "127.0.0.1:0"); err != nil {
		log.Printf("dashboard: %v, continuing without it", err)
	} else {
		log.Printf("status dashboard listening at ws://%s/ws/status", ln.Addr())
		go http.Serve(ln, hub)
	}

	if err := sup.Run(match); err != nil {
		log.Fatal(err)
	}
}
