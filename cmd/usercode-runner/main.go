// Command usercode-runner drives one zone's robot.py against a simulated
// board set (spec.md §4.6).
package main

import (
	"fmt"
	"log"
	"math"
	"net"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/srobo/sbot-simulator/internal/arena"
	"github.com/srobo/sbot-simulator/internal/boards"
	"github.com/srobo/sbot-simulator/internal/devices"
	"github.com/srobo/sbot-simulator/internal/monitor"
	"github.com/srobo/sbot-simulator/internal/physics"
	"github.com/srobo/sbot-simulator/internal/socketserver"
	"github.com/srobo/sbot-simulator/internal/usercode"
)

// defaultMotorCount, defaultServoCount and defaultLEDCount are placeholders
// for the board counts that, on a real arena, come from per-zone hardware
// configuration; spec.md treats the exact source of that configuration as
// out of scope ("motor count is fixed by configuration").
const (
	defaultMotorCount  = 4
	defaultServoCount  = 8
	defaultLEDCount    = 6
	defaultArduinoPins = 8

	cameraWidth  = 1280
	cameraHeight = 960
	cameraFOV    = math.Pi / 2 // radians
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: usercode-runner <zone-index>")
	}
	zone, err := strconv.Atoi(os.Args[1])
	if err != nil || zone < 0 {
		log.Fatalf("invalid zone index %q", os.Args[1])
	}

	ar, err := arena.FromEnv()
	if err != nil {
		log.Fatal(err)
	}
	mode, err := ar.Mode()
	if err != nil {
		log.Fatal(err)
	}
	usercode.PrintSimulationVersion(ar.Root)

	// NewFakeEngine stands in for the production physics engine, which this
	// repository treats as an external dependency supplied by the
	// simulation host process (see internal/physics.Engine).
	engine := physics.NewFakeEngine(32)
	facade := physics.NewFacade(engine)

	specs := buildBoardSet(facade, zone)
	server, err := socketserver.New(specs, facade, func() {
		log.Print("physics host terminated; interrupting user code")
		os.Exit(1)
	})
	if err != nil {
		log.Fatal(err)
	}

	// Ambient status dashboard (spec.md has no such surface; this is purely
	// local observability, started alongside the board sockets).
	hub := monitor.NewHub()
	server.SetObserver(hub)
	if ln, err := net.Listen("tcp", "127.0.0.1:0"); err != nil {
		log.Printf("dashboard: %v, continuing without it", err)
	} else {
		log.Printf("status dashboard listening at ws://%s/ws/status", ln.Addr())
		go http.Serve(ln, hub)
	}

	runner := usercode.New(usercode.Config{
		Arena: ar,
		Zone:  zone,
		Now:   facade.Now,
	}, server)

	if err := runner.Run(mode); err != nil {
		log.Fatal(err)
	}
}

func buildBoardSet(facade *physics.Facade, zone int) []socketserver.BoardSpec {
	motors := make([]*devices.Motor, defaultMotorCount)
	for i := range motors {
		motors[i] = devices.NewNullMotor()
	}
	servos := make([]*devices.Servo, defaultServoCount)
	for i := range servos {
		servos[i] = devices.NewNullServo()
	}
	leds := make([]*devices.LED, defaultLEDCount)
	for i := range leds {
		leds[i] = devices.NewNullLED()
	}
	pins := make([]devices.Pin, defaultArduinoPins)
	for i := range pins {
		pins[i] = devices.NewEmptyPin()
	}
	camera := devices.NewNullCamera()

	return []socketserver.BoardSpec{
		{Board: boards.NewPowerBoard(fmt.Sprintf("PWR%d", zone)), BoardClass: "PowerBoard", AssetTag: fmt.Sprintf("PWR%d", zone)},
		{Board: boards.NewMotorBoard(fmt.Sprintf("MOT%d", zone), motors), BoardClass: "MotorBoard", AssetTag: fmt.Sprintf("MOT%d", zone)},
		{Board: boards.NewServoBoard(fmt.Sprintf("SERVO%d", zone), servos), BoardClass: "ServoBoard", AssetTag: fmt.Sprintf("SERVO%d", zone)},
		{Board: boards.NewLEDBoard(fmt.Sprintf("KCH%d", zone), leds), BoardClass: "LedBoard", AssetTag: fmt.Sprintf("KCH%d", zone)},
		{Board: boards.NewArduinoBoard(pins), BoardClass: "Arduino", AssetTag: fmt.Sprintf("ARDUINO%d", zone)},
		{Board: boards.NewTimeServerBoard(fmt.Sprintf("TIME%d", zone), facade, time.Now().UTC()), BoardClass: "TimeServer", AssetTag: fmt.Sprintf("TIME%d", zone)},
		{Board: boards.NewCameraBoard(fmt.Sprintf("CAM%d", zone), camera, cameraWidth, cameraHeight, cameraFOV), BoardClass: "Camera", AssetTag: fmt.Sprintf("CAM%d", zone)},
	}
}
