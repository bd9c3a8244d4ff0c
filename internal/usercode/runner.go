// Package usercode implements the per-zone runner described in spec.md
// §4.6: resolve the zone's entry point, stand up the board set, run user
// code to completion, then tear the board set back down.
package usercode

import (
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/srobo/sbot-simulator/internal/arena"
	"github.com/srobo/sbot-simulator/internal/simlog"
	"github.com/srobo/sbot-simulator/internal/socketserver"
)

// LinksEnvVar is the environment variable the runner publishes the socket
// server's link list under, for user code to discover its boards.
const LinksEnvVar = "SBOT_USERCODE_LINKS"

// Config bundles the runner's static configuration.
type Config struct {
	Arena       *arena.Arena
	Zone        int
	MatchNumber int
	Now         func() float64 // current simulated time, for log line prefixes
}

// Runner drives one zone's user-code lifecycle.
type Runner struct {
	cfg    Config
	server *socketserver.SocketServer

	exitHooks []func()
}

func New(cfg Config, server *socketserver.SocketServer) *Runner {
	return &Runner{cfg: cfg, server: server}
}

// AddExitHook registers a function to run after user code returns, before
// the socket server is stopped.
func (r *Runner) AddExitHook(fn func()) {
	r.exitHooks = append(r.exitHooks, fn)
}

// Run resolves the zone's entry point, prepares logging, starts the board
// set, executes user code, then tears everything down in order.
//
// mode controls whether a missing robot.py is a clean no-op (dev) or a
// failure (comp), per spec.md §4.6.
func (r *Runner) Run(mode arena.Mode) error {
	if !r.cfg.Arena.HasRobot(r.cfg.Zone) {
		if mode == arena.ModeComp {
			return fmt.Errorf("zone %d: no robot.py found", r.cfg.Zone)
		}
		log.Printf("zone %d: no robot.py found, skipping", r.cfg.Zone)
		return nil
	}

	logFile, err := os.Create(r.cfg.Arena.SupervisorLogPath(r.cfg.MatchNumber))
	if err != nil {
		return fmt.Errorf("creating match log: %w", err)
	}
	defer logFile.Close()

	prefix := func() string {
		return fmt.Sprintf("[%.3f] ", r.cfg.Now())
	}
	stdout := simlog.NewPrefixWriter(simlog.NewTee(os.Stdout, logFile), prefix)
	stderr := simlog.NewPrefixWriter(simlog.NewTee(os.Stderr, logFile), prefix)

	r.server.Start()
	defer r.runExitHooksThenStop()

	env := append(os.Environ(),
		"WEBOTS_SIMULATOR=1",
		fmt.Sprintf("WEBOTS_ROBOT=zone_%d", r.cfg.Zone),
		fmt.Sprintf("%s=%s", LinksEnvVar, r.server.LinksFormatted()),
	)
	return r.execUserCode(env, stdout, stderr)
}

// execUserCode runs the zone's robot.py as a subprocess. robot.py is opaque
// executable input to this simulator (spec.md §6); Python itself is the
// expected interpreter, matching the original simulator's user-code contract.
func (r *Runner) execUserCode(env []string, stdout, stderr io.Writer) error {
	cmd := exec.Command("python3", r.cfg.Arena.ZoneRobotPath(r.cfg.Zone))
	cmd.Env = env
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	return cmd.Run()
}

func (r *Runner) runExitHooksThenStop() {
	for _, hook := range r.exitHooks {
		hook()
	}
	r.server.Stop()
}

// PrintSimulationVersion logs the running simulator's version: the contents
// of a VERSION file at simRoot if present, else `git describe --tags
// --always` run in simRoot, else "unknown".
func PrintSimulationVersion(simRoot string) {
	log.Printf("Running simulator version: %s", simulationVersion(simRoot))
}

func simulationVersion(simRoot string) string {
	data, err := os.ReadFile(filepath.Join(simRoot, "VERSION"))
	if err == nil {
		return strings.TrimSpace(string(data))
	}

	cmd := exec.Command("git", "describe", "--tags", "--always")
	cmd.Dir = simRoot
	out, err := cmd.Output()
	if err != nil {
		return "unknown"
	}
	return strings.TrimSpace(string(out))
}
