// Package arena resolves the on-disk match layout consumed by the usercode
// runner and the competition supervisor (spec.md §6).
package arena

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Mode selects dev or competition behaviour for a match.
type Mode string

const (
	ModeDev  Mode = "dev"
	ModeComp Mode = "comp"
)

// RecordingConfig configures supervisor recording (spec.md §6 match.json).
type RecordingConfig struct {
	Enabled    bool  `json:"enabled"`
	Resolution [2]int `json:"resolution"`
}

// Match is the parsed contents of <arena>/match.json.
type Match struct {
	MatchNumber     int             `json:"match_number"`
	Duration        float64         `json:"duration"`
	RecordingConfig RecordingConfig `json:"recording_config"`
}

// Arena resolves paths under a match root directory.
type Arena struct {
	Root string
}

func New(root string) *Arena {
	return &Arena{Root: root}
}

// FromEnv builds an Arena from the ARENA_ROOT environment variable.
func FromEnv() (*Arena, error) {
	root := os.Getenv("ARENA_ROOT")
	if root == "" {
		return nil, fmt.Errorf("ARENA_ROOT is not set")
	}
	return New(root), nil
}

// Mode reads <arena>/mode.txt, defaulting to dev if absent (spec.md §6).
func (a *Arena) Mode() (Mode, error) {
	data, err := os.ReadFile(filepath.Join(a.Root, "mode.txt"))
	if os.IsNotExist(err) {
		return ModeDev, nil
	}
	if err != nil {
		return "", fmt.Errorf("reading mode.txt: %w", err)
	}
	switch m := Mode(strings.TrimSpace(string(data))); m {
	case ModeDev, ModeComp:
		return m, nil
	default:
		return "", fmt.Errorf("mode.txt: unrecognised mode %q", m)
	}
}

// LoadMatch reads and parses <arena>/match.json.
func (a *Arena) LoadMatch() (*Match, error) {
	data, err := os.ReadFile(filepath.Join(a.Root, "match.json"))
	if err != nil {
		return nil, fmt.Errorf("reading match.json: %w", err)
	}
	var m Match
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing match.json: %w", err)
	}
	return &m, nil
}

// ZoneRobotPath returns the path to the zone's robot.py entry point.
func (a *Arena) ZoneRobotPath(zone int) string {
	return filepath.Join(a.Root, fmt.Sprintf("zone_%d", zone), "robot.py")
}

// HasRobot reports whether the zone has a robot.py entry point.
func (a *Arena) HasRobot(zone int) bool {
	_, err := os.Stat(a.ZoneRobotPath(zone))
	return err == nil
}

// RecordingPath returns the path to a recording artifact of the given
// extension for a match number (spec.md §6: recordings/match-<n>.<ext>).
func (a *Arena) RecordingPath(matchNumber int, ext string) string {
	return filepath.Join(a.Root, "recordings", fmt.Sprintf("match-%d.%s", matchNumber, ext))
}

// SupervisorLogPath returns the path to the per-match teed log file.
func (a *Arena) SupervisorLogPath(matchNumber int) string {
	return filepath.Join(a.Root, fmt.Sprintf("supervisor-log-match-%d.txt", matchNumber))
}
