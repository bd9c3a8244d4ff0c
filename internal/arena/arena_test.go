package arena

import (
	"os"
	"path/filepath"
	"testing"
)

func TestModeDefaultsToDevWhenAbsent(t *testing.T) {
	a := New(t.TempDir())
	mode, err := a.Mode()
	if err != nil {
		t.Fatalf("Mode: %v", err)
	}
	if mode != ModeDev {
		t.Fatalf("Mode() = %q, want %q when mode.txt is absent", mode, ModeDev)
	}
}

func TestModeReadsModeFile(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "mode.txt"), []byte("comp\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	a := New(root)
	mode, err := a.Mode()
	if err != nil {
		t.Fatalf("Mode: %v", err)
	}
	if mode != ModeComp {
		t.Fatalf("Mode() = %q, want %q", mode, ModeComp)
	}
}

func TestModeRejectsUnrecognised(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "mode.txt"), []byte("bogus"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	a := New(root)
	if _, err := a.Mode(); err == nil {
		t.Fatal("Mode() should reject an unrecognised mode")
	}
}

func TestLoadMatch(t *testing.T) {
	root := t.TempDir()
	const doc = `{"match_number": 3, "duration": 180, "recording_config": {"enabled": true, "resolution": [640, 480]}}`
	if err := os.WriteFile(filepath.Join(root, "match.json"), []byte(doc), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	a := New(root)
	m, err := a.LoadMatch()
	if err != nil {
		t.Fatalf("LoadMatch: %v", err)
	}
	if m.MatchNumber != 3 || m.Duration != 180 {
		t.Fatalf("LoadMatch() = %+v, want match_number=3 duration=180", m)
	}
	if !m.RecordingConfig.Enabled || m.RecordingConfig.Resolution != [2]int{640, 480} {
		t.Fatalf("LoadMatch().RecordingConfig = %+v, want enabled with 640x480", m.RecordingConfig)
	}
}

func TestHasRobot(t *testing.T) {
	root := t.TempDir()
	a := New(root)
	if a.HasRobot(0) {
		t.Fatal("HasRobot(0) = true with no zone directory created")
	}

	zoneDir := filepath.Join(root, "zone_0")
	if err := os.MkdirAll(zoneDir, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(filepath.Join(zoneDir, "robot.py"), []byte("# robot"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if !a.HasRobot(0) {
		t.Fatal("HasRobot(0) = false after creating zone_0/robot.py")
	}
}

func TestRecordingAndLogPaths(t *testing.T) {
	a := New("/arena")
	if got, want := a.RecordingPath(3, "mp4"), filepath.Join("/arena", "recordings", "match-3.mp4"); got != want {
		t.Fatalf("RecordingPath() = %q, want %q", got, want)
	}
	if got, want := a.SupervisorLogPath(3), filepath.Join("/arena", "supervisor-log-match-3.txt"); got != want {
		t.Fatalf("SupervisorLogPath() = %q, want %q", got, want)
	}
}
