// Package bridge relays bytes between a real serial-connected board and one
// of this simulator's device server sockets, for hardware-in-the-loop
// testing of user code against real firmware instead of the simulated
// board engines.
package bridge

import (
	"fmt"
	"io"
	"net"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"time"

	"github.com/tarm/serial"
	"go.bug.st/serial/enumerator"
)

// ListPorts returns a best-effort, sorted, de-duplicated list of available
// serial port device names, adapted from the teacher's serial/ports_list.go
// to this module's needs (no calibration-protocol framing).
func ListPorts() []string {
	if ports, err := enumerator.GetDetailedPortsList(); err == nil && len(ports) > 0 {
		seen := make(map[string]struct{}, len(ports))
		out := make([]string, 0, len(ports))
		for _, p := range ports {
			if p == nil || p.Name == "" {
				continue
			}
			if _, ok := seen[p.Name]; ok {
				continue
			}
			seen[p.Name] = struct{}{}
			out = append(out, p.Name)
		}
		sort.Strings(out)
		return out
	}

	switch runtime.GOOS {
	case "darwin":
		return listByGlob("/dev/cu.*", "/dev/tty.*")
	case "windows":
		return nil
	default:
		return listByGlob("/dev/ttyUSB*", "/dev/ttyACM*")
	}
}

func listByGlob(patterns ...string) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, pat := range patterns {
		matches, _ := filepath.Glob(pat)
		for _, m := range matches {
			if _, err := os.Stat(m); err != nil {
				continue
			}
			if _, ok := seen[m]; ok {
				continue
			}
			seen[m] = struct{}{}
			out = append(out, m)
		}
	}
	sort.Strings(out)
	return out
}

// OpenPort opens a serial port at the given baud rate, with the same read
// timeout the teacher's TestPort uses to avoid blocking a relay goroutine
// forever on a silent link.
func OpenPort(name string, baud int) (*serial.Port, error) {
	cfg := &serial.Config{
		Name:        name,
		Baud:        baud,
		Parity:      serial.ParityNone,
		Size:        8,
		StopBits:    serial.Stop1,
		ReadTimeout: 300 * time.Millisecond,
	}
	sp, err := serial.OpenPort(cfg)
	if err != nil {
		return nil, fmt.Errorf("opening serial port %s: %w", name, err)
	}
	return sp, nil
}

// Relay copies bytes bidirectionally between a serial port and a TCP
// connection to one of this simulator's device servers until either side
// closes or an error occurs.
func Relay(port *serial.Port, conn net.Conn) error {
	errCh := make(chan error, 2)
	go func() {
		_, err := io.Copy(conn, port)
		errCh <- err
	}()
	go func() {
		_, err := io.Copy(port, conn)
		errCh <- err
	}()
	return <-errCh
}

// Dial connects to a device server link of the form
// socket://127.0.0.1:<port>/<board_class>/<asset_tag> (spec.md §4.5).
func Dial(link string) (net.Conn, error) {
	host, err := linkHostPort(link)
	if err != nil {
		return nil, err
	}
	return net.Dial("tcp", host)
}

func linkHostPort(link string) (string, error) {
	const prefix = "socket://"
	if len(link) <= len(prefix) || link[:len(prefix)] != prefix {
		return "", fmt.Errorf("bridge: malformed link %q", link)
	}
	rest := link[len(prefix):]
	for i := 0; i < len(rest); i++ {
		if rest[i] == '/' {
			return rest[:i], nil
		}
	}
	return rest, nil
}
