// Package socketserver owns the full set of per-board device servers for a
// single simulated robot (spec.md §4.5).
package socketserver

import (
	"sort"
	"strings"
	"sync"

	"github.com/srobo/sbot-simulator/internal/boards"
	"github.com/srobo/sbot-simulator/internal/deviceserver"
	"github.com/srobo/sbot-simulator/internal/physics"
)

// BoardSpec describes one board to be exposed as a device server.
type BoardSpec struct {
	Board      boards.Board
	BoardClass string
	AssetTag   string
}

// SocketServer owns the list of device servers for a robot's board set and
// a process-wide "physics has terminated" interrupt.
//
// spec.md's original design multiplexes every board's socket through a
// single select() loop on a 500ms timeout; that timeout exists only to let
// Python notice a `stop` flag between blocking calls. Go's blocking I/O
// lets each device server simply own a goroutine per listener/connection,
// so there is no equivalent poll loop here (spec.md §9: follow the latest
// cooperative-stop design, not the busy-loop variant) — the `stop` flag and
// the 500ms bound it existed to serve are both unnecessary once Accept and
// Read can block directly.
type SocketServer struct {
	servers []*deviceserver.DeviceServer

	interrupt func()
	once      sync.Once
}

// New builds one device server per spec, wiring each one's termination
// callback to this SocketServer's shared interrupt.
func New(specs []BoardSpec, facade *physics.Facade, interrupt func()) (*SocketServer, error) {
	ss := &SocketServer{interrupt: interrupt}
	for _, spec := range specs {
		ds, err := deviceserver.New(spec.Board, facade, spec.BoardClass, spec.AssetTag, ss.handleTerminated)
		if err != nil {
			ss.Stop()
			return nil, err
		}
		ss.servers = append(ss.servers, ds)
	}
	return ss, nil
}

// handleTerminated fires the interrupt exactly once, the first time any
// board observes the physics host terminating mid-command (spec.md §5, §7).
//
// onTerminated is invoked from inside a connection's readLoop goroutine,
// which Stop's wg.Wait() below would otherwise join against itself: that
// goroutine would be parked in Wait() while its own deferred wg.Done() can
// never run, livelocking the very path §7 added this mechanism to unstick.
// Running the stop+interrupt on a separate goroutine keeps the caller free
// to return and release its WaitGroup slot.
func (ss *SocketServer) handleTerminated() {
	ss.once.Do(func() {
		go func() {
			ss.Stop()
			if ss.interrupt != nil {
				ss.interrupt()
			}
		}()
	})
}

// SetObserver attaches an observer to every device server, for the ambient
// monitor dashboard (internal/monitor). Not safe to call concurrently with
// Start.
func (ss *SocketServer) SetObserver(observer deviceserver.Observer) {
	for _, ds := range ss.servers {
		ds.SetObserver(observer)
	}
}

// Start begins serving every board's listener in the background.
func (ss *SocketServer) Start() {
	for _, ds := range ss.servers {
		ds.Serve()
	}
}

// Stop closes every device server and waits for its goroutines to exit.
func (ss *SocketServer) Stop() {
	for _, ds := range ss.servers {
		ds.Stop()
	}
}

// LinksFormatted returns a line-separated list of
// socket://127.0.0.1:<port>/<board_class_name>/<asset_tag> advertisements,
// one per board, in a stable order (spec.md §4.5).
func (ss *SocketServer) LinksFormatted() string {
	links := make([]string, 0, len(ss.servers))
	for _, ds := range ss.servers {
		links = append(links, ds.Link())
	}
	sort.Strings(links)
	return strings.Join(links, "\n")
}
