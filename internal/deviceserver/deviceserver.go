// Package deviceserver implements the per-board TCP front end described in
// spec.md §4.4: one listener per board, at most one connected client,
// line-delimited inbound commands dispatched to a boards.Board.
package deviceserver

import (
	"bytes"
	"fmt"
	"log"
	"net"
	"strings"
	"sync"

	"github.com/srobo/sbot-simulator/internal/boards"
	"github.com/srobo/sbot-simulator/internal/physics"
)

// Observer receives a notification for every dispatched command, for the
// ambient monitor dashboard (internal/monitor). It is entirely optional:
// nothing in the wire protocol depends on an Observer being attached.
type Observer interface {
	Observe(boardClass, assetTag, cmd string, reply boards.Reply)
}

// DeviceServer owns one board's listening socket, at most one accepted
// client connection, and its inbound byte buffer.
type DeviceServer struct {
	board        boards.Board
	facade       *physics.Facade
	boardClass   string
	assetTag     string
	onTerminated func()
	observer     Observer

	listener net.Listener

	mu   sync.Mutex
	conn net.Conn
	wg   sync.WaitGroup
}

// New binds a loopback listener on an ephemeral port. The listener uses the
// operating system's default accept backlog, not a backlog of 1; the
// single-client policy is enforced by acceptLoop closing the previous
// connection on each new accept.
// onTerminated, if non-nil, is invoked every time a command's basic step
// observes the physics host terminating (spec.md §5, §7); callers that want
// a single notification must deduplicate. It may be called concurrently
// from any of this server's connection goroutines.
func New(board boards.Board, facade *physics.Facade, boardClass, assetTag string, onTerminated func()) (*DeviceServer, error) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, fmt.Errorf("device server %s/%s: %w", boardClass, assetTag, err)
	}
	return &DeviceServer{
		board:        board,
		facade:       facade,
		boardClass:   boardClass,
		assetTag:     assetTag,
		onTerminated: onTerminated,
		listener:     ln,
	}, nil
}

// SetObserver attaches an Observer to receive a notification for every
// dispatched command. Not safe to call concurrently with Serve.
func (s *DeviceServer) SetObserver(observer Observer) {
	s.observer = observer
}

// Port returns the ephemeral TCP port this server is listening on.
func (s *DeviceServer) Port() int {
	return s.listener.Addr().(*net.TCPAddr).Port
}

// Link returns this board's advertisement line, as collected by
// socketserver.LinksFormatted.
func (s *DeviceServer) Link() string {
	return fmt.Sprintf("socket://127.0.0.1:%d/%s/%s", s.Port(), s.boardClass, s.assetTag)
}

// Serve starts the accept loop in the background. Call Stop to shut down.
func (s *DeviceServer) Serve() {
	s.wg.Add(1)
	go s.acceptLoop()
}

func (s *DeviceServer) acceptLoop() {
	defer s.wg.Done()
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			return
		}
		s.mu.Lock()
		if s.conn != nil {
			s.conn.Close()
		}
		s.conn = conn
		s.mu.Unlock()

		s.wg.Add(1)
		go s.readLoop(conn)
	}
}

func (s *DeviceServer) readLoop(conn net.Conn) {
	defer s.wg.Done()
	defer conn.Close()

	var buf []byte
	chunk := make([]byte, 4096)
	for {
		n, readErr := conn.Read(chunk)
		if n > 0 {
			buf = append(buf, chunk[:n]...)
			for {
				idx := bytes.IndexByte(buf, '\n')
				if idx < 0 {
					break
				}
				line := buf[:idx]
				buf = buf[idx+1:]
				cmd := strings.TrimSpace(strings.TrimRight(string(line), "\r"))
				reply := s.dispatch(cmd)
				if s.observer != nil {
					s.observer.Observe(s.boardClass, s.assetTag, cmd, reply)
				}
				if err := writeReply(conn, reply); err != nil {
					return
				}
			}
		}
		if readErr != nil {
			return
		}
	}
}

// dispatch advances simulated time by one basic step to model board
// processing latency, then runs the command through the board, converting
// any panic into a NACK reply rather than letting it escape to the client's
// goroutine (spec.md §4.4, §7: board handler exceptions become NACKs, the
// client stays connected).
func (s *DeviceServer) dispatch(cmd string) (reply boards.Reply) {
	if s.facade.Step(s.facade.BasicStepMS()) == physics.Terminated && s.onTerminated != nil {
		s.onTerminated()
	}

	defer func() {
		if r := recover(); r != nil {
			log.Printf("ERROR: %s/%s: %v", s.boardClass, s.assetTag, r)
			reply = boards.NACK("%v", r)
		}
	}()
	return s.board.Handle(cmd)
}

func writeReply(conn net.Conn, reply boards.Reply) error {
	switch {
	case reply.NoReply:
		return nil
	case reply.Binary != nil:
		_, err := conn.Write(reply.Binary)
		return err
	default:
		_, err := conn.Write([]byte(reply.Text + "\n"))
		return err
	}
}

// Stop closes the listener and any open client connection, then waits for
// the accept and read loops to exit.
func (s *DeviceServer) Stop() {
	s.listener.Close()
	s.mu.Lock()
	if s.conn != nil {
		s.conn.Close()
	}
	s.mu.Unlock()
	s.wg.Wait()
}
