// Package boards implements the firmware-level command dialects simulated
// for each board kind (spec.md §4.3): a pure function of (command, device
// state) -> reply, with no socket or framing concerns of its own.
package boards

import (
	"fmt"
	"strconv"
	"strings"
)

// SoftwareVersion is the firmware version string reported by every board's
// *IDN? reply (spec.md S1: "Student Robotics:MBv4B:MOT:4.4.1").
const SoftwareVersion = "4.4.1"

// Manufacturer is the fixed *IDN? manufacturer field for every board.
const Manufacturer = "Student Robotics"

// Reply is what a Board handler produces for a single dispatched command.
//
// Exactly one of these is true: Binary is non-nil (write verbatim, no
// terminator), NoReply is set (write nothing at all, not even a newline),
// or Text holds a line to be LF-terminated by the caller.
type Reply struct {
	Text    string
	Binary  []byte
	NoReply bool
}

func TextReply(text string) Reply { return Reply{Text: text} }
func BinaryReply(data []byte) Reply { return Reply{Binary: data} }
func NoReplyReply() Reply           { return Reply{NoReply: true} }

func ACK() Reply { return TextReply("ACK") }

func NACK(format string, args ...any) Reply {
	return TextReply("NACK:" + fmt.Sprintf(format, args...))
}

// Board dispatches a single already-delimited command line (with any
// trailing CR/LF and surrounding whitespace already stripped by the
// caller) and produces its reply.
type Board interface {
	Handle(cmd string) Reply
}

// Identity holds the fields common to every long-dialect board's *IDN?
// reply: <manufacturer>:<boardcode>:<asset_tag>:<software_version>.
type Identity struct {
	BoardCode string
	AssetTag  string
}

func (id Identity) IDN() Reply {
	return TextReply(strings.Join([]string{Manufacturer, id.BoardCode, id.AssetTag, SoftwareVersion}, ":"))
}

// splitTokens splits a colon-delimited command into its tokens.
func splitTokens(cmd string) []string {
	return strings.Split(cmd, ":")
}

// parseIndex parses a device index token, returning ok=false if it is not a
// valid non-negative integer.
func parseIndex(tok string) (int, bool) {
	n, err := strconv.Atoi(tok)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// parseSignedInt parses a mandatory signed-integer token.
func parseSignedInt(tok string) (int64, bool) {
	n, err := strconv.ParseInt(tok, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func boolToken(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

// pythonBoolToken renders a bool the way the original Python board firmware
// does when it interpolates a bool straight into an f-string ("False"/
// "True"), rather than the "0"/"1" wire convention boolToken uses elsewhere.
func pythonBoolToken(b bool) string {
	if b {
		return "True"
	}
	return "False"
}

func parseBoolToken(tok string) (bool, bool) {
	switch tok {
	case "0":
		return false, true
	case "1":
		return true, true
	default:
		return false, false
	}
}
