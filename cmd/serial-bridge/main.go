// Command serial-bridge relays a real serial-connected board to one of a
// running simulator's device server sockets, for hardware-in-the-loop
// testing (see internal/bridge).
package main

import (
	"flag"
	"log"
	"strings"

	"github.com/srobo/sbot-simulator/internal/bridge"
)

func main() {
	port := flag.String("port", "", "serial port device name (run -list to enumerate)")
	baud := flag.Int("baud", 115200, "serial baud rate")
	link := flag.String("link", "", "device server link, e.g. socket://127.0.0.1:PORT/MotorBoard/MOT0")
	list := flag.Bool("list", false, "list available serial ports and exit")
	flag.Parse()

	if *list {
		for _, p := range bridge.ListPorts() {
			log.Print(p)
		}
		return
	}

	if *port == "" || *link == "" {
		log.Fatal("usage: serial-bridge -port <dev> -link socket://...")
	}
	if !strings.HasPrefix(*link, "socket://") {
		log.Fatalf("invalid link %q", *link)
	}

	sp, err := bridge.OpenPort(*port, *baud)
	if err != nil {
		log.Fatal(err)
	}
	defer sp.Close()

	conn, err := bridge.Dial(*link)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	log.Printf("bridging %s <-> %s", *port, *link)
	if err := bridge.Relay(sp, conn); err != nil {
		log.Print(err)
	}
}
