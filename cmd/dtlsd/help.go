package main

import (
	"fmt"

	"github.com/fatih/color"
	flag "github.com/spf13/pflag"
)

var (
	flagBindAddress      string
	flagHandshakeTimeout int
	flagMaxRTO           int
	flagSessionIdle      int
	flagMaxSessions      int
	flagMetricsAddress   string
	flagHelp             bool
	flagVersion          bool
)

func init() {
	flag.StringVarP(&flagBindAddress, "bind", "b", "127.0.0.1:4433", "UDP address to listen on")
	flag.IntVarP(&flagHandshakeTimeout, "handshake-timeout", "t", 1000, "Initial per-flight retransmission timeout, in milliseconds")
	flag.IntVarP(&flagMaxRTO, "max-rto", "r", 60000, "Ceiling for retransmission timeout backoff, in milliseconds")
	flag.IntVarP(&flagSessionIdle, "session-idle", "i", 60000, "Session idle timeout, in milliseconds")
	flag.IntVarP(&flagMaxSessions, "max-sessions", "m", 4096, "Maximum concurrently tracked peer sessions")
	flag.StringVarP(&flagMetricsAddress, "metrics-address", "a", "", "Address to serve Prometheus /metrics on (disabled if empty)")

	flag.BoolVarP(&flagHelp, "help", "h", false, "Print usage information and exit")
	flag.BoolVarP(&flagVersion, "version", "v", false, "Print version information and exit")
}

const helpString = `Server-side DTLS 1.2 handshake engine for peer-authenticated media sessions

Usage: dtlsd [OPTION]...

Network:
  -b, --bind=ADDR             UDP address to listen on (default: 127.0.0.1:4433)
  -a, --metrics-address=ADDR  Serve Prometheus /metrics on ADDR (default: disabled)

Session lifecycle:
  -t, --handshake-timeout=MS  Initial per-flight retransmission timeout, in ms (default: 1000)
  -r, --max-rto=MS            Ceiling for retransmission timeout backoff, in ms (default: 60000)
  -i, --session-idle=MS       Session idle timeout, in ms (default: 60000)
  -m, --max-sessions=NUM      Maximum concurrently tracked sessions (default: 4096)

Miscellaneous:
  -h, --help                  Prints this help message and exits
  -v, --version                Prints version information and exits`

// help prints usage information and a banner, then returns.
func help() {
	r := color.New(color.FgRed)
	y := color.New(color.FgYellow)
	b := color.New(color.FgCyan)

	//      _  _     _           _
	//   __| || |_  | | ___   __| |
	//  / _` || __| | |/ __| / _` |
	// | (_| || |_  | |\__ \| (_| |
	//  \__,_| \__| |_||___/ \__,_|

	r.Printf("      _ ")
	y.Printf(" _   ")
	b.Printf("    _      ")
	y.Println("   _ ")

	r.Printf("   __| |")
	y.Printf("| |_ ")
	b.Printf(" | |___ ")
	y.Println(" __| |")

	r.Printf("  / _` |")
	y.Printf("| __|")
	b.Printf(" | / __|")
	y.Println("/ _` |")

	r.Printf(" | (_| |")
	y.Printf("| |_ ")
	b.Printf(" | \\__ \\")
	y.Println("| (_| |")

	r.Printf("  \\__,_|")
	y.Printf(" \\__|")
	b.Printf(" |_|___/")
	y.Println(" \\__,_|")

	fmt.Println(helpString)
}

// buildVersion is overridden at build time via -ldflags, following the
// pattern cmd/alohartcd used with its version.sh generator.
var buildVersion = "dev"

func version() {
	fmt.Println("dtlsd", buildVersion)
}
