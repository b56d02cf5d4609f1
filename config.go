//////////////////////////////////////////////////////////////////////////////
//
// Config contains configuration data for the DTLS engine
//
// Copyright 2019 Lanikai Labs. All rights reserved.
//
//////////////////////////////////////////////////////////////////////////////

package dtlsd

import "time"

// Config holds the options an operator can set on an Engine.
type Config struct {
	// BindAddress is the local UDP address to listen on, e.g. "127.0.0.1:4433".
	BindAddress string

	// CookieBytes records the length in bytes of issued cookies. Cookies are
	// always dtls.CookieLength bytes; NewEngine does not read this field and
	// nothing checks it against that constant.
	CookieBytes int

	// HandshakeTimeout is the initial per-flight retransmission timeout: how
	// long to wait for progress before retransmitting the last flight with
	// the same message_seq values. Unused by this core (retransmission is
	// out of scope) but carried in Config so a future retransmit timer has a
	// place to read it from without a breaking config change.
	HandshakeTimeout time.Duration

	// MaxRTO is the ceiling the retransmission timeout backs off to,
	// doubling from HandshakeTimeout on each unanswered flight. Unused by
	// this core for the same reason as HandshakeTimeout.
	MaxRTO time.Duration

	// SessionIdle bounds how long a session, in any flight, may go quiet
	// before being reaped, independent of the LRU bound on MaxSessions.
	SessionIdle time.Duration

	// MaxSessions bounds the number of concurrently tracked peers. Beyond
	// this bound the least-recently-used session is evicted.
	MaxSessions int
}

// DefaultConfig returns the configuration the CLI uses absent any flags.
func DefaultConfig() Config {
	return Config{
		BindAddress:      "127.0.0.1:4433",
		CookieBytes:      20,
		HandshakeTimeout: 1000 * time.Millisecond,
		MaxRTO:           60000 * time.Millisecond,
		SessionIdle:      60 * time.Second,
		MaxSessions:      4096,
	}
}
