// Package config holds the immutable connection options used to build a
// Protocol Client, populated from flags/env the way the agent this module
// grew from builds its AgentConfig.
package config

import (
	"crypto/tls"
	"time"

	"github.com/streamspace-dev/rws/internal/rwserr"
)

// Version selects the RWS protocol generation: v1 (RobotWare 6) or v2
// (RobotWare 7+). The two differ in subscription body encoding, content
// type and WebSocket subprotocol token; everything else is shared.
type Version string

const (
	VersionV1 Version = "v1"
	VersionV2 Version = "v2"
)

// ConnectionOptions configures a Protocol Client. Once constructed it is
// treated as immutable for the lifetime of the Client.
type ConnectionOptions struct {
	// Host is the controller's hostname or IP address.
	Host string

	// Port is the controller's RWS port. Default: 443 for v2 (HTTPS), 80
	// for v1.
	Port int

	// Username and Password authenticate against the controller using
	// HTTP digest.
	Username string
	Password string

	// Version selects the protocol generation.
	Version Version

	// ConnectTimeout bounds establishing the TCP/TLS connection.
	ConnectTimeout time.Duration

	// RequestTimeout bounds a single HTTP request/response round trip.
	// SetTimeout on the Transport rebuilds the session with this value.
	RequestTimeout time.Duration

	// TLSConfig is used for https:// connections. May be nil to use the
	// default TLS configuration (v1 deployments are typically plain
	// HTTP and leave this nil).
	TLSConfig *tls.Config

	// PingPongTimeout bounds how long a Subscription Receiver tolerates
	// not having seen a ping from the controller before declaring the
	// heartbeat lost and returning a TimeoutError.
	PingPongTimeout time.Duration
}

// DefaultConnectTimeout and DefaultRequestTimeout mirror the teacher's
// AgentConfig default tiers (a handful of seconds), scaled to controller
// round trips rather than WebSocket registration calls. DefaultPingPongTimeout
// matches the controller's own subscription heartbeat period.
const (
	DefaultConnectTimeout  = 5 * time.Second
	DefaultRequestTimeout  = 10 * time.Second
	DefaultPingPongTimeout = 120 * time.Second
)

// Validate checks required fields and fills in defaults, mirroring
// AgentConfig.Validate()'s "check required, default the rest" shape.
func (c *ConnectionOptions) Validate() error {
	if c.Host == "" {
		return rwserr.Invalid("connection options: host is required")
	}
	if c.Username == "" {
		return rwserr.Invalid("connection options: username is required")
	}

	switch c.Version {
	case VersionV1, VersionV2:
	case "":
		c.Version = VersionV2
	default:
		return rwserr.Invalid("connection options: unknown protocol version %q", c.Version)
	}

	if c.Port == 0 {
		if c.Version == VersionV1 {
			c.Port = 80
		} else {
			c.Port = 443
		}
	}

	if c.ConnectTimeout <= 0 {
		c.ConnectTimeout = DefaultConnectTimeout
	}
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = DefaultRequestTimeout
	}
	if c.PingPongTimeout <= 0 {
		c.PingPongTimeout = DefaultPingPongTimeout
	}

	return nil
}

// Scheme returns "https" for v2 (TLS is standard on RobotWare 7+) and
// "http" for v1, unless a TLSConfig was explicitly supplied.
func (c *ConnectionOptions) Scheme() string {
	if c.TLSConfig != nil || c.Version == VersionV2 {
		return "https"
	}
	return "http"
}

// WebSocketScheme mirrors Scheme() for the ws:// / wss:// upgrade URI.
func (c *ConnectionOptions) WebSocketScheme() string {
	if c.Scheme() == "https" {
		return "wss"
	}
	return "ws"
}
