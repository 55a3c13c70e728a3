package common

import (
	"fmt"
	"strconv"
	"strings"
)

// --------------------------------------------------------------------------
// Defaults
// --------------------------------------------------------------------------

const (
	// DefaultPort is the port the server listens on and the client connects to
	DefaultPort = 7878
	// DefaultHost is the address the server binds to
	DefaultHost = "127.0.0.1"
	// DefaultWorkers is the number of workers in the server pool
	DefaultWorkers = 16
	// DefaultTimeoutSecond bounds every blocking socket read and write
	DefaultTimeoutSecond = 5
	// DefaultMaxFrameSize is the largest payload the server accepts (16 MiB)
	DefaultMaxFrameSize = 16 * 1024 * 1024
)

// --------------------------------------------------------------------------
// Socket configuration (shared by server and client)
// --------------------------------------------------------------------------

// SocketConf holds buffer settings applied to every accepted or dialed connection.
// A zero value keeps the operating system default.
type SocketConf struct {
	WriteBufferSize int
	ReadBufferSize  int
}

// TCPConf holds TCP specific socket options. They are ignored for unix sockets.
type TCPConf struct {
	TCPNoDelay      bool
	TCPKeepAliveSec int
	// TCPLingerSec < 0 keeps the operating system default
	TCPLingerSec int
}

// --------------------------------------------------------------------------
// Server configuration struct
// --------------------------------------------------------------------------

// ServerConfig holds all configuration parameters of the archive server.
type ServerConfig struct {
	// Transport is the name of the transport ("tcp" or "unix")
	Transport string
	// Endpoint is host:port for tcp or the socket path for unix
	Endpoint string

	// Workers is the fixed size of the worker pool
	Workers int
	// TimeoutSecond bounds request reads and response writes (0 = no deadline)
	TimeoutSecond int64
	// MaxFrameSize is the largest accepted request payload in bytes
	MaxFrameSize uint32

	// Compression used by the local archive (none, zstd, lz4)
	Compression string

	// MetricsEndpoint is the address of the prometheus metrics endpoint (empty = disabled)
	MetricsEndpoint string

	// Logging configuration
	LogLevel string

	SocketConf SocketConf
	TCPConf    TCPConf
}

// DefaultServerConfig returns a server configuration with all defaults applied
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Transport:     "tcp",
		Endpoint:      fmt.Sprintf("%s:%d", DefaultHost, DefaultPort),
		Workers:       DefaultWorkers,
		TimeoutSecond: DefaultTimeoutSecond,
		MaxFrameSize:  DefaultMaxFrameSize,
		Compression:   "none",
		LogLevel:      "info",
		TCPConf: TCPConf{
			TCPNoDelay:   true,
			TCPLingerSec: -1,
		},
	}
}

// Validate checks the configuration for values the server cannot start with
func (c *ServerConfig) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("invalid number of workers %d: must be at least 1", c.Workers)
	}
	if c.TimeoutSecond < 0 {
		return fmt.Errorf("invalid timeout %d: must not be negative", c.TimeoutSecond)
	}
	if c.MaxFrameSize == 0 {
		return fmt.Errorf("invalid max frame size: must be at least 1 byte")
	}
	if c.Endpoint == "" {
		return fmt.Errorf("no endpoint configured")
	}
	switch c.Transport {
	case "tcp", "unix":
	default:
		return fmt.Errorf("invalid transport %s (expected one of: tcp, unix)", c.Transport)
	}
	return nil
}

// String returns a formatted string representation of the configuration
func (c *ServerConfig) String() string {
	var sb strings.Builder

	// Create helper functions for consistent formatting
	addSection := func(title string) {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%s\n", strings.ToUpper(title)))
	}

	addField := func(name, value string) {
		sb.WriteString(fmt.Sprintf("  %-22s: %s\n", name, value))
	}

	// RPC settings
	addSection("Archive Server")
	addField("Transport", c.Transport)
	addField("Endpoint", c.Endpoint)
	addField("Workers", strconv.Itoa(c.Workers))
	addField("Timeout", fmt.Sprintf("%d sec", c.TimeoutSecond))
	addField("Max Frame Size", fmt.Sprintf("%d bytes", c.MaxFrameSize))

	// Storage
	addSection("Archive")
	addField("Compression", c.Compression)

	// Socket settings
	addSection("Socket")
	addField("Write Buffer", formatBufferSize(c.SocketConf.WriteBufferSize))
	addField("Read Buffer", formatBufferSize(c.SocketConf.ReadBufferSize))
	if c.Transport == "tcp" {
		addField("TCP NoDelay", strconv.FormatBool(c.TCPConf.TCPNoDelay))
		addField("TCP KeepAlive", fmt.Sprintf("%d sec", c.TCPConf.TCPKeepAliveSec))
		if c.TCPConf.TCPLingerSec >= 0 {
			addField("TCP Linger", fmt.Sprintf("%d sec", c.TCPConf.TCPLingerSec))
		} else {
			addField("TCP Linger", "os default")
		}
	}

	// Observability
	addSection("Logging")
	addField("Log Level", c.LogLevel)
	if c.MetricsEndpoint != "" {
		addField("Metrics Endpoint", c.MetricsEndpoint)
	} else {
		addField("Metrics Endpoint", "disabled")
	}

	return sb.String()
}

// --------------------------------------------------------------------------
// Client configuration struct
// --------------------------------------------------------------------------

// ClientConfig holds the configuration of the one shot archive client
type ClientConfig struct {
	Transport     string
	Endpoint      string
	TimeoutSecond int
	MaxFrameSize  uint32

	SocketConf SocketConf
	TCPConf    TCPConf
}

// DefaultClientConfig returns a client configuration pointing at the default server address
func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		Transport:     "tcp",
		Endpoint:      fmt.Sprintf("%s:%d", DefaultHost, DefaultPort),
		TimeoutSecond: 10,
		MaxFrameSize:  DefaultMaxFrameSize,
		TCPConf: TCPConf{
			TCPNoDelay:   true,
			TCPLingerSec: -1,
		},
	}
}

// String returns a formatted string representation of the client configuration
func (c *ClientConfig) String() string {
	var sb strings.Builder

	addSection := func(title string) {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%s\n", strings.ToUpper(title)))
	}

	addField := func(name, value string) {
		sb.WriteString(fmt.Sprintf("  %-22s: %s\n", name, value))
	}

	addSection("Client Configuration")
	addField("Transport", c.Transport)
	addField("Endpoint", c.Endpoint)
	addField("Timeout", fmt.Sprintf("%d sec", c.TimeoutSecond))
	addField("Max Frame Size", fmt.Sprintf("%d bytes", c.MaxFrameSize))

	return sb.String()
}

// formatBufferSize prints a socket buffer size in KB or "os default"
func formatBufferSize(size int) string {
	if size <= 0 {
		return "os default"
	}
	return fmt.Sprintf("%d KB", size/1024)
}
