package transport

import (
	"github.com/benjmnxu/ngram/rpc/common"
	"net"
)

// --------------------------------------------------------------------------
// Server Connector
// --------------------------------------------------------------------------

// IServerConnector creates the listening socket of the archive server for one
// transport type (e.g. tcp or unix)
type IServerConnector interface {
	// GetName returns the name of the transport
	GetName() string
	// Listen creates a listener bound to config.Endpoint
	Listen(config common.ServerConfig) (net.Listener, error)
	// UpgradeConnection applies the configured socket options to an accepted connection
	UpgradeConnection(conn net.Conn, config common.ServerConfig) error
}

// --------------------------------------------------------------------------
// Client Connector
// --------------------------------------------------------------------------

// IClientConnector dials the archive server for one transport type
type IClientConnector interface {
	// GetName returns the name of the transport
	GetName() string
	// Connect opens a new connection to config.Endpoint with the configured socket options applied
	Connect(config common.ClientConfig) (net.Conn, error)
}
