package unix

import (
	"github.com/benjmnxu/ngram/rpc/common"
	"github.com/benjmnxu/ngram/rpc/transport"
	"net"
)

// clientConnector implements the IClientConnector interface for Unix sockets
type clientConnector struct{}

// --------------------------------------------------------------------------
// Interface Methods (docu see transport.IClientConnector)
// --------------------------------------------------------------------------

func (c *clientConnector) GetName() string {
	return "unix"
}

func (c *clientConnector) Connect(config common.ClientConfig) (net.Conn, error) {
	conn, err := net.DialTimeout("unix", config.Endpoint, transport.DialTimeout(config))
	if err != nil {
		return nil, err
	}
	if err := transport.ApplySocketOptions(conn, config.SocketConf, config.TCPConf); err != nil {
		_ = conn.Close()
		return nil, err
	}
	return conn, nil
}

// --------------------------------------------------------------------------
// Factory Method
// --------------------------------------------------------------------------

// NewUnixClientConnector creates a new Unix socket client connector
func NewUnixClientConnector() transport.IClientConnector {
	return &clientConnector{}
}
