package tcp

import (
	"github.com/benjmnxu/ngram/rpc/common"
	"github.com/benjmnxu/ngram/rpc/transport"
	"net"
)

// clientConnector implements the IClientConnector interface for TCP sockets
type clientConnector struct{}

// --------------------------------------------------------------------------
// Interface Methods (docu see transport.IClientConnector)
// --------------------------------------------------------------------------

func (c *clientConnector) GetName() string {
	return "tcp"
}

func (c *clientConnector) Connect(config common.ClientConfig) (net.Conn, error) {
	conn, err := net.DialTimeout("tcp", config.Endpoint, transport.DialTimeout(config))
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

// NewTCPClientConnector creates a new TCP client connector
func NewTCPClientConnector() transport.IClientConnector {
	return &clientConnector{}
}
