package transport

import (
	"github.com/benjmnxu/ngram/rpc/common"
	"net"
	"time"
)

// bufferedConn is implemented by *net.TCPConn and *net.UnixConn
type bufferedConn interface {
	SetWriteBuffer(bytes int) error
	SetReadBuffer(bytes int) error
}

// ApplySocketOptions applies socket buffer sizes to conn and, if conn is a TCP
// connection, the TCP options. Connections of other types are left untouched.
func ApplySocketOptions(conn net.Conn, socket common.SocketConf, tcp common.TCPConf) error {
	if bc, ok := conn.(bufferedConn); ok {
		// Set socket write buffer size if configured
		if socket.WriteBufferSize > 0 {
			if err := bc.SetWriteBuffer(socket.WriteBufferSize); err != nil {
				return err
			}
		}

		// Set socket read buffer size if configured
		if socket.ReadBufferSize > 0 {
			if err := bc.SetReadBuffer(socket.ReadBufferSize); err != nil {
				return err
			}
		}
	}

	tcpConn, ok := conn.(*net.TCPConn)
	if !ok {
		return nil // Not a TCP connection, nothing more to upgrade
	}

	// Disable Nagle's algorithm if configured
	if err := tcpConn.SetNoDelay(tcp.TCPNoDelay); err != nil {
		return err
	}

	// Enable TCP keep-alive if configured
	if tcp.TCPKeepAliveSec > 0 {
		if err := tcpConn.SetKeepAlive(true); err != nil {
			return err
		}
		keepAlivePeriod := time.Duration(tcp.TCPKeepAliveSec) * time.Second
		if err := tcpConn.SetKeepAlivePeriod(keepAlivePeriod); err != nil {
			return err
		}
	}

	// Set TCP linger option if configured
	if tcp.TCPLingerSec >= 0 {
		if err := tcpConn.SetLinger(tcp.TCPLingerSec); err != nil {
			return err
		}
	}

	return nil
}

// DialTimeout returns the dial timeout for a client configuration (0 = none)
func DialTimeout(config common.ClientConfig) time.Duration {
	if config.TimeoutSecond <= 0 {
		return 0
	}
	return time.Duration(config.TimeoutSecond) * time.Second
}
