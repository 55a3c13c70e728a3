package unix

import (
	"github.com/benjmnxu/ngram/rpc/common"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func TestConnectAndUpgrade(t *testing.T) {
	socketPath := filepath.Join(t.TempDir(), "ngram.sock")

	// a stale socket file must not prevent listening
	if err := os.WriteFile(socketPath, nil, 0o600); err != nil {
		t.Fatalf("Failed to create stale socket file: %v", err)
	}

	serverConfig := common.DefaultServerConfig()
	serverConfig.Transport = "unix"
	serverConfig.Endpoint = socketPath

	server := NewUnixServerConnector()
	if server.GetName() != "unix" {
		t.Errorf("Unexpected transport name %q", server.GetName())
	}
	listener, err := server.Listen(serverConfig)
	if err != nil {
		t.Fatalf("Failed to listen: %v", err)
	}
	defer listener.Close()

	accepted := make(chan error, 1)
	go func() {
		conn, err := listener.Accept()
		if err != nil {
			accepted <- err
			return
		}
		defer conn.Close()
		if err := server.UpgradeConnection(conn, serverConfig); err != nil {
			accepted <- err
			return
		}
		_, err = conn.Write([]byte("pong"))
		accepted <- err
	}()

	clientConfig := common.DefaultClientConfig()
	clientConfig.Transport = "unix"
	clientConfig.Endpoint = socketPath

	conn, err := NewUnixClientConnector().Connect(clientConfig)
	if err != nil {
		t.Fatalf("Failed to connect: %v", err)
	}
	defer conn.Close()

	buf := make([]byte, 4)
	if _, err := io.ReadFull(conn, buf); err != nil {
		t.Fatalf("Failed to read: %v", err)
	}
	if string(buf) != "pong" {
		t.Errorf("Expected pong, got %q", buf)
	}
	if err := <-accepted; err != nil {
		t.Errorf("Server side failed: %v", err)
	}
}
