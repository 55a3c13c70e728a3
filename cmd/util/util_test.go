package util

import (
	"strings"
	"testing"
)

func TestWrapString(t *testing.T) {
	text := "The timeout in seconds for connecting, sending and receiving a single request to the archive server"
	wrapped := WrapString(text)

	for _, line := range strings.Split(wrapped, "\n") {
		if len(line) > Wrap {
			t.Errorf("Line longer than %d characters: %q", Wrap, line)
		}
	}
	if strings.Join(strings.Fields(wrapped), " ") != text {
		t.Errorf("Wrapping changed the words: %q", wrapped)
	}
	if WrapString("") != "" {
		t.Error("Wrapping an empty string must yield an empty string")
	}
}

func TestEndpoint(t *testing.T) {
	tests := []struct {
		transport string
		host      string
		port      int
		socket    string
		want      string
		wantErr   bool
	}{
		{"tcp", "127.0.0.1", 7878, "", "127.0.0.1:7878", false},
		{"tcp", "::1", 80, "", "[::1]:80", false},
		{"tcp", "localhost", 70000, "", "", true},
		{"unix", "", 0, "/tmp/a.sock", "/tmp/a.sock", false},
		{"unix", "", 0, "", "", true},
		{"http", "localhost", 80, "", "", true},
	}
	for _, tt := range tests {
		got, err := Endpoint(tt.transport, tt.host, tt.port, tt.socket)
		if (err != nil) != tt.wantErr {
			t.Errorf("Endpoint(%s, %s, %d, %s): unexpected error state %v", tt.transport, tt.host, tt.port, tt.socket, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Endpoint(%s, %s, %d, %s) = %q, expected %q", tt.transport, tt.host, tt.port, tt.socket, got, tt.want)
		}
	}
}

func TestConnectors(t *testing.T) {
	for _, name := range []string{"tcp", "unix"} {
		c, err := GetClientConnector(name)
		if err != nil || c.GetName() != name {
			t.Errorf("GetClientConnector(%s) = %v, %v", name, c, err)
		}
		s, err := GetServerConnector(name)
		if err != nil || s.GetName() != name {
			t.Errorf("GetServerConnector(%s) = %v, %v", name, s, err)
		}
	}
	if _, err := GetClientConnector("http"); err == nil {
		t.Error("Expected an error for an unknown transport")
	}
	if _, err := GetServerConnector("http"); err == nil {
		t.Error("Expected an error for an unknown transport")
	}
}
