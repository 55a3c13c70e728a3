package client

import (
	"github.com/benjmnxu/ngram/rpc/common"
	"github.com/spf13/viper"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParsePositional(t *testing.T) {
	parsed, err := parsePositional([]string{"127.0.0.1", "7878", "search", "hello"})
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}
	want := positionalArgs{Address: "127.0.0.1", Port: 7878, Action: "search", Argument: "hello"}
	if *parsed != want {
		t.Errorf("Expected %+v, got %+v", want, *parsed)
	}

	invalid := [][]string{
		{"127.0.0.1", "7878", "search"},
		{"127.0.0.1", "port", "search", "hello"},
		{"127.0.0.1", "70000", "search", "hello"},
		{"127.0.0.1", "7878", "delete", "hello"},
	}
	for _, args := range invalid {
		if _, err := parsePositional(args); err == nil {
			t.Errorf("Expected an error for %v", args)
		}
	}
}

func TestBuildRequest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.txt")
	if err := os.WriteFile(path, []byte("file content"), 0o600); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	tests := []struct {
		action   string
		argument string
		want     *common.Request
	}{
		{"publish", path, common.NewPublishRequest("file content")},
		{"search", "hello", common.NewSearchRequest("hello")},
		{"retrieve", "42", common.NewRetrieveRequest(42)},
	}
	for _, tt := range tests {
		req, err := buildRequest(tt.action, tt.argument)
		if err != nil {
			t.Errorf("%s %s: unexpected error %v", tt.action, tt.argument, err)
			continue
		}
		if !req.Equal(tt.want) {
			t.Errorf("%s %s: expected %s, got %s", tt.action, tt.argument, tt.want, req)
		}
	}

	if _, err := buildRequest("retrieve", "-1"); err == nil {
		t.Error("Expected an error for a negative id")
	}
	if _, err := buildRequest("publish", filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("Expected an error for a missing file")
	}
}

func TestPositionalFormSetsUpClient(t *testing.T) {
	t.Cleanup(viper.Reset)
	viper.Set("transport", "tcp")
	rpcArchive = nil

	if ClientCommands.PersistentPreRunE == nil {
		t.Fatal("Client command has no setup hook")
	}

	ClientCommands.SetArgs([]string{"10.0.0.7", "9000", "retrieve", "not-a-number"})
	err := ClientCommands.Execute()
	if err == nil || !strings.Contains(err.Error(), "id must be a number") {
		t.Errorf("Expected an invalid id error, got %v", err)
	}

	if rpcArchive == nil {
		t.Fatal("Archive client was not set up before the command ran")
	}
	if got := viper.GetString("address"); got != "10.0.0.7" {
		t.Errorf("Expected address 10.0.0.7, got %q", got)
	}
	if got := viper.GetInt("port"); got != 9000 {
		t.Errorf("Expected port 9000, got %d", got)
	}
}
