package common

import (
	"github.com/lni/dragonboat/v4/logger"
	"strings"
	"testing"
)

func TestResponseString(t *testing.T) {
	tests := []struct {
		resp *Response
		want string
	}{
		{NewPublishSuccessResponse(0), "PublishSuccess(0)"},
		{NewSearchSuccessResponse([]uint64{0, 1}), "SearchSuccess([0, 1])"},
		{NewSearchSuccessResponse(nil), "SearchSuccess([])"},
		{NewRetrieveSuccessResponse("goodbye"), `RetrieveSuccess("goodbye")`},
		{NewFailureResponse(), "Failure"},
	}
	for _, tt := range tests {
		if got := tt.resp.String(); got != tt.want {
			t.Errorf("Expected %q, got %q", tt.want, got)
		}
	}
}

func TestResponseEqual(t *testing.T) {
	if !NewSearchSuccessResponse(nil).Equal(NewSearchSuccessResponse([]uint64{})) {
		t.Error("Empty and nil id lists must compare equal")
	}
	if NewPublishSuccessResponse(1).Equal(NewPublishSuccessResponse(2)) {
		t.Error("Different ids must not compare equal")
	}
	if NewFailureResponse().Equal(NewRetrieveSuccessResponse("")) {
		t.Error("Different variants must not compare equal")
	}
	if NewFailureResponse().IsSuccess() || !NewRetrieveSuccessResponse("").IsSuccess() {
		t.Error("IsSuccess reports the wrong outcome")
	}
}

func TestRequestEqual(t *testing.T) {
	if !NewRetrieveRequest(3).Equal(NewRetrieveRequest(3)) {
		t.Error("Equal requests must compare equal")
	}
	if NewSearchRequest("a").Equal(NewPublishRequest("a")) {
		t.Error("Different variants must not compare equal")
	}
}

func TestTypeString(t *testing.T) {
	if got := ReqTRetrieve.String(); got != "retrieve" {
		t.Errorf("Unexpected request type name %q", got)
	}
	if got := RequestType(3).String(); got != "unknown(3)" {
		t.Errorf("Unexpected name for an undefined request tag: %q", got)
	}
	if got := RespTFailure.String(); got != "failure" {
		t.Errorf("Unexpected response type name %q", got)
	}
	if got := ResponseType(4).String(); got != "unknown(4)" {
		t.Errorf("Unexpected name for an undefined response tag: %q", got)
	}
}

func TestServerConfigValidate(t *testing.T) {
	valid := DefaultServerConfig()
	if err := valid.Validate(); err != nil {
		t.Fatalf("Default configuration is invalid: %v", err)
	}

	tests := map[string]func(c *ServerConfig){
		"no workers":       func(c *ServerConfig) { c.Workers = 0 },
		"negative timeout": func(c *ServerConfig) { c.TimeoutSecond = -1 },
		"no frame size":    func(c *ServerConfig) { c.MaxFrameSize = 0 },
		"no endpoint":      func(c *ServerConfig) { c.Endpoint = "" },
		"bad transport":    func(c *ServerConfig) { c.Transport = "http" },
	}
	for name, mutate := range tests {
		c := DefaultServerConfig()
		mutate(&c)
		if err := c.Validate(); err == nil {
			t.Errorf("%s: expected a validation error", name)
		}
	}
}

func TestConfigString(t *testing.T) {
	server := DefaultServerConfig()
	out := server.String()
	for _, want := range []string{"ARCHIVE SERVER", "127.0.0.1:7878", "os default", "disabled"} {
		if !strings.Contains(out, want) {
			t.Errorf("Server configuration output is missing %q:\n%s", want, out)
		}
	}

	client := DefaultClientConfig()
	if out := client.String(); !strings.Contains(out, "127.0.0.1:7878") {
		t.Errorf("Client configuration output is missing the endpoint:\n%s", out)
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := map[string]logger.LogLevel{
		"debug":   logger.DEBUG,
		"INFO":    logger.INFO,
		"":        logger.INFO,
		"warn":    logger.WARNING,
		"warning": logger.WARNING,
		"error":   logger.ERROR,
	}
	for input, want := range tests {
		got, err := ParseLogLevel(input)
		if err != nil || got != want {
			t.Errorf("ParseLogLevel(%q) = %v, %v", input, got, err)
		}
	}
	if _, err := ParseLogLevel("verbose"); err == nil {
		t.Error("Expected an error for an unknown level")
	}
}

func TestInitLoggers(t *testing.T) {
	if err := InitLoggers("debug"); err != nil {
		t.Fatalf("InitLoggers failed: %v", err)
	}
	if err := InitLoggers("nonsense"); err == nil {
		t.Error("Expected an error for an invalid level")
	}
	// restore the default level for other tests
	if err := InitLoggers("info"); err != nil {
		t.Fatalf("InitLoggers failed: %v", err)
	}
}
