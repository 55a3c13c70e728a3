package client

import (
	"errors"
	"fmt"
	"github.com/benjmnxu/ngram/rpc/common"
	"github.com/benjmnxu/ngram/rpc/serializer"
	"github.com/benjmnxu/ngram/rpc/transport"
	"github.com/lni/dragonboat/v4/logger"
	"time"
)

var (
	Logger = logger.GetLogger("client")
)

var (
	// ErrNoResponse is returned if the server could not be reached or closed the
	// connection without a complete response. The request may or may not have been executed.
	ErrNoResponse = errors.New("no response from server")
	// ErrFailure is returned if the server answered with a Failure response
	ErrFailure = errors.New("server replied with failure")
	// ErrUnexpectedResponse is returned if the response variant does not match the request
	ErrUnexpectedResponse = errors.New("unexpected response type")
)

// rpcClient stores everything needed to send one request per connection
type rpcClient struct {
	config    common.ClientConfig
	connector transport.IClientConnector
}

// send opens a fresh connection, writes req and reads exactly one response.
// Every connection or framing problem is reported as ErrNoResponse; there are no retries.
func (c *rpcClient) send(req *common.Request) (*common.Response, error) {
	// encode first, a request that cannot be encoded never reaches the server
	data, err := serializer.EncodeRequest(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	conn, err := c.connector.Connect(c.config)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to connect to %s: %w", ErrNoResponse, c.config.Endpoint, err)
	}
	defer conn.Close()

	if c.config.TimeoutSecond > 0 {
		_ = conn.SetDeadline(time.Now().Add(time.Duration(c.config.TimeoutSecond) * time.Second))
	}

	if _, err := conn.Write(data); err != nil {
		return nil, fmt.Errorf("%w: failed to send request: %w", ErrNoResponse, err)
	}

	resp, err := serializer.ReadResponse(conn, c.config.MaxFrameSize)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %w", ErrNoResponse, err)
	}

	Logger.Debugf("%s -> %s", req, resp)
	return resp, nil
}

// invokeRPCRequest sends req and checks that the response is a success of the expected type
func (c *rpcClient) invokeRPCRequest(req *common.Request, expected common.ResponseType) (*common.Response, error) {
	resp, err := c.send(req)
	if err != nil {
		return nil, err
	}

	if resp.Type == common.RespTFailure {
		return resp, ErrFailure
	}

	if resp.Type != expected {
		return nil, fmt.Errorf("%w: got %s, expected %s", ErrUnexpectedResponse, resp.Type, expected)
	}

	return resp, nil
}
