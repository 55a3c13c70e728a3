package client

import (
	"errors"
	"fmt"
	"github.com/benjmnxu/ngram/lib/store"
	"github.com/benjmnxu/ngram/rpc/common"
	"github.com/benjmnxu/ngram/rpc/transport"
	"os"
)

// NewRPCArchive creates a store.IArchive that forwards every call to a remote archive
// server. Each call uses its own connection.
func NewRPCArchive(config common.ClientConfig, connector transport.IClientConnector) *RPCArchive {
	return &RPCArchive{
		rpcClient{
			config:    config,
			connector: connector,
		},
	}
}

// RPCArchive is the client side of the archive protocol
type RPCArchive struct {
	rpcClient
}

// Send sends a single request and returns the raw response, including Failure responses.
// An error is only returned if no response was received.
func (a *RPCArchive) Send(req *common.Request) (*common.Response, error) {
	return a.send(req)
}

// PublishFromPath reads a file and publishes its content as a document
func (a *RPCArchive) PublishFromPath(path string) (uint64, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read document: %w", err)
	}
	return a.Publish(string(content))
}

// --------------------------------------------------------------------------
// Interface Methods (docu see the store package in interface.go)
// --------------------------------------------------------------------------

func (a *RPCArchive) Publish(doc string) (uint64, error) {
	resp, err := a.invokeRPCRequest(common.NewPublishRequest(doc), common.RespTPublishSuccess)
	if err != nil {
		return 0, err
	}
	return resp.ID, nil
}

func (a *RPCArchive) Search(word string) ([]uint64, error) {
	resp, err := a.invokeRPCRequest(common.NewSearchRequest(word), common.RespTSearchSuccess)
	if err != nil {
		return nil, err
	}
	return resp.IDs, nil
}

// Retrieve reports found == false if the server answered with Failure, since the
// protocol does not distinguish unknown ids from other failures.
func (a *RPCArchive) Retrieve(id uint64) (string, bool, error) {
	resp, err := a.invokeRPCRequest(common.NewRetrieveRequest(id), common.RespTRetrieveSuccess)
	if errors.Is(err, ErrFailure) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return resp.Doc, true, nil
}

func (a *RPCArchive) Info() (store.ArchiveInfo, error) {
	return store.ArchiveInfo{}, store.NewError(store.RetCInvalidOperation, "info is not part of the wire protocol")
}

// compile time check
var _ store.IArchive = (*RPCArchive)(nil)
