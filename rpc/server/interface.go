package server

import (
	"github.com/benjmnxu/ngram/lib/store"
	"github.com/benjmnxu/ngram/rpc/common"
)

// IRPCServerAdapter is the interface for all RPC server adapters
// It is responsible for handling requests and responses
type IRPCServerAdapter interface {
	// Handle executes a request against the archive and returns the response.
	// Every failure, including a nil archive or a store error, results in a Failure response.
	Handle(req *common.Request, archive store.IArchive) (resp *common.Response)
}
