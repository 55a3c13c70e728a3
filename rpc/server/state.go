package server

import (
	"github.com/benjmnxu/ngram/lib/pool"
	"github.com/benjmnxu/ngram/lib/store"
	"sync/atomic"
)

// ServerState bundles everything the accept loop and the jobs share: the archive,
// the worker pool and the shutdown flag. One instance lives as long as the server
// and is passed by pointer to every goroutine that needs it.
type ServerState struct {
	archive  store.IArchive
	pool     *pool.Pool
	shutdown atomic.Bool
}

// NewServerState creates the shared state with the shutdown flag unset
func NewServerState(archive store.IArchive, workers *pool.Pool) *ServerState {
	return &ServerState{
		archive: archive,
		pool:    workers,
	}
}

// Archive returns the archive requests are executed against
func (s *ServerState) Archive() store.IArchive {
	return s.archive
}

// Pool returns the worker pool jobs are submitted to
func (s *ServerState) Pool() *pool.Pool {
	return s.pool
}

// IsShuttingDown reports whether the shutdown flag is set.
// Readers may observe either value while RequestShutdown runs concurrently.
func (s *ServerState) IsShuttingDown() bool {
	return s.shutdown.Load()
}

// RequestShutdown sets the shutdown flag. The flag is never reset; the return value
// is true only for the call that changed it.
func (s *ServerState) RequestShutdown() bool {
	return s.shutdown.CompareAndSwap(false, true)
}
