package server

import (
	"context"
	"errors"
	"fmt"
	"github.com/VictoriaMetrics/metrics"
	"github.com/benjmnxu/ngram/lib/pool"
	"github.com/benjmnxu/ngram/lib/store"
	"github.com/benjmnxu/ngram/rpc/common"
	"github.com/benjmnxu/ngram/rpc/serializer"
	"github.com/benjmnxu/ngram/rpc/transport"
	"github.com/lni/dragonboat/v4/logger"
	"golang.org/x/sync/errgroup"
	"net"
	"net/http"
	"sync"
	"time"
)

var Logger = logger.GetLogger("server")

// acceptBackoff is the pause after a failed accept that was not caused by closing the listener
const acceptBackoff = 10 * time.Millisecond

// --------------------------------------------------------------------------
// Server State Machine
// --------------------------------------------------------------------------

// State is the lifecycle state of a server. A server only moves forward:
// Created -> Listening -> Stopping -> Stopped.
type State int

const (
	StateCreated State = iota
	StateListening
	StateStopping
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateCreated:
		return "Created"
	case StateListening:
		return "Listening"
	case StateStopping:
		return "Stopping"
	case StateStopped:
		return "Stopped"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// --------------------------------------------------------------------------
// Server
// --------------------------------------------------------------------------

// Server accepts connections, reads one request per connection on the accepting
// goroutine and executes it on the worker pool.
type Server struct {
	config    common.ServerConfig
	connector transport.IServerConnector
	adapter   IRPCServerAdapter
	state     *ServerState
	stats     *requestStats

	mu       sync.Mutex
	cond     *sync.Cond
	status   State
	listener net.Listener
	// reading is the connection whose request frame the accept loop is reading
	reading net.Conn

	acceptLoop sync.WaitGroup
	stopOnce   sync.Once
}

// NewServer creates a server in the Created state. The worker pool is started
// immediately with config.Workers workers.
//
// Usage:
//
//	s, err := server.NewServer(
//		config,
//		tcp.NewTCPServerConnector(),
//		lstore.NewLocalArchive(lstore.CompressionNone),
//	)
//	if err != nil {
//		return err
//	}
//
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
//	defer stop()
//	if err := s.Run(ctx); err != nil {
//		return err
//	}
func NewServer(config common.ServerConfig, connector transport.IServerConnector, archive store.IArchive) (*Server, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid server configuration: %w", err)
	}
	if connector == nil {
		return nil, errors.New("no server connector given")
	}
	if archive == nil {
		return nil, errors.New("no archive given")
	}

	workers, err := pool.NewPool(config.Workers)
	if err != nil {
		return nil, fmt.Errorf("failed to create worker pool: %w", err)
	}

	s := &Server{
		config:    config,
		connector: connector,
		adapter:   NewArchiveServerAdapter(),
		state:     NewServerState(archive, workers),
		stats:     newRequestStats(),
		status:    StateCreated,
	}
	s.cond = sync.NewCond(&s.mu)

	Logger.Infof("Created archive server")
	Logger.Infof(config.String())

	return s, nil
}

// setStatus changes the lifecycle state and wakes up all waiters. The caller must hold mu.
func (s *Server) setStatus(status State) {
	s.status = status
	s.cond.Broadcast()
}

// State returns the current lifecycle state
func (s *Server) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// IsStopped reports whether the server reached the terminal Stopped state
func (s *Server) IsStopped() bool {
	return s.State() == StateStopped
}

// Addr returns the address the server is bound to, or nil before Listen
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Listen binds the listening socket and moves the server from Created to Listening
func (s *Server) Listen() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status != StateCreated {
		return fmt.Errorf("cannot listen in state %s", s.status)
	}

	listener, err := s.connector.Listen(s.config)
	if err != nil {
		return fmt.Errorf("failed to listen on %s (%s): %w", s.config.Endpoint, s.connector.GetName(), err)
	}

	s.listener = listener
	s.setStatus(StateListening)
	Logger.Infof("listening on %s (%s)", listener.Addr(), s.connector.GetName())
	return nil
}

// Serve runs the accept loop until the server is stopped. It must be called after
// Listen, at most once.
//
// A connection accepted concurrently with Stop may still be read and submitted
// before the shutdown flag is observed. Its job then finds the flag set and closes
// the connection without a reply, so no connection accepted after the flag was set
// receives a successful response.
func (s *Server) Serve() error {
	s.mu.Lock()
	if s.status != StateListening {
		status := s.status
		s.mu.Unlock()
		return fmt.Errorf("cannot serve in state %s", status)
	}
	listener := s.listener
	s.acceptLoop.Add(1)
	s.mu.Unlock()

	defer s.acceptLoop.Done()

	for {
		conn, err := listener.Accept()
		if err != nil {
			if s.state.IsShuttingDown() || errors.Is(err, net.ErrClosed) {
				Logger.Debugf("accept loop stopped")
				return nil
			}
			Logger.Warningf("failed to accept connection: %v", err)
			time.Sleep(acceptBackoff)
			continue
		}

		if s.state.IsShuttingDown() {
			_ = conn.Close()
			Logger.Debugf("accept loop stopped")
			return nil
		}

		s.handleConnection(conn)
	}
}

// handleConnection reads one request frame from conn and submits its processing to the pool.
// Reading happens on the accepting goroutine and is bounded by the configured timeout.
func (s *Server) handleConnection(conn net.Conn) {
	if err := s.connector.UpgradeConnection(conn, s.config); err != nil {
		Logger.Warningf("failed to apply socket options to %s: %v", conn.RemoteAddr(), err)
	}

	if timeout := s.timeout(); timeout > 0 {
		_ = conn.SetReadDeadline(time.Now().Add(timeout))
	}

	// Stop closes the registered connection, so a withheld frame cannot block shutdown
	s.mu.Lock()
	if s.state.IsShuttingDown() {
		s.mu.Unlock()
		s.stats.observeDropped()
		_ = conn.Close()
		return
	}
	s.reading = conn
	s.mu.Unlock()

	payload, err := serializer.ReadFrame(conn, s.config.MaxFrameSize)

	s.mu.Lock()
	s.reading = nil
	s.mu.Unlock()

	if err != nil {
		// nothing was framed, so there is nothing to answer
		Logger.Debugf("dropping connection from %s: %v", conn.RemoteAddr(), err)
		s.stats.observeDropped()
		_ = conn.Close()
		return
	}

	req, decodeErr := serializer.DecodeRequest(payload)

	if err := s.state.Pool().Execute(func() { s.process(conn, req, decodeErr) }); err != nil {
		Logger.Debugf("rejecting connection from %s: %v", conn.RemoteAddr(), err)
		s.stats.observeDropped()
		_ = conn.Close()
	}
}

// process is the job body: dispatch the request and write the response on the same connection
func (s *Server) process(conn net.Conn, req *common.Request, decodeErr error) {
	defer conn.Close()

	if s.state.IsShuttingDown() {
		s.stats.observeDropped()
		return
	}

	var resp *common.Response
	if decodeErr != nil {
		Logger.Debugf("undecodable request from %s: %v", conn.RemoteAddr(), decodeErr)
		s.stats.observeMalformed()
		resp = common.NewFailureResponse()
	} else {
		start := time.Now()
		resp = s.adapter.Handle(req, s.state.Archive())
		s.stats.observe(req.Type, start, resp)
	}

	if timeout := s.timeout(); timeout > 0 {
		_ = conn.SetWriteDeadline(time.Now().Add(timeout))
	}
	if err := serializer.WriteResponse(conn, resp); err != nil {
		Logger.Warningf("failed to write response to %s: %v", conn.RemoteAddr(), err)
	}
}

// timeout returns the deadline applied to socket reads and writes (0 = none)
func (s *Server) timeout() time.Duration {
	return time.Duration(s.config.TimeoutSecond) * time.Second
}

// Stop sets the shutdown flag, closes the listener, waits for the accept loop,
// drains and joins the worker pool and moves the server to Stopped.
// Stop is idempotent: later and concurrent calls block until the first one finished.
func (s *Server) Stop() {
	s.stopOnce.Do(func() {
		s.state.RequestShutdown()

		s.mu.Lock()
		s.setStatus(StateStopping)
		listener := s.listener
		if s.reading != nil {
			_ = s.reading.Close()
		}
		s.mu.Unlock()

		Logger.Infof("stopping archive server")

		if listener != nil {
			if err := listener.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
				Logger.Warningf("failed to close listener: %v", err)
			}
		}

		s.acceptLoop.Wait()
		s.state.Pool().Shutdown()

		s.stats.log()
		if info, err := s.state.Archive().Info(); err == nil {
			Logger.Infof("archive: %d documents, %d words, %d bytes stored (%d raw, %s), document size avg=%d median~%d p99~%d",
				info.Documents, info.Words, info.StoredBytes, info.RawBytes, info.Compression,
				info.AvgDocumentBytes, info.MedianDocumentBytes, info.P99DocumentBytes)
		}

		s.mu.Lock()
		s.setStatus(StateStopped)
		s.mu.Unlock()

		Logger.Infof("archive server stopped")
	})
}

// Wait blocks until the server is Stopped
func (s *Server) Wait() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for s.status != StateStopped {
		s.cond.Wait()
	}
}

// Run listens, serves and stops the server once ctx is cancelled. If a metrics
// endpoint is configured, the prometheus metrics are served on it as well.
// Run returns after the server is Stopped.
func (s *Server) Run(ctx context.Context) error {
	if err := s.Listen(); err != nil {
		s.Stop()
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer cancel()
		return s.Serve()
	})

	var metricsServer *http.Server
	if s.config.MetricsEndpoint != "" {
		metricsServer = newMetricsServer(s.config.MetricsEndpoint)
		g.Go(func() error {
			Logger.Infof("serving metrics on http://%s/metrics", s.config.MetricsEndpoint)
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("metrics endpoint failed: %w", err)
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		s.Stop()
		if metricsServer != nil {
			shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
			defer done()
			if err := metricsServer.Shutdown(shutdownCtx); err != nil {
				Logger.Warningf("failed to stop metrics endpoint: %v", err)
			}
		}
		return nil
	})

	return g.Wait()
}

// newMetricsServer creates the http server exposing /metrics
func newMetricsServer(endpoint string) *http.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/metrics", func(w http.ResponseWriter, _ *http.Request) {
		metrics.WritePrometheus(w, true)
	})
	return &http.Server{
		Addr:              endpoint,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
}
