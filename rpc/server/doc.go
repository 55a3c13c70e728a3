// Package server implements the archive server: the accept loop, the dispatch of
// requests to the archive and the shutdown coordination.
//
// Key Components:
//
//   - Server: created by NewServer with a configuration, a transport.IServerConnector
//     and a store.IArchive. It moves through the states Created, Listening, Stopping and
//     Stopped, never backwards.
//
//   - ServerState: the state shared between the accept loop and the jobs. It holds the
//     archive, the worker pool and the shutdown flag (an atomic boolean that is set once
//     and never reset).
//
//   - IRPCServerAdapter: translates a decoded request into archive calls and builds the
//     response. NewArchiveServerAdapter is the implementation used by the server.
//
// Request Flow:
//
//	Every connection carries exactly one request. The accept loop upgrades the socket,
//	reads one frame synchronously (bounded by the read deadline), decodes it and submits
//	a job to the pool. The job dispatches the request, writes the response frame on the
//	same connection and closes it.
//
//	- A frame that cannot be read at all (early end of stream, timeout, oversized) is
//	  dropped and the connection closed without a reply.
//	- A frame that was read but cannot be decoded is answered with Failure.
//	- Archive errors and unknown ids are answered with Failure.
//	- A job that starts after the shutdown flag was set closes the connection without a
//	  reply. Clients must treat a missing reply as a failed request.
//
// Shutdown:
//
//	Stop sets the shutdown flag, closes the listener, waits for the accept loop, drains and
//	joins the worker pool and finally enters Stopped. In-flight jobs always run to completion.
//	A connection accepted while Stop is running may still be read and queued; its job then
//	observes the flag and sends nothing. Stop is idempotent and Wait blocks until Stopped.
//
//	Run combines Listen, Serve and Stop: it stops the server once its context is cancelled,
//	which is how the CLI reacts to an interrupt signal.
//
// Known Limitation:
//
//	Frames are read on the accepting goroutine, so a client that sends a length header and
//	withholds the body stalls all new accepts until the read deadline (TimeoutSecond) expires.
//	With TimeoutSecond set to 0 the stall lasts until Stop, which closes the connection being
//	read.
//
// Metrics:
//
//	Request latencies per request type are tracked with github.com/rcrowley/go-metrics timers
//	and logged on Stop. Process wide counters (ngram_requests_total, ngram_requests_failed_total,
//	ngram_requests_dropped_total and the pool counters) are exported with
//	github.com/VictoriaMetrics/metrics on http://<MetricsEndpoint>/metrics when configured.
package server
