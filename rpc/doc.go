// Package rpc provides the communication layer of the document archive: the
// binary protocol, the server that executes requests against an archive, and the
// client that sends them.
//
// The package is organized into several subpackages:
//
//   - common: Request and Response values, configuration structures, and logging.
//
//   - serializer: The length prefixed binary wire format for requests and responses.
//
//   - transport: Listener and dialer abstractions with implementations for TCP and
//     Unix sockets.
//
//   - server: The archive server with its accept loop, worker pool dispatch and
//     shutdown coordination.
//
//   - client: A one request per connection client implementing store.IArchive.
//
// Each connection carries exactly one request and one response. There are no
// sessions and no multiplexing.
package rpc
