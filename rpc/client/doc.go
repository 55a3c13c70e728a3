// Package client implements the one shot client of the archive server. RPCArchive
// implements store.IArchive, so code written against a local archive works unchanged
// against a remote server.
//
// Every call opens a fresh connection with the configured transport.IClientConnector,
// writes exactly one request frame, reads exactly one response frame and closes the
// connection. Calls are bounded by the configured timeout.
//
// Errors:
//
//   - ErrNoResponse: the server could not be reached, or the connection ended before a
//     complete response arrived (for example because the server was shutting down).
//     The caller must treat this as a failed operation; the client never retries.
//   - ErrFailure: the server answered with a Failure response. Retrieve maps this to
//     found == false instead.
//   - ErrUnexpectedResponse: the response variant does not belong to the request.
//
// Usage Example:
//
//	config := common.DefaultClientConfig()
//	config.Endpoint = "127.0.0.1:7878"
//
//	archive := client.NewRPCArchive(config, tcp.NewTCPClientConnector())
//	id, err := archive.Publish("hello world")
//	ids, err := archive.Search("hello")
//	doc, found, err := archive.Retrieve(id)
package client
