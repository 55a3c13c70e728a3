// Package unix implements connectors for the archive server and client using Unix
// domain sockets, for processes running on the same machine.
//
// Key Components:
//
//   - clientConnector: dials a socket path
//
//   - serverConnector: removes a stale socket file and listens on the socket path
//
// Only the socket buffer sizes of the configuration apply; TCP options are ignored.
package unix
