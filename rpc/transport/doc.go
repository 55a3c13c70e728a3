// Package transport defines how the archive server and client obtain their sockets.
// Every request uses its own connection, so a transport is reduced to creating
// listeners and dialing endpoints; framing and encoding live in the serializer package.
//
// Key Components:
//
//   - IServerConnector: creates the listener for a transport and upgrades accepted
//     connections with the configured socket options.
//
//   - IClientConnector: dials a server endpoint and applies the same options.
//
//   - ApplySocketOptions: shared socket tuning (buffer sizes for all stream sockets,
//     plus NoDelay, keep-alive and linger for TCP).
//
// Implementations live in the tcp and unix sub packages.
package transport
