// Package tcp implements TCP socket based connectors for the archive server and client.
//
// Key Components:
//
//   - clientConnector: dials host:port endpoints, implements transport.IClientConnector
//
//   - serverConnector: listens on host:port endpoints, implements transport.IServerConnector
//
// Accepted and dialed connections are tuned with transport.ApplySocketOptions, so
// NoDelay, keep-alive, linger and the socket buffer sizes follow the configuration.
package tcp
