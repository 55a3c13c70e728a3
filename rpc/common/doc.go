// Package common provides the data structures and utilities shared by the server,
// the client and the serializer.
//
// Key Components:
//
//   - Request / Response: The protocol values. A Request is one of Publish, Search or
//     Retrieve; a Response is one of PublishSuccess, SearchSuccess, RetrieveSuccess or
//     Failure. RequestType and ResponseType are the tag bytes used on the wire.
//
//   - ServerConfig / ClientConfig: Configuration of the server and the client, including
//     socket tuning (SocketConf, TCPConf). Both print themselves in a human readable form
//     that is logged at startup.
//
//   - Logging: The packages log through the github.com/lni/dragonboat/v4/logger facade.
//     InitLoggers installs a factory backed by github.com/charmbracelet/log and sets the
//     level of every package logger listed in LoggerNames.
package common
