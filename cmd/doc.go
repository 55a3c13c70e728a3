// Package cmd implements the command-line interface of the ngram document archive.
// It provides commands for running the server and for sending single requests to it.
//
// The package is organized into several subpackages:
//
//   - serve: The server command (ngram server [listen-port])
//   - client: Commands for publishing, searching and retrieving documents, and a
//     small benchmark tool (ngram client ...)
//   - util: Shared utilities for command-line processing and configuration (internal use)
//
// Every flag can also be set with an NGRAM_<FLAG> environment variable; .env and
// .env.local files in the working directory are loaded first.
//
// See ngram -help for a list of all commands.
package cmd
