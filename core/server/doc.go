// Package server holds the HTTP server configuration used by the start command.
//
// # Configuration
//
// The Config struct defines the bind host, the HTTP port and the request read
// timeout. It is embedded in core/config under the server key.
package server
