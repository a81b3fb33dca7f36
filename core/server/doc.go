// Package server holds the HTTP server configuration.
//
// The Config struct defines the listen port, the API key required by the auth
// middleware and the graceful shutdown deadline. It is embedded in core/config
// and read by the start command.
package server
