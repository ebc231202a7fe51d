// Package server holds the HTTP server configuration.
//
// While the serve command handles the server startup, this package defines the
// configuration structure for server settings, such as the listen port, the
// API key protecting the validation endpoints, and the Prometheus metrics port.
//
// # Usage
//
// This package is primarily used by the core/config package to embed server
// settings and by the serve command when wiring the Fiber application.
package server
