// Package server holds the HTTP server configuration.
//
// The `start` command serves the reconciliation API over HTTP; this package
// defines the listen port and the optional API key guarding it.
//
// # Configuration
//
// The Config struct defines the HTTP port and API key. An empty key disables
// authentication, which is meant for local use only.
//
// # Usage
//
// This package is primarily used by the core/config package to embed server settings
// and by cmd/start.go to build the listen address.
package server
