// Package server holds the HTTP server configuration.
//
// The main application entry point handles server startup; this
// package only defines the configuration structure: the listen port
// and the WebDAV surface settings (enabled flag and optional basic
// auth credentials).
package server
