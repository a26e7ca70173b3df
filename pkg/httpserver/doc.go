// Package httpserver runs the HTTP API with graceful shutdown and serves the
// dependency health endpoint.
package httpserver
