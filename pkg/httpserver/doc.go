// Package httpserver runs an http.Server with graceful shutdown.
//
// Run blocks until the supplied context is cancelled, SIGINT/SIGTERM
// arrives, or the listener fails; shutdown then drains in-flight requests
// within the configured timeout. Configuration is via functional options.
package httpserver
