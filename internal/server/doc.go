// Package server provides the HTTP server for the eventsim stream and info page.
//
// This package is internal to eventsim and handles all HTTP concerns:
//
//   - Info page: Serves the embedded HTML help page at "/"
//   - Server-Sent Events: Infinite randomized event stream at "/events"
//   - Operational: Liveness probe at "/healthz", Prometheus metrics at "/metrics"
//
// Every connection to "/events" drives its own independent emission loop with
// its own random delay sequence; connections never block one another. The
// server supports graceful shutdown via context cancellation, with a 5-second
// timeout for in-flight requests.
package server
