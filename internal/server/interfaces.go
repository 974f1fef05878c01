package server

import "context"

// Server defines the lifecycle contract of the application server.
//
// RunServer blocks until SIGTERM, SIGINT or SIGQUIT is received and then
// shuts everything down. Run does the same for an explicit context.
type Server interface {
	// RunServer starts serving requests and blocks until a stop signal.
	RunServer()

	// Run starts serving requests and blocks until ctx is cancelled.
	Run(ctx context.Context) error

	// Shutdown gracefully stops the server and frees associated resources.
	Shutdown()
}
