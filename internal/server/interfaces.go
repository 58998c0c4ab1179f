package server

import "context"

// Server defines the lifecycle contract for the transport server.
type Server interface {
	// Run serves until ctx is done, then shuts down gracefully.
	Run(ctx context.Context) error

	// Shutdown gracefully stops the server and frees associated resources.
	Shutdown()
}
