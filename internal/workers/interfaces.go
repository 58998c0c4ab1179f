// Package workers provides the background workers of the vault-keeper
// server and a Workers aggregate that runs them for the process lifetime.
package workers

import "context"

// Worker is the interface that must be implemented by any background worker.
//
// Run blocks until ctx is done.
type Worker interface {
	Run(ctx context.Context)
}
