package workers

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/vault-keeper/internal/config"
	"github.com/MKhiriev/vault-keeper/internal/logger"
)

const (
	defaultSweepInterval = 10 * time.Minute
	defaultTempMaxAge    = time.Hour
)

type Workers struct {
	workers []Worker
}

// NewWorkers builds the server's background workers.
func NewWorkers(cfg config.Storage, logger *logger.Logger) *Workers {
	return &Workers{workers: []Worker{
		NewTempFileSweeper(cfg.Files.VaultDir, defaultTempMaxAge, defaultSweepInterval, logger),
	}}
}

// Run starts every worker in its own goroutine and returns once all of them
// have stopped.
func (w *Workers) Run(ctx context.Context) {
	var wg sync.WaitGroup
	for _, worker := range w.workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			worker.Run(ctx)
		}()
	}
	wg.Wait()
}
