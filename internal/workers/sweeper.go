// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/MKhiriev/vault-keeper/internal/logger"
	"github.com/MKhiriev/vault-keeper/internal/store"
)

// TempFileSweeper removes temporary vault files orphaned by a crash between
// the write and the rename of an atomic vault replace. Only files older
// than maxAge are removed so a write in progress is never touched.
type TempFileSweeper struct {
	dir      string
	maxAge   time.Duration
	interval time.Duration
	now      func() time.Time

	logger *logger.Logger
}

func NewTempFileSweeper(dir string, maxAge, interval time.Duration, logger *logger.Logger) *TempFileSweeper {
	return &TempFileSweeper{
		dir:      dir,
		maxAge:   maxAge,
		interval: interval,
		now:      time.Now,
		logger:   logger,
	}
}

// Run sweeps once immediately and then every interval until ctx is done.
func (s *TempFileSweeper) Run(ctx context.Context) {
	s.Sweep()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}

// Sweep removes stale temp files and returns how many were removed.
func (s *TempFileSweeper) Sweep() int {
	matches, err := filepath.Glob(filepath.Join(s.dir, store.TempFilePattern))
	if err != nil {
		s.logger.Err(err).Str("func", "*TempFileSweeper.Sweep").Msg("error listing temp files")
		return 0
	}

	cutoff := s.now().Add(-s.maxAge)
	removed := 0
	for _, path := range matches {
		info, err := os.Stat(path)
		if err != nil || info.ModTime().After(cutoff) {
			continue
		}
		if err = os.Remove(path); err != nil {
			s.logger.Err(err).Str("path", path).Msg("error removing stale temp file")
			continue
		}
		removed++
	}

	if removed > 0 {
		s.logger.Info().Int("removed", removed).Str("dir", s.dir).Msg("stale vault temp files removed")
	}
	return removed
}
