// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MKhiriev/vault-keeper/internal/config"
	"github.com/MKhiriev/vault-keeper/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockWorker counts Run calls and blocks until ctx is done.
type mockWorker struct {
	runCount atomic.Int32
}

func (m *mockWorker) Run(ctx context.Context) {
	m.runCount.Add(1)
	<-ctx.Done()
}

func TestWorkers_Run_AllWorkersAreCalled(t *testing.T) {
	w1, w2, w3 := &mockWorker{}, &mockWorker{}, &mockWorker{}
	ws := &Workers{workers: []Worker{w1, w2, w3}}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		ws.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool {
		return w1.runCount.Load() == 1 && w2.runCount.Load() == 1 && w3.runCount.Load() == 1
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestWorkers_Run_Empty(t *testing.T) {
	ws := &Workers{}
	ws.Run(context.Background())
}

func TestNewWorkers(t *testing.T) {
	ws := NewWorkers(config.Storage{Files: config.Files{VaultDir: t.TempDir()}}, logger.Nop())
	assert.Len(t, ws.workers, 1)
}

func writeAged(t *testing.T, path string, age time.Duration) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o600))
	mod := time.Now().Add(-age)
	require.NoError(t, os.Chtimes(path, mod, mod))
}

func TestTempFileSweeper_Sweep(t *testing.T) {
	dir := t.TempDir()
	stale := filepath.Join(dir, ".vault-111.tmp")
	fresh := filepath.Join(dir, ".vault-222.tmp")
	vault := filepath.Join(dir, "abc.vault")

	writeAged(t, stale, 2*time.Hour)
	writeAged(t, fresh, time.Minute)
	writeAged(t, vault, 48*time.Hour)

	s := NewTempFileSweeper(dir, time.Hour, time.Minute, logger.Nop())
	assert.Equal(t, 1, s.Sweep())

	assert.NoFileExists(t, stale)
	assert.FileExists(t, fresh)
	assert.FileExists(t, vault, "vault files are never swept")
}

func TestTempFileSweeper_RunSweepsImmediatelyAndStops(t *testing.T) {
	dir := t.TempDir()
	stale := filepath.Join(dir, ".vault-333.tmp")
	writeAged(t, stale, 2*time.Hour)

	s := NewTempFileSweeper(dir, time.Hour, time.Hour, logger.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool {
		_, err := os.Stat(stale)
		return os.IsNotExist(err)
	}, time.Second, 5*time.Millisecond)

	cancel()
	<-done
}
