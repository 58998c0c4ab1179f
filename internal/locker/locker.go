// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package locker provides per-key mutual exclusion whose acquisition can be
// abandoned through a context.
package locker

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"
)

// KeyedLocker hands out one exclusive lock per key. Locks are created on
// first use and kept for the life of the process, so two goroutines asking
// for the same key always contend on the same lock.
type KeyedLocker struct {
	mu    sync.Mutex
	locks map[string]*semaphore.Weighted
}

// NewKeyedLocker constructs an empty [KeyedLocker].
func NewKeyedLocker() *KeyedLocker {
	return &KeyedLocker{
		locks: make(map[string]*semaphore.Weighted),
	}
}

// Lock blocks until the lock for key is held or ctx is done. On success the
// returned function releases the lock; it must be called exactly once.
func (l *KeyedLocker) Lock(ctx context.Context, key string) (func(), error) {
	sem := l.lockFor(key)
	if err := sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}

	var once sync.Once
	return func() {
		once.Do(func() { sem.Release(1) })
	}, nil
}

// Len returns the number of keys that have a lock.
func (l *KeyedLocker) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}

func (l *KeyedLocker) lockFor(key string) *semaphore.Weighted {
	l.mu.Lock()
	defer l.mu.Unlock()

	sem, ok := l.locks[key]
	if !ok {
		sem = semaphore.NewWeighted(1)
		l.locks[key] = sem
	}
	return sem
}
