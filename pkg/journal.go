// Package pkg provides reusable utilities for forkest.
package pkg

import (
	"encoding/gob"
	"fmt"
	"log/slog"
	"os"
	"sync"
)

// Journal is an append-only, gob-encoded record of items of type T on
// disk. The run workflow journals every verdict as it lands, so a run
// that dies mid-way still leaves a usable trace of what completed.
type Journal[T any] struct {
	path    string
	file    *os.File
	encoder *gob.Encoder
	mu      sync.Mutex
	length  uint64
}

// NewJournal creates a journal backed by a fresh temp file.
func NewJournal[T any](pattern string) (*Journal[T], error) {
	file, err := os.CreateTemp("", pattern)
	if err != nil {
		slog.Error("failed to create journal file", "pattern", pattern, "error", err)
		return nil, fmt.Errorf("create journal file: %w", err)
	}

	slog.Debug("created journal", "path", file.Name())

	return &Journal[T]{
		path:    file.Name(),
		file:    file,
		encoder: gob.NewEncoder(file),
	}, nil
}

// Path returns the journal's file path.
func (j *Journal[T]) Path() string {
	return j.path
}

// Len returns the number of appended items.
func (j *Journal[T]) Len() uint64 {
	j.mu.Lock()
	defer j.mu.Unlock()

	return j.length
}

// Append records one item.
func (j *Journal[T]) Append(item T) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if err := j.encoder.Encode(item); err != nil {
		slog.Error("failed to journal item", "path", j.path, "index", j.length, "error", err)
		return fmt.Errorf("journal item: %w", err)
	}

	j.length++

	return nil
}

// Replay calls fn for every journaled item in append order.
func (j *Journal[T]) Replay(fn func(index uint64, item T) error) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	file, err := os.Open(j.path)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}

	defer func() {
		if err := file.Close(); err != nil {
			slog.Error("failed to close journal", "path", j.path, "error", err)
		}
	}()

	decoder := gob.NewDecoder(file)

	var item T

	for i := range j.length {
		if err := decoder.Decode(&item); err != nil {
			return fmt.Errorf("decode journal item %d: %w", i, err)
		}

		if err := fn(i, item); err != nil {
			return err
		}
	}

	return nil
}

// Close closes and removes the journal file.
func (j *Journal[T]) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.file == nil {
		return nil
	}

	if err := j.file.Close(); err != nil {
		return fmt.Errorf("close journal: %w", err)
	}

	j.file = nil

	if err := os.Remove(j.path); err != nil {
		slog.Warn("failed to remove journal file", "path", j.path, "error", err)
	}

	return nil
}
