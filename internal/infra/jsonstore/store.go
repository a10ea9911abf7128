// Package jsonstore provides a JSON file-based implementation of domain.Outbox.
// Drafts that could not reach the server are kept here until `client sync`
// delivers them.
package jsonstore

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"syscall"

	"github.com/natefinch/atomic"

	"github.com/clientive/clientive/internal/domain"
)

// Ensure Store implements domain.Outbox.
var _ domain.Outbox = (*Store)(nil)

// storeData represents the JSON file structure.
type storeData struct {
	Pending []domain.PendingClient `json:"pending"`
}

// Store implements domain.Outbox using a JSON file guarded by a flock.
type Store struct {
	path     string
	lockPath string
}

// New creates a new Store for the given file path.
// The file does not need to exist; it will be created on first write.
func New(path string) *Store {
	return &Store{
		path:     path,
		lockPath: path + ".lock",
	}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Enqueue appends a pending draft. An entry with the same ID is replaced.
func (s *Store) Enqueue(p domain.PendingClient) error {
	return s.withLockWrite(func(data *storeData) error {
		if i := index(data.Pending, p.ID); i >= 0 {
			data.Pending[i] = p
			return nil
		}
		data.Pending = append(data.Pending, p)
		return nil
	})
}

// List returns pending drafts ordered by queue time.
func (s *Store) List() ([]domain.PendingClient, error) {
	var out []domain.PendingClient
	err := s.withLock(func(data *storeData) error {
		out = slices.Clone(data.Pending)
		return nil
	})
	slices.SortStableFunc(out, func(a, b domain.PendingClient) int {
		return a.QueuedAt.Compare(b.QueuedAt)
	})
	return out, err
}

// Remove deletes a pending draft. Removing an unknown ID is not an error.
func (s *Store) Remove(id string) error {
	return s.withLockWrite(func(data *storeData) error {
		if i := index(data.Pending, id); i >= 0 {
			data.Pending = slices.Delete(data.Pending, i, i+1)
		}
		return nil
	})
}

// Update replaces a pending draft in place.
func (s *Store) Update(p domain.PendingClient) error {
	return s.withLockWrite(func(data *storeData) error {
		i := index(data.Pending, p.ID)
		if i < 0 {
			return fmt.Errorf("pending client %s: %w", p.ID, domain.ErrClientNotFound)
		}
		data.Pending[i] = p
		return nil
	})
}

func index(list []domain.PendingClient, id string) int {
	return slices.IndexFunc(list, func(p domain.PendingClient) bool { return p.ID == id })
}

// withLock executes fn with a shared (read) lock.
func (s *Store) withLock(fn func(*storeData) error) error {
	lock, err := s.acquireLock(syscall.LOCK_SH)
	if err != nil {
		return err
	}
	defer s.releaseLock(lock)

	data, err := s.read()
	if err != nil {
		return err
	}

	return fn(data)
}

// withLockWrite executes fn with an exclusive (write) lock and writes the result.
func (s *Store) withLockWrite(fn func(*storeData) error) error {
	lock, err := s.acquireLock(syscall.LOCK_EX)
	if err != nil {
		return err
	}
	defer s.releaseLock(lock)

	data, err := s.read()
	if err != nil {
		return err
	}

	if err := fn(data); err != nil {
		return err
	}

	return s.write(data)
}

func (s *Store) acquireLock(lockType int) (*os.File, error) {
	dir := filepath.Dir(s.lockPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create lock directory: %w", err)
	}

	lock, err := os.OpenFile(s.lockPath, os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open lock file: %w", err)
	}

	if err := syscall.Flock(int(lock.Fd()), lockType); err != nil {
		_ = lock.Close()
		return nil, fmt.Errorf("acquire lock: %w", err)
	}

	return lock, nil
}

func (s *Store) releaseLock(lock *os.File) {
	_ = syscall.Flock(int(lock.Fd()), syscall.LOCK_UN)
	_ = lock.Close()
}

// read loads the file. A missing file is an empty outbox.
func (s *Store) read() (*storeData, error) {
	content, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return &storeData{}, nil
		}
		return nil, fmt.Errorf("read outbox: %w", err)
	}

	var data storeData
	if err := json.Unmarshal(content, &data); err != nil {
		return nil, fmt.Errorf("parse outbox: %w", err)
	}
	return &data, nil
}

func (s *Store) write(data *storeData) error {
	if data.Pending == nil {
		data.Pending = []domain.PendingClient{}
	}
	content, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal outbox: %w", err)
	}

	if err := atomic.WriteFile(s.path, bytes.NewReader(content)); err != nil {
		return fmt.Errorf("write outbox: %w", err)
	}
	return nil
}
