// Package storage keeps finished tailor results (edited documents and
// feedback) so clients can download them after the job completes.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
)

// ErrNotFound means no object exists under the key.
var ErrNotFound = errors.New("object not found")

// Object is a stored blob and its content type.
type Object struct {
	Data        []byte
	ContentType string
}

// Store saves and loads result objects by key.
type Store interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
	Get(ctx context.Context, key string) (Object, error)
}

// ValidateKey rejects keys that are empty, absolute or climb directories.
func ValidateKey(key string) error {
	switch {
	case key == "":
		return errors.New("empty key")
	case strings.HasPrefix(key, "/"):
		return fmt.Errorf("key %q must be relative", key)
	case strings.Contains(key, ".."):
		return fmt.Errorf("key %q must not contain ..", key)
	}
	return nil
}

type memoryEntry struct {
	obj     Object
	expires time.Time
}

// MemoryStore is an in-process Store. Entries expire after ttl when ttl is
// positive.
type MemoryStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	objects map[string]memoryEntry
	now     func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:     ttl,
		objects: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (s *MemoryStore) Put(_ context.Context, key string, data []byte, contentType string) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	e := memoryEntry{obj: Object{Data: append([]byte(nil), data...), ContentType: contentType}}
	if s.ttl > 0 {
		e.expires = s.now().Add(s.ttl)
	}
	s.objects[key] = e
	return nil
}

func (s *MemoryStore) Get(_ context.Context, key string) (Object, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.objects[key]
	if !ok {
		return Object{}, fmt.Errorf("%s: %w", key, ErrNotFound)
	}
	if !e.expires.IsZero() && s.now().After(e.expires) {
		delete(s.objects, key)
		return Object{}, fmt.Errorf("%s: %w", key, ErrNotFound)
	}
	return e.obj, nil
}

// Cleanup drops expired entries.
func (s *MemoryStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	for k, e := range s.objects {
		if !e.expires.IsZero() && now.After(e.expires) {
			delete(s.objects, k)
		}
	}
}
