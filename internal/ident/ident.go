// Package ident assigns synthetic ids and enforces natural-key uniqueness
// on top of a recstore.Store.
package ident

import (
	"fmt"

	"github.com/zulandar/changetrack/internal/recstore"
)

// Sequence hands out monotonically increasing ids. It is seeded once from the
// last complete record of a store and then held in memory; later appends by
// other processes are not observed.
type Sequence struct {
	next int32
}

// NewSequence seeds a sequence from the last record of s. An empty store (or
// one shorter than a single record) starts at 0.
func NewSequence[T any](s *recstore.Store[T], idOf func(T) int32) (*Sequence, error) {
	last, ok, err := s.Last()
	if err != nil {
		return nil, fmt.Errorf("ident: seed sequence from %s: %w", s.Path(), err)
	}
	if !ok {
		return &Sequence{}, nil
	}
	return &Sequence{next: idOf(last) + 1}, nil
}

// Peek returns the id the next call to Next will hand out.
func (q *Sequence) Peek() int32 {
	return q.next
}

// Next returns the next id and advances the sequence. Ids are never reused.
func (q *Sequence) Next() int32 {
	id := q.next
	q.next++
	return id
}

// EnsureUnique scans all of s and returns a *recstore.DuplicateKeyError for
// key if any record conflicts.
func EnsureUnique[T any](s *recstore.Store[T], key string, conflicts func(T) bool) error {
	exists, err := s.Exists(conflicts)
	if err != nil {
		return fmt.Errorf("ident: check %s: %w", key, err)
	}
	if exists {
		return &recstore.DuplicateKeyError{Key: key}
	}
	return nil
}
