package recstore

import (
	"fmt"
	"os"
)

// Update finds the first record for which match returns true, applies mutate
// to a copy of it and writes the result back over the same bytes. The file
// length and every other record are left untouched.
func (s *Store[T]) Update(match func(T) bool, mutate func(*T) error) (T, error) {
	var zero T
	rec, off, err := s.Find(match)
	if err != nil {
		return zero, err
	}
	if err := mutate(&rec); err != nil {
		return zero, err
	}
	data, err := s.encode(rec)
	if err != nil {
		return zero, err
	}

	f, err := s.open(os.O_RDWR)
	if err != nil {
		return zero, err
	}
	defer f.Close()
	if err := s.write(f, data, off); err != nil {
		return zero, fmt.Errorf("recstore: update %s at %d: %w", s.path, off, err)
	}
	if err := f.Close(); err != nil {
		return zero, fmt.Errorf("recstore: update %s: %w", s.path, err)
	}
	return rec, nil
}
