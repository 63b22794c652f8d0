package recstore

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

var (
	ErrUnavailable     = errors.New("store unavailable")
	ErrNotFound        = errors.New("record not found")
	ErrDuplicateKey    = errors.New("duplicate key")
	ErrIncompleteWrite = errors.New("incomplete write")
	ErrClosed          = errors.New("store closed")
)

// DuplicateKeyError names the natural key that already exists.
type DuplicateKeyError struct {
	Key string
}

func (e *DuplicateKeyError) Error() string {
	return e.Key + " already exists"
}

func (e *DuplicateKeyError) Is(target error) bool {
	return target == ErrDuplicateKey
}

// Codec converts between a record value and exactly Width() bytes.
type Codec[T any] interface {
	Width() int
	Encode(rec T) ([]byte, error)
	Decode(b []byte) (T, error)
}

// Options tune a Store.
type Options struct {
	// if true, fsync after every append and update
	SyncWrites bool
}

// Store is the file of one entity type.
type Store[T any] struct {
	path   string
	codec  Codec[T]
	width  int64
	opts   Options
	closed bool
}

// Open returns a Store for path, creating the file (and its directory) if it
// does not exist yet.
func Open[T any](path string, codec Codec[T], opts Options) (*Store[T], error) {
	if codec.Width() <= 0 {
		return nil, fmt.Errorf("recstore: open %s: invalid record width %d", path, codec.Width())
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("recstore: open %s: %w: %w", path, ErrUnavailable, err)
		}
	}
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		return nil, fmt.Errorf("recstore: open %s: %w: %w", path, ErrUnavailable, err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("recstore: open %s: %w: %w", path, ErrUnavailable, err)
	}
	return &Store[T]{
		path:  path,
		codec: codec,
		width: int64(codec.Width()),
		opts:  opts,
	}, nil
}

// Path returns the file backing the store.
func (s *Store[T]) Path() string {
	return s.path
}

// Width returns the record width in bytes.
func (s *Store[T]) Width() int64 {
	return s.width
}

// Close marks the store closed. It's safe to call more than once.
func (s *Store[T]) Close() error {
	if s == nil {
		return nil
	}
	s.closed = true
	return nil
}

func (s *Store[T]) open(flag int) (*os.File, error) {
	if s.closed {
		return nil, fmt.Errorf("recstore: %s: %w", s.path, ErrClosed)
	}
	f, err := os.OpenFile(s.path, flag, 0644)
	if err != nil {
		return nil, fmt.Errorf("recstore: %s: %w: %w", s.path, ErrUnavailable, err)
	}
	return f, nil
}

// Size returns the file length in bytes.
func (s *Store[T]) Size() (int64, error) {
	if s.closed {
		return 0, fmt.Errorf("recstore: %s: %w", s.path, ErrClosed)
	}
	st, err := os.Stat(s.path)
	if err != nil {
		return 0, fmt.Errorf("recstore: %s: %w: %w", s.path, ErrUnavailable, err)
	}
	return st.Size(), nil
}

// Count returns the number of complete records in the file.
func (s *Store[T]) Count() (int64, error) {
	size, err := s.Size()
	if err != nil {
		return 0, err
	}
	return size / s.width, nil
}

// Append writes rec after the last complete record and returns its offset.
// A partial record left by an interrupted append is overwritten, so records
// stay aligned to the width and the file never shrinks.
func (s *Store[T]) Append(rec T) (int64, error) {
	data, err := s.encode(rec)
	if err != nil {
		return 0, err
	}
	f, err := s.open(os.O_RDWR)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	size, err := f.Seek(0, io.SeekEnd)
	if err != nil {
		return 0, fmt.Errorf("recstore: append %s: %w", s.path, err)
	}
	off := size - size%s.width
	if err := s.write(f, data, off); err != nil {
		return 0, fmt.Errorf("recstore: append %s: %w", s.path, err)
	}
	return off, f.Close()
}

func (s *Store[T]) encode(rec T) ([]byte, error) {
	data, err := s.codec.Encode(rec)
	if err != nil {
		return nil, err
	}
	if int64(len(data)) != s.width {
		return nil, fmt.Errorf("recstore: %s: codec produced %d bytes, want %d", s.path, len(data), s.width)
	}
	return data, nil
}

// write writes data at off.
func (s *Store[T]) write(f *os.File, data []byte, off int64) error {
	n, err := f.WriteAt(data, off)
	if n < len(data) {
		if err == nil {
			err = io.ErrShortWrite
		}
		return fmt.Errorf("wrote %d of %d bytes: %w: %w", n, len(data), ErrIncompleteWrite, err)
	}
	if err != nil {
		return err
	}
	if s.opts.SyncWrites {
		return f.Sync()
	}
	return nil
}
