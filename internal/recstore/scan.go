package recstore

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"iter"
	"os"
)

// Entry is a record together with its byte offset in the file.
type Entry[T any] struct {
	Offset int64
	Rec    T
}

// Index returns the position of the entry in the file, counting from 0.
func (e Entry[T]) Index(width int64) int64 {
	return e.Offset / width
}

// Scan returns an iterator over records starting at byte offset from, in file
// order. Each range over the iterator opens the file anew and reads it once.
// A trailing partial record ends the iteration without error.
// Call the returned error function after iteration to check for read or
// decode errors.
func (s *Store[T]) Scan(from int64) (iter.Seq[Entry[T]], func() error) {
	var iterErr error

	seq := func(yield func(Entry[T]) bool) {
		iterErr = nil
		f, err := s.open(os.O_RDONLY)
		if err != nil {
			iterErr = err
			return
		}
		defer f.Close()

		if _, err := f.Seek(from, io.SeekStart); err != nil {
			iterErr = fmt.Errorf("recstore: scan %s: seek to %d: %w", s.path, from, err)
			return
		}
		reader := bufio.NewReader(f)
		buf := make([]byte, s.width)
		off := from
		for {
			_, err := io.ReadFull(reader, buf)
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				return
			}
			if err != nil {
				iterErr = fmt.Errorf("recstore: scan %s at %d: %w", s.path, off, err)
				return
			}
			rec, err := s.codec.Decode(buf)
			if err != nil {
				iterErr = fmt.Errorf("recstore: scan %s at %d: %w", s.path, off, err)
				return
			}
			if !yield(Entry[T]{Offset: off, Rec: rec}) {
				return
			}
			off += s.width
		}
	}

	return seq, func() error { return iterErr }
}

// All returns every record in file order.
func (s *Store[T]) All() ([]T, error) {
	var res []T
	records, errFn := s.Scan(0)
	for e := range records {
		res = append(res, e.Rec)
	}
	if err := errFn(); err != nil {
		return nil, err
	}
	return res, nil
}

// Find returns the first record for which match returns true, and its offset.
func (s *Store[T]) Find(match func(T) bool) (T, int64, error) {
	records, errFn := s.Scan(0)
	for e := range records {
		if match(e.Rec) {
			return e.Rec, e.Offset, nil
		}
	}
	var zero T
	if err := errFn(); err != nil {
		return zero, 0, err
	}
	return zero, 0, fmt.Errorf("recstore: %s: %w", s.path, ErrNotFound)
}

// Exists reports whether any record matches.
func (s *Store[T]) Exists(match func(T) bool) (bool, error) {
	_, _, err := s.Find(match)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

// readAt reads the record at byte offset off.
func (s *Store[T]) readAt(off int64) (T, error) {
	var zero T
	f, err := s.open(os.O_RDONLY)
	if err != nil {
		return zero, err
	}
	defer f.Close()

	buf := make([]byte, s.width)
	n, err := f.ReadAt(buf, off)
	if err != nil {
		if err == io.EOF {
			return zero, fmt.Errorf("recstore: %s: read %d bytes at %d, want %d: %w", s.path, n, off, s.width, ErrNotFound)
		}
		return zero, fmt.Errorf("recstore: read %s at %d: %w", s.path, off, err)
	}
	return s.codec.Decode(buf)
}

// At returns record number index (0-based) by seeking directly to it.
func (s *Store[T]) At(index int64) (T, error) {
	if index < 0 {
		var zero T
		return zero, fmt.Errorf("recstore: %s: index %d: %w", s.path, index, ErrNotFound)
	}
	return s.readAt(index * s.width)
}

// Last returns the last complete record. A partial trailing record is
// ignored, as in Scan. ok is false when the file holds no complete record.
func (s *Store[T]) Last() (rec T, ok bool, err error) {
	n, err := s.Count()
	if err != nil {
		return rec, false, err
	}
	if n == 0 {
		return rec, false, nil
	}
	rec, err = s.readAt((n - 1) * s.width)
	if err != nil {
		return rec, false, err
	}
	return rec, true, nil
}
