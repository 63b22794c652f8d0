// Package recstore keeps one entity type in a flat file of fixed-width
// records.
//
// A Store never holds a file handle between calls: every operation opens the
// file, seeks, reads or writes exactly the bytes it needs and closes it again.
// Records are only ever appended or rewritten in place, so the physical file
// order is the creation order and a record's byte offset never changes.
//
//	s, err := recstore.Open("items.dat", record.ChangeItem{}, recstore.Options{})
//	if err != nil {
//	    return err
//	}
//	defer s.Close()
//
//	off, err := s.Append(item)
//	got, off, err := s.Find(func(c models.ChangeItem) bool { return c.ID == 3 })
//
// # Errors
//
// Lookups that match nothing return ErrNotFound. Uniqueness checks done by
// callers report *DuplicateKeyError, which matches ErrDuplicateKey. A file that
// cannot be opened yields ErrUnavailable.
//
// A trailing record shorter than the record width (left by an interrupted
// append) is treated as end of data by every read, and the next Append
// overwrites it.
//
// The store assumes a single process owns the file. There is no locking.
package recstore
