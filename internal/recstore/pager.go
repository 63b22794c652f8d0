package recstore

import "fmt"

// Page is one batch of matches from a Pager.
type Page[T any] struct {
	Entries []Entry[T]
	// HasMore is true when at least one more match follows this page
	HasMore bool
}

// Records returns just the records of the page.
func (p Page[T]) Records() []T {
	res := make([]T, len(p.Entries))
	for i, e := range p.Entries {
		res[i] = e.Rec
	}
	return res
}

// Pager lists matching records a page at a time. Each call to Next resumes at
// the offset where the previous page stopped instead of rescanning from the
// start. To start over, create a new Pager.
type Pager[T any] struct {
	store *Store[T]
	match func(T) bool
	size  int
	next  int64
	done  bool
}

// Pages returns a Pager over records for which match returns true. A nil
// match selects every record.
func (s *Store[T]) Pages(match func(T) bool, pageSize int) (*Pager[T], error) {
	if pageSize <= 0 {
		return nil, fmt.Errorf("recstore: %s: page size must be positive, got %d", s.path, pageSize)
	}
	if match == nil {
		match = func(T) bool { return true }
	}
	return &Pager[T]{store: s, match: match, size: pageSize}, nil
}

// Done reports whether the last page has been returned.
func (p *Pager[T]) Done() bool {
	return p.done
}

// Next returns the next page. After the last page it returns an empty page
// with HasMore false.
func (p *Pager[T]) Next() (Page[T], error) {
	var page Page[T]
	if p.done {
		return page, nil
	}

	records, errFn := p.store.Scan(p.next)
	for e := range records {
		if !p.match(e.Rec) {
			continue
		}
		if len(page.Entries) == p.size {
			// one match past a full page: remember where to resume
			page.HasMore = true
			p.next = e.Offset
			break
		}
		page.Entries = append(page.Entries, e)
	}
	if err := errFn(); err != nil {
		return Page[T]{}, err
	}
	if !page.HasMore {
		p.done = true
	}
	return page, nil
}
