// Package requester provides requester operations.
package requester

import (
	"errors"
	"fmt"

	"github.com/zulandar/changetrack/internal/ident"
	"github.com/zulandar/changetrack/internal/models"
	"github.com/zulandar/changetrack/internal/recstore"
)

// Store is the requester file.
type Store = recstore.Store[models.Requester]

// CreateOpts holds parameters for creating a requester.
type CreateOpts struct {
	Name       string
	Phone      string // digits only
	Email      string
	Department string // empty for non-employees
}

// Key is the natural key reported on duplicates.
func Key(email string) string {
	return "Requester: " + email
}

func byEmail(email string) func(models.Requester) bool {
	return func(r models.Requester) bool { return r.Email == email }
}

// Create appends a new requester. Emails are unique.
func Create(s *Store, opts CreateOpts) (*models.Requester, error) {
	r := models.Requester{
		Name:       opts.Name,
		Phone:      opts.Phone,
		Email:      opts.Email,
		Department: opts.Department,
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	if err := ident.EnsureUnique(s, Key(r.Email), byEmail(r.Email)); err != nil {
		return nil, fmt.Errorf("requester: create: %w", err)
	}
	if _, err := s.Append(r); err != nil {
		return nil, fmt.Errorf("requester: create %s: %w", r.Email, err)
	}
	return &r, nil
}

// Get retrieves a requester by email.
func Get(s *Store, email string) (*models.Requester, error) {
	r, _, err := s.Find(byEmail(email))
	if err != nil {
		if errors.Is(err, recstore.ErrNotFound) {
			return nil, fmt.Errorf("requester: %w: %s", recstore.ErrNotFound, email)
		}
		return nil, fmt.Errorf("requester: get %s: %w", email, err)
	}
	return &r, nil
}

// At returns the requester stored at position i (0-based).
func At(s *Store, i int64) (*models.Requester, error) {
	r, err := s.At(i)
	if err != nil {
		if errors.Is(err, recstore.ErrNotFound) {
			return nil, fmt.Errorf("requester: %w: #%d", recstore.ErrNotFound, i+1)
		}
		return nil, fmt.Errorf("requester: read #%d: %w", i+1, err)
	}
	return &r, nil
}

// Pages lists all requesters in creation order.
func Pages(s *Store, size int) (*recstore.Pager[models.Requester], error) {
	return s.Pages(nil, size)
}
