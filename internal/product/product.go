// Package product provides product operations over a record store.
package product

import (
	"errors"
	"fmt"

	"github.com/zulandar/changetrack/internal/ident"
	"github.com/zulandar/changetrack/internal/models"
	"github.com/zulandar/changetrack/internal/recstore"
)

// Store is the product file.
type Store = recstore.Store[models.Product]

// Key is the natural key reported on duplicates.
func Key(name string) string {
	return "Product: " + name
}

func named(name string) func(models.Product) bool {
	return func(p models.Product) bool { return p.Name == name }
}

// Create validates name, checks it is not taken and appends the product.
func Create(s *Store, name string) (*models.Product, error) {
	p := models.Product{Name: name}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := ident.EnsureUnique(s, Key(name), named(name)); err != nil {
		return nil, fmt.Errorf("product: create: %w", err)
	}
	if _, err := s.Append(p); err != nil {
		return nil, fmt.Errorf("product: create %s: %w", name, err)
	}
	return &p, nil
}

// Get retrieves a product by exact (case-sensitive) name.
func Get(s *Store, name string) (*models.Product, error) {
	p, _, err := s.Find(named(name))
	if err != nil {
		if errors.Is(err, recstore.ErrNotFound) {
			return nil, fmt.Errorf("product: %w: %s", recstore.ErrNotFound, name)
		}
		return nil, fmt.Errorf("product: get %s: %w", name, err)
	}
	return &p, nil
}

// At returns the product stored at position i (0-based, file order).
func At(s *Store, i int64) (*models.Product, error) {
	p, err := s.At(i)
	if err != nil {
		if errors.Is(err, recstore.ErrNotFound) {
			return nil, fmt.Errorf("product: %w: #%d", recstore.ErrNotFound, i+1)
		}
		return nil, fmt.Errorf("product: read #%d: %w", i+1, err)
	}
	return &p, nil
}

// Pages lists every product, size at a time.
func Pages(s *Store, size int) (*recstore.Pager[models.Product], error) {
	return s.Pages(nil, size)
}
