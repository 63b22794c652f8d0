// Package release provides product release operations.
package release

import (
	"errors"
	"fmt"

	"github.com/zulandar/changetrack/internal/ident"
	"github.com/zulandar/changetrack/internal/models"
	"github.com/zulandar/changetrack/internal/recstore"
)

// Store is the release file.
type Store = recstore.Store[models.ProductRelease]

// Key is the natural key reported on duplicates.
func Key(productName, releaseID string) string {
	return fmt.Sprintf("Product: %s with the ProductRelease: %s", productName, releaseID)
}

func keyed(productName, releaseID string) func(models.ProductRelease) bool {
	return func(r models.ProductRelease) bool {
		return r.Product.Name == productName && r.ReleaseID == releaseID
	}
}

// Create appends a release of product. The product is embedded as a snapshot;
// the caller must have resolved it already.
func Create(s *Store, product models.Product, releaseID, date string) (*models.ProductRelease, error) {
	r := models.ProductRelease{Product: product, ReleaseID: releaseID, Date: date}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	if err := ident.EnsureUnique(s, Key(product.Name, releaseID), keyed(product.Name, releaseID)); err != nil {
		return nil, fmt.Errorf("release: create: %w", err)
	}
	if _, err := s.Append(r); err != nil {
		return nil, fmt.Errorf("release: create %s %s: %w", product.Name, releaseID, err)
	}
	return &r, nil
}

// Get retrieves the release of productName with the given release id.
func Get(s *Store, productName, releaseID string) (*models.ProductRelease, error) {
	r, _, err := s.Find(keyed(productName, releaseID))
	if err != nil {
		if errors.Is(err, recstore.ErrNotFound) {
			return nil, fmt.Errorf("release: %w: %s %s", recstore.ErrNotFound, productName, releaseID)
		}
		return nil, fmt.Errorf("release: get %s %s: %w", productName, releaseID, err)
	}
	return &r, nil
}

// Pages lists the releases of productName in creation order.
func Pages(s *Store, productName string, size int) (*recstore.Pager[models.ProductRelease], error) {
	return s.Pages(func(r models.ProductRelease) bool { return r.Product.Name == productName }, size)
}
