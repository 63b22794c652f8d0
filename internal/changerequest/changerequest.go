// Package changerequest provides change request operations.
package changerequest

import (
	"errors"
	"fmt"

	"github.com/zulandar/changetrack/internal/ident"
	"github.com/zulandar/changetrack/internal/models"
	"github.com/zulandar/changetrack/internal/recstore"
)

// Store is the change request file.
type Store = recstore.Store[models.ChangeRequest]

// ID extracts the id of a change request, for ident.NewSequence.
func ID(c models.ChangeRequest) int32 { return c.ID }

// New validates the fields and assigns the next id from seq. Invalid input
// does not consume an id. The request is not persisted until Create.
func New(seq *ident.Sequence, requestedBy string, product models.Product, date string) (models.ChangeRequest, error) {
	c := models.ChangeRequest{RequestedBy: requestedBy, Product: product, Date: date}
	if err := c.Validate(); err != nil {
		return models.ChangeRequest{}, err
	}
	c.ID = seq.Next()
	return c, nil
}

// Create appends c.
func Create(s *Store, c models.ChangeRequest) error {
	if _, err := s.Append(c); err != nil {
		return fmt.Errorf("changerequest: create %d: %w", c.ID, err)
	}
	return nil
}

// Get retrieves a change request by id.
func Get(s *Store, id int32) (*models.ChangeRequest, error) {
	c, _, err := s.Find(func(c models.ChangeRequest) bool { return c.ID == id })
	if err != nil {
		if errors.Is(err, recstore.ErrNotFound) {
			return nil, fmt.Errorf("changerequest: %w: %d", recstore.ErrNotFound, id)
		}
		return nil, fmt.Errorf("changerequest: get %d: %w", id, err)
	}
	return &c, nil
}

// Pages lists the requests against productName. An empty name lists all.
func Pages(s *Store, productName string, size int) (*recstore.Pager[models.ChangeRequest], error) {
	if productName == "" {
		return s.Pages(nil, size)
	}
	return s.Pages(func(c models.ChangeRequest) bool { return c.Product.Name == productName }, size)
}
