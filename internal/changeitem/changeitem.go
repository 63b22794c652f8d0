// Package changeitem provides change item lifecycle operations.
package changeitem

import (
	"errors"
	"fmt"
	"sort"

	"github.com/zulandar/changetrack/internal/ident"
	"github.com/zulandar/changetrack/internal/models"
	"github.com/zulandar/changetrack/internal/recstore"
)

// Store is the change item file.
type Store = recstore.Store[models.ChangeItem]

// CreateOpts holds parameters for creating a change item.
type CreateOpts struct {
	Product     models.Product
	Description string
	State       models.State
	Priority    int32 // 1=lowest → 5=highest
	Reported    string
	Release     models.ProductRelease // zero when no release is anticipated yet
}

// ID extracts the id of a change item, for ident.NewSequence.
func ID(c models.ChangeItem) int32 { return c.ID }

// New validates opts and assigns the next id from seq. Invalid input does not
// consume an id.
func New(seq *ident.Sequence, opts CreateOpts) (models.ChangeItem, error) {
	c := models.ChangeItem{
		Product:     opts.Product,
		Description: opts.Description,
		State:       opts.State,
		Priority:    opts.Priority,
		Reported:    opts.Reported,
		Release:     opts.Release,
	}
	if err := c.Validate(); err != nil {
		return models.ChangeItem{}, err
	}
	c.ID = seq.Next()
	return c, nil
}

// Create appends c.
func Create(s *Store, c models.ChangeItem) error {
	if _, err := s.Append(c); err != nil {
		return fmt.Errorf("changeitem: create %d: %w", c.ID, err)
	}
	return nil
}

func byID(id int32) func(models.ChangeItem) bool {
	return func(c models.ChangeItem) bool { return c.ID == id }
}

func notFound(id int32, op string, err error) error {
	if errors.Is(err, recstore.ErrNotFound) {
		return fmt.Errorf("changeitem: %w: %d", recstore.ErrNotFound, id)
	}
	return fmt.Errorf("changeitem: %s %d: %w", op, id, err)
}

// Get retrieves a change item by id.
func Get(s *Store, id int32) (*models.ChangeItem, error) {
	c, _, err := s.Find(byID(id))
	if err != nil {
		return nil, notFound(id, "get", err)
	}
	return &c, nil
}

// Pages lists the items of productName in creation order. An empty name
// lists all items.
func Pages(s *Store, productName string, size int) (*recstore.Pager[models.ChangeItem], error) {
	if productName == "" {
		return s.Pages(nil, size)
	}
	return s.Pages(func(c models.ChangeItem) bool { return c.Product.Name == productName }, size)
}

// UpdateStatus rewrites the state of item id in place.
func UpdateStatus(s *Store, id int32, state models.State) (*models.ChangeItem, error) {
	if !state.Valid() {
		return nil, &models.ValidationError{Field: "state", Reason: fmt.Sprintf("%d is not a known state", int32(state))}
	}
	c, err := s.Update(byID(id), func(c *models.ChangeItem) error {
		c.State = state
		return nil
	})
	if err != nil {
		return nil, notFound(id, "update status", err)
	}
	return &c, nil
}

// UpdatePriority rewrites the priority of item id in place.
func UpdatePriority(s *Store, id int32, priority int32) (*models.ChangeItem, error) {
	if err := models.ValidatePriority(priority); err != nil {
		return nil, err
	}
	c, err := s.Update(byID(id), func(c *models.ChangeItem) error {
		c.Priority = priority
		return nil
	})
	if err != nil {
		return nil, notFound(id, "update priority", err)
	}
	return &c, nil
}

// Outstanding returns the items of productName that are neither done nor
// cancelled, highest priority first, then by id. An empty name covers all
// products.
func Outstanding(s *Store, productName string) ([]models.ChangeItem, error) {
	var res []models.ChangeItem
	records, errFn := s.Scan(0)
	for e := range records {
		c := e.Rec
		if c.State.Closed() {
			continue
		}
		if productName != "" && c.Product.Name != productName {
			continue
		}
		res = append(res, c)
	}
	if err := errFn(); err != nil {
		return nil, fmt.Errorf("changeitem: outstanding: %w", err)
	}
	sort.SliceStable(res, func(i, j int) bool {
		if res[i].Priority != res[j].Priority {
			return res[i].Priority > res[j].Priority
		}
		return res[i].ID < res[j].ID
	})
	return res, nil
}
