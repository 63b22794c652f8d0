// Package tracker opens the five record stores described by a Config and
// exposes the operations the command line and the interactive menu use.
package tracker

import (
	"errors"
	"fmt"
	"log"

	"github.com/zulandar/changetrack/internal/changeitem"
	"github.com/zulandar/changetrack/internal/changerequest"
	"github.com/zulandar/changetrack/internal/config"
	"github.com/zulandar/changetrack/internal/ident"
	"github.com/zulandar/changetrack/internal/models"
	"github.com/zulandar/changetrack/internal/product"
	"github.com/zulandar/changetrack/internal/record"
	"github.com/zulandar/changetrack/internal/recstore"
	"github.com/zulandar/changetrack/internal/release"
	"github.com/zulandar/changetrack/internal/requester"
)

// Tracker holds the open stores and the id sequences derived at startup.
type Tracker struct {
	cfg *config.Config

	Products   *product.Store
	Releases   *release.Store
	Requesters *requester.Store
	Requests   *changerequest.Store
	Items      *changeitem.Store

	requestSeq *ident.Sequence
	itemSeq    *ident.Sequence
}

// Open opens (creating if needed) every data file and seeds the id
// sequences from the last stored request and item.
func Open(cfg *config.Config) (*Tracker, error) {
	opts := recstore.Options{SyncWrites: cfg.SyncWrites}
	t := &Tracker{cfg: cfg}

	var err error
	if t.Products, err = recstore.Open(cfg.Path(cfg.Files.Products), record.Product{}, opts); err != nil {
		return nil, fmt.Errorf("tracker: %w", err)
	}
	if t.Releases, err = recstore.Open(cfg.Path(cfg.Files.Releases), record.Release{}, opts); err != nil {
		return nil, fmt.Errorf("tracker: %w", err)
	}
	if t.Requesters, err = recstore.Open(cfg.Path(cfg.Files.Requesters), record.Requester{}, opts); err != nil {
		return nil, fmt.Errorf("tracker: %w", err)
	}
	if t.Requests, err = recstore.Open(cfg.Path(cfg.Files.Requests), record.ChangeRequest{}, opts); err != nil {
		return nil, fmt.Errorf("tracker: %w", err)
	}
	if t.Items, err = recstore.Open(cfg.Path(cfg.Files.Items), record.ChangeItem{}, opts); err != nil {
		return nil, fmt.Errorf("tracker: %w", err)
	}

	if t.requestSeq, err = ident.NewSequence(t.Requests, changerequest.ID); err != nil {
		return nil, fmt.Errorf("tracker: %w", err)
	}
	if t.itemSeq, err = ident.NewSequence(t.Items, changeitem.ID); err != nil {
		return nil, fmt.Errorf("tracker: %w", err)
	}
	return t, nil
}

// Close closes every store. Errors are logged, not returned, so that all
// stores get closed.
func (t *Tracker) Close() {
	closers := []interface{ Close() error }{t.Products, t.Releases, t.Requesters, t.Requests, t.Items}
	for _, c := range closers {
		if err := c.Close(); err != nil {
			log.Printf("tracker: close: %v", err)
		}
	}
}

// Config returns the configuration the tracker was opened with.
func (t *Tracker) Config() *config.Config {
	return t.cfg
}

// NextRequestID is the id the next change request will get.
func (t *Tracker) NextRequestID() int32 { return t.requestSeq.Peek() }

// NextItemID is the id the next change item will get.
func (t *Tracker) NextItemID() int32 { return t.itemSeq.Peek() }

// --- Products ---

// CreateProduct adds a product with a unique name.
func (t *Tracker) CreateProduct(name string) (*models.Product, error) {
	return product.Create(t.Products, name)
}

// Product looks a product up by name.
func (t *Tracker) Product(name string) (*models.Product, error) {
	return product.Get(t.Products, name)
}

// ProductAt returns the i-th product (0-based) in creation order.
func (t *Tracker) ProductAt(i int64) (*models.Product, error) {
	return product.At(t.Products, i)
}

// ProductPages pages through all products using the configured page size.
func (t *Tracker) ProductPages() (*recstore.Pager[models.Product], error) {
	return product.Pages(t.Products, t.cfg.Paging.Products)
}

// --- Releases ---

// CreateRelease adds a release to an existing product.
func (t *Tracker) CreateRelease(productName, releaseID, date string) (*models.ProductRelease, error) {
	p, err := t.Product(productName)
	if err != nil {
		return nil, err
	}
	return release.Create(t.Releases, *p, releaseID, date)
}

// Release looks up the release of productName with id releaseID.
func (t *Tracker) Release(productName, releaseID string) (*models.ProductRelease, error) {
	return release.Get(t.Releases, productName, releaseID)
}

// ReleasePages pages through the releases of productName.
func (t *Tracker) ReleasePages(productName string, size int) (*recstore.Pager[models.ProductRelease], error) {
	return release.Pages(t.Releases, productName, size)
}

// --- Requesters ---

// CreateRequester adds a requester with a unique email.
func (t *Tracker) CreateRequester(opts requester.CreateOpts) (*models.Requester, error) {
	return requester.Create(t.Requesters, opts)
}

// Requester looks a requester up by email.
func (t *Tracker) Requester(email string) (*models.Requester, error) {
	return requester.Get(t.Requesters, email)
}

// RequesterAt returns the i-th requester (0-based) in creation order.
func (t *Tracker) RequesterAt(i int64) (*models.Requester, error) {
	return requester.At(t.Requesters, i)
}

// RequesterPages pages through all requesters using the configured page size.
func (t *Tracker) RequesterPages() (*recstore.Pager[models.Requester], error) {
	return requester.Pages(t.Requesters, t.cfg.Paging.Requesters)
}

// --- Change requests ---

// RequestOpts holds parameters for a new change request. The requester and
// product must already exist.
type RequestOpts struct {
	RequesterEmail string
	ProductName    string
	Date           string
}

// CreateChangeRequest records a change request. The requester name and the
// product are copied into the request as they are now.
func (t *Tracker) CreateChangeRequest(opts RequestOpts) (*models.ChangeRequest, error) {
	r, err := t.Requester(opts.RequesterEmail)
	if err != nil {
		return nil, err
	}
	p, err := t.Product(opts.ProductName)
	if err != nil {
		return nil, err
	}
	name := models.Clip(r.Name, models.MaxRequestedByLen)
	c, err := changerequest.New(t.requestSeq, name, *p, opts.Date)
	if err != nil {
		return nil, err
	}
	if err := changerequest.Create(t.Requests, c); err != nil {
		return nil, err
	}
	return &c, nil
}

// ChangeRequest looks a change request up by id.
func (t *Tracker) ChangeRequest(id int32) (*models.ChangeRequest, error) {
	return changerequest.Get(t.Requests, id)
}

// ChangeRequestPages pages through the requests against productName.
func (t *Tracker) ChangeRequestPages(productName string, size int) (*recstore.Pager[models.ChangeRequest], error) {
	return changerequest.Pages(t.Requests, productName, size)
}

// --- Change items ---

// ItemOpts holds parameters for a new change item. ReleaseID is optional; when
// set it must name an existing release of the product.
type ItemOpts struct {
	ProductName string
	Description string
	State       models.State
	Priority    int32
	Reported    string
	ReleaseID   string
}

// CreateChangeItem records a change item against an existing product.
func (t *Tracker) CreateChangeItem(opts ItemOpts) (*models.ChangeItem, error) {
	p, err := t.Product(opts.ProductName)
	if err != nil {
		return nil, err
	}
	co := changeitem.CreateOpts{
		Product:     *p,
		Description: opts.Description,
		State:       opts.State,
		Priority:    opts.Priority,
		Reported:    opts.Reported,
	}
	if opts.ReleaseID != "" {
		if err := models.ValidateReleaseID(opts.ReleaseID); err != nil {
			return nil, err
		}
		r, err := t.Release(p.Name, opts.ReleaseID)
		if err != nil {
			return nil, err
		}
		co.Release = *r
	}
	c, err := changeitem.New(t.itemSeq, co)
	if err != nil {
		return nil, err
	}
	if err := changeitem.Create(t.Items, c); err != nil {
		return nil, err
	}
	return &c, nil
}

// ChangeItem looks a change item up by id.
func (t *Tracker) ChangeItem(id int32) (*models.ChangeItem, error) {
	return changeitem.Get(t.Items, id)
}

// ChangeItemPages pages through the items of productName using the configured
// page size.
func (t *Tracker) ChangeItemPages(productName string) (*recstore.Pager[models.ChangeItem], error) {
	return changeitem.Pages(t.Items, productName, t.cfg.Paging.ChangeItems)
}

// UpdateStatus changes the state of item id.
func (t *Tracker) UpdateStatus(id int32, state models.State) (*models.ChangeItem, error) {
	return changeitem.UpdateStatus(t.Items, id, state)
}

// UpdatePriority changes the priority of item id.
func (t *Tracker) UpdatePriority(id int32, priority int32) (*models.ChangeItem, error) {
	return changeitem.UpdatePriority(t.Items, id, priority)
}

// Outstanding lists the open items of productName, highest priority first.
func (t *Tracker) Outstanding(productName string) ([]models.ChangeItem, error) {
	if productName != "" {
		if _, err := t.Product(productName); err != nil {
			return nil, err
		}
	}
	return changeitem.Outstanding(t.Items, productName)
}

// IsNotFound reports whether err is a failed key lookup.
func IsNotFound(err error) bool {
	return errors.Is(err, recstore.ErrNotFound)
}

// IsDuplicate reports whether err is a rejected duplicate key.
func IsDuplicate(err error) bool {
	return errors.Is(err, recstore.ErrDuplicateKey)
}

// IsInvalid reports whether err is a rejected field value.
func IsInvalid(err error) bool {
	return errors.Is(err, models.ErrInvalid)
}
