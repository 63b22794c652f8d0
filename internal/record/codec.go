package record

import "github.com/zulandar/changetrack/internal/models"

// Field widths on disk. Each string field is one byte wider than the longest
// value it accepts: product name 11, release id 8, date 11, requester name 31,
// phone 12, email 25, department 13, requested-by 30, description 150.
const (
	ProductNameSize   = models.MaxProductNameLen + 1
	ReleaseIDSize     = models.MaxReleaseIDLen + 1
	DateSize          = models.MaxDateLen + 1
	RequesterNameSize = models.MaxRequesterNameLen + 1
	PhoneSize         = models.MaxPhoneLen + 1
	EmailSize         = models.MaxEmailLen + 1
	DepartmentSize    = models.MaxDepartmentLen + 1
	RequestedBySize   = models.MaxRequestedByLen + 1
	DescriptionSize   = models.MaxDescriptionLen + 1
)

// Record widths: product 11, release 30, requester 81, change request 56,
// change item 214.
const (
	ProductWidth       = ProductNameSize
	ReleaseWidth       = ProductWidth + ReleaseIDSize + DateSize
	RequesterWidth     = RequesterNameSize + PhoneSize + EmailSize + DepartmentSize
	ChangeRequestWidth = intSize + RequestedBySize + ProductWidth + DateSize
	ChangeItemWidth    = intSize + ProductWidth + DescriptionSize + DateSize + ReleaseWidth + 2*intSize
)

// Product encodes a product as name[11].
type Product struct{}

func (Product) Width() int { return ProductWidth }

func (Product) Encode(p models.Product) ([]byte, error) {
	e := newEncoder(ProductWidth)
	e.str("product name", p.Name, ProductNameSize)
	return e.bytes()
}

func (Product) Decode(b []byte) (models.Product, error) {
	d, err := newDecoder("product", b, ProductWidth)
	if err != nil {
		return models.Product{}, err
	}
	return models.Product{Name: d.str(ProductNameSize)}, nil
}

// Release encodes a release as Product[11] releaseId[8] date[11].
type Release struct{}

func (Release) Width() int { return ReleaseWidth }

func (Release) Encode(r models.ProductRelease) ([]byte, error) {
	e := newEncoder(ReleaseWidth)
	e.block(Product{}.Encode(r.Product))
	e.str("release id", r.ReleaseID, ReleaseIDSize)
	e.str("release date", r.Date, DateSize)
	return e.bytes()
}

func (Release) Decode(b []byte) (models.ProductRelease, error) {
	d, err := newDecoder("release", b, ReleaseWidth)
	if err != nil {
		return models.ProductRelease{}, err
	}
	p, err := Product{}.Decode(d.block(ProductWidth))
	if err != nil {
		return models.ProductRelease{}, err
	}
	return models.ProductRelease{
		Product:   p,
		ReleaseID: d.str(ReleaseIDSize),
		Date:      d.str(DateSize),
	}, nil
}

// Requester encodes a requester as name[31] phone[12] email[25] dept[13].
type Requester struct{}

func (Requester) Width() int { return RequesterWidth }

func (Requester) Encode(r models.Requester) ([]byte, error) {
	e := newEncoder(RequesterWidth)
	e.str("name", r.Name, RequesterNameSize)
	e.str("phone", r.Phone, PhoneSize)
	e.str("email", r.Email, EmailSize)
	e.str("department", r.Department, DepartmentSize)
	return e.bytes()
}

func (Requester) Decode(b []byte) (models.Requester, error) {
	d, err := newDecoder("requester", b, RequesterWidth)
	if err != nil {
		return models.Requester{}, err
	}
	return models.Requester{
		Name:       d.str(RequesterNameSize),
		Phone:      d.str(PhoneSize),
		Email:      d.str(EmailSize),
		Department: d.str(DepartmentSize),
	}, nil
}

// ChangeRequest encodes a request as id[4] requestedBy[30] Product[11] date[11].
type ChangeRequest struct{}

func (ChangeRequest) Width() int { return ChangeRequestWidth }

func (ChangeRequest) Encode(c models.ChangeRequest) ([]byte, error) {
	e := newEncoder(ChangeRequestWidth)
	e.int32(c.ID)
	e.str("requester name", c.RequestedBy, RequestedBySize)
	e.block(Product{}.Encode(c.Product))
	e.str("date", c.Date, DateSize)
	return e.bytes()
}

func (ChangeRequest) Decode(b []byte) (models.ChangeRequest, error) {
	d, err := newDecoder("change request", b, ChangeRequestWidth)
	if err != nil {
		return models.ChangeRequest{}, err
	}
	var c models.ChangeRequest
	c.ID = d.int32()
	c.RequestedBy = d.str(RequestedBySize)
	if c.Product, err = (Product{}).Decode(d.block(ProductWidth)); err != nil {
		return models.ChangeRequest{}, err
	}
	c.Date = d.str(DateSize)
	return c, nil
}

// ChangeItem encodes an item as id[4] Product[11] description[150] date[11]
// ProductRelease[30] priority[4] state[4].
type ChangeItem struct{}

func (ChangeItem) Width() int { return ChangeItemWidth }

func (ChangeItem) Encode(c models.ChangeItem) ([]byte, error) {
	e := newEncoder(ChangeItemWidth)
	e.int32(c.ID)
	e.block(Product{}.Encode(c.Product))
	e.str("description", c.Description, DescriptionSize)
	e.str("reported date", c.Reported, DateSize)
	e.block(Release{}.Encode(c.Release))
	e.int32(c.Priority)
	e.int32(int32(c.State))
	return e.bytes()
}

func (ChangeItem) Decode(b []byte) (models.ChangeItem, error) {
	d, err := newDecoder("change item", b, ChangeItemWidth)
	if err != nil {
		return models.ChangeItem{}, err
	}
	var c models.ChangeItem
	c.ID = d.int32()
	if c.Product, err = (Product{}).Decode(d.block(ProductWidth)); err != nil {
		return models.ChangeItem{}, err
	}
	c.Description = d.str(DescriptionSize)
	c.Reported = d.str(DateSize)
	if c.Release, err = (Release{}).Decode(d.block(ReleaseWidth)); err != nil {
		return models.ChangeItem{}, err
	}
	c.Priority = d.int32()
	c.State = models.State(d.int32())
	return c, nil
}
