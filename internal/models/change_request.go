package models

// MaxRequestedByLen bounds the requester name copied into a change request.
const MaxRequestedByLen = 29

// ChangeRequest records that a requester asked for a change to a product.
type ChangeRequest struct {
	ID          int32
	RequestedBy string
	Product     Product
	Date        string
}

// Validate checks the fields supplied by the caller. ID is assigned by the
// store and is not checked.
func (c ChangeRequest) Validate() error {
	if err := validateText("requester name", c.RequestedBy, MaxRequestedByLen, true); err != nil {
		return err
	}
	if err := c.Product.Validate(); err != nil {
		return err
	}
	return ValidateDate("date", c.Date)
}
