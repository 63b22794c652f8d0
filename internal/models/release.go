package models

// Field bounds for releases and dates.
const (
	MaxReleaseIDLen = 7  // D.D.D.D
	MaxDateLen      = 10 // YYYY-MM-DD
)

// ProductRelease is a planned or shipped release of a product. It embeds a
// snapshot of the product rather than referring to it.
type ProductRelease struct {
	Product   Product
	ReleaseID string
	Date      string
}

// IsZero reports whether r is the empty release block.
func (r ProductRelease) IsZero() bool {
	return r == ProductRelease{}
}

// Validate checks every field of the release.
func (r ProductRelease) Validate() error {
	if err := r.Product.Validate(); err != nil {
		return err
	}
	if err := ValidateReleaseID(r.ReleaseID); err != nil {
		return err
	}
	return ValidateDate("release date", r.Date)
}
