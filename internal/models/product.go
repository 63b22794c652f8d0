package models

// MaxProductNameLen is the longest product name that fits a record.
const MaxProductNameLen = 10

// Product is identified by its name (case-sensitive).
type Product struct {
	Name string
}

// Validate checks the product name.
func (p Product) Validate() error {
	if err := validateText("product name", p.Name, MaxProductNameLen, true); err != nil {
		return err
	}
	for i := 0; i < len(p.Name); i++ {
		if p.Name[i] == ' ' {
			return invalid("product name", "%q contains spaces", p.Name)
		}
	}
	return nil
}
