package models

// Requester field bounds.
const (
	MaxRequesterNameLen = 30
	MaxPhoneLen         = 11
	MaxEmailLen         = 24
	MaxDepartmentLen    = 12
)

// Requester is a person who submits change requests, keyed by email.
type Requester struct {
	Name       string
	Phone      string
	Email      string
	Department string
}

// Validate checks every requester field. Department may be empty for
// requesters who are not employees.
func (r Requester) Validate() error {
	if err := validateText("email", r.Email, MaxEmailLen, true); err != nil {
		return err
	}
	if err := validateText("name", r.Name, MaxRequesterNameLen, true); err != nil {
		return err
	}
	if err := validateText("phone", r.Phone, MaxPhoneLen, true); err != nil {
		return err
	}
	if !digitsPattern.MatchString(r.Phone) {
		return invalid("phone", "%q must contain digits only", r.Phone)
	}
	return validateText("department", r.Department, MaxDepartmentLen, false)
}
