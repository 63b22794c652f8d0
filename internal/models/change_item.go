package models

import (
	"fmt"
	"strings"
)

// ChangeItem bounds.
const (
	MaxDescriptionLen = 149
	MinPriority       = 1
	MaxPriority       = 5
)

// State is the lifecycle state of a change item.
type State int32

const (
	Assessed State = iota
	InProgress
	Done
	Cancelled
)

var stateNames = [...]string{"ASSESSED", "INPROGRESS", "DONE", "CANCELLED"}

func (s State) String() string {
	if s.Valid() {
		return stateNames[s]
	}
	return fmt.Sprintf("State(%d)", int32(s))
}

// Valid reports whether s is one of the four defined states.
func (s State) Valid() bool {
	return s >= Assessed && s <= Cancelled
}

// Closed reports whether no more work is expected on an item in state s.
func (s State) Closed() bool {
	return s == Done || s == Cancelled
}

// ParseState accepts a state name in any case, with or without a dash
// ("in-progress"), or its menu number 1-4.
func ParseState(s string) (State, error) {
	norm := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), "-", ""))
	for i, name := range stateNames {
		if norm == name || norm == fmt.Sprint(i+1) {
			return State(i), nil
		}
	}
	return 0, invalid("state", "%q is not one of ASSESSED, INPROGRESS, DONE, CANCELLED", s)
}

// ChangeItem is a unit of work against a product.
type ChangeItem struct {
	ID          int32
	Product     Product
	Description string
	State       State
	Priority    int32
	Reported    string
	Release     ProductRelease
}

// Validate checks the caller-supplied fields of the item.
func (c ChangeItem) Validate() error {
	if err := c.Product.Validate(); err != nil {
		return err
	}
	if err := validateText("description", c.Description, MaxDescriptionLen, true); err != nil {
		return err
	}
	if !c.State.Valid() {
		return invalid("state", "%d is not a known state", int32(c.State))
	}
	if err := ValidatePriority(c.Priority); err != nil {
		return err
	}
	if err := ValidateDate("reported date", c.Reported); err != nil {
		return err
	}
	if c.Release.IsZero() {
		return nil
	}
	if err := c.Release.Validate(); err != nil {
		return err
	}
	if c.Release.Product != c.Product {
		return invalid("release", "release %s belongs to product %s, not %s",
			c.Release.ReleaseID, c.Release.Product.Name, c.Product.Name)
	}
	return nil
}
