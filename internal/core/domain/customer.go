package domain

import (
	"strings"
	"time"
)

type Customer struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Address   string    `json:"address"`
	Contact   string    `json:"contact"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CustomerPatch is a partial update; empty fields leave the stored value
// unchanged.
type CustomerPatch struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address"`
	Contact string `json:"contact"`
}

// CustomerFilter is an AND-composed predicate list over customer text
// fields. Empty fields impose no constraint.
type CustomerFilter struct {
	Name    string
	Email   string
	Address string
	Contact string
}

func (f CustomerFilter) Matches(c Customer) bool {
	return containsFold(c.Name, f.Name) &&
		containsFold(c.Email, f.Email) &&
		containsFold(c.Address, f.Address) &&
		containsFold(c.Contact, f.Contact)
}

// containsFold is a case-insensitive substring test; an empty filter value
// always matches.
func containsFold(value, filter string) bool {
	if filter == "" {
		return true
	}
	return strings.Contains(strings.ToLower(value), strings.ToLower(filter))
}
