package domain

import (
	"strings"
	"time"
)

type OfferStatus string

const (
	StatusDraft      OfferStatus = "Draft"
	StatusInProgress OfferStatus = "In Progress"
	StatusActive     OfferStatus = "Active"
	StatusOnIce      OfferStatus = "On Ice"
)

// ValidOfferStatuses lists every allowed offer status. Any status may move
// to any other; only membership in this set is validated.
var ValidOfferStatuses = []OfferStatus{StatusDraft, StatusInProgress, StatusActive, StatusOnIce}

func IsValidOfferStatus(s string) bool {
	for _, status := range ValidOfferStatuses {
		if string(status) == s {
			return true
		}
	}
	return false
}

func OfferStatusList() string {
	names := make([]string, len(ValidOfferStatuses))
	for i, status := range ValidOfferStatuses {
		names[i] = string(status)
	}
	return strings.Join(names, ", ")
}

type Offer struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Price       float64     `json:"price"`
	Currency    string      `json:"currency"`
	CustomerID  string      `json:"customerId"`
	Status      OfferStatus `json:"status"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// OfferPatch is a partial update; empty fields (and a zero price) leave the
// stored value unchanged.
type OfferPatch struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Currency    string  `json:"currency"`
	CustomerID  string  `json:"customerId"`
	Status      string  `json:"status"`
}

// OfferFilter is an AND-composed predicate list over offers. Name matches
// case-insensitively as a substring, price exactly, status exactly.
type OfferFilter struct {
	Name   string
	Price  *float64
	Status string
}

func (f OfferFilter) Matches(o Offer) bool {
	if !containsFold(o.Name, f.Name) {
		return false
	}
	if f.Price != nil && o.Price != *f.Price {
		return false
	}
	if f.Status != "" && string(o.Status) != f.Status {
		return false
	}
	return true
}
