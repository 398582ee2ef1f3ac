package domain

import "time"

type Comment struct {
	ID        string    `json:"id"`
	OfferID   string    `json:"offerId"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
