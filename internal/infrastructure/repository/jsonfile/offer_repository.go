package jsonfile

import (
	"context"

	"github.com/offerdesk/offerdesk/internal/core/domain"
)

type OfferRepository struct {
	col collection[domain.Offer]
}

func (r *OfferRepository) List(_ context.Context, filter domain.OfferFilter) ([]domain.Offer, error) {
	r.col.mu.Lock()
	defer r.col.mu.Unlock()

	offers, err := r.col.load()
	if err != nil {
		return nil, err
	}
	out := make([]domain.Offer, 0, len(offers))
	for _, offer := range offers {
		if filter.Matches(offer) {
			out = append(out, offer)
		}
	}
	return out, nil
}

func (r *OfferRepository) GetByID(_ context.Context, id string) (*domain.Offer, error) {
	r.col.mu.Lock()
	defer r.col.mu.Unlock()

	offers, err := r.col.load()
	if err != nil {
		return nil, err
	}
	for i := range offers {
		if offers[i].ID == id {
			offer := offers[i]
			return &offer, nil
		}
	}
	return nil, domain.NewError(domain.ErrNotFound, "Offer not found")
}

func (r *OfferRepository) Create(_ context.Context, offer *domain.Offer) error {
	r.col.mu.Lock()
	defer r.col.mu.Unlock()

	offers, err := r.col.load()
	if err != nil {
		return err
	}
	ids := make([]string, 0, len(offers))
	for _, existing := range offers {
		ids = append(ids, existing.ID)
	}
	offer.ID = nextSequentialID(ids)
	return r.col.save(append(offers, *offer))
}

func (r *OfferRepository) Update(_ context.Context, offer *domain.Offer) error {
	r.col.mu.Lock()
	defer r.col.mu.Unlock()

	offers, err := r.col.load()
	if err != nil {
		return err
	}
	for i := range offers {
		if offers[i].ID == offer.ID {
			offers[i] = *offer
			return r.col.save(offers)
		}
	}
	return domain.NewError(domain.ErrNotFound, "Offer not found")
}

func (r *OfferRepository) Delete(_ context.Context, id string) error {
	r.col.mu.Lock()
	defer r.col.mu.Unlock()

	offers, err := r.col.load()
	if err != nil {
		return err
	}
	for i := range offers {
		if offers[i].ID == id {
			return r.col.save(append(offers[:i], offers[i+1:]...))
		}
	}
	return domain.NewError(domain.ErrNotFound, "Offer not found")
}

func (r *OfferRepository) ReplaceAll(_ context.Context, offers []domain.Offer) error {
	r.col.mu.Lock()
	defer r.col.mu.Unlock()
	return r.col.save(offers)
}
