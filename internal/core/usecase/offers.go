package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"regexp"
	"strings"
	"time"

	"github.com/offerdesk/offerdesk/internal/core/domain"
	"github.com/offerdesk/offerdesk/internal/core/ports"
)

var numericID = regexp.MustCompile(`^\d+$`)

type OfferService struct {
	repo    ports.OfferRepository
	sweeper *Sweeper
	// sweepOnRead triggers an offer sweep before every read path so that
	// listings never show offers of a deleted customer.
	sweepOnRead bool
}

func NewOfferService(repo ports.OfferRepository, sweeper *Sweeper, sweepOnRead bool) *OfferService {
	return &OfferService{repo: repo, sweeper: sweeper, sweepOnRead: sweepOnRead}
}

// List returns offers matching the filter. The pre-read sweep is best
// effort: a failure is logged and the listing proceeds against possibly
// stale data.
func (s *OfferService) List(ctx context.Context, filter domain.OfferFilter) ([]domain.Offer, error) {
	s.sweepBeforeRead(ctx)
	return s.repo.List(ctx, filter)
}

func (s *OfferService) sweepBeforeRead(ctx context.Context) {
	if !s.sweepOnRead || s.sweeper == nil {
		return
	}
	if _, err := s.sweeper.SweepOffers(ctx); err != nil {
		slog.Error("offer_sweep_failed", "error", err)
	}
}

func (s *OfferService) Create(ctx context.Context, patch domain.OfferPatch) (*domain.Offer, error) {
	status := patch.Status
	if status == "" {
		status = string(domain.StatusDraft)
	}
	if !domain.IsValidOfferStatus(status) {
		return nil, domain.NewError(domain.ErrInvalidInput,
			"Invalid status. Allowed values: %s", domain.OfferStatusList())
	}

	now := time.Now().UTC()
	offer := &domain.Offer{
		Name:        patch.Name,
		Description: patch.Description,
		Price:       patch.Price,
		Currency:    patch.Currency,
		CustomerID:  patch.CustomerID,
		Status:      domain.OfferStatus(status),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, offer); err != nil {
		return nil, fmt.Errorf("create offer: %w", err)
	}
	return offer, nil
}

// Update merges non-empty patch fields over the stored record; a zero price
// is treated as absent and keeps the previous value.
func (s *OfferService) Update(ctx context.Context, id string, patch domain.OfferPatch) (*domain.Offer, error) {
	offer, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != "" {
		offer.Name = patch.Name
	}
	if patch.Description != "" {
		offer.Description = patch.Description
	}
	if patch.Price != 0 {
		offer.Price = patch.Price
	}
	if patch.Currency != "" {
		offer.Currency = patch.Currency
	}
	if patch.CustomerID != "" {
		offer.CustomerID = patch.CustomerID
	}
	if patch.Status != "" {
		if !domain.IsValidOfferStatus(patch.Status) {
			return nil, domain.NewError(domain.ErrInvalidInput,
				"Invalid status. Allowed values: %s", domain.OfferStatusList())
		}
		offer.Status = domain.OfferStatus(patch.Status)
	}
	offer.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, offer); err != nil {
		return nil, err
	}
	return offer, nil
}

func (s *OfferService) UpdateStatus(ctx context.Context, id, newStatus string) (*domain.Offer, error) {
	if !numericID.MatchString(id) {
		return nil, domain.NewError(domain.ErrInvalidInput, "Invalid ID format. It must be a number.")
	}
	if !domain.IsValidOfferStatus(newStatus) {
		return nil, domain.NewError(domain.ErrInvalidInput,
			"Invalid status. Allowed values: %s", domain.OfferStatusList())
	}

	offer, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	offer.Status = domain.OfferStatus(newStatus)
	offer.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, offer); err != nil {
		return nil, err
	}
	return offer, nil
}

func (s *OfferService) Delete(ctx context.Context, id string) (*domain.Offer, error) {
	offer, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, err
	}
	return offer, nil
}

// Seed replaces all offers with ten fixture records referencing seeded
// customer ids 1 to 5.
func (s *OfferService) Seed(ctx context.Context) ([]domain.Offer, error) {
	now := time.Now().UTC()
	offers := make([]domain.Offer, 0, 10)
	for i := 1; i <= 10; i++ {
		offers = append(offers, domain.Offer{
			ID:          fmt.Sprintf("%d", i),
			Name:        fmt.Sprintf("Test Offer %d", i),
			Description: fmt.Sprintf("Description for offer %d.", i),
			Price:       float64(rand.Intn(901) + 100),
			Currency:    "EUR",
			CustomerID:  fmt.Sprintf("%d", rand.Intn(5)+1),
			Status:      domain.ValidOfferStatuses[rand.Intn(len(domain.ValidOfferStatuses))],
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	}
	if err := s.repo.ReplaceAll(ctx, offers); err != nil {
		return nil, fmt.Errorf("seed offers: %w", err)
	}
	return offers, nil
}

// exchangeOffer is the external sample format imported by LoadSamples.
type exchangeOffer struct {
	Name       string
	Hints      []string
	Price      float64
	Currency   string
	CustomerID string
	State      string
}

var sampleOffers = []exchangeOffer{
	{
		Name:       "Offer 1",
		Hints:      nil,
		Price:      142000,
		Currency:   "USD",
		CustomerID: "1",
		State:      "Active",
	},
	{
		Name:       "Offer 2",
		Hints:      []string{"Great customer we should win!"},
		Price:      56000,
		Currency:   "EUR",
		CustomerID: "3",
		State:      "On-Ice",
	},
}

// LoadSamples appends the built-in exchange-format samples, converting
// hints to a description and the "On-Ice" state spelling to "On Ice".
func (s *OfferService) LoadSamples(ctx context.Context) ([]domain.Offer, error) {
	now := time.Now().UTC()
	for _, sample := range sampleOffers {
		status := sample.State
		if status == "On-Ice" {
			status = string(domain.StatusOnIce)
		}
		offer := &domain.Offer{
			Name:        sample.Name,
			Description: strings.Join(sample.Hints, " "),
			Price:       sample.Price,
			Currency:    sample.Currency,
			CustomerID:  sample.CustomerID,
			Status:      domain.OfferStatus(status),
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := s.repo.Create(ctx, offer); err != nil {
			return nil, fmt.Errorf("load sample offer: %w", err)
		}
	}
	return s.repo.List(ctx, domain.OfferFilter{})
}
