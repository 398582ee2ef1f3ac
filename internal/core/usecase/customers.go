package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/offerdesk/offerdesk/internal/core/domain"
	"github.com/offerdesk/offerdesk/internal/core/ports"
)

type CustomerService struct {
	repo ports.CustomerRepository
}

func NewCustomerService(repo ports.CustomerRepository) *CustomerService {
	return &CustomerService{repo: repo}
}

func (s *CustomerService) List(ctx context.Context, filter domain.CustomerFilter) ([]domain.Customer, error) {
	return s.repo.List(ctx, filter)
}

func (s *CustomerService) Create(ctx context.Context, patch domain.CustomerPatch) (*domain.Customer, error) {
	now := time.Now().UTC()
	customer := &domain.Customer{
		Name:      patch.Name,
		Email:     patch.Email,
		Address:   patch.Address,
		Contact:   patch.Contact,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, customer); err != nil {
		return nil, fmt.Errorf("create customer: %w", err)
	}
	return customer, nil
}

// Update merges non-empty patch fields over the stored record. An empty
// field leaves the previous value unchanged. idOrName resolves by id first,
// then by case-insensitive name.
func (s *CustomerService) Update(ctx context.Context, idOrName string, patch domain.CustomerPatch) (*domain.Customer, error) {
	customer, err := s.repo.GetByIDOrName(ctx, idOrName)
	if err != nil {
		return nil, err
	}

	if patch.Name != "" {
		customer.Name = patch.Name
	}
	if patch.Email != "" {
		customer.Email = patch.Email
	}
	if patch.Address != "" {
		customer.Address = patch.Address
	}
	if patch.Contact != "" {
		customer.Contact = patch.Contact
	}
	customer.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// Delete removes the customer and returns the pre-deletion snapshot.
// Dependent offers are cleaned up by the sweeper, not here.
func (s *CustomerService) Delete(ctx context.Context, id string) (*domain.Customer, error) {
	customer, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, err
	}
	return customer, nil
}

// Seed replaces all customers with five fixture records, ids "1" to "5".
func (s *CustomerService) Seed(ctx context.Context) ([]domain.Customer, error) {
	now := time.Now().UTC()
	customers := make([]domain.Customer, 0, 5)
	for i := 1; i <= 5; i++ {
		customers = append(customers, domain.Customer{
			ID:        fmt.Sprintf("%d", i),
			Name:      fmt.Sprintf("Test Customer %d", i),
			Email:     fmt.Sprintf("test%d@example.com", i),
			Address:   fmt.Sprintf("Test Street %d, Sampletown", i),
			Contact:   fmt.Sprintf("%09d", 100000000*i),
			CreatedAt: now,
			UpdatedAt: now,
		})
	}
	if err := s.repo.ReplaceAll(ctx, customers); err != nil {
		return nil, fmt.Errorf("seed customers: %w", err)
	}
	return customers, nil
}
