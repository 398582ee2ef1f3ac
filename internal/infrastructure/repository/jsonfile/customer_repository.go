package jsonfile

import (
	"context"
	"strings"

	"github.com/offerdesk/offerdesk/internal/core/domain"
)

type CustomerRepository struct {
	col collection[domain.Customer]
}

func (r *CustomerRepository) List(_ context.Context, filter domain.CustomerFilter) ([]domain.Customer, error) {
	r.col.mu.Lock()
	defer r.col.mu.Unlock()

	customers, err := r.col.load()
	if err != nil {
		return nil, err
	}
	out := make([]domain.Customer, 0, len(customers))
	for _, customer := range customers {
		if filter.Matches(customer) {
			out = append(out, customer)
		}
	}
	return out, nil
}

func (r *CustomerRepository) GetByID(_ context.Context, id string) (*domain.Customer, error) {
	r.col.mu.Lock()
	defer r.col.mu.Unlock()

	customers, err := r.col.load()
	if err != nil {
		return nil, err
	}
	for i := range customers {
		if customers[i].ID == id {
			customer := customers[i]
			return &customer, nil
		}
	}
	return nil, domain.NewError(domain.ErrNotFound, "Customer not found")
}

func (r *CustomerRepository) GetByIDOrName(_ context.Context, idOrName string) (*domain.Customer, error) {
	r.col.mu.Lock()
	defer r.col.mu.Unlock()

	customers, err := r.col.load()
	if err != nil {
		return nil, err
	}
	for i := range customers {
		if customers[i].ID == idOrName || strings.EqualFold(customers[i].Name, idOrName) {
			customer := customers[i]
			return &customer, nil
		}
	}
	return nil, domain.NewError(domain.ErrNotFound, "Customer not found")
}

func (r *CustomerRepository) Create(_ context.Context, customer *domain.Customer) error {
	r.col.mu.Lock()
	defer r.col.mu.Unlock()

	customers, err := r.col.load()
	if err != nil {
		return err
	}
	ids := make([]string, 0, len(customers))
	for _, existing := range customers {
		ids = append(ids, existing.ID)
	}
	customer.ID = nextSequentialID(ids)
	return r.col.save(append(customers, *customer))
}

func (r *CustomerRepository) Update(_ context.Context, customer *domain.Customer) error {
	r.col.mu.Lock()
	defer r.col.mu.Unlock()

	customers, err := r.col.load()
	if err != nil {
		return err
	}
	for i := range customers {
		if customers[i].ID == customer.ID {
			customers[i] = *customer
			return r.col.save(customers)
		}
	}
	return domain.NewError(domain.ErrNotFound, "Customer not found")
}

func (r *CustomerRepository) Delete(_ context.Context, id string) error {
	r.col.mu.Lock()
	defer r.col.mu.Unlock()

	customers, err := r.col.load()
	if err != nil {
		return err
	}
	for i := range customers {
		if customers[i].ID == id {
			return r.col.save(append(customers[:i], customers[i+1:]...))
		}
	}
	return domain.NewError(domain.ErrNotFound, "Customer not found")
}

func (r *CustomerRepository) ReplaceAll(_ context.Context, customers []domain.Customer) error {
	r.col.mu.Lock()
	defer r.col.mu.Unlock()
	return r.col.save(customers)
}
