package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/offerdesk/offerdesk/internal/core/domain"
)

type CustomerRepository struct {
	db *sql.DB
}

func NewCustomerRepository(db *sql.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

const customerColumns = "id, name, email, address, contact, created_at, updated_at"

func (r *CustomerRepository) List(ctx context.Context, filter domain.CustomerFilter) ([]domain.Customer, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT `+customerColumns+`
FROM customers
ORDER BY CAST(id AS INTEGER)
`)
	if err != nil {
		return nil, domain.WrapError(domain.ErrStorage, "list customers", err)
	}
	defer rows.Close()

	out := make([]domain.Customer, 0)
	for rows.Next() {
		customer, err := scanCustomer(rows)
		if err != nil {
			return nil, domain.WrapError(domain.ErrStorage, "scan customer", err)
		}
		if filter.Matches(customer) {
			out = append(out, customer)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, domain.WrapError(domain.ErrStorage, "iterate customers", err)
	}
	return out, nil
}

func (r *CustomerRepository) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT `+customerColumns+`
FROM customers
WHERE id = ?
`, id)
	return r.scanOne(row, "get customer")
}

func (r *CustomerRepository) GetByIDOrName(ctx context.Context, idOrName string) (*domain.Customer, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT `+customerColumns+`
FROM customers
WHERE id = ? OR lower(name) = ?
`, idOrName, strings.ToLower(idOrName))
	return r.scanOne(row, "get customer by id or name")
}

func (r *CustomerRepository) scanOne(row *sql.Row, operation string) (*domain.Customer, error) {
	customer, err := scanCustomer(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewError(domain.ErrNotFound, "Customer not found")
		}
		return nil, domain.WrapError(domain.ErrStorage, operation, err)
	}
	return &customer, nil
}

func (r *CustomerRepository) Create(ctx context.Context, customer *domain.Customer) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.WrapError(domain.ErrStorage, "begin create customer", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	id, err := nextSequentialID(ctx, tx, "customers")
	if err != nil {
		return domain.WrapError(domain.ErrStorage, "next customer id", err)
	}
	customer.ID = id

	_, err = tx.ExecContext(ctx, `
INSERT INTO customers (id, name, email, address, contact, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
`, customer.ID, customer.Name, customer.Email, customer.Address, customer.Contact,
		formatTime(customer.CreatedAt), formatTime(customer.UpdatedAt))
	if err != nil {
		return domain.WrapError(domain.ErrStorage, "insert customer", err)
	}

	if err := tx.Commit(); err != nil {
		return domain.WrapError(domain.ErrStorage, "commit create customer", err)
	}
	return nil
}

func (r *CustomerRepository) Update(ctx context.Context, customer *domain.Customer) error {
	result, err := r.db.ExecContext(ctx, `
UPDATE customers
SET name = ?, email = ?, address = ?, contact = ?, updated_at = ?
WHERE id = ?
`, customer.Name, customer.Email, customer.Address, customer.Contact,
		formatTime(customer.UpdatedAt), customer.ID)
	if err != nil {
		return domain.WrapError(domain.ErrStorage, "update customer", err)
	}
	return requireRowAffected(result, "Customer not found")
}

func (r *CustomerRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM customers WHERE id = ?`, id)
	if err != nil {
		return domain.WrapError(domain.ErrStorage, "delete customer", err)
	}
	return requireRowAffected(result, "Customer not found")
}

func (r *CustomerRepository) ReplaceAll(ctx context.Context, customers []domain.Customer) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.WrapError(domain.ErrStorage, "begin replace customers", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM customers`); err != nil {
		return domain.WrapError(domain.ErrStorage, "clear customers", err)
	}
	for _, customer := range customers {
		_, err := tx.ExecContext(ctx, `
INSERT INTO customers (id, name, email, address, contact, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
`, customer.ID, customer.Name, customer.Email, customer.Address, customer.Contact,
			formatTime(customer.CreatedAt), formatTime(customer.UpdatedAt))
		if err != nil {
			return domain.WrapError(domain.ErrStorage, "insert customer", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return domain.WrapError(domain.ErrStorage, "commit replace customers", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCustomer(row rowScanner) (domain.Customer, error) {
	var customer domain.Customer
	var createdAt, updatedAt string
	err := row.Scan(
		&customer.ID,
		&customer.Name,
		&customer.Email,
		&customer.Address,
		&customer.Contact,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return domain.Customer{}, err
	}
	customer.CreatedAt = parseTime(createdAt)
	customer.UpdatedAt = parseTime(updatedAt)
	return customer, nil
}

// requireRowAffected maps a zero-row write to NotFound so that a record
// removed by a concurrent sweep surfaces on the next write.
func requireRowAffected(result sql.Result, notFoundMessage string) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return domain.WrapError(domain.ErrStorage, "rows affected", err)
	}
	if rows == 0 {
		return domain.NewError(domain.ErrNotFound, "%s", notFoundMessage)
	}
	return nil
}
