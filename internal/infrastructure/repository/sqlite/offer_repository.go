package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/offerdesk/offerdesk/internal/core/domain"
)

type OfferRepository struct {
	db *sql.DB
}

func NewOfferRepository(db *sql.DB) *OfferRepository {
	return &OfferRepository{db: db}
}

const offerColumns = "id, name, description, price, currency, customer_id, status, created_at, updated_at"

func (r *OfferRepository) List(ctx context.Context, filter domain.OfferFilter) ([]domain.Offer, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT `+offerColumns+`
FROM offers
ORDER BY CAST(id AS INTEGER)
`)
	if err != nil {
		return nil, domain.WrapError(domain.ErrStorage, "list offers", err)
	}
	defer rows.Close()

	out := make([]domain.Offer, 0)
	for rows.Next() {
		offer, err := scanOffer(rows)
		if err != nil {
			return nil, domain.WrapError(domain.ErrStorage, "scan offer", err)
		}
		if filter.Matches(offer) {
			out = append(out, offer)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, domain.WrapError(domain.ErrStorage, "iterate offers", err)
	}
	return out, nil
}

func (r *OfferRepository) GetByID(ctx context.Context, id string) (*domain.Offer, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT `+offerColumns+`
FROM offers
WHERE id = ?
`, id)

	offer, err := scanOffer(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewError(domain.ErrNotFound, "Offer not found")
		}
		return nil, domain.WrapError(domain.ErrStorage, "get offer", err)
	}
	return &offer, nil
}

func (r *OfferRepository) Create(ctx context.Context, offer *domain.Offer) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.WrapError(domain.ErrStorage, "begin create offer", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	id, err := nextSequentialID(ctx, tx, "offers")
	if err != nil {
		return domain.WrapError(domain.ErrStorage, "next offer id", err)
	}
	offer.ID = id

	if _, err := tx.ExecContext(ctx, `
INSERT INTO offers (id, name, description, price, currency, customer_id, status, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
`, offer.ID, offer.Name, offer.Description, offer.Price, offer.Currency, offer.CustomerID,
		string(offer.Status), formatTime(offer.CreatedAt), formatTime(offer.UpdatedAt)); err != nil {
		return domain.WrapError(domain.ErrStorage, "insert offer", err)
	}

	if err := tx.Commit(); err != nil {
		return domain.WrapError(domain.ErrStorage, "commit create offer", err)
	}
	return nil
}

func (r *OfferRepository) Update(ctx context.Context, offer *domain.Offer) error {
	result, err := r.db.ExecContext(ctx, `
UPDATE offers
SET name = ?, description = ?, price = ?, currency = ?, customer_id = ?, status = ?, updated_at = ?
WHERE id = ?
`, offer.Name, offer.Description, offer.Price, offer.Currency, offer.CustomerID,
		string(offer.Status), formatTime(offer.UpdatedAt), offer.ID)
	if err != nil {
		return domain.WrapError(domain.ErrStorage, "update offer", err)
	}
	return requireRowAffected(result, "Offer not found")
}

func (r *OfferRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM offers WHERE id = ?`, id)
	if err != nil {
		return domain.WrapError(domain.ErrStorage, "delete offer", err)
	}
	return requireRowAffected(result, "Offer not found")
}

func (r *OfferRepository) ReplaceAll(ctx context.Context, offers []domain.Offer) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.WrapError(domain.ErrStorage, "begin replace offers", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM offers`); err != nil {
		return domain.WrapError(domain.ErrStorage, "clear offers", err)
	}
	for _, offer := range offers {
		if _, err := tx.ExecContext(ctx, `
INSERT INTO offers (id, name, description, price, currency, customer_id, status, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
`, offer.ID, offer.Name, offer.Description, offer.Price, offer.Currency, offer.CustomerID,
			string(offer.Status), formatTime(offer.CreatedAt), formatTime(offer.UpdatedAt)); err != nil {
			return domain.WrapError(domain.ErrStorage, "insert offer", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return domain.WrapError(domain.ErrStorage, "commit replace offers", err)
	}
	return nil
}

func scanOffer(row rowScanner) (domain.Offer, error) {
	var offer domain.Offer
	var status, createdAt, updatedAt string
	err := row.Scan(
		&offer.ID,
		&offer.Name,
		&offer.Description,
		&offer.Price,
		&offer.Currency,
		&offer.CustomerID,
		&status,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return domain.Offer{}, err
	}
	offer.Status = domain.OfferStatus(status)
	offer.CreatedAt = parseTime(createdAt)
	offer.UpdatedAt = parseTime(updatedAt)
	return offer, nil
}
