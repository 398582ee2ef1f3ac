package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/offerdesk/offerdesk/internal/core/domain"
)

type CommentRepository struct {
	db *sql.DB
}

func NewCommentRepository(db *sql.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

const commentColumns = "id, offer_id, text, created_at, updated_at"

func (r *CommentRepository) List(ctx context.Context) ([]domain.Comment, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT `+commentColumns+`
FROM comments
ORDER BY CAST(id AS INTEGER)
`)
	if err != nil {
		return nil, domain.WrapError(domain.ErrStorage, "list comments", err)
	}
	defer rows.Close()
	return collectComments(rows)
}

func (r *CommentRepository) ListByOffer(ctx context.Context, offerID string) ([]domain.Comment, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT `+commentColumns+`
FROM comments
WHERE offer_id = ?
ORDER BY CAST(id AS INTEGER)
`, offerID)
	if err != nil {
		return nil, domain.WrapError(domain.ErrStorage, "list offer comments", err)
	}
	defer rows.Close()
	return collectComments(rows)
}

func (r *CommentRepository) Get(ctx context.Context, offerID, commentID string) (*domain.Comment, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT `+commentColumns+`
FROM comments
WHERE id = ? AND offer_id = ?
`, commentID, offerID)

	comment, err := scanComment(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewError(domain.ErrNotFound, "Comment not found")
		}
		return nil, domain.WrapError(domain.ErrStorage, "get comment", err)
	}
	return &comment, nil
}

func (r *CommentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.WrapError(domain.ErrStorage, "begin create comment", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	id, err := nextSequentialID(ctx, tx, "comments")
	if err != nil {
		return domain.WrapError(domain.ErrStorage, "next comment id", err)
	}
	comment.ID = id

	if _, err := tx.ExecContext(ctx, `
INSERT INTO comments (id, offer_id, text, created_at, updated_at)
VALUES (?, ?, ?, ?, ?)
`, comment.ID, comment.OfferID, comment.Text,
		formatTime(comment.CreatedAt), formatTime(comment.UpdatedAt)); err != nil {
		return domain.WrapError(domain.ErrStorage, "insert comment", err)
	}

	if err := tx.Commit(); err != nil {
		return domain.WrapError(domain.ErrStorage, "commit create comment", err)
	}
	return nil
}

func (r *CommentRepository) Update(ctx context.Context, comment *domain.Comment) error {
	result, err := r.db.ExecContext(ctx, `
UPDATE comments
SET text = ?, updated_at = ?
WHERE id = ? AND offer_id = ?
`, comment.Text, formatTime(comment.UpdatedAt), comment.ID, comment.OfferID)
	if err != nil {
		return domain.WrapError(domain.ErrStorage, "update comment", err)
	}
	return requireRowAffected(result, "Comment not found")
}

func (r *CommentRepository) Delete(ctx context.Context, commentID string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM comments WHERE id = ?`, commentID)
	if err != nil {
		return domain.WrapError(domain.ErrStorage, "delete comment", err)
	}
	return requireRowAffected(result, "Comment not found")
}

func collectComments(rows *sql.Rows) ([]domain.Comment, error) {
	out := make([]domain.Comment, 0)
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, domain.WrapError(domain.ErrStorage, "scan comment", err)
		}
		out = append(out, comment)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.WrapError(domain.ErrStorage, "iterate comments", err)
	}
	return out, nil
}

func scanComment(row rowScanner) (domain.Comment, error) {
	var comment domain.Comment
	var createdAt, updatedAt string
	err := row.Scan(
		&comment.ID,
		&comment.OfferID,
		&comment.Text,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return domain.Comment{}, err
	}
	comment.CreatedAt = parseTime(createdAt)
	comment.UpdatedAt = parseTime(updatedAt)
	return comment, nil
}
