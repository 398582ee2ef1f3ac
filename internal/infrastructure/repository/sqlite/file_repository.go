package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/offerdesk/offerdesk/internal/core/domain"
)

type FileRepository struct {
	db *sql.DB
}

func NewFileRepository(db *sql.DB) *FileRepository {
	return &FileRepository{db: db}
}

const fileColumns = "id, original_name, stored_name, url, offer_id, uploaded_at, tags"

func (r *FileRepository) List(ctx context.Context) ([]domain.TaggedFile, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT `+fileColumns+`
FROM tagged_files
ORDER BY uploaded_at, id
`)
	if err != nil {
		return nil, domain.WrapError(domain.ErrStorage, "list files", err)
	}
	defer rows.Close()
	return collectFiles(rows)
}

func (r *FileRepository) ListByOffer(ctx context.Context, offerID string) ([]domain.TaggedFile, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT `+fileColumns+`
FROM tagged_files
WHERE offer_id = ?
ORDER BY uploaded_at, id
`, offerID)
	if err != nil {
		return nil, domain.WrapError(domain.ErrStorage, "list offer files", err)
	}
	defer rows.Close()
	return collectFiles(rows)
}

func (r *FileRepository) GetByID(ctx context.Context, id string) (*domain.TaggedFile, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT `+fileColumns+`
FROM tagged_files
WHERE id = ?
`, id)

	file, err := scanFile(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewError(domain.ErrNotFound, "File not found")
		}
		return nil, domain.WrapError(domain.ErrStorage, "get file", err)
	}
	return &file, nil
}

func (r *FileRepository) Create(ctx context.Context, file *domain.TaggedFile) error {
	tagsJSON, err := json.Marshal(file.Tags)
	if err != nil {
		return domain.WrapError(domain.ErrStorage, "marshal tags", err)
	}

	if _, err := r.db.ExecContext(ctx, `
INSERT INTO tagged_files (id, original_name, stored_name, url, offer_id, uploaded_at, tags)
VALUES (?, ?, ?, ?, ?, ?, ?)
`, file.ID, file.OriginalName, file.StoredName, file.URL, file.OfferID,
		formatTime(file.UploadedAt), string(tagsJSON)); err != nil {
		return domain.WrapError(domain.ErrStorage, "insert file", err)
	}
	return nil
}

func (r *FileRepository) Update(ctx context.Context, file *domain.TaggedFile) error {
	tagsJSON, err := json.Marshal(file.Tags)
	if err != nil {
		return domain.WrapError(domain.ErrStorage, "marshal tags", err)
	}

	result, err := r.db.ExecContext(ctx, `
UPDATE tagged_files
SET original_name = ?, stored_name = ?, url = ?, offer_id = ?, tags = ?
WHERE id = ?
`, file.OriginalName, file.StoredName, file.URL, file.OfferID, string(tagsJSON), file.ID)
	if err != nil {
		return domain.WrapError(domain.ErrStorage, "update file", err)
	}
	return requireRowAffected(result, "File not found")
}

func collectFiles(rows *sql.Rows) ([]domain.TaggedFile, error) {
	out := make([]domain.TaggedFile, 0)
	for rows.Next() {
		file, err := scanFile(rows)
		if err != nil {
			return nil, domain.WrapError(domain.ErrStorage, "scan file", err)
		}
		out = append(out, file)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.WrapError(domain.ErrStorage, "iterate files", err)
	}
	return out, nil
}

func scanFile(row rowScanner) (domain.TaggedFile, error) {
	var file domain.TaggedFile
	var uploadedAt, tagsRaw string
	err := row.Scan(
		&file.ID,
		&file.OriginalName,
		&file.StoredName,
		&file.URL,
		&file.OfferID,
		&uploadedAt,
		&tagsRaw,
	)
	if err != nil {
		return domain.TaggedFile{}, err
	}
	if err := json.Unmarshal([]byte(tagsRaw), &file.Tags); err != nil {
		return domain.TaggedFile{}, err
	}
	file.UploadedAt = parseTime(uploadedAt)
	return file, nil
}
