package jsonfile

import (
	"context"
	"sort"

	"github.com/offerdesk/offerdesk/internal/core/domain"
)

type FileRepository struct {
	col collection[domain.TaggedFile]
}

func (r *FileRepository) List(_ context.Context) ([]domain.TaggedFile, error) {
	r.col.mu.Lock()
	defer r.col.mu.Unlock()

	files, err := r.col.load()
	if err != nil {
		return nil, err
	}
	sortFiles(files)
	return files, nil
}

func (r *FileRepository) ListByOffer(_ context.Context, offerID string) ([]domain.TaggedFile, error) {
	r.col.mu.Lock()
	defer r.col.mu.Unlock()

	files, err := r.col.load()
	if err != nil {
		return nil, err
	}
	out := make([]domain.TaggedFile, 0, len(files))
	for _, file := range files {
		if file.OfferID == offerID {
			out = append(out, file)
		}
	}
	sortFiles(out)
	return out, nil
}

func (r *FileRepository) GetByID(_ context.Context, id string) (*domain.TaggedFile, error) {
	r.col.mu.Lock()
	defer r.col.mu.Unlock()

	files, err := r.col.load()
	if err != nil {
		return nil, err
	}
	for i := range files {
		if files[i].ID == id {
			file := files[i]
			return &file, nil
		}
	}
	return nil, domain.NewError(domain.ErrNotFound, "File not found")
}

func (r *FileRepository) Create(_ context.Context, file *domain.TaggedFile) error {
	r.col.mu.Lock()
	defer r.col.mu.Unlock()

	files, err := r.col.load()
	if err != nil {
		return err
	}
	return r.col.save(append(files, *file))
}

func (r *FileRepository) Update(_ context.Context, file *domain.TaggedFile) error {
	r.col.mu.Lock()
	defer r.col.mu.Unlock()

	files, err := r.col.load()
	if err != nil {
		return err
	}
	for i := range files {
		if files[i].ID == file.ID {
			files[i] = *file
			return r.col.save(files)
		}
	}
	return domain.NewError(domain.ErrNotFound, "File not found")
}

func sortFiles(files []domain.TaggedFile) {
	sort.Slice(files, func(i, j int) bool {
		if !files[i].UploadedAt.Equal(files[j].UploadedAt) {
			return files[i].UploadedAt.Before(files[j].UploadedAt)
		}
		return files[i].ID < files[j].ID
	})
}
