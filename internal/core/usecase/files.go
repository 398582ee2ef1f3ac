package usecase

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/offerdesk/offerdesk/internal/core/domain"
	"github.com/offerdesk/offerdesk/internal/core/ports"
)

type FileService struct {
	repo    ports.FileRepository
	storage ports.ObjectStorage
}

func NewFileService(repo ports.FileRepository, storage ports.ObjectStorage) *FileService {
	return &FileService{repo: repo, storage: storage}
}

// Upload stores a plain-text attachment for an offer. Only .txt uploads are
// accepted; the file is persisted under a generated name and referenced by
// its /assets URL.
func (s *FileService) Upload(ctx context.Context, offerID, filename string, body io.Reader) (*domain.TaggedFile, error) {
	if !strings.EqualFold(filepath.Ext(filename), ".txt") {
		return nil, domain.NewError(domain.ErrInvalidInput, "Only .txt files are supported")
	}

	id := uuid.NewString()
	storedName := id + ".txt"
	if err := s.storage.Save(ctx, storedName, body); err != nil {
		return nil, fmt.Errorf("save uploaded file: %w", err)
	}

	file := &domain.TaggedFile{
		ID:           id,
		OriginalName: filename,
		StoredName:   storedName,
		URL:          "/assets/" + storedName,
		OfferID:      offerID,
		UploadedAt:   time.Now().UTC(),
		Tags:         []domain.Tag{},
	}
	if err := s.repo.Create(ctx, file); err != nil {
		return nil, fmt.Errorf("create file metadata: %w", err)
	}
	return file, nil
}

func (s *FileService) ListByOffer(ctx context.Context, offerID string) ([]domain.FileSummary, error) {
	files, err := s.repo.ListByOffer(ctx, offerID)
	if err != nil {
		return nil, err
	}
	summaries := make([]domain.FileSummary, 0, len(files))
	for _, file := range files {
		summaries = append(summaries, file.Summary())
	}
	return summaries, nil
}

func (s *FileService) getOfferFile(ctx context.Context, offerID, fileID string) (*domain.TaggedFile, error) {
	file, err := s.repo.GetByID(ctx, fileID)
	if err != nil {
		return nil, err
	}
	if file.OfferID != offerID {
		return nil, domain.NewError(domain.ErrNotFound, "File not found")
	}
	return file, nil
}

func (s *FileService) ListTags(ctx context.Context, offerID, fileID string) ([]domain.Tag, error) {
	file, err := s.getOfferFile(ctx, offerID, fileID)
	if err != nil {
		return nil, err
	}
	return file.Tags, nil
}

// AddTag appends a tag to the file. Tag text must be unique within the
// file; insertion order is preserved.
func (s *FileService) AddTag(ctx context.Context, offerID, fileID, text string) (*domain.Tag, error) {
	if text == "" {
		return nil, domain.NewError(domain.ErrInvalidInput, "Tag text is required")
	}
	file, err := s.getOfferFile(ctx, offerID, fileID)
	if err != nil {
		return nil, err
	}
	for _, tag := range file.Tags {
		if tag.Text == text {
			return nil, domain.NewError(domain.ErrInvalidInput, "Tag already exists on this file")
		}
	}

	tag := domain.Tag{ID: uuid.NewString(), Text: text}
	file.Tags = append(file.Tags, tag)
	if err := s.repo.Update(ctx, file); err != nil {
		return nil, err
	}
	return &tag, nil
}

func (s *FileService) UpdateTag(ctx context.Context, offerID, fileID, tagID, text string) (*domain.Tag, error) {
	if text == "" {
		return nil, domain.NewError(domain.ErrInvalidInput, "Tag text is required")
	}
	file, err := s.getOfferFile(ctx, offerID, fileID)
	if err != nil {
		return nil, err
	}
	for _, tag := range file.Tags {
		if tag.Text == text && tag.ID != tagID {
			return nil, domain.NewError(domain.ErrInvalidInput, "Tag already exists on this file")
		}
	}
	for i := range file.Tags {
		if file.Tags[i].ID == tagID {
			file.Tags[i].Text = text
			if err := s.repo.Update(ctx, file); err != nil {
				return nil, err
			}
			return &file.Tags[i], nil
		}
	}
	return nil, domain.NewError(domain.ErrNotFound, "Tag not found")
}

func (s *FileService) DeleteTag(ctx context.Context, offerID, fileID, tagID string) (*domain.Tag, error) {
	file, err := s.getOfferFile(ctx, offerID, fileID)
	if err != nil {
		return nil, err
	}
	for i := range file.Tags {
		if file.Tags[i].ID == tagID {
			deleted := file.Tags[i]
			file.Tags = append(file.Tags[:i], file.Tags[i+1:]...)
			if err := s.repo.Update(ctx, file); err != nil {
				return nil, err
			}
			return &deleted, nil
		}
	}
	return nil, domain.NewError(domain.ErrNotFound, "Tag not found")
}
