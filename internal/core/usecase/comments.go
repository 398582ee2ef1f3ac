package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/offerdesk/offerdesk/internal/core/domain"
	"github.com/offerdesk/offerdesk/internal/core/ports"
)

type CommentService struct {
	repo ports.CommentRepository
}

func NewCommentService(repo ports.CommentRepository) *CommentService {
	return &CommentService{repo: repo}
}

func (s *CommentService) ListByOffer(ctx context.Context, offerID string) ([]domain.Comment, error) {
	return s.repo.ListByOffer(ctx, offerID)
}

func (s *CommentService) Create(ctx context.Context, offerID, text string) (*domain.Comment, error) {
	if text == "" {
		return nil, domain.NewError(domain.ErrInvalidInput, "Comment text is required")
	}
	now := time.Now().UTC()
	comment := &domain.Comment{
		OfferID:   offerID,
		Text:      text,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	return comment, nil
}

func (s *CommentService) Update(ctx context.Context, offerID, commentID, text string) (*domain.Comment, error) {
	if text == "" {
		return nil, domain.NewError(domain.ErrInvalidInput, "Comment text is required")
	}
	comment, err := s.repo.Get(ctx, offerID, commentID)
	if err != nil {
		return nil, err
	}
	comment.Text = text
	comment.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *CommentService) Delete(ctx context.Context, offerID, commentID string) (*domain.Comment, error) {
	comment, err := s.repo.Get(ctx, offerID, commentID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Delete(ctx, commentID); err != nil {
		return nil, err
	}
	return comment, nil
}
