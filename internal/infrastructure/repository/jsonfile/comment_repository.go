package jsonfile

import (
	"context"

	"github.com/offerdesk/offerdesk/internal/core/domain"
)

type CommentRepository struct {
	col collection[domain.Comment]
}

func (r *CommentRepository) List(_ context.Context) ([]domain.Comment, error) {
	r.col.mu.Lock()
	defer r.col.mu.Unlock()
	return r.col.load()
}

func (r *CommentRepository) ListByOffer(_ context.Context, offerID string) ([]domain.Comment, error) {
	r.col.mu.Lock()
	defer r.col.mu.Unlock()

	comments, err := r.col.load()
	if err != nil {
		return nil, err
	}
	out := make([]domain.Comment, 0, len(comments))
	for _, comment := range comments {
		if comment.OfferID == offerID {
			out = append(out, comment)
		}
	}
	return out, nil
}

func (r *CommentRepository) Get(_ context.Context, offerID, commentID string) (*domain.Comment, error) {
	r.col.mu.Lock()
	defer r.col.mu.Unlock()

	comments, err := r.col.load()
	if err != nil {
		return nil, err
	}
	for i := range comments {
		if comments[i].ID == commentID && comments[i].OfferID == offerID {
			comment := comments[i]
			return &comment, nil
		}
	}
	return nil, domain.NewError(domain.ErrNotFound, "Comment not found")
}

func (r *CommentRepository) Create(_ context.Context, comment *domain.Comment) error {
	r.col.mu.Lock()
	defer r.col.mu.Unlock()

	comments, err := r.col.load()
	if err != nil {
		return err
	}
	ids := make([]string, 0, len(comments))
	for _, existing := range comments {
		ids = append(ids, existing.ID)
	}
	comment.ID = nextSequentialID(ids)
	return r.col.save(append(comments, *comment))
}

func (r *CommentRepository) Update(_ context.Context, comment *domain.Comment) error {
	r.col.mu.Lock()
	defer r.col.mu.Unlock()

	comments, err := r.col.load()
	if err != nil {
		return err
	}
	for i := range comments {
		if comments[i].ID == comment.ID && comments[i].OfferID == comment.OfferID {
			comments[i] = *comment
			return r.col.save(comments)
		}
	}
	return domain.NewError(domain.ErrNotFound, "Comment not found")
}

func (r *CommentRepository) Delete(_ context.Context, commentID string) error {
	r.col.mu.Lock()
	defer r.col.mu.Unlock()

	comments, err := r.col.load()
	if err != nil {
		return err
	}
	for i := range comments {
		if comments[i].ID == commentID {
			return r.col.save(append(comments[:i], comments[i+1:]...))
		}
	}
	return domain.NewError(domain.ErrNotFound, "Comment not found")
}
