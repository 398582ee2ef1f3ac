package ports

import (
	"context"
	"io"

	"github.com/offerdesk/offerdesk/internal/core/domain"
)

// CustomerRepository is the record store for customers. Create assigns the
// next sequential id (max numeric id + 1, "1" when empty) and persists the
// record. Update and Delete report a missing id as domain.ErrNotFound.
type CustomerRepository interface {
	List(ctx context.Context, filter domain.CustomerFilter) ([]domain.Customer, error)
	GetByID(ctx context.Context, id string) (*domain.Customer, error)
	GetByIDOrName(ctx context.Context, idOrName string) (*domain.Customer, error)
	Create(ctx context.Context, customer *domain.Customer) error
	Update(ctx context.Context, customer *domain.Customer) error
	Delete(ctx context.Context, id string) error
	ReplaceAll(ctx context.Context, customers []domain.Customer) error
}

type OfferRepository interface {
	List(ctx context.Context, filter domain.OfferFilter) ([]domain.Offer, error)
	GetByID(ctx context.Context, id string) (*domain.Offer, error)
	Create(ctx context.Context, offer *domain.Offer) error
	Update(ctx context.Context, offer *domain.Offer) error
	Delete(ctx context.Context, id string) error
	ReplaceAll(ctx context.Context, offers []domain.Offer) error
}

type CommentRepository interface {
	List(ctx context.Context) ([]domain.Comment, error)
	ListByOffer(ctx context.Context, offerID string) ([]domain.Comment, error)
	Get(ctx context.Context, offerID, commentID string) (*domain.Comment, error)
	Create(ctx context.Context, comment *domain.Comment) error
	Update(ctx context.Context, comment *domain.Comment) error
	Delete(ctx context.Context, commentID string) error
}

// FileRepository stores tagged-file metadata. Tag mutation is done through
// Update with the full record (single-record atomicity, no cross-record
// transaction).
type FileRepository interface {
	List(ctx context.Context) ([]domain.TaggedFile, error)
	ListByOffer(ctx context.Context, offerID string) ([]domain.TaggedFile, error)
	GetByID(ctx context.Context, id string) (*domain.TaggedFile, error)
	Create(ctx context.Context, file *domain.TaggedFile) error
	Update(ctx context.Context, file *domain.TaggedFile) error
}

type ObjectStorage interface {
	Save(ctx context.Context, key string, data io.Reader) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}

// SearchTaskRegistry owns the process-wide table of deferred tag searches.
// Submit schedules the scan and returns immediately; Get is idempotent and
// keeps returning the same result once a task completed.
type SearchTaskRegistry interface {
	Submit(ctx context.Context, query domain.SearchQuery) (string, error)
	Get(id string) (*domain.SearchTask, error)
}

// MetricsRecorder is the observability port used by the sweeper and the
// search task registry.
type MetricsRecorder interface {
	RecordSweep(entity string, deleted int)
	RecordSweepFailure(entity string)
	RecordSearchTask(event string)
}
