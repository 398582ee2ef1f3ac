package usecase

import (
	"bytes"
	"context"
	"io"
	"strconv"

	"github.com/offerdesk/offerdesk/internal/core/domain"
)

// In-memory repositories backing the service tests. They reproduce the
// store contract: sequential ids on create, NotFound on missing ids.

func nextID(ids []string) string {
	max := int64(0)
	for _, id := range ids {
		if n, err := strconv.ParseInt(id, 10, 64); err == nil && n > max {
			max = n
		}
	}
	return strconv.FormatInt(max+1, 10)
}

type fakeCustomerRepo struct {
	customers []domain.Customer
	failList  error
}

func (r *fakeCustomerRepo) List(_ context.Context, filter domain.CustomerFilter) ([]domain.Customer, error) {
	if r.failList != nil {
		return nil, r.failList
	}
	out := make([]domain.Customer, 0)
	for _, c := range r.customers {
		if filter.Matches(c) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeCustomerRepo) GetByID(_ context.Context, id string) (*domain.Customer, error) {
	for i := range r.customers {
		if r.customers[i].ID == id {
			c := r.customers[i]
			return &c, nil
		}
	}
	return nil, domain.NewError(domain.ErrNotFound, "Customer not found")
}

func (r *fakeCustomerRepo) GetByIDOrName(ctx context.Context, idOrName string) (*domain.Customer, error) {
	if c, err := r.GetByID(ctx, idOrName); err == nil {
		return c, nil
	}
	for i := range r.customers {
		if r.customers[i].Name == idOrName {
			c := r.customers[i]
			return &c, nil
		}
	}
	return nil, domain.NewError(domain.ErrNotFound, "Customer not found")
}

func (r *fakeCustomerRepo) Create(_ context.Context, customer *domain.Customer) error {
	ids := make([]string, 0, len(r.customers))
	for _, c := range r.customers {
		ids = append(ids, c.ID)
	}
	customer.ID = nextID(ids)
	r.customers = append(r.customers, *customer)
	return nil
}

func (r *fakeCustomerRepo) Update(_ context.Context, customer *domain.Customer) error {
	for i := range r.customers {
		if r.customers[i].ID == customer.ID {
			r.customers[i] = *customer
			return nil
		}
	}
	return domain.NewError(domain.ErrNotFound, "Customer not found")
}

func (r *fakeCustomerRepo) Delete(_ context.Context, id string) error {
	for i := range r.customers {
		if r.customers[i].ID == id {
			r.customers = append(r.customers[:i], r.customers[i+1:]...)
			return nil
		}
	}
	return domain.NewError(domain.ErrNotFound, "Customer not found")
}

func (r *fakeCustomerRepo) ReplaceAll(_ context.Context, customers []domain.Customer) error {
	r.customers = append([]domain.Customer(nil), customers...)
	return nil
}

type fakeOfferRepo struct {
	offers []domain.Offer
}

func (r *fakeOfferRepo) List(_ context.Context, filter domain.OfferFilter) ([]domain.Offer, error) {
	out := make([]domain.Offer, 0)
	for _, o := range r.offers {
		if filter.Matches(o) {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *fakeOfferRepo) GetByID(_ context.Context, id string) (*domain.Offer, error) {
	for i := range r.offers {
		if r.offers[i].ID == id {
			o := r.offers[i]
			return &o, nil
		}
	}
	return nil, domain.NewError(domain.ErrNotFound, "Offer not found")
}

func (r *fakeOfferRepo) Create(_ context.Context, offer *domain.Offer) error {
	ids := make([]string, 0, len(r.offers))
	for _, o := range r.offers {
		ids = append(ids, o.ID)
	}
	offer.ID = nextID(ids)
	r.offers = append(r.offers, *offer)
	return nil
}

func (r *fakeOfferRepo) Update(_ context.Context, offer *domain.Offer) error {
	for i := range r.offers {
		if r.offers[i].ID == offer.ID {
			r.offers[i] = *offer
			return nil
		}
	}
	return domain.NewError(domain.ErrNotFound, "Offer not found")
}

func (r *fakeOfferRepo) Delete(_ context.Context, id string) error {
	for i := range r.offers {
		if r.offers[i].ID == id {
			r.offers = append(r.offers[:i], r.offers[i+1:]...)
			return nil
		}
	}
	return domain.NewError(domain.ErrNotFound, "Offer not found")
}

func (r *fakeOfferRepo) ReplaceAll(_ context.Context, offers []domain.Offer) error {
	r.offers = append([]domain.Offer(nil), offers...)
	return nil
}

type fakeCommentRepo struct {
	comments []domain.Comment
}

func (r *fakeCommentRepo) List(_ context.Context) ([]domain.Comment, error) {
	return append([]domain.Comment(nil), r.comments...), nil
}

func (r *fakeCommentRepo) ListByOffer(_ context.Context, offerID string) ([]domain.Comment, error) {
	out := make([]domain.Comment, 0)
	for _, c := range r.comments {
		if c.OfferID == offerID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeCommentRepo) Get(_ context.Context, offerID, commentID string) (*domain.Comment, error) {
	for i := range r.comments {
		if r.comments[i].ID == commentID && r.comments[i].OfferID == offerID {
			c := r.comments[i]
			return &c, nil
		}
	}
	return nil, domain.NewError(domain.ErrNotFound, "Comment not found")
}

func (r *fakeCommentRepo) Create(_ context.Context, comment *domain.Comment) error {
	ids := make([]string, 0, len(r.comments))
	for _, c := range r.comments {
		ids = append(ids, c.ID)
	}
	comment.ID = nextID(ids)
	r.comments = append(r.comments, *comment)
	return nil
}

func (r *fakeCommentRepo) Update(_ context.Context, comment *domain.Comment) error {
	for i := range r.comments {
		if r.comments[i].ID == comment.ID {
			r.comments[i] = *comment
			return nil
		}
	}
	return domain.NewError(domain.ErrNotFound, "Comment not found")
}

func (r *fakeCommentRepo) Delete(_ context.Context, commentID string) error {
	for i := range r.comments {
		if r.comments[i].ID == commentID {
			r.comments = append(r.comments[:i], r.comments[i+1:]...)
			return nil
		}
	}
	return domain.NewError(domain.ErrNotFound, "Comment not found")
}

type fakeFileRepo struct {
	files []domain.TaggedFile
}

func (r *fakeFileRepo) List(_ context.Context) ([]domain.TaggedFile, error) {
	return append([]domain.TaggedFile(nil), r.files...), nil
}

func (r *fakeFileRepo) ListByOffer(_ context.Context, offerID string) ([]domain.TaggedFile, error) {
	out := make([]domain.TaggedFile, 0)
	for _, f := range r.files {
		if f.OfferID == offerID {
			out = append(out, f)
		}
	}
	return out, nil
}

func (r *fakeFileRepo) GetByID(_ context.Context, id string) (*domain.TaggedFile, error) {
	for i := range r.files {
		if r.files[i].ID == id {
			f := r.files[i]
			return &f, nil
		}
	}
	return nil, domain.NewError(domain.ErrNotFound, "File not found")
}

func (r *fakeFileRepo) Create(_ context.Context, file *domain.TaggedFile) error {
	r.files = append(r.files, *file)
	return nil
}

func (r *fakeFileRepo) Update(_ context.Context, file *domain.TaggedFile) error {
	for i := range r.files {
		if r.files[i].ID == file.ID {
			r.files[i] = *file
			return nil
		}
	}
	return domain.NewError(domain.ErrNotFound, "File not found")
}

type fakeObjectStorage struct {
	saved map[string][]byte
}

func (s *fakeObjectStorage) Save(_ context.Context, key string, data io.Reader) error {
	if s.saved == nil {
		s.saved = make(map[string][]byte)
	}
	content, err := io.ReadAll(data)
	if err != nil {
		return err
	}
	s.saved[key] = content
	return nil
}

func (s *fakeObjectStorage) Open(_ context.Context, key string) (io.ReadCloser, error) {
	content, ok := s.saved[key]
	if !ok {
		return nil, domain.NewError(domain.ErrNotFound, "File not found")
	}
	return io.NopCloser(bytes.NewReader(content)), nil
}
