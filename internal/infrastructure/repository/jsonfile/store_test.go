package jsonfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/offerdesk/offerdesk/internal/core/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return store
}

func TestCustomerCreateAssignsSequentialIDs(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first := &domain.Customer{Name: "Alpha"}
	if err := store.Customers.Create(ctx, first); err != nil {
		t.Fatalf("create: %v", err)
	}
	second := &domain.Customer{Name: "Beta"}
	if err := store.Customers.Create(ctx, second); err != nil {
		t.Fatalf("create: %v", err)
	}

	if first.ID != "1" || second.ID != "2" {
		t.Fatalf("expected ids 1 and 2, got %q and %q", first.ID, second.ID)
	}
}

func TestCustomerRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	created := &domain.Customer{
		Name:      "Acme GmbH",
		Email:     "info@acme.test",
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	if err := store.Customers.Create(ctx, created); err != nil {
		t.Fatalf("create: %v", err)
	}

	loaded, err := store.Customers.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if loaded.Name != created.Name || loaded.Email != created.Email {
		t.Fatalf("round trip mismatch: %+v vs %+v", loaded, created)
	}

	byName, err := store.Customers.GetByIDOrName(ctx, "acme gmbh")
	if err != nil {
		t.Fatalf("get by name: %v", err)
	}
	if byName.ID != created.ID {
		t.Fatalf("name lookup is case-insensitive, got %+v", byName)
	}
}

func TestCustomerDeleteThenGetIsNotFound(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	customer := &domain.Customer{Name: "Gone"}
	if err := store.Customers.Create(ctx, customer); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := store.Customers.Delete(ctx, customer.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if _, err := store.Customers.GetByID(ctx, customer.ID); !domain.IsKind(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := store.Customers.Delete(ctx, customer.ID); !domain.IsKind(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestIDSequenceSkipsNonNumericIDs(t *testing.T) {
	if got := nextSequentialID([]string{"1", "7", "uuid-like", "3"}); got != "8" {
		t.Fatalf("expected 8, got %q", got)
	}
	if got := nextSequentialID(nil); got != "1" {
		t.Fatalf("expected 1 for empty set, got %q", got)
	}
}

func TestOfferFilterAppliedOnList(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for _, offer := range []domain.Offer{
		{Name: "Big Deal", Price: 100, Status: domain.StatusDraft},
		{Name: "Small Deal", Price: 250, Status: domain.StatusActive},
	} {
		o := offer
		if err := store.Offers.Create(ctx, &o); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	price := 250.0
	listed, err := store.Offers.List(ctx, domain.OfferFilter{Price: &price})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(listed) != 1 || listed[0].Name != "Small Deal" {
		t.Fatalf("expected exact price match, got %+v", listed)
	}

	listed, err = store.Offers.List(ctx, domain.OfferFilter{Name: "deal"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(listed) != 2 {
		t.Fatalf("expected substring name match on both, got %d", len(listed))
	}
}

func TestCommentsScopedToOffer(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for _, comment := range []domain.Comment{
		{OfferID: "1", Text: "one"},
		{OfferID: "2", Text: "two"},
	} {
		c := comment
		if err := store.Comments.Create(ctx, &c); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	comments, err := store.Comments.ListByOffer(ctx, "1")
	if err != nil {
		t.Fatalf("list by offer: %v", err)
	}
	if len(comments) != 1 || comments[0].Text != "one" {
		t.Fatalf("expected only offer 1 comments, got %+v", comments)
	}

	if _, err := store.Comments.Get(ctx, "2", comments[0].ID); !domain.IsKind(err, domain.ErrNotFound) {
		t.Fatalf("comment lookup keyed by offer and id, got %v", err)
	}
}

func TestFilesSortedByUploadTimeThenID(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for _, file := range []domain.TaggedFile{
		{ID: "b", OfferID: "1", UploadedAt: base},
		{ID: "a", OfferID: "1", UploadedAt: base},
		{ID: "c", OfferID: "1", UploadedAt: base.Add(-time.Hour)},
	} {
		f := file
		if err := store.Files.Create(ctx, &f); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	files, err := store.Files.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if files[0].ID != "c" || files[1].ID != "a" || files[2].ID != "b" {
		got := []string{files[0].ID, files[1].ID, files[2].ID}
		t.Fatalf("expected order c,a,b, got %v", got)
	}
}

func TestSaveIsAtomic(t *testing.T) {
	dir := t.TempDir()
	store, err := New(dir)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	ctx := context.Background()

	customer := &domain.Customer{Name: "Alpha"}
	if err := store.Customers.Create(ctx, customer); err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "customers.json")); err != nil {
		t.Fatalf("expected customers.json on disk: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "customers.json.tmp")); !os.IsNotExist(err) {
		t.Fatalf("temp file must not survive a save")
	}
}
