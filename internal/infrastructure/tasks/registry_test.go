package tasks

import (
	"context"
	"testing"
	"time"

	"github.com/offerdesk/offerdesk/internal/core/domain"
)

type stubFileRepo struct {
	files []domain.TaggedFile
	err   error
}

func (r *stubFileRepo) List(_ context.Context) ([]domain.TaggedFile, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.files, nil
}

func (r *stubFileRepo) ListByOffer(_ context.Context, _ string) ([]domain.TaggedFile, error) {
	return r.files, nil
}

func (r *stubFileRepo) GetByID(_ context.Context, _ string) (*domain.TaggedFile, error) {
	return nil, domain.NewError(domain.ErrNotFound, "File not found")
}

func (r *stubFileRepo) Create(_ context.Context, _ *domain.TaggedFile) error { return nil }
func (r *stubFileRepo) Update(_ context.Context, _ *domain.TaggedFile) error { return nil }

func taggedFile(id string, uploadedAt time.Time, tags ...string) domain.TaggedFile {
	out := domain.TaggedFile{
		ID:           id,
		OriginalName: id + ".txt",
		URL:          "/assets/" + id + ".txt",
		UploadedAt:   uploadedAt,
	}
	for _, text := range tags {
		out.Tags = append(out.Tags, domain.Tag{ID: text, Text: text})
	}
	return out
}

func waitCompleted(t *testing.T, registry *Registry, id string) *domain.SearchTask {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		task, err := registry.Get(id)
		if err != nil {
			t.Fatalf("get task: %v", err)
		}
		if task.Status == domain.TaskCompleted {
			return task
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("task %s never completed", id)
	return nil
}

func TestSubmitRejectsEmptyTags(t *testing.T) {
	registry := NewRegistry(&stubFileRepo{}, time.Millisecond, nil)

	_, err := registry.Submit(context.Background(), domain.SearchQuery{})
	if !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty tags, got %v", err)
	}
}

func TestGetUnknownTaskIsNotFound(t *testing.T) {
	registry := NewRegistry(&stubFileRepo{}, time.Millisecond, nil)

	_, err := registry.Get("missing")
	if !domain.IsKind(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestTaskIsPendingBeforeDelayElapses(t *testing.T) {
	registry := NewRegistry(&stubFileRepo{}, time.Hour, nil)

	id, err := registry.Submit(context.Background(), domain.SearchQuery{Tags: []string{"urgent"}})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	task, err := registry.Get(id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if task.Status != domain.TaskPending {
		t.Fatalf("expected Pending before delay elapses, got %q", task.Status)
	}
	if task.Result != nil {
		t.Fatalf("pending task must not carry a result")
	}
}

func TestTaskCompletesWithMatchingFiles(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	repo := &stubFileRepo{files: []domain.TaggedFile{
		taggedFile("a", base, "Urgent-Review"),
		taggedFile("b", base.Add(time.Hour), "later"),
	}}
	registry := NewRegistry(repo, time.Millisecond, nil)

	id, err := registry.Submit(context.Background(), domain.SearchQuery{
		Tags:            []string{"urgent"},
		Substring:       true,
		CaseInsensitive: true,
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	task := waitCompleted(t, registry, id)
	if len(task.Result) != 1 || task.Result[0].ID != "a" {
		t.Fatalf("expected only the Urgent-Review file, got %+v", task.Result)
	}
}

func TestCompletedTaskPollsAreIdempotent(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	repo := &stubFileRepo{files: []domain.TaggedFile{
		taggedFile("b", base.Add(time.Hour), "x"),
		taggedFile("a", base, "x"),
		taggedFile("c", base, "x"),
	}}
	registry := NewRegistry(repo, time.Millisecond, nil)

	id, err := registry.Submit(context.Background(), domain.SearchQuery{Tags: []string{"x"}})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	first := waitCompleted(t, registry, id)
	if len(first.Result) != 3 {
		t.Fatalf("expected 3 matches, got %d", len(first.Result))
	}
	// uploadedAt then id.
	if first.Result[0].ID != "a" || first.Result[1].ID != "c" || first.Result[2].ID != "b" {
		t.Fatalf("unexpected result order %+v", first.Result)
	}

	for i := 0; i < 3; i++ {
		again, err := registry.Get(id)
		if err != nil {
			t.Fatalf("repoll: %v", err)
		}
		if len(again.Result) != len(first.Result) {
			t.Fatalf("repoll result changed size")
		}
		for j := range again.Result {
			if again.Result[j] != first.Result[j] {
				t.Fatalf("repoll result differs at %d: %+v vs %+v", j, again.Result[j], first.Result[j])
			}
		}
	}
}

func TestScanFailureCompletesWithEmptyResult(t *testing.T) {
	repo := &stubFileRepo{err: domain.NewError(domain.ErrStorage, "store down")}
	registry := NewRegistry(repo, time.Millisecond, nil)

	id, err := registry.Submit(context.Background(), domain.SearchQuery{Tags: []string{"x"}})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	task := waitCompleted(t, registry, id)
	if len(task.Result) != 0 {
		t.Fatalf("expected empty result on scan failure, got %+v", task.Result)
	}
}

func TestConcurrentTasksRunIndependently(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	repo := &stubFileRepo{files: []domain.TaggedFile{
		taggedFile("a", base, "alpha"),
		taggedFile("b", base, "beta"),
	}}
	registry := NewRegistry(repo, time.Millisecond, nil)
	ctx := context.Background()

	idA, err := registry.Submit(ctx, domain.SearchQuery{Tags: []string{"alpha"}})
	if err != nil {
		t.Fatalf("submit a: %v", err)
	}
	idB, err := registry.Submit(ctx, domain.SearchQuery{Tags: []string{"beta"}})
	if err != nil {
		t.Fatalf("submit b: %v", err)
	}
	if idA == idB {
		t.Fatalf("task ids must be unique")
	}

	taskA := waitCompleted(t, registry, idA)
	taskB := waitCompleted(t, registry, idB)
	if len(taskA.Result) != 1 || taskA.Result[0].ID != "a" {
		t.Fatalf("task a matched wrong files: %+v", taskA.Result)
	}
	if len(taskB.Result) != 1 || taskB.Result[0].ID != "b" {
		t.Fatalf("task b matched wrong files: %+v", taskB.Result)
	}
}
