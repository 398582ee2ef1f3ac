package tasks

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/offerdesk/offerdesk/internal/core/domain"
	"github.com/offerdesk/offerdesk/internal/core/ports"
)

const scanTimeout = time.Minute

// Registry is the process-owned table of deferred tag searches. Each
// submission schedules an independent full scan after a fixed delay, so a
// client can disconnect and poll the same task later. Completed tasks are
// kept for the lifetime of the process; there is no eviction.
type Registry struct {
	files   ports.FileRepository
	delay   time.Duration
	metrics ports.MetricsRecorder

	mu    sync.Mutex
	tasks map[string]*domain.SearchTask
}

func NewRegistry(files ports.FileRepository, delay time.Duration, metrics ports.MetricsRecorder) *Registry {
	return &Registry{
		files:   files,
		delay:   delay,
		metrics: metrics,
		tasks:   make(map[string]*domain.SearchTask),
	}
}

// Submit validates the query, records a Pending task and schedules the scan
// to run after the configured delay. It returns the task id immediately.
func (r *Registry) Submit(_ context.Context, query domain.SearchQuery) (string, error) {
	if len(query.Tags) == 0 {
		return "", domain.NewError(domain.ErrInvalidInput, "tags must be a non-empty list")
	}

	id := uuid.NewString()
	r.mu.Lock()
	r.tasks[id] = &domain.SearchTask{
		ID:     id,
		Status: domain.TaskPending,
		Query:  query,
	}
	r.mu.Unlock()

	time.AfterFunc(r.delay, func() { r.run(id, query) })
	r.recordTask("submitted")
	slog.Info("search_task_submitted", "task_id", id, "tags", query.Tags)
	return id, nil
}

// run performs the full scan and flips the task to Completed exactly once.
// A scan failure is logged and the task completes with an empty result;
// there is no failure state in the task lifecycle.
func (r *Registry) run(id string, query domain.SearchQuery) {
	ctx, cancel := context.WithTimeout(context.Background(), scanTimeout)
	defer cancel()

	result := make([]domain.FileSummary, 0)
	files, err := r.files.List(ctx)
	if err != nil {
		slog.Error("search_task_scan_failed", "task_id", id, "error", err)
	} else {
		matched := make([]domain.TaggedFile, 0)
		for _, file := range files {
			if query.Matches(file) {
				matched = append(matched, file)
			}
		}
		sort.Slice(matched, func(i, j int) bool {
			if !matched[i].UploadedAt.Equal(matched[j].UploadedAt) {
				return matched[i].UploadedAt.Before(matched[j].UploadedAt)
			}
			return matched[i].ID < matched[j].ID
		})
		for _, file := range matched {
			result = append(result, file.Summary())
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	task, ok := r.tasks[id]
	if !ok || task.Status == domain.TaskCompleted {
		return
	}
	task.Status = domain.TaskCompleted
	task.Result = result
	r.recordTask("completed")
	slog.Info("search_task_completed", "task_id", id, "matches", len(result))
}

// Get returns a snapshot of the task. Polling a completed task any number
// of times returns the identical result.
func (r *Registry) Get(id string) (*domain.SearchTask, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	task, ok := r.tasks[id]
	if !ok {
		return nil, domain.NewError(domain.ErrNotFound, "Task not found")
	}

	snapshot := &domain.SearchTask{
		ID:     task.ID,
		Status: task.Status,
		Query:  task.Query,
	}
	if task.Result != nil {
		snapshot.Result = make([]domain.FileSummary, len(task.Result))
		copy(snapshot.Result, task.Result)
	}
	return snapshot, nil
}

func (r *Registry) recordTask(event string) {
	if r.metrics != nil {
		r.metrics.RecordSearchTask(event)
	}
}
