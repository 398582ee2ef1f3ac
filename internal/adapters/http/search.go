package httpadapter

import (
	"net/http"

	"github.com/offerdesk/offerdesk/internal/core/domain"
)

func (rt *Router) submitSearch(w http.ResponseWriter, r *http.Request) {
	var query domain.SearchQuery
	if err := decodeJSON(r, &query); err != nil {
		writeError(w, r, err)
		return
	}

	taskID, err := rt.search.Submit(r.Context(), query)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"taskId": taskID})
}

func (rt *Router) pollSearch(w http.ResponseWriter, r *http.Request) {
	task, err := rt.search.Get(r.PathValue("taskId"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	if task.Status == domain.TaskPending {
		writeJSON(w, http.StatusAccepted, map[string]any{"status": task.Status})
		return
	}
	result := task.Result
	if result == nil {
		result = []domain.FileSummary{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status": task.Status,
		"result": result,
	})
}
