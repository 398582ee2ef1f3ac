package httpadapter

import (
	"net/http"
)

type commentBody struct {
	Text string `json:"text"`
}

func (rt *Router) listComments(w http.ResponseWriter, r *http.Request) {
	comments, err := rt.comments.ListByOffer(r.Context(), r.PathValue("offerId"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, comments)
}

func (rt *Router) createComment(w http.ResponseWriter, r *http.Request) {
	var body commentBody
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, r, err)
		return
	}

	comment, err := rt.comments.Create(r.Context(), r.PathValue("offerId"), body.Text)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, comment)
}

func (rt *Router) updateComment(w http.ResponseWriter, r *http.Request) {
	var body commentBody
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, r, err)
		return
	}

	comment, err := rt.comments.Update(r.Context(), r.PathValue("offerId"), r.PathValue("id"), body.Text)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message":        "Comment successfully updated",
		"updatedComment": comment,
	})
}

func (rt *Router) deleteComment(w http.ResponseWriter, r *http.Request) {
	comment, err := rt.comments.Delete(r.Context(), r.PathValue("offerId"), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message":        "Comment successfully deleted",
		"deletedComment": comment,
	})
}
