package httpadapter

import (
	"net/http"

	"github.com/offerdesk/offerdesk/internal/core/domain"
)

const maxUploadMemory = 10 << 20

func (rt *Router) uploadFile(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		writeError(w, r, domain.NewError(domain.ErrInvalidInput, "Invalid multipart form"))
		return
	}
	part, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, r, domain.NewError(domain.ErrInvalidInput, "Multipart field 'file' is required"))
		return
	}
	defer part.Close()

	file, err := rt.files.Upload(r.Context(), r.PathValue("offerId"), header.Filename, part)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, file)
}

func (rt *Router) listFiles(w http.ResponseWriter, r *http.Request) {
	summaries, err := rt.files.ListByOffer(r.Context(), r.PathValue("offerId"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summaries)
}

type tagBody struct {
	Text string `json:"text"`
}

func (rt *Router) listTags(w http.ResponseWriter, r *http.Request) {
	tags, err := rt.files.ListTags(r.Context(), r.PathValue("offerId"), r.PathValue("fileId"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tags)
}

func (rt *Router) addTag(w http.ResponseWriter, r *http.Request) {
	var body tagBody
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, r, err)
		return
	}

	tag, err := rt.files.AddTag(r.Context(), r.PathValue("offerId"), r.PathValue("fileId"), body.Text)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, tag)
}

func (rt *Router) updateTag(w http.ResponseWriter, r *http.Request) {
	var body tagBody
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, r, err)
		return
	}

	tag, err := rt.files.UpdateTag(r.Context(), r.PathValue("offerId"), r.PathValue("fileId"), r.PathValue("tagId"), body.Text)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tag)
}

func (rt *Router) deleteTag(w http.ResponseWriter, r *http.Request) {
	tag, err := rt.files.DeleteTag(r.Context(), r.PathValue("offerId"), r.PathValue("fileId"), r.PathValue("tagId"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tag)
}
