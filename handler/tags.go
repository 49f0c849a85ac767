package handler

import (
	"net/http"
	"strconv"

	"github.com/HoneyKnight/foodgram-project-react/apperr"
	"github.com/HoneyKnight/foodgram-project-react/repository"

	"github.com/go-chi/chi/v5"
)

// TagHandler serves the read-only tag endpoints.
type TagHandler struct {
	tags *repository.TagRepository
}

// NewTagHandler creates and returns a new TagHandler.
func NewTagHandler(tags *repository.TagRepository) *TagHandler {
	return &TagHandler{tags: tags}
}

// List serves GET /tags.
func (h *TagHandler) List(w http.ResponseWriter, r *http.Request) {
	tags, err := h.tags.All(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tags)
}

// Get serves GET /tags/{id}.
func (h *TagHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 32)
	if err != nil {
		writeError(w, apperr.NotFound("tag"))
		return
	}
	tag, err := h.tags.GetByID(r.Context(), uint(id))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tag)
}
