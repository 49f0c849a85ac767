package handler

import (
	"net/http"
	"strconv"

	"github.com/HoneyKnight/foodgram-project-react/apperr"
	"github.com/HoneyKnight/foodgram-project-react/repository"

	"github.com/go-chi/chi/v5"
)

// IngredientHandler serves the read-only ingredient endpoints.
type IngredientHandler struct {
	ingredients *repository.IngredientRepository
}

// NewIngredientHandler creates and returns a new IngredientHandler.
func NewIngredientHandler(ingredients *repository.IngredientRepository) *IngredientHandler {
	return &IngredientHandler{ingredients: ingredients}
}

// List serves GET /ingredients with an optional case-insensitive name
// fragment filter.
func (h *IngredientHandler) List(w http.ResponseWriter, r *http.Request) {
	ingredients, err := h.ingredients.List(r.Context(), r.URL.Query().Get("name"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ingredients)
}

// Get serves GET /ingredients/{id}.
func (h *IngredientHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 32)
	if err != nil {
		writeError(w, apperr.NotFound("ingredient"))
		return
	}
	ingredient, err := h.ingredients.GetByID(r.Context(), uint(id))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ingredient)
}
