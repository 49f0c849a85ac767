package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/HoneyKnight/foodgram-project-react/apperr"
	"github.com/HoneyKnight/foodgram-project-react/config"
	"github.com/HoneyKnight/foodgram-project-react/middleware"
	"github.com/HoneyKnight/foodgram-project-react/models"
	"github.com/HoneyKnight/foodgram-project-react/repository"
	"github.com/HoneyKnight/foodgram-project-react/service"

	"github.com/go-chi/chi/v5"
)

// RecipeHandler serves the recipe endpoints, the favorite/cart toggles
// and the shopping-list download.
type RecipeHandler struct {
	recipes   *service.RecipeService
	relations *service.RelationService
	shopping  *service.ShoppingService
	cfg       *config.Config
}

// NewRecipeHandler creates and returns a new RecipeHandler.
func NewRecipeHandler(
	recipes *service.RecipeService,
	relations *service.RelationService,
	shopping *service.ShoppingService,
	cfg *config.Config,
) *RecipeHandler {
	return &RecipeHandler{recipes: recipes, relations: relations, shopping: shopping, cfg: cfg}
}

func requesterID(r *http.Request) *uint {
	if id, ok := middleware.UserID(r); ok {
		return &id
	}
	return nil
}

func pathID(r *http.Request) (uint, error) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 32)
	if err != nil {
		return 0, apperr.NotFound("recipe")
	}
	return uint(id), nil
}

func boolParam(r *http.Request, name string) bool {
	v := r.URL.Query().Get(name)
	return v == "1" || v == "true" || v == "True"
}

// List serves GET /recipes with author/tag/membership filters.
func (h *RecipeHandler) List(w http.ResponseWriter, r *http.Request) {
	page := parsePage(r, h.cfg.DefaultPageLimit)
	filters := repository.RecipeFilters{
		TagSlugs:       r.URL.Query()["tags"],
		Favorited:      boolParam(r, "is_favorited"),
		InShoppingCart: boolParam(r, "is_in_shopping_cart"),
		RequesterID:    requesterID(r),
		Offset:         page.offset(),
		Limit:          page.Limit,
	}
	for _, raw := range r.URL.Query()["author"] {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			writeError(w, apperr.Validation("author", "must be an id"))
			return
		}
		filters.AuthorIDs = append(filters.AuthorIDs, uint(id))
	}

	recipes, total, err := h.recipes.List(r.Context(), filters)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, paginated(r, page, total, newRecipeViews(recipes)))
}

// Get serves GET /recipes/{id}.
func (h *RecipeHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	recipe, err := h.recipes.Get(r.Context(), requesterID(r), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newRecipeView(*recipe))
}

type ingredientAmountRequest struct {
	ID     uint `json:"id" validate:"required"`
	Amount int  `json:"amount" validate:"required"`
}

type recipeRequest struct {
	Name        string                    `json:"name" validate:"required,max=100"`
	Text        string                    `json:"text" validate:"required,max=500"`
	CookingTime int                       `json:"cooking_time" validate:"required"`
	Image       string                    `json:"image"`
	Tags        []uint                    `json:"tags"`
	Ingredients []ingredientAmountRequest `json:"ingredients"`
}

func (req recipeRequest) toInput() service.RecipeInput {
	lines := make([]service.IngredientAmountInput, 0, len(req.Ingredients))
	for _, l := range req.Ingredients {
		lines = append(lines, service.IngredientAmountInput{ID: l.ID, Amount: l.Amount})
	}
	return service.RecipeInput{
		Name:        req.Name,
		Image:       req.Image,
		Text:        req.Text,
		CookingTime: req.CookingTime,
		TagIDs:      req.Tags,
		Ingredients: lines,
	}
}

// Create serves POST /recipes.
func (h *RecipeHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserID(r)

	var req recipeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperr.Validation("", "invalid JSON body"))
		return
	}
	if err := validatePayload(req); err != nil {
		writeError(w, err)
		return
	}

	recipe, err := h.recipes.Create(r.Context(), userID, req.toInput())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, newRecipeView(*recipe))
}

// Update serves PATCH /recipes/{id}.
func (h *RecipeHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserID(r)
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req recipeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperr.Validation("", "invalid JSON body"))
		return
	}
	if err := validatePayload(req); err != nil {
		writeError(w, err)
		return
	}

	recipe, err := h.recipes.Update(r.Context(), userID, id, req.toInput())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newRecipeView(*recipe))
}

// Delete serves DELETE /recipes/{id}.
func (h *RecipeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserID(r)
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.recipes.Delete(r.Context(), userID, id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Favorite serves POST /recipes/{id}/favorite.
func (h *RecipeHandler) Favorite(w http.ResponseWriter, r *http.Request) {
	h.addRelation(w, r, h.relations.AddFavorite)
}

// Unfavorite serves DELETE /recipes/{id}/favorite.
func (h *RecipeHandler) Unfavorite(w http.ResponseWriter, r *http.Request) {
	h.removeRelation(w, r, h.relations.RemoveFavorite)
}

// AddToCart serves POST /recipes/{id}/shopping_cart.
func (h *RecipeHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	h.addRelation(w, r, h.relations.AddToCart)
}

// RemoveFromCart serves DELETE /recipes/{id}/shopping_cart.
func (h *RecipeHandler) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	h.removeRelation(w, r, h.relations.RemoveFromCart)
}

func (h *RecipeHandler) addRelation(w http.ResponseWriter, r *http.Request, add func(context.Context, uint, uint) (*models.Recipe, error)) {
	userID, _ := middleware.UserID(r)
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	recipe, err := add(r.Context(), userID, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, newRecipeShortView(*recipe))
}

func (h *RecipeHandler) removeRelation(w http.ResponseWriter, r *http.Request, remove func(context.Context, uint, uint) error) {
	userID, _ := middleware.UserID(r)
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := remove(r.Context(), userID, id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DownloadShoppingCart serves GET /recipes/download_shopping_cart as a
// plain-text attachment.
func (h *RecipeHandler) DownloadShoppingCart(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserID(r)
	content, err := h.shopping.Export(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", h.cfg.ShoppingListFilename))
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(content))
}
