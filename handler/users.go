package handler

import (
	"net/http"
	"strconv"

	"github.com/HoneyKnight/foodgram-project-react/apperr"
	"github.com/HoneyKnight/foodgram-project-react/config"
	"github.com/HoneyKnight/foodgram-project-react/middleware"
	"github.com/HoneyKnight/foodgram-project-react/repository"
	"github.com/HoneyKnight/foodgram-project-react/service"

	"github.com/go-chi/chi/v5"
)

// UserHandler serves user profiles and the subscription endpoints.
type UserHandler struct {
	users     *repository.UserRepository
	relations *service.RelationService
	cfg       *config.Config
}

// NewUserHandler creates and returns a new UserHandler.
func NewUserHandler(users *repository.UserRepository, relations *service.RelationService, cfg *config.Config) *UserHandler {
	return &UserHandler{users: users, relations: relations, cfg: cfg}
}

func userPathID(r *http.Request) (uint, error) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 32)
	if err != nil {
		return 0, apperr.NotFound("user")
	}
	return uint(id), nil
}

// Me serves GET /users/me.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserID(r)
	user, err := h.users.GetUserByID(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newUserView(*user, false))
}

// Get serves GET /users/{id}, with is_subscribed relative to the
// requester.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := userPathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	user, err := h.users.GetUserByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	subscribed, err := h.relations.IsSubscribed(r.Context(), requesterID(r), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newUserView(*user, subscribed))
}

func recipesLimit(r *http.Request) int {
	if v, err := strconv.Atoi(r.URL.Query().Get("recipes_limit")); err == nil && v > 0 {
		return v
	}
	return 0
}

// Subscribe serves POST /users/{id}/subscribe.
func (h *UserHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserID(r)
	authorID, err := userPathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	sub, err := h.relations.Subscribe(r.Context(), userID, authorID, recipesLimit(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, newSubscriptionView(*sub))
}

// Unsubscribe serves DELETE /users/{id}/subscribe.
func (h *UserHandler) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserID(r)
	authorID, err := userPathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.relations.Unsubscribe(r.Context(), userID, authorID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Subscriptions serves GET /users/subscriptions.
func (h *UserHandler) Subscriptions(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserID(r)
	page := parsePage(r, h.cfg.DefaultPageLimit)

	subs, total, err := h.relations.Subscriptions(r.Context(), userID, page.offset(), page.Limit, recipesLimit(r))
	if err != nil {
		writeError(w, err)
		return
	}

	views := make([]SubscriptionView, 0, len(subs))
	for _, sub := range subs {
		views = append(views, newSubscriptionView(sub))
	}
	writeJSON(w, http.StatusOK, paginated(r, page, total, views))
}
