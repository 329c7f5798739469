package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/tair/confusion-server/internal/favorite/domain"
	"github.com/tair/confusion-server/internal/favorite/usecase/command"
	"github.com/tair/confusion-server/internal/favorite/usecase/query"
	"github.com/tair/confusion-server/pkg/logger"
	"github.com/tair/confusion-server/pkg/metrics"
	"github.com/tair/confusion-server/pkg/middleware"
)

// FavoritesHandler handles HTTP requests for the caller's favorites
type FavoritesHandler struct {
	// Command handlers
	addHandler    *command.AddDishesHandler
	removeHandler *command.RemoveDishHandler
	clearHandler  *command.ClearFavoritesHandler

	// Query handlers
	getHandler *query.GetFavoritesHandler

	repo    domain.FavoritesRepository
	metrics *metrics.HTTPMetrics
}

// NewFavoritesHandlerWithDI creates a new favorites handler from injected use cases
func NewFavoritesHandlerWithDI(
	addHandler *command.AddDishesHandler,
	removeHandler *command.RemoveDishHandler,
	clearHandler *command.ClearFavoritesHandler,
	getHandler *query.GetFavoritesHandler,
	repo domain.FavoritesRepository,
	m *metrics.HTTPMetrics,
) *FavoritesHandler {
	return &FavoritesHandler{
		addHandler:    addHandler,
		removeHandler: removeHandler,
		clearHandler:  clearHandler,
		getHandler:    getHandler,
		repo:          repo,
		metrics:       m,
	}
}

type dishRef struct {
	ID string `json:"_id"`
}

// ListMine handles GET /favorites
func (h *FavoritesHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	p, _ := middleware.PrincipalFromContext(r.Context())

	fav, err := h.getHandler.Handle(r.Context(), p.UserID)
	if err != nil {
		h.respondStoreError(w, r, err)
		return
	}
	// A user without favorites gets null
	h.respondJSON(w, http.StatusOK, fav)
}

// AddMany handles POST /favorites with a body of [{"_id": ...}, ...]
func (h *FavoritesHandler) AddMany(w http.ResponseWriter, r *http.Request) {
	var refs []dishRef
	if err := json.NewDecoder(r.Body).Decode(&refs); err != nil {
		h.respondError(w, http.StatusBadRequest, "Request body must be an array of dishes")
		return
	}

	ids := make([]string, 0, len(refs))
	for _, ref := range refs {
		ids = append(ids, ref.ID)
	}
	h.add(w, r, ids)
}

// AddOne handles POST /favorites/{dishId}
func (h *FavoritesHandler) AddOne(w http.ResponseWriter, r *http.Request) {
	h.add(w, r, []string{mux.Vars(r)["dishId"]})
}

func (h *FavoritesHandler) add(w http.ResponseWriter, r *http.Request, ids []string) {
	p, _ := middleware.PrincipalFromContext(r.Context())

	fav, err := h.addHandler.Handle(r.Context(), command.AddDishesCommand{
		UserID:  p.UserID,
		DishIDs: ids,
	})
	if err != nil {
		if errors.Is(err, command.ErrEmptyDishID) {
			h.respondError(w, http.StatusBadRequest, "Every dish must carry an _id")
			return
		}
		h.respondStoreError(w, r, err)
		return
	}

	h.updateDocumentsMetric(r.Context())
	h.respondJSON(w, http.StatusOK, fav)
}

// RemoveOne handles DELETE /favorites/{dishId}
func (h *FavoritesHandler) RemoveOne(w http.ResponseWriter, r *http.Request) {
	p, _ := middleware.PrincipalFromContext(r.Context())
	dishID := mux.Vars(r)["dishId"]

	fav, err := h.removeHandler.Handle(r.Context(), command.RemoveDishCommand{
		UserID: p.UserID,
		DishID: dishID,
	})
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrFavoritesNotFound):
		h.respondError(w, http.StatusNotFound, "Favorites of user "+p.Username+" not found")
		return
	case errors.Is(err, domain.ErrDishNotFavorite):
		h.respondError(w, http.StatusNotFound, "Dish "+dishID+" not found on "+p.Username+" favorites")
		return
	default:
		h.respondStoreError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, fav)
}

// ClearMine handles DELETE /favorites
func (h *FavoritesHandler) ClearMine(w http.ResponseWriter, r *http.Request) {
	p, _ := middleware.PrincipalFromContext(r.Context())

	removed, err := h.clearHandler.Handle(r.Context(), p.UserID)
	if err != nil {
		h.respondStoreError(w, r, err)
		return
	}

	h.updateDocumentsMetric(r.Context())
	h.respondJSON(w, http.StatusOK, removed)
}

// Unsupported rejects the verbs the favorites resource does not offer
func (h *FavoritesHandler) Unsupported(w http.ResponseWriter, r *http.Request) {
	h.respondError(w, http.StatusForbidden, r.Method+" operation not supported on "+r.URL.Path)
}

// updateDocumentsMetric refreshes the favorites documents gauge
func (h *FavoritesHandler) updateDocumentsMetric(ctx context.Context) {
	count, err := h.repo.Count(ctx)
	if err != nil {
		logger.Warn(ctx).Err(err).Msg("Failed to count favorites")
		return
	}
	h.metrics.SetDocuments("favorites", count)
}

// respondStoreError logs an unexpected failure and hides its details
func (h *FavoritesHandler) respondStoreError(w http.ResponseWriter, r *http.Request, err error) {
	logger.Error(r.Context()).
		Err(err).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Msg("Favorites request failed")
	h.respondError(w, http.StatusInternalServerError, "Internal server error")
}

// respondJSON sends a JSON response
func (h *FavoritesHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError sends an error response
func (h *FavoritesHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}

// RegisterRoutes registers all favorites routes. Every route authenticates
// first, including the unsupported ones.
func (h *FavoritesHandler) RegisterRoutes(router *mux.Router) {
	auth := middleware.AuthMiddleware

	router.HandleFunc("/favorites", h.metrics.Wrap("/favorites", auth(h.ListMine))).Methods("GET")
	router.HandleFunc("/favorites", h.metrics.Wrap("/favorites", auth(h.AddMany))).Methods("POST")
	router.HandleFunc("/favorites", h.metrics.Wrap("/favorites", auth(h.Unsupported))).Methods("PUT")
	router.HandleFunc("/favorites", h.metrics.Wrap("/favorites", auth(h.ClearMine))).Methods("DELETE")

	router.HandleFunc("/favorites/{dishId}", h.metrics.Wrap("/favorites/{dishId}", auth(h.Unsupported))).Methods("GET")
	router.HandleFunc("/favorites/{dishId}", h.metrics.Wrap("/favorites/{dishId}", auth(h.AddOne))).Methods("POST")
	router.HandleFunc("/favorites/{dishId}", h.metrics.Wrap("/favorites/{dishId}", auth(h.Unsupported))).Methods("PUT")
	router.HandleFunc("/favorites/{dishId}", h.metrics.Wrap("/favorites/{dishId}", auth(h.RemoveOne))).Methods("DELETE")
}
