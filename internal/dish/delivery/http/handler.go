package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/tair/confusion-server/internal/dish/domain"
	"github.com/tair/confusion-server/internal/dish/usecase/command"
	"github.com/tair/confusion-server/internal/dish/usecase/query"
	"github.com/tair/confusion-server/pkg/logger"
	"github.com/tair/confusion-server/pkg/metrics"
	"github.com/tair/confusion-server/pkg/middleware"
)

// DishHandler handles HTTP requests for the dish catalog
type DishHandler struct {
	createHandler *command.CreateDishHandler
	getHandler    *query.GetDishHandler
	listHandler   *query.ListDishesHandler
	metrics       *metrics.HTTPMetrics
}

// NewDishHandlerWithDI creates a new dish handler from injected use cases
func NewDishHandlerWithDI(
	createHandler *command.CreateDishHandler,
	getHandler *query.GetDishHandler,
	listHandler *query.ListDishesHandler,
	m *metrics.HTTPMetrics,
) *DishHandler {
	return &DishHandler{
		createHandler: createHandler,
		getHandler:    getHandler,
		listHandler:   listHandler,
		metrics:       m,
	}
}

// ListDishes handles GET /dishes
func (h *DishHandler) ListDishes(w http.ResponseWriter, r *http.Request) {
	featuredOnly := r.URL.Query().Get("featured") == "true"

	dishes, err := h.listHandler.Handle(r.Context(), featuredOnly)
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to list dishes")
		h.respondError(w, http.StatusInternalServerError, "Failed to list dishes")
		return
	}
	h.respondJSON(w, http.StatusOK, dishes)
}

// GetDish handles GET /dishes/{dishId}
func (h *DishHandler) GetDish(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["dishId"]

	dish, err := h.getHandler.Handle(r.Context(), query.GetDishQuery{ID: id})
	if err != nil {
		if errors.Is(err, domain.ErrDishNotFound) {
			h.respondError(w, http.StatusNotFound, "Dish "+id+" not found")
			return
		}
		logger.Error(r.Context()).Err(err).Str("dish_id", id).Msg("Failed to get dish")
		h.respondError(w, http.StatusInternalServerError, "Failed to get dish")
		return
	}
	h.respondJSON(w, http.StatusOK, dish)
}

// CreateDish handles POST /dishes (admin only)
func (h *DishHandler) CreateDish(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string  `json:"name"`
		Description string  `json:"description"`
		Image       string  `json:"image"`
		Category    string  `json:"category"`
		Label       string  `json:"label"`
		Price       float64 `json:"price"`
		Featured    bool    `json:"featured"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	dish, err := h.createHandler.Handle(r.Context(), command.CreateDishCommand{
		Name:        req.Name,
		Description: req.Description,
		Image:       req.Image,
		Category:    req.Category,
		Label:       req.Label,
		Price:       req.Price,
		Featured:    req.Featured,
	})
	if err != nil {
		if errors.Is(err, command.ErrInvalidDish) {
			h.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		logger.Error(r.Context()).Err(err).Msg("Failed to create dish")
		h.respondError(w, http.StatusInternalServerError, "Failed to create dish")
		return
	}
	h.respondJSON(w, http.StatusOK, dish)
}

func (h *DishHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (h *DishHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}

// RegisterRoutes registers all dish routes
func (h *DishHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/dishes", h.metrics.Wrap("/dishes", h.ListDishes)).Methods("GET")
	router.HandleFunc("/dishes", h.metrics.Wrap("/dishes", middleware.AdminMiddleware(h.CreateDish))).Methods("POST")
	router.HandleFunc("/dishes/{dishId}", h.metrics.Wrap("/dishes/{dishId}", h.GetDish)).Methods("GET")
}
