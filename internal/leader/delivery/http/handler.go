package http

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/tair/confusion-server/internal/leader/usecase/command"
	"github.com/tair/confusion-server/internal/leader/usecase/query"
	"github.com/tair/confusion-server/pkg/logger"
	"github.com/tair/confusion-server/pkg/metrics"
	"github.com/tair/confusion-server/pkg/middleware"
)

// LeaderHandler handles HTTP requests for leaders
type LeaderHandler struct {
	// Command handlers
	createHandler *command.CreateLeaderHandler
	updateHandler *command.UpdateLeaderHandler
	deleteHandler *command.DeleteLeaderHandler

	// Query handlers
	getHandler  *query.GetLeaderHandler
	listHandler *query.ListLeadersHandler

	metrics *metrics.HTTPMetrics
}

// NewLeaderHandlerWithDI creates a new leader handler from injected use cases
func NewLeaderHandlerWithDI(
	createHandler *command.CreateLeaderHandler,
	updateHandler *command.UpdateLeaderHandler,
	deleteHandler *command.DeleteLeaderHandler,
	getHandler *query.GetLeaderHandler,
	listHandler *query.ListLeadersHandler,
	m *metrics.HTTPMetrics,
) *LeaderHandler {
	return &LeaderHandler{
		createHandler: createHandler,
		updateHandler: updateHandler,
		deleteHandler: deleteHandler,
		getHandler:    getHandler,
		listHandler:   listHandler,
		metrics:       m,
	}
}

// List handles GET /leaders
func (h *LeaderHandler) List(w http.ResponseWriter, r *http.Request) {
	leaders, err := h.listHandler.Handle(r.Context())
	if err != nil {
		h.respondStoreError(w, r, err)
		return
	}
	h.metrics.SetDocuments("leaders", int64(len(leaders)))
	h.respondJSON(w, http.StatusOK, leaders)
}

// Get handles GET /leaders/{leaderId}. An unknown id yields null.
func (h *LeaderHandler) Get(w http.ResponseWriter, r *http.Request) {
	leader, err := h.getHandler.Handle(r.Context(), mux.Vars(r)["leaderId"])
	if err != nil {
		h.respondStoreError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, leader)
}

// Create handles POST /leaders (admin only)
func (h *LeaderHandler) Create(w http.ResponseWriter, r *http.Request) {
	attrs, ok := h.decodeAttributes(w, r)
	if !ok {
		return
	}
	p, _ := middleware.PrincipalFromContext(r.Context())

	leader, err := h.createHandler.Handle(r.Context(), command.CreateLeaderCommand{
		ActorID:    p.UserID,
		Attributes: attrs,
	})
	if err != nil {
		h.respondStoreError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, leader)
}

// Update handles PUT /leaders/{leaderId} (admin only)
func (h *LeaderHandler) Update(w http.ResponseWriter, r *http.Request) {
	attrs, ok := h.decodeAttributes(w, r)
	if !ok {
		return
	}
	p, _ := middleware.PrincipalFromContext(r.Context())

	leader, err := h.updateHandler.Handle(r.Context(), command.UpdateLeaderCommand{
		ActorID:    p.UserID,
		ID:         mux.Vars(r)["leaderId"],
		Attributes: attrs,
	})
	if err != nil {
		h.respondStoreError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, leader)
}

// Delete handles DELETE /leaders/{leaderId} (admin only)
func (h *LeaderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	p, _ := middleware.PrincipalFromContext(r.Context())

	removed, err := h.deleteHandler.Handle(r.Context(), p.UserID, mux.Vars(r)["leaderId"])
	if err != nil {
		h.respondStoreError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, removed)
}

// DeleteAll handles DELETE /leaders (admin only)
func (h *LeaderHandler) DeleteAll(w http.ResponseWriter, r *http.Request) {
	p, _ := middleware.PrincipalFromContext(r.Context())

	n, err := h.deleteHandler.HandleAll(r.Context(), p.UserID)
	if err != nil {
		h.respondStoreError(w, r, err)
		return
	}
	h.metrics.SetDocuments("leaders", 0)
	h.respondJSON(w, http.StatusOK, map[string]int64{"n": n, "ok": 1})
}

// Unsupported rejects the verbs the leaders resource does not offer
func (h *LeaderHandler) Unsupported(w http.ResponseWriter, r *http.Request) {
	h.respondError(w, http.StatusForbidden, r.Method+" operation not supported on "+r.URL.Path)
}

func (h *LeaderHandler) decodeAttributes(w http.ResponseWriter, r *http.Request) (map[string]interface{}, bool) {
	var attrs map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&attrs); err != nil || attrs == nil {
		h.respondError(w, http.StatusBadRequest, "Request body must be a JSON object")
		return nil, false
	}
	return attrs, true
}

// respondStoreError logs an unexpected failure and hides its details
func (h *LeaderHandler) respondStoreError(w http.ResponseWriter, r *http.Request, err error) {
	logger.Error(r.Context()).
		Err(err).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Msg("Leaders request failed")
	h.respondError(w, http.StatusInternalServerError, "Internal server error")
}

// respondJSON sends a JSON response
func (h *LeaderHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError sends an error response
func (h *LeaderHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}

// RegisterRoutes registers all leader routes. Reads are public; every other
// verb, the unsupported ones included, requires an admin.
func (h *LeaderHandler) RegisterRoutes(router *mux.Router) {
	admin := middleware.AdminMiddleware

	router.HandleFunc("/leaders", h.metrics.Wrap("/leaders", h.List)).Methods("GET")
	router.HandleFunc("/leaders", h.metrics.Wrap("/leaders", admin(h.Create))).Methods("POST")
	router.HandleFunc("/leaders", h.metrics.Wrap("/leaders", admin(h.Unsupported))).Methods("PUT")
	router.HandleFunc("/leaders", h.metrics.Wrap("/leaders", admin(h.DeleteAll))).Methods("DELETE")

	router.HandleFunc("/leaders/{leaderId}", h.metrics.Wrap("/leaders/{leaderId}", h.Get)).Methods("GET")
	router.HandleFunc("/leaders/{leaderId}", h.metrics.Wrap("/leaders/{leaderId}", admin(h.Unsupported))).Methods("POST")
	router.HandleFunc("/leaders/{leaderId}", h.metrics.Wrap("/leaders/{leaderId}", admin(h.Update))).Methods("PUT")
	router.HandleFunc("/leaders/{leaderId}", h.metrics.Wrap("/leaders/{leaderId}", admin(h.Delete))).Methods("DELETE")
}
