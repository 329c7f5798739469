package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/tair/confusion-server/internal/user/domain"
	"github.com/tair/confusion-server/internal/user/usecase/command"
	"github.com/tair/confusion-server/internal/user/usecase/query"
	"github.com/tair/confusion-server/pkg/logger"
	"github.com/tair/confusion-server/pkg/metrics"
	"github.com/tair/confusion-server/pkg/middleware"
)

// UserHandler handles HTTP requests for accounts
type UserHandler struct {
	// Command handlers
	registerHandler *command.RegisterUserHandler
	loginHandler    *command.LoginUserHandler

	// Query handlers
	getUserHandler *query.GetUserHandler
	listHandler    *query.ListUsersHandler

	metrics *metrics.HTTPMetrics
}

// NewUserHandlerWithDI creates a new user handler from injected use cases
func NewUserHandlerWithDI(
	registerHandler *command.RegisterUserHandler,
	loginHandler *command.LoginUserHandler,
	getUserHandler *query.GetUserHandler,
	listHandler *query.ListUsersHandler,
	m *metrics.HTTPMetrics,
) *UserHandler {
	return &UserHandler{
		registerHandler: registerHandler,
		loginHandler:    loginHandler,
		getUserHandler:  getUserHandler,
		listHandler:     listHandler,
		metrics:         m,
	}
}

type signupRequest struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Signup handles POST /users/signup
func (h *UserHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	_, err := h.registerHandler.Handle(r.Context(), command.RegisterUserCommand{
		Username:  req.Username,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	switch {
	case err == nil:
	case errors.Is(err, command.ErrInvalidRegistration):
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, domain.ErrUsernameTaken):
		h.respondError(w, http.StatusConflict, "User "+req.Username+" already exists")
		return
	default:
		logger.Error(r.Context()).Err(err).Str("username", req.Username).Msg("Failed to register user")
		h.respondError(w, http.StatusInternalServerError, "Failed to register user")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"status":  "Registration Successful!",
	})
}

// Login handles POST /users/login
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.loginHandler.Handle(r.Context(), command.LoginUserCommand{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, command.ErrInvalidCredentials) {
			logger.Warn(r.Context()).Str("username", req.Username).Msg("Login rejected")
			h.respondError(w, http.StatusUnauthorized, "Invalid username or password")
			return
		}
		logger.Error(r.Context()).Err(err).Msg("Login failed")
		h.respondError(w, http.StatusInternalServerError, "Login failed")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"token":   resp.Token,
		"status":  "You are successfully logged in!",
	})
}

// Me handles GET /users/me
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	p, _ := middleware.PrincipalFromContext(r.Context())

	user, err := h.getUserHandler.Handle(r.Context(), query.GetUserQuery{ID: p.UserID})
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			h.respondError(w, http.StatusNotFound, "User "+p.Username+" not found")
			return
		}
		logger.Error(r.Context()).Err(err).Str("user_id", p.UserID).Msg("Failed to get user")
		h.respondError(w, http.StatusInternalServerError, "Failed to get user")
		return
	}

	h.respondJSON(w, http.StatusOK, user)
}

// List handles GET /users (admin only)
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.listHandler.Handle(r.Context())
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to list users")
		h.respondError(w, http.StatusInternalServerError, "Failed to list users")
		return
	}

	h.respondJSON(w, http.StatusOK, users)
}

// respondJSON sends a JSON response
func (h *UserHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError sends an error response
func (h *UserHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}

// RegisterRoutes registers all user routes
func (h *UserHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/users/signup", h.metrics.Wrap("/users/signup", h.Signup)).Methods("POST")
	router.HandleFunc("/users/login", h.metrics.Wrap("/users/login", h.Login)).Methods("POST")
	router.HandleFunc("/users/me", h.metrics.Wrap("/users/me", middleware.AuthMiddleware(h.Me))).Methods("GET")
	router.HandleFunc("/users", h.metrics.Wrap("/users", middleware.AdminMiddleware(h.List))).Methods("GET")
}
