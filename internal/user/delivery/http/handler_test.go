package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/confusion-server/internal/user/domain"
	"github.com/tair/confusion-server/internal/user/repository"
	"github.com/tair/confusion-server/internal/user/usecase/command"
	"github.com/tair/confusion-server/internal/user/usecase/query"
	"github.com/tair/confusion-server/pkg/auth"
	"github.com/tair/confusion-server/pkg/metrics"
)

func newTestRouter() (*mux.Router, domain.UserRepository) {
	repo := repository.NewMemoryUserRepository()
	h := NewUserHandlerWithDI(
		command.NewRegisterUserHandler(repo),
		command.NewLoginUserHandler(repo),
		query.NewGetUserHandler(repo),
		query.NewListUsersHandler(repo),
		metrics.NewHTTPMetrics("user_test", prometheus.NewRegistry()),
	)
	router := mux.NewRouter()
	h.RegisterRoutes(router)
	return router, repo
}

func post(router http.Handler, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func get(router http.Handler, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestSignupAndLogin(t *testing.T) {
	auth.Configure("user-handler-secret", time.Minute)
	router, _ := newTestRouter()

	w := post(router, "/users/signup", `{"username":"carol","password":"pa55word","firstname":"Carol"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "Registration Successful!")

	w = post(router, "/users/signup", `{"username":"carol","password":"pa55word"}`)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = post(router, "/users/login", `{"username":"carol","password":"pa55word"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Success bool   `json:"success"`
		Token   string `json:"token"`
		Status  string `json:"status"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "You are successfully logged in!", resp.Status)

	claims, err := auth.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "carol", claims.Username)
	assert.Equal(t, auth.RoleUser, claims.Role)
}

func TestLoginRejected(t *testing.T) {
	router, _ := newTestRouter()
	post(router, "/users/signup", `{"username":"dora","password":"pa55word"}`)

	testCases := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{"MalformedBody", `{`, http.StatusBadRequest},
		{"UnknownUser", `{"username":"nobody","password":"x"}`, http.StatusUnauthorized},
		{"WrongPassword", `{"username":"dora","password":"wrong-one"}`, http.StatusUnauthorized},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := post(router, "/users/login", tc.body)
			assert.Equal(t, tc.wantStatus, w.Code)
		})
	}
}

func TestMeAndList(t *testing.T) {
	auth.Configure("user-handler-secret", time.Minute)
	router, repo := newTestRouter()
	ctx := context.Background()

	admin := &domain.User{Username: "admin", Password: "x", Admin: true}
	plain := &domain.User{Username: "dave", Password: "x", FirstName: "Dave"}
	for _, u := range []*domain.User{admin, plain} {
		require.NoError(t, repo.Create(ctx, u))
	}

	adminToken, err := auth.GenerateToken(admin.ID, admin.Username, admin.Role())
	require.NoError(t, err)
	userToken, err := auth.GenerateToken(plain.ID, plain.Username, plain.Role())
	require.NoError(t, err)

	w := get(router, "/users/me", userToken)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var me map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&me))
	assert.Equal(t, plain.ID, me["_id"])
	assert.Equal(t, "Dave", me["firstname"])
	assert.NotContains(t, me, "password")

	assert.Equal(t, http.StatusUnauthorized, get(router, "/users/me", "").Code)
	assert.Equal(t, http.StatusForbidden, get(router, "/users", userToken).Code)

	w = get(router, "/users", adminToken)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var users []map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&users))
	assert.Len(t, users, 2)
}
