package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dishdomain "github.com/tair/confusion-server/internal/dish/domain"
	dishrepo "github.com/tair/confusion-server/internal/dish/repository"
	"github.com/tair/confusion-server/internal/favorite/repository"
	"github.com/tair/confusion-server/internal/favorite/usecase/command"
	"github.com/tair/confusion-server/internal/favorite/usecase/query"
	userdomain "github.com/tair/confusion-server/internal/user/domain"
	userrepo "github.com/tair/confusion-server/internal/user/repository"
	"github.com/tair/confusion-server/kafka"
	"github.com/tair/confusion-server/pkg/auth"
	"github.com/tair/confusion-server/pkg/lock"
	"github.com/tair/confusion-server/pkg/metrics"
)

type testEnv struct {
	router *mux.Router
	users  *userrepo.MemoryUserRepository
	dishes *dishrepo.MemoryDishRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	auth.Configure("favorites-handler-secret", time.Minute)

	favs := repository.NewMemoryFavoritesRepository()
	users := userrepo.NewMemoryUserRepository()
	dishes := dishrepo.NewMemoryDishRepository()
	locker := lock.NewKeyedMutex()
	pub := kafka.NopPublisher{}

	h := NewFavoritesHandlerWithDI(
		command.NewAddDishesHandler(favs, locker, pub),
		command.NewRemoveDishHandler(favs, locker, pub),
		command.NewClearFavoritesHandler(favs, locker, pub),
		query.NewGetFavoritesHandler(favs, users, dishes),
		favs,
		metrics.NewHTTPMetrics("favorites_test", prometheus.NewRegistry()),
	)

	router := mux.NewRouter()
	h.RegisterRoutes(router)
	return &testEnv{router: router, users: users, dishes: dishes}
}

// login creates a user and returns its id and bearer header
func (e *testEnv) login(t *testing.T, username string) (string, string) {
	t.Helper()
	u := &userdomain.User{Username: username}
	require.NoError(t, e.users.Create(context.Background(), u))

	token, err := auth.GenerateToken(u.ID, u.Username, u.Role())
	require.NoError(t, err)
	return u.ID, "Bearer " + token
}

func (e *testEnv) do(method, path, authHeader, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

type favoritesDoc struct {
	ID     string   `json:"_id"`
	User   string   `json:"user"`
	Dishes []string `json:"dishes"`
}

func decodeDoc(t *testing.T, w *httptest.ResponseRecorder) favoritesDoc {
	t.Helper()
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var doc favoritesDoc
	require.NoError(t, json.NewDecoder(w.Body).Decode(&doc))
	return doc
}

func TestFavoritesScenario(t *testing.T) {
	env := newTestEnv(t)
	userID, bearer := env.login(t, "erin")

	// first post creates the document
	doc := decodeDoc(t, env.do("POST", "/favorites", bearer, `[{"_id":"D1"},{"_id":"D2"}]`))
	assert.Equal(t, userID, doc.User)
	assert.NotEmpty(t, doc.ID)
	assert.Equal(t, []string{"D1", "D2"}, doc.Dishes)

	// merge keeps existing order and skips duplicates
	doc = decodeDoc(t, env.do("POST", "/favorites", bearer, `[{"_id":"D2"},{"_id":"D3"}]`))
	assert.Equal(t, []string{"D1", "D2", "D3"}, doc.Dishes)

	doc = decodeDoc(t, env.do("DELETE", "/favorites/D1", bearer, ""))
	assert.Equal(t, []string{"D2", "D3"}, doc.Dishes)

	w := env.do("DELETE", "/favorites/D9", bearer, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "not found")
}

func TestAddOne(t *testing.T) {
	env := newTestEnv(t)
	_, bearer := env.login(t, "frank")

	doc := decodeDoc(t, env.do("POST", "/favorites/D1", bearer, ""))
	assert.Equal(t, []string{"D1"}, doc.Dishes)

	doc = decodeDoc(t, env.do("POST", "/favorites/D2", bearer, ""))
	assert.Equal(t, []string{"D1", "D2"}, doc.Dishes)

	// Already present returns the current document unchanged
	doc = decodeDoc(t, env.do("POST", "/favorites/D1", bearer, ""))
	assert.Equal(t, []string{"D1", "D2"}, doc.Dishes)
}

func TestAddManyBadBody(t *testing.T) {
	env := newTestEnv(t)
	_, bearer := env.login(t, "gina")

	testCases := []struct {
		name string
		body string
	}{
		{"NotJSON", `nope`},
		{"NotArray", `{"_id":"D1"}`},
		{"EmptyID", `[{"_id":"D1"},{"name":"no id"}]`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := env.do("POST", "/favorites", bearer, tc.body)
			assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
		})
	}

	// nothing was written by the rejected bodies
	w := env.do("GET", "/favorites", bearer, "")
	assert.Equal(t, "null", strings.TrimSpace(w.Body.String()))
}

func TestListMine(t *testing.T) {
	env := newTestEnv(t)
	_, bearer := env.login(t, "hank")

	w := env.do("GET", "/favorites", bearer, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "null", strings.TrimSpace(w.Body.String()))

	require.NoError(t, env.dishes.Create(context.Background(), &dishdomain.Dish{ID: "D1", Name: "Uthappizza"}))
	env.do("POST", "/favorites", bearer, `[{"_id":"D1"}]`)

	w = env.do("GET", "/favorites", bearer, "")
	var populated struct {
		User struct {
			Username string `json:"username"`
		} `json:"user"`
		Dishes []struct {
			ID   string `json:"_id"`
			Name string `json:"name"`
		} `json:"dishes"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&populated))
	assert.Equal(t, "hank", populated.User.Username)
	require.Len(t, populated.Dishes, 1)
	assert.Equal(t, "Uthappizza", populated.Dishes[0].Name)
}

func TestOwnershipIsolation(t *testing.T) {
	env := newTestEnv(t)
	_, bearer1 := env.login(t, "ivy")
	_, bearer2 := env.login(t, "jack")

	env.do("POST", "/favorites", bearer1, `[{"_id":"D1"}]`)

	w := env.do("GET", "/favorites", bearer2, "")
	assert.Equal(t, "null", strings.TrimSpace(w.Body.String()), "second user saw a document")

	w = env.do("DELETE", "/favorites/D1", bearer2, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.do("DELETE", "/favorites", bearer2, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "null", strings.TrimSpace(w.Body.String()))

	doc := decodeDoc(t, env.do("DELETE", "/favorites", bearer1, ""))
	assert.Equal(t, []string{"D1"}, doc.Dishes)
}

func TestUnsupportedVerbs(t *testing.T) {
	env := newTestEnv(t)
	_, bearer := env.login(t, "kim")

	testCases := []struct {
		method  string
		path    string
		body    string
		message string
	}{
		{"PUT", "/favorites", "", "PUT operation not supported on /favorites"},
		{"PUT", "/favorites", `[{"_id":"D1"}]`, "PUT operation not supported on /favorites"},
		{"GET", "/favorites/D1", "", "GET operation not supported on /favorites/D1"},
		{"PUT", "/favorites/D1", "", "PUT operation not supported on /favorites/D1"},
	}

	for _, tc := range testCases {
		t.Run(tc.method+tc.path, func(t *testing.T) {
			w := env.do(tc.method, tc.path, bearer, tc.body)
			require.Equal(t, http.StatusForbidden, w.Code)

			var body map[string]string
			require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
			assert.Equal(t, tc.message, body["error"])

			w = env.do(tc.method, tc.path, "", tc.body)
			assert.Equal(t, http.StatusUnauthorized, w.Code, "expected 401 without credentials")
		})
	}
}

func TestRequiresAuthentication(t *testing.T) {
	env := newTestEnv(t)

	for _, route := range []struct{ method, path string }{
		{"GET", "/favorites"},
		{"POST", "/favorites"},
		{"DELETE", "/favorites"},
		{"POST", "/favorites/D1"},
		{"DELETE", "/favorites/D1"},
	} {
		w := env.do(route.method, route.path, "", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", route.method, route.path)
	}
}
