package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/confusion-server/internal/leader/domain"
	"github.com/tair/confusion-server/internal/leader/repository"
	"github.com/tair/confusion-server/internal/leader/usecase/command"
	"github.com/tair/confusion-server/internal/leader/usecase/query"
	"github.com/tair/confusion-server/kafka"
	"github.com/tair/confusion-server/pkg/auth"
	"github.com/tair/confusion-server/pkg/metrics"
)

// countingRepo counts calls that would change the collection
type countingRepo struct {
	domain.LeaderRepository
	mutations atomic.Int32
}

func (r *countingRepo) Create(ctx context.Context, l *domain.Leader) error {
	r.mutations.Add(1)
	return r.LeaderRepository.Create(ctx, l)
}

func (r *countingRepo) UpdateAttributes(ctx context.Context, id string, attrs domain.Attributes) (*domain.Leader, error) {
	r.mutations.Add(1)
	return r.LeaderRepository.UpdateAttributes(ctx, id, attrs)
}

func (r *countingRepo) Delete(ctx context.Context, id string) (*domain.Leader, error) {
	r.mutations.Add(1)
	return r.LeaderRepository.Delete(ctx, id)
}

func (r *countingRepo) DeleteAll(ctx context.Context) (int64, error) {
	r.mutations.Add(1)
	return r.LeaderRepository.DeleteAll(ctx)
}

type testEnv struct {
	router *mux.Router
	repo   *countingRepo
	admin  string
	user   string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	auth.Configure("leader-handler-secret", time.Minute)

	repo := &countingRepo{LeaderRepository: repository.NewMemoryLeaderRepository()}
	pub := kafka.NopPublisher{}
	h := NewLeaderHandlerWithDI(
		command.NewCreateLeaderHandler(repo, pub),
		command.NewUpdateLeaderHandler(repo, pub),
		command.NewDeleteLeaderHandler(repo, pub),
		query.NewGetLeaderHandler(repo),
		query.NewListLeadersHandler(repo),
		metrics.NewHTTPMetrics("leader_test", prometheus.NewRegistry()),
	)
	router := mux.NewRouter()
	h.RegisterRoutes(router)

	admin, err := auth.GenerateToken("admin-1", "admin", auth.RoleAdmin)
	require.NoError(t, err)
	user, err := auth.GenerateToken("user-1", "user", auth.RoleUser)
	require.NoError(t, err)

	return &testEnv{router: router, repo: repo, admin: "Bearer " + admin, user: "Bearer " + user}
}

func (e *testEnv) do(method, path, authHeader, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decodeRecord(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var rec map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&rec))
	return rec
}

func TestCreateLeader(t *testing.T) {
	env := newTestEnv(t)

	rec := decodeRecord(t, env.do("POST", "/leaders", env.admin, `{"name":"Alice"}`))
	assert.Equal(t, "Alice", rec["name"])
	assert.NotEmpty(t, rec["_id"])
	assert.Contains(t, rec, "createdAt")

	w := env.do("POST", "/leaders", env.user, `{"name":"Alice"}`)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCreateLeaderIgnoresReservedKeys(t *testing.T) {
	env := newTestEnv(t)

	rec := decodeRecord(t, env.do("POST", "/leaders", env.admin, `{"_id":"chosen","name":"Bob"}`))
	assert.NotEqual(t, "chosen", rec["_id"], "client-supplied _id was kept")
	assert.Equal(t, "Bob", rec["name"])
}

func TestLeaderMutationsRequireAdmin(t *testing.T) {
	env := newTestEnv(t)
	rec := decodeRecord(t, env.do("POST", "/leaders", env.admin, `{"name":"Carol"}`))
	id := rec["_id"].(string)
	before := env.repo.mutations.Load()

	routes := []struct{ method, path, body string }{
		{"POST", "/leaders", `{"name":"X"}`},
		{"PUT", "/leaders", `{}`},
		{"DELETE", "/leaders", ""},
		{"POST", "/leaders/" + id, `{}`},
		{"PUT", "/leaders/" + id, `{"name":"X"}`},
		{"DELETE", "/leaders/" + id, ""},
	}

	for _, rt := range routes {
		w := env.do(rt.method, rt.path, env.user, rt.body)
		assert.Equal(t, http.StatusForbidden, w.Code, "%s %s as user", rt.method, rt.path)
		assert.Contains(t, w.Body.String(), "You are not authorized to perform this operation!")

		w = env.do(rt.method, rt.path, "", rt.body)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s anonymous", rt.method, rt.path)
	}

	assert.Equal(t, before, env.repo.mutations.Load(), "expected no repository mutation")
}

func TestLeaderUnsupportedVerbs(t *testing.T) {
	env := newTestEnv(t)

	testCases := []struct{ method, path, message string }{
		{"PUT", "/leaders", "PUT operation not supported on /leaders"},
		{"POST", "/leaders/L1", "POST operation not supported on /leaders/L1"},
	}

	for _, tc := range testCases {
		t.Run(tc.method+tc.path, func(t *testing.T) {
			w := env.do(tc.method, tc.path, env.admin, `{}`)
			require.Equal(t, http.StatusForbidden, w.Code)

			var body map[string]string
			require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
			assert.Equal(t, tc.message, body["error"])
		})
	}
}

func TestGetLeader(t *testing.T) {
	env := newTestEnv(t)
	rec := decodeRecord(t, env.do("POST", "/leaders", env.admin, `{"name":"Dan"}`))
	id := rec["_id"].(string)

	got := decodeRecord(t, env.do("GET", "/leaders/"+id, "", ""))
	assert.Equal(t, "Dan", got["name"])

	w := env.do("GET", "/leaders/not-an-id", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "null", strings.TrimSpace(w.Body.String()))
}

func TestUpdateLeaderMerges(t *testing.T) {
	env := newTestEnv(t)
	rec := decodeRecord(t, env.do("POST", "/leaders", env.admin, `{"name":"Eve","designation":"CTO","featured":false}`))
	id := rec["_id"].(string)

	got := decodeRecord(t, env.do("PUT", "/leaders/"+id, env.admin, `{"designation":"CEO","featured":true}`))
	assert.Equal(t, "Eve", got["name"])
	assert.Equal(t, "CEO", got["designation"])
	assert.Equal(t, true, got["featured"])
	assert.Equal(t, id, got["_id"])

	w := env.do("PUT", "/leaders/missing", env.admin, `{"name":"Nobody"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "null", strings.TrimSpace(w.Body.String()))

	w = env.do("PUT", "/leaders/"+id, env.admin, `["not","an","object"]`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteLeaders(t *testing.T) {
	env := newTestEnv(t)
	first := decodeRecord(t, env.do("POST", "/leaders", env.admin, `{"name":"Fay"}`))
	decodeRecord(t, env.do("POST", "/leaders", env.admin, `{"name":"Gus"}`))
	decodeRecord(t, env.do("POST", "/leaders", env.admin, `{"name":"Hal"}`))

	removed := decodeRecord(t, env.do("DELETE", "/leaders/"+first["_id"].(string), env.admin, ""))
	assert.Equal(t, "Fay", removed["name"])

	w := env.do("DELETE", "/leaders/"+first["_id"].(string), env.admin, "")
	assert.Equal(t, "null", strings.TrimSpace(w.Body.String()), "deleting twice")

	result := decodeRecord(t, env.do("DELETE", "/leaders", env.admin, ""))
	assert.Equal(t, float64(2), result["n"])
	assert.Equal(t, float64(1), result["ok"])

	w = env.do("GET", "/leaders", "", "")
	assert.Equal(t, "[]", strings.TrimSpace(w.Body.String()))
}
