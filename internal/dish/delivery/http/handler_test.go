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

	"github.com/tair/confusion-server/internal/dish/domain"
	"github.com/tair/confusion-server/internal/dish/repository"
	"github.com/tair/confusion-server/internal/dish/usecase/command"
	"github.com/tair/confusion-server/internal/dish/usecase/query"
	"github.com/tair/confusion-server/pkg/auth"
	"github.com/tair/confusion-server/pkg/metrics"
)

func setup(t *testing.T) (*mux.Router, *repository.MemoryDishRepository) {
	t.Helper()
	auth.Configure("dish-handler-secret", time.Minute)

	repo := repository.NewMemoryDishRepository()
	h := NewDishHandlerWithDI(
		command.NewCreateDishHandler(repo),
		query.NewGetDishHandler(repo),
		query.NewListDishesHandler(repo),
		metrics.NewHTTPMetrics("dish_test", prometheus.NewRegistry()),
	)
	router := mux.NewRouter()
	h.RegisterRoutes(router)
	return router, repo
}

func bearer(t *testing.T, role string) string {
	t.Helper()
	token, err := auth.GenerateToken("u-"+role, role, role)
	require.NoError(t, err)
	return "Bearer " + token
}

func TestCreateDishRequiresAdmin(t *testing.T) {
	router, repo := setup(t)
	body := `{"name":"Uthappizza","price":4.99,"featured":true}`

	testCases := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{"Anonymous", "", http.StatusUnauthorized},
		{"User", bearer(t, auth.RoleUser), http.StatusForbidden},
		{"Admin", bearer(t, auth.RoleAdmin), http.StatusOK},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/dishes", bytes.NewBufferString(body))
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tc.wantStatus, w.Code, w.Body.String())
		})
	}

	dishes, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, dishes, 1)
}

func TestGetDish(t *testing.T) {
	router, repo := setup(t)
	dish := &domain.Dish{Name: "Zucchipakoda", Price: 1.99}
	require.NoError(t, repo.Create(context.Background(), dish))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/dishes/"+dish.ID, nil))
	require.Equal(t, http.StatusOK, w.Code)

	var got domain.Dish
	require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
	assert.Equal(t, dish.ID, got.ID)
	assert.Equal(t, dish.Name, got.Name)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/dishes/missing", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListFeaturedDishes(t *testing.T) {
	router, repo := setup(t)
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, &domain.Dish{Name: "Vadonut", Price: 1.99, Featured: true}))
	require.NoError(t, repo.Create(ctx, &domain.Dish{Name: "ElaiCheese Cake", Price: 2.99}))

	var all, featured []domain.Dish

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/dishes", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.NewDecoder(w.Body).Decode(&all))
	assert.Len(t, all, 2)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/dishes?featured=true", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.NewDecoder(w.Body).Decode(&featured))
	require.Len(t, featured, 1)
	assert.Equal(t, "Vadonut", featured[0].Name)
}
