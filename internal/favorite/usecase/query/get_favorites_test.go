package query

import (
	"context"
	"testing"

	"github.com/lib/pq"

	dishdomain "github.com/tair/confusion-server/internal/dish/domain"
	dishrepo "github.com/tair/confusion-server/internal/dish/repository"
	"github.com/tair/confusion-server/internal/favorite/domain"
	"github.com/tair/confusion-server/internal/favorite/repository"
	userdomain "github.com/tair/confusion-server/internal/user/domain"
	userrepo "github.com/tair/confusion-server/internal/user/repository"
)

func TestGetFavoritesPopulates(t *testing.T) {
	ctx := context.Background()
	users := userrepo.NewMemoryUserRepository()
	dishes := dishrepo.NewMemoryDishRepository()
	favs := repository.NewMemoryFavoritesRepository()

	owner := &userdomain.User{Username: "dana"}
	if err := users.Create(ctx, owner); err != nil {
		t.Fatalf("Create user failed: %v", err)
	}
	for _, id := range []string{"D1", "D2", "D3"} {
		if err := dishes.Create(ctx, &dishdomain.Dish{ID: id, Name: "dish " + id}); err != nil {
			t.Fatalf("Create dish failed: %v", err)
		}
	}
	// D9 no longer exists in the catalog
	if err := favs.Create(ctx, &domain.Favorites{UserID: owner.ID, Dishes: pq.StringArray{"D3", "D9", "D1"}}); err != nil {
		t.Fatalf("Create favorites failed: %v", err)
	}

	h := NewGetFavoritesHandler(favs, users, dishes)

	got, err := h.Handle(ctx, owner.ID)
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if got.User == nil || got.User.Username != "dana" {
		t.Errorf("Expected populated owner, got %+v", got.User)
	}
	if len(got.Dishes) != 2 || got.Dishes[0].ID != "D3" || got.Dishes[1].ID != "D1" {
		t.Errorf("Expected dishes [D3 D1] in stored order, got %+v", got.Dishes)
	}
}

func TestGetFavoritesMissing(t *testing.T) {
	h := NewGetFavoritesHandler(
		repository.NewMemoryFavoritesRepository(),
		userrepo.NewMemoryUserRepository(),
		dishrepo.NewMemoryDishRepository(),
	)

	got, err := h.Handle(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if got != nil {
		t.Errorf("Expected nil for user without favorites, got %+v", got)
	}
}
