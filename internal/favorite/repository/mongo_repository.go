package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tair/confusion-server/internal/favorite/domain"
)

// MongoFavoritesRepository implements FavoritesRepository on the favorites collection
type MongoFavoritesRepository struct {
	coll *mongo.Collection
}

// NewMongoFavoritesRepository creates a new Mongo favorites repository
func NewMongoFavoritesRepository(db *mongo.Database) *MongoFavoritesRepository {
	return &MongoFavoritesRepository{coll: db.Collection("favorites")}
}

// EnsureIndexes creates the one-document-per-user index
func (r *MongoFavoritesRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (r *MongoFavoritesRepository) FindByUser(ctx context.Context, userID string) (*domain.Favorites, error) {
	var fav domain.Favorites
	if err := r.coll.FindOne(ctx, bson.M{"user": userID}).Decode(&fav); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find favorites: %w", err)
	}
	return &fav, nil
}

func (r *MongoFavoritesRepository) Create(ctx context.Context, fav *domain.Favorites) error {
	if fav.ID == "" {
		fav.ID = primitive.NewObjectID().Hex()
	}
	now := time.Now().UTC()
	fav.CreatedAt, fav.UpdatedAt = now, now

	if _, err := r.coll.InsertOne(ctx, fav); err != nil {
		return fmt.Errorf("failed to create favorites: %w", err)
	}
	return nil
}

func (r *MongoFavoritesRepository) Save(ctx context.Context, fav *domain.Favorites) error {
	fav.UpdatedAt = time.Now().UTC()
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": fav.ID}, fav)
	if err != nil {
		return fmt.Errorf("failed to save favorites: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("failed to save favorites: %w", domain.ErrFavoritesNotFound)
	}
	return nil
}

func (r *MongoFavoritesRepository) RemoveByUser(ctx context.Context, userID string) (*domain.Favorites, error) {
	var removed domain.Favorites
	if err := r.coll.FindOneAndDelete(ctx, bson.M{"user": userID}).Decode(&removed); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to remove favorites: %w", err)
	}
	return &removed, nil
}

func (r *MongoFavoritesRepository) Count(ctx context.Context) (int64, error) {
	count, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count favorites: %w", err)
	}
	return count, nil
}
