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

	"github.com/tair/confusion-server/internal/dish/domain"
)

// MongoDishRepository implements DishRepository on the dishes collection
type MongoDishRepository struct {
	coll *mongo.Collection
}

// NewMongoDishRepository creates a new Mongo dish repository
func NewMongoDishRepository(db *mongo.Database) *MongoDishRepository {
	return &MongoDishRepository{coll: db.Collection("dishes")}
}

func (r *MongoDishRepository) Create(ctx context.Context, dish *domain.Dish) error {
	if dish.ID == "" {
		dish.ID = primitive.NewObjectID().Hex()
	}
	now := time.Now().UTC()
	dish.CreatedAt, dish.UpdatedAt = now, now

	if _, err := r.coll.InsertOne(ctx, dish); err != nil {
		return fmt.Errorf("failed to create dish: %w", err)
	}
	return nil
}

func (r *MongoDishRepository) FindByID(ctx context.Context, id string) (*domain.Dish, error) {
	var dish domain.Dish
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&dish); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrDishNotFound
		}
		return nil, fmt.Errorf("failed to find dish: %w", err)
	}
	return &dish, nil
}

func (r *MongoDishRepository) FindByIDs(ctx context.Context, ids []string) ([]domain.Dish, error) {
	if len(ids) == 0 {
		return []domain.Dish{}, nil
	}
	return r.find(ctx, bson.M{"_id": bson.M{"$in": ids}}, options.Find())
}

func (r *MongoDishRepository) FindAll(ctx context.Context) ([]domain.Dish, error) {
	return r.find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
}

func (r *MongoDishRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]domain.Dish, error) {
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find dishes: %w", err)
	}
	defer cursor.Close(ctx)

	dishes := []domain.Dish{}
	if err := cursor.All(ctx, &dishes); err != nil {
		return nil, fmt.Errorf("failed to decode dishes: %w", err)
	}
	return dishes, nil
}
