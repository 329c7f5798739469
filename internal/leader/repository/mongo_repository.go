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

	"github.com/tair/confusion-server/internal/leader/domain"
)

// MongoLeaderRepository stores each leader as a flat document so a partial
// update maps directly onto $set.
type MongoLeaderRepository struct {
	coll *mongo.Collection
}

// NewMongoLeaderRepository creates a new Mongo leader repository
func NewMongoLeaderRepository(db *mongo.Database) *MongoLeaderRepository {
	return &MongoLeaderRepository{coll: db.Collection("leaders")}
}

func (r *MongoLeaderRepository) FindAll(ctx context.Context) ([]domain.Leader, error) {
	opts := options.Find().SetSort(bson.D{{Key: domain.KeyCreatedAt, Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list leaders: %w", err)
	}
	defer cursor.Close(ctx)

	leaders := []domain.Leader{}
	for cursor.Next(ctx) {
		var doc bson.M
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode leader: %w", err)
		}
		leaders = append(leaders, fromDocument(doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("failed to list leaders: %w", err)
	}
	return leaders, nil
}

func (r *MongoLeaderRepository) FindByID(ctx context.Context, id string) (*domain.Leader, error) {
	return decodeOne(r.coll.FindOne(ctx, bson.M{domain.KeyID: id}))
}

func (r *MongoLeaderRepository) Create(ctx context.Context, leader *domain.Leader) error {
	if leader.ID == "" {
		leader.ID = primitive.NewObjectID().Hex()
	}
	now := time.Now().UTC()
	leader.CreatedAt, leader.UpdatedAt = now, now

	if _, err := r.coll.InsertOne(ctx, toDocument(leader)); err != nil {
		return fmt.Errorf("failed to create leader: %w", err)
	}
	return nil
}

func (r *MongoLeaderRepository) UpdateAttributes(ctx context.Context, id string, attrs domain.Attributes) (*domain.Leader, error) {
	set := bson.M{domain.KeyUpdatedAt: time.Now().UTC()}
	for k, v := range attrs {
		set[k] = v
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	return decodeOne(r.coll.FindOneAndUpdate(ctx, bson.M{domain.KeyID: id}, bson.M{"$set": set}, opts))
}

func (r *MongoLeaderRepository) Delete(ctx context.Context, id string) (*domain.Leader, error) {
	return decodeOne(r.coll.FindOneAndDelete(ctx, bson.M{domain.KeyID: id}))
}

func (r *MongoLeaderRepository) DeleteAll(ctx context.Context) (int64, error) {
	res, err := r.coll.DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to delete leaders: %w", err)
	}
	return res.DeletedCount, nil
}

func decodeOne(res *mongo.SingleResult) (*domain.Leader, error) {
	var doc bson.M
	if err := res.Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to decode leader: %w", err)
	}
	leader := fromDocument(doc)
	return &leader, nil
}

func toDocument(l *domain.Leader) bson.M {
	doc := bson.M{}
	for k, v := range l.Attributes {
		doc[k] = v
	}
	doc[domain.KeyID] = l.ID
	doc[domain.KeyCreatedAt] = l.CreatedAt
	doc[domain.KeyUpdatedAt] = l.UpdatedAt
	return doc
}

func fromDocument(doc bson.M) domain.Leader {
	var l domain.Leader
	if id, ok := doc[domain.KeyID].(string); ok {
		l.ID = id
	}
	if t, ok := doc[domain.KeyCreatedAt].(primitive.DateTime); ok {
		l.CreatedAt = t.Time()
	}
	if t, ok := doc[domain.KeyUpdatedAt].(primitive.DateTime); ok {
		l.UpdatedAt = t.Time()
	}
	l.Attributes = domain.SanitizeAttributes(doc)
	return l
}
