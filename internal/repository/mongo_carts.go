package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/MehediHasan95/tasty-pizza-server/internal/domain"
)

type mongoCartRepository struct {
	collection *mongo.Collection
}

func NewMongoCartRepository(db *mongo.Database) CartRepository {
	return &mongoCartRepository{collection: db.Collection("carts")}
}

func (m *mongoCartRepository) ListByOwner(ctx context.Context, uid string) ([]domain.CartEntry, error) {
	cursor, err := m.collection.Find(ctx, bson.M{"uid": uid})
	if err != nil {
		return nil, fmt.Errorf("failed to list cart entries: %w", err)
	}
	defer cursor.Close(ctx)

	entries := []domain.CartEntry{}
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode cart entries: %w", err)
	}

	return entries, nil
}

// ExistsForOwner reports whether the owner already has an entry for the
// item. First write wins; duplicates are refused upstream with a soft flag.
func (m *mongoCartRepository) ExistsForOwner(ctx context.Context, uid, itemID string) (bool, error) {
	filter := bson.M{"uid": uid, "itemId": itemID}

	err := m.collection.FindOne(ctx, filter).Err()
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check cart entry: %w", err)
	}
	return true, nil
}

func (m *mongoCartRepository) Insert(ctx context.Context, entry *domain.CartEntry) (*mongo.InsertOneResult, error) {
	result, err := m.collection.InsertOne(ctx, entry)
	if err != nil {
		return nil, fmt.Errorf("failed to insert cart entry: %w", err)
	}
	return result, nil
}

func (m *mongoCartRepository) DeleteByID(ctx context.Context, id primitive.ObjectID) (*mongo.DeleteResult, error) {
	result, err := m.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return nil, fmt.Errorf("failed to delete cart entry: %w", err)
	}
	return result, nil
}

func (m *mongoCartRepository) DeleteByIDs(ctx context.Context, ids []primitive.ObjectID) (*mongo.DeleteResult, error) {
	if len(ids) == 0 {
		return &mongo.DeleteResult{}, nil
	}

	result, err := m.collection.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("failed to delete cart entries: %w", err)
	}
	return result, nil
}

func (m *mongoCartRepository) CreateIndexes(ctx context.Context) error {
	_, err := m.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "uid", Value: 1}, {Key: "itemId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create cart owner index: %w", err)
	}
	return nil
}
