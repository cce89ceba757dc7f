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

type mongoItemRepository struct {
	collection *mongo.Collection
}

func NewMongoItemRepository(db *mongo.Database) ItemRepository {
	return &mongoItemRepository{collection: db.Collection("items")}
}

// List applies an optional category equality filter and an optional result
// cap. Category "all" or "" means no filter; limit <= 0 means no cap.
func (m *mongoItemRepository) List(ctx context.Context, category string, limit int64) ([]domain.Item, error) {
	filter := bson.M{}
	if category != "" && category != "all" {
		filter["category"] = category
	}

	opts := options.Find()
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cursor, err := m.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	defer cursor.Close(ctx)

	items := []domain.Item{}
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("failed to decode items: %w", err)
	}

	return items, nil
}

func (m *mongoItemRepository) ListAll(ctx context.Context) ([]domain.Item, error) {
	return m.List(ctx, "all", 0)
}

func (m *mongoItemRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Item, error) {
	var item domain.Item

	err := m.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&item)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to find item: %w", err)
	}

	return &item, nil
}

func (m *mongoItemRepository) Insert(ctx context.Context, item *domain.Item) (*mongo.InsertOneResult, error) {
	result, err := m.collection.InsertOne(ctx, item)
	if err != nil {
		return nil, fmt.Errorf("failed to insert item: %w", err)
	}
	return result, nil
}

func (m *mongoItemRepository) UpdateByID(ctx context.Context, id primitive.ObjectID, fields bson.M) (*mongo.UpdateResult, error) {
	result, err := m.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return nil, fmt.Errorf("failed to update item: %w", err)
	}
	return result, nil
}

func (m *mongoItemRepository) DeleteByID(ctx context.Context, id primitive.ObjectID) (*mongo.DeleteResult, error) {
	result, err := m.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return nil, fmt.Errorf("failed to delete item: %w", err)
	}
	return result, nil
}

// DecrementStock takes one unit off every listed item in a single batched
// update. Items already at zero are filtered out so stock never goes
// negative.
func (m *mongoItemRepository) DecrementStock(ctx context.Context, ids []primitive.ObjectID) (*mongo.UpdateResult, error) {
	if len(ids) == 0 {
		return &mongo.UpdateResult{}, nil
	}

	filter := bson.M{
		"_id":      bson.M{"$in": ids},
		"quantity": bson.M{"$gt": 0},
	}
	update := bson.M{"$inc": bson.M{"quantity": -1}}

	result, err := m.collection.UpdateMany(ctx, filter, update)
	if err != nil {
		return nil, fmt.Errorf("failed to decrement stock: %w", err)
	}
	return result, nil
}
