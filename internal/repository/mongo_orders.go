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

	"github.com/MehediHasan95/tasty-pizza-server/internal/domain"
)

type mongoOrderRepository struct {
	collection *mongo.Collection
}

func NewMongoOrderRepository(db *mongo.Database) OrderRepository {
	return &mongoOrderRepository{collection: db.Collection("orders")}
}

func (m *mongoOrderRepository) ListAll(ctx context.Context) ([]domain.Order, error) {
	return m.list(ctx, bson.M{})
}

func (m *mongoOrderRepository) ListByOwner(ctx context.Context, uid string) ([]domain.Order, error) {
	return m.list(ctx, bson.M{"uid": uid})
}

func (m *mongoOrderRepository) list(ctx context.Context, filter bson.M) ([]domain.Order, error) {
	cursor, err := m.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer cursor.Close(ctx)

	orders := []domain.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("failed to decode orders: %w", err)
	}

	return orders, nil
}

func (m *mongoOrderRepository) FindByTransactionID(ctx context.Context, tranID string) (*domain.Order, error) {
	var order domain.Order

	err := m.collection.FindOne(ctx, bson.M{"transaction_id": tranID}).Decode(&order)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to find order: %w", err)
	}

	return &order, nil
}

func (m *mongoOrderRepository) Insert(ctx context.Context, order *domain.Order) (*mongo.InsertOneResult, error) {
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now()
	}

	result, err := m.collection.InsertOne(ctx, order)
	if err != nil {
		return nil, fmt.Errorf("failed to insert order: %w", err)
	}
	return result, nil
}

// MarkPaid is the guarded paid-flip: the filter requires payment_status
// false, so a replayed callback reports ModifiedCount == 0 and callers skip
// the side effects.
func (m *mongoOrderRepository) MarkPaid(ctx context.Context, tranID string) (*mongo.UpdateResult, error) {
	filter := bson.M{"transaction_id": tranID, "payment_status": false}
	update := bson.M{"$set": bson.M{"payment_status": true}}

	result, err := m.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return nil, fmt.Errorf("failed to mark order paid: %w", err)
	}
	return result, nil
}

func (m *mongoOrderRepository) MarkFulfilled(ctx context.Context, id primitive.ObjectID) (*mongo.UpdateResult, error) {
	result, err := m.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"status": true}})
	if err != nil {
		return nil, fmt.Errorf("failed to mark order fulfilled: %w", err)
	}
	return result, nil
}

func (m *mongoOrderRepository) DeleteByID(ctx context.Context, id primitive.ObjectID) (*mongo.DeleteResult, error) {
	result, err := m.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return nil, fmt.Errorf("failed to delete order: %w", err)
	}
	return result, nil
}

func (m *mongoOrderRepository) DeleteByTransactionID(ctx context.Context, tranID string) (*mongo.DeleteResult, error) {
	result, err := m.collection.DeleteOne(ctx, bson.M{"transaction_id": tranID})
	if err != nil {
		return nil, fmt.Errorf("failed to delete order: %w", err)
	}
	return result, nil
}

func (m *mongoOrderRepository) CreateIndexes(ctx context.Context) error {
	_, err := m.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "transaction_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "uid", Value: 1}},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create order indexes: %w", err)
	}
	return nil
}
