package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/MehediHasan95/tasty-pizza-server/internal/domain"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrItemNotFound  = errors.New("item not found")
	ErrOrderNotFound = errors.New("order not found")
)

// UserRepository defines the interface for user profile operations.
// Consumers define this interface, not the MongoDB implementation.
type UserRepository interface {
	FindByUID(ctx context.Context, uid string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Insert(ctx context.Context, user *domain.User) (*mongo.InsertOneResult, error)
	UpdateByID(ctx context.Context, id primitive.ObjectID, fields bson.M) (*mongo.UpdateResult, error)
	DeleteByID(ctx context.Context, id primitive.ObjectID) (*mongo.DeleteResult, error)
}

// ItemRepository defines the interface for catalog operations.
type ItemRepository interface {
	List(ctx context.Context, category string, limit int64) ([]domain.Item, error)
	ListAll(ctx context.Context) ([]domain.Item, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Item, error)
	Insert(ctx context.Context, item *domain.Item) (*mongo.InsertOneResult, error)
	UpdateByID(ctx context.Context, id primitive.ObjectID, fields bson.M) (*mongo.UpdateResult, error)
	DeleteByID(ctx context.Context, id primitive.ObjectID) (*mongo.DeleteResult, error)
	DecrementStock(ctx context.Context, ids []primitive.ObjectID) (*mongo.UpdateResult, error)
}

// CartRepository defines the interface for cart entry operations.
type CartRepository interface {
	ListByOwner(ctx context.Context, uid string) ([]domain.CartEntry, error)
	ExistsForOwner(ctx context.Context, uid, itemID string) (bool, error)
	Insert(ctx context.Context, entry *domain.CartEntry) (*mongo.InsertOneResult, error)
	DeleteByID(ctx context.Context, id primitive.ObjectID) (*mongo.DeleteResult, error)
	DeleteByIDs(ctx context.Context, ids []primitive.ObjectID) (*mongo.DeleteResult, error)
}

// OrderRepository defines the interface for order operations.
type OrderRepository interface {
	ListAll(ctx context.Context) ([]domain.Order, error)
	ListByOwner(ctx context.Context, uid string) ([]domain.Order, error)
	FindByTransactionID(ctx context.Context, tranID string) (*domain.Order, error)
	Insert(ctx context.Context, order *domain.Order) (*mongo.InsertOneResult, error)
	// MarkPaid flips payment_status with payment_status:false in the filter,
	// so a replayed callback matches nothing.
	MarkPaid(ctx context.Context, tranID string) (*mongo.UpdateResult, error)
	MarkFulfilled(ctx context.Context, id primitive.ObjectID) (*mongo.UpdateResult, error)
	DeleteByID(ctx context.Context, id primitive.ObjectID) (*mongo.DeleteResult, error)
	DeleteByTransactionID(ctx context.Context, tranID string) (*mongo.DeleteResult, error)
}
