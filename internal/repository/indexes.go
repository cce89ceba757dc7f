package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
)

// EnsureIndexes creates the indexes every collection relies on: unique uid
// on users, unique (uid, itemId) on carts, unique transaction_id on orders.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	users := &mongoUserRepository{collection: db.Collection("users")}
	if err := users.CreateIndexes(ctx); err != nil {
		return err
	}

	carts := &mongoCartRepository{collection: db.Collection("carts")}
	if err := carts.CreateIndexes(ctx); err != nil {
		return err
	}

	orders := &mongoOrderRepository{collection: db.Collection("orders")}
	return orders.CreateIndexes(ctx)
}
