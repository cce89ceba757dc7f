package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order snapshots the buyer's cart at payment-intent time. TransactionID is
// the 13-character token that ties the record to one gateway session;
// PaymentStatus flips once on the verified success callback and Status flips
// when an operator marks the order handled.
type Order struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	UID           string             `bson:"uid" json:"uid"`
	FullName      string             `bson:"fullName,omitempty" json:"fullName,omitempty"`
	Email         string             `bson:"email,omitempty" json:"email,omitempty"`
	Address       string             `bson:"address,omitempty" json:"address,omitempty"`
	City          string             `bson:"city,omitempty" json:"city,omitempty"`
	Postcode      string             `bson:"postcode,omitempty" json:"postcode,omitempty"`
	Phone         string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Carts         []CartEntry        `bson:"carts" json:"carts"`
	TotalPrice    float64            `bson:"total_price" json:"total_price"`
	TransactionID string             `bson:"transaction_id" json:"transaction_id"`
	PaymentStatus bool               `bson:"payment_status" json:"payment_status"`
	Status        bool               `bson:"status" json:"status"`
	CreatedAt     time.Time          `bson:"created_at,omitempty" json:"created_at,omitempty"`
}
