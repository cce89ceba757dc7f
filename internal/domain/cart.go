package domain

import "go.mongodb.org/mongo-driver/bson/primitive"

// CartEntry denormalizes item data at add-to-cart time. ItemID is the hex
// form of the item's object id; at most one entry exists per (uid, itemId).
type CartEntry struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	UID    string             `bson:"uid" json:"uid"`
	ItemID string             `bson:"itemId" json:"itemId"`
	Name   string             `bson:"name,omitempty" json:"name,omitempty"`
	Image  string             `bson:"image,omitempty" json:"image,omitempty"`
	Price  float64            `bson:"price" json:"price"`
}
