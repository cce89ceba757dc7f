package domain

import "go.mongodb.org/mongo-driver/bson/primitive"

// Item is a catalog record. Quantity is stock on hand; it is decremented
// by one per snapshot entry when an order's payment succeeds.
type Item struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name        string             `bson:"name" json:"name"`
	Category    string             `bson:"category" json:"category"`
	Price       float64            `bson:"price" json:"price"`
	Quantity    int                `bson:"quantity" json:"quantity"`
	Image       string             `bson:"image,omitempty" json:"image,omitempty"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
}
