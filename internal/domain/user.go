package domain

import "go.mongodb.org/mongo-driver/bson/primitive"

const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// User is a profile record keyed by the identity provider's uid.
type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	UID      string             `bson:"uid" json:"uid"`
	Role     string             `bson:"role" json:"role"`
	Name     string             `bson:"name,omitempty" json:"name,omitempty"`
	Email    string             `bson:"email,omitempty" json:"email,omitempty"`
	PhotoURL string             `bson:"photoURL,omitempty" json:"photoURL,omitempty"`
	Address  string             `bson:"address,omitempty" json:"address,omitempty"`
	City     string             `bson:"city,omitempty" json:"city,omitempty"`
	Postcode string             `bson:"postcode,omitempty" json:"postcode,omitempty"`
	Phone    string             `bson:"phone,omitempty" json:"phone,omitempty"`
}
