package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Role is the closed set of account roles. Using a dedicated type instead of
// free-form strings lets the role gate take an explicit allow list and keeps
// unknown values out of the database.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleBusiness Role = "business"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleBusiness
}

// User is an identity record in the `users` collection. Email is unique at
// the store level (unique index, see database.Open). The bcrypt hash is
// stored in Password and never serialized into responses.
type User struct {
	ID         bson.ObjectID  `bson:"_id,omitempty" json:"_id"`
	Email      string         `bson:"email" json:"email"`
	Password   string         `bson:"password" json:"-"`
	Name       string         `bson:"name" json:"name"`
	Role       Role           `bson:"role" json:"role"`
	BusinessID *bson.ObjectID `bson:"businessId,omitempty" json:"businessId,omitempty"`
	Verified   bool           `bson:"verified" json:"verified"`
	CreatedAt  time.Time      `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time      `bson:"updatedAt" json:"updatedAt"`
}
