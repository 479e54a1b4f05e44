package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LoginRequest defines the structure for login requests. AdminScoped
// requests additionally enforce the admin allow-list.
type LoginRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required"`
	AdminScoped bool   `json:"adminScoped"`
}

// RegisterRequest defines the structure for admin account registration.
type RegisterRequest struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
}

// LoginResponse carries the issued token plus the resolved session so
// clients never have to re-derive the role.
type LoginResponse struct {
	Token   string  `json:"token"`
	Session Session `json:"session"`
}

// Account is a backend user account (admin console or client). The role
// in the session is still computed from the allow-list at sign-in, not
// read from this record.
type Account struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	FirstName string             `bson:"firstName" json:"firstName"`
	LastName  string             `bson:"lastName" json:"lastName"`
	Email     string             `bson:"email" json:"email"`
	Password  string             `bson:"password" json:"-"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
