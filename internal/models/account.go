package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role determines administrative capability of an account.
type Role string

const (
	RoleWaiter Role = "waiter"
	RoleAdmin  Role = "admin"
)

// Toggle returns the other role value.
func (r Role) Toggle() Role {
	if r == RoleAdmin {
		return RoleWaiter
	}
	return RoleAdmin
}

// Account is a staff identity. The password hash never leaves the backend.
type Account struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"password_hash" json:"-"`
	Role         Role               `bson:"role" json:"role"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
}

// Public returns the account without credential material, for responses.
func (a *Account) Public() *Account {
	if a == nil {
		return nil
	}
	cp := *a
	cp.PasswordHash = ""
	return &cp
}

// RegisterRequest is the body of POST /user.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the body of POST /login and POST /admin.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the bearer token and the public account fields.
type LoginResponse struct {
	Token   string   `json:"token"`
	Account *Account `json:"account"`
}
