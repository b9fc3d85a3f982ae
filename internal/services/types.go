package services

import (
	"context"
	"time"
)

// API is the transport the services call; *transport.Client implements it.
type API interface {
	Get(ctx context.Context, path string, out any) error
	Post(ctx context.Context, path string, body, out any) error
	Put(ctx context.Context, path string, body, out any) error
	Delete(ctx context.Context, path string, out any) error
}

type Product struct {
	ID          string    `json:"id" validate:"required"`
	Name        string    `json:"name" validate:"required"`
	Description string    `json:"description,omitempty"`
	Price       float64   `json:"price" validate:"gt=0"`
	Category    string    `json:"category" validate:"required"`
	Stock       int       `json:"stock" validate:"gte=0"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type ProductInput struct {
	Name        string  `json:"name" validate:"required,max=100"`
	Description string  `json:"description,omitempty" validate:"max=1000"`
	Price       float64 `json:"price" validate:"gt=0"`
	Category    string  `json:"category" validate:"required,max=50"`
	Stock       int     `json:"stock" validate:"gte=0"`
}

type ProductQuery struct {
	Category string `json:"category,omitempty"`
	Search   string `json:"q,omitempty"`
	Limit    int    `json:"limit,omitempty" validate:"gte=0,lte=100"`
	Offset   int    `json:"offset,omitempty" validate:"gte=0"`
}

type User struct {
	ID        string    `json:"id" validate:"required"`
	Username  string    `json:"username" validate:"required"`
	Email     string    `json:"email" validate:"required,email"`
	Name      string    `json:"name,omitempty"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserInput creates or updates a user. Password is required on create and
// optional on update.
type UserInput struct {
	Username string `json:"username,omitempty" validate:"omitempty,alphanum,min=3,max=32"`
	Email    string `json:"email,omitempty" validate:"omitempty,email"`
	Name     string `json:"name,omitempty" validate:"max=100"`
	Password string `json:"password,omitempty" validate:"omitempty,min=8,max=72"`
	IsAdmin  *bool  `json:"is_admin,omitempty"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token     string    `json:"token" validate:"required"`
	ExpiresAt time.Time `json:"expires_at"`
	User      *User     `json:"user" validate:"required"`
}

type productList struct {
	Products []Product `json:"products" validate:"required"`
}

type userList struct {
	Users []User `json:"users" validate:"required"`
}
