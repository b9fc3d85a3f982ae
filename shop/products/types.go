package products

import (
	"sync"
	"time"
)

// in-memory product catalog
type Repository struct {
	mu    sync.RWMutex
	items map[string]*Product
	order []string
	now   func() time.Time
}

type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Price       float64   `json:"price"`
	Category    string    `json:"category"`
	Stock       int       `json:"stock"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CreateProductRequest struct {
	Name        string  `json:"name" binding:"required,max=100"`
	Description string  `json:"description,omitempty" binding:"max=1000"`
	Price       float64 `json:"price" binding:"gt=0"`
	Category    string  `json:"category" binding:"required,max=50"`
	Stock       int     `json:"stock" binding:"gte=0"`
}

type UpdateProductRequest struct {
	Name        *string  `json:"name,omitempty" binding:"omitempty,min=1,max=100"`
	Description *string  `json:"description,omitempty" binding:"omitempty,max=1000"`
	Price       *float64 `json:"price,omitempty" binding:"omitempty,gt=0"`
	Category    *string  `json:"category,omitempty" binding:"omitempty,min=1,max=50"`
	Stock       *int     `json:"stock,omitempty" binding:"omitempty,gte=0"`
}

type ListFilter struct {
	Category string // exact match, case-insensitive
	Search   string // substring of name or description
}
