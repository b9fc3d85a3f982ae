package products

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrProductConflict = errors.New("product with this name already exists in category")
)

func NewRepository() *Repository {
	return &Repository{
		items: make(map[string]*Product),
		now:   time.Now,
	}
}

func (r *Repository) Create(_ context.Context, req CreateProductRequest) (*Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.nameTaken(req.Name, req.Category, "") {
		return nil, ErrProductConflict
	}

	now := r.now().UTC()
	p := &Product{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Stock:       req.Stock,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	r.items[p.ID] = p
	r.order = append(r.order, p.ID)

	out := *p
	return &out, nil
}

func (r *Repository) Get(_ context.Context, id string) (*Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.items[id]
	if !ok {
		return nil, ErrProductNotFound
	}

	out := *p
	return &out, nil
}

// returns one page of matching products in creation order and the total match count
func (r *Repository) List(_ context.Context, filter ListFilter, limit, offset int) ([]Product, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	search := strings.ToLower(filter.Search)
	matched := make([]Product, 0, len(r.order))

	for _, id := range r.order {
		p := r.items[id]

		if filter.Category != "" && !strings.EqualFold(p.Category, filter.Category) {
			continue
		}

		if search != "" &&
			!strings.Contains(strings.ToLower(p.Name), search) &&
			!strings.Contains(strings.ToLower(p.Description), search) {
			continue
		}

		matched = append(matched, *p)
	}

	total := len(matched)
	if offset >= total {
		return []Product{}, total, nil
	}

	end := total
	if limit > 0 && offset+limit < total {
		end = offset + limit
	}

	return matched[offset:end], total, nil
}

func (r *Repository) Update(_ context.Context, id string, req UpdateProductRequest) (*Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.items[id]
	if !ok {
		return nil, ErrProductNotFound
	}

	next := *p
	if req.Name != nil {
		next.Name = *req.Name
	}
	if req.Description != nil {
		next.Description = *req.Description
	}
	if req.Price != nil {
		next.Price = *req.Price
	}
	if req.Category != nil {
		next.Category = *req.Category
	}
	if req.Stock != nil {
		next.Stock = *req.Stock
	}

	if r.nameTaken(next.Name, next.Category, id) {
		return nil, ErrProductConflict
	}

	next.UpdatedAt = r.now().UTC()
	*p = next

	return &next, nil
}

func (r *Repository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return ErrProductNotFound
	}

	delete(r.items, id)

	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}

	return nil
}

// caller holds the lock
func (r *Repository) nameTaken(name, category, exceptID string) bool {
	for id, p := range r.items {
		if id != exceptID && strings.EqualFold(p.Name, name) && strings.EqualFold(p.Category, category) {
			return true
		}
	}

	return false
}
