package users

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tanker327/react-project-structure-best-practices/internal/auth"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrUserConflict = errors.New("username or email already registered")
)

func NewRepository() *Repository {
	return &Repository{
		items: make(map[string]*User),
		now:   time.Now,
	}
}

func (r *Repository) Create(_ context.Context, req CreateUserRequest) (*User, error) {
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.taken(req.Username, req.Email, "") {
		return nil, ErrUserConflict
	}

	now := r.now().UTC()
	u := &User{
		ID:           uuid.NewString(),
		Username:     req.Username,
		Email:        req.Email,
		Name:         req.Name,
		IsAdmin:      req.IsAdmin,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	r.items[u.ID] = u
	r.order = append(r.order, u.ID)

	out := *u
	return &out, nil
}

func (r *Repository) Get(_ context.Context, id string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.items[id]
	if !ok {
		return nil, ErrUserNotFound
	}

	out := *u
	return &out, nil
}

func (r *Repository) GetByUsername(_ context.Context, username string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.items {
		if strings.EqualFold(u.Username, username) {
			out := *u
			return &out, nil
		}
	}

	return nil, ErrUserNotFound
}

func (r *Repository) List(_ context.Context, limit, offset int) ([]User, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	total := len(r.order)
	if offset >= total {
		return []User{}, total, nil
	}

	end := total
	if limit > 0 && offset+limit < total {
		end = offset + limit
	}

	out := make([]User, 0, end-offset)
	for _, id := range r.order[offset:end] {
		out = append(out, *r.items[id])
	}

	return out, total, nil
}

func (r *Repository) Update(_ context.Context, id string, req UpdateUserRequest) (*User, error) {
	var hash string
	if req.Password != nil {
		h, err := auth.HashPassword(*req.Password)
		if err != nil {
			return nil, err
		}
		hash = h
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.items[id]
	if !ok {
		return nil, ErrUserNotFound
	}

	next := *u
	if req.Email != nil {
		next.Email = *req.Email
	}
	if req.Name != nil {
		next.Name = *req.Name
	}
	if req.IsAdmin != nil {
		next.IsAdmin = *req.IsAdmin
	}
	if hash != "" {
		next.PasswordHash = hash
	}

	if r.taken(next.Username, next.Email, id) {
		return nil, ErrUserConflict
	}

	next.UpdatedAt = r.now().UTC()
	*u = next

	return &next, nil
}

func (r *Repository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return ErrUserNotFound
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

// verifies a username/password pair; unknown users and wrong passwords are
// indistinguishable to the caller
func (r *Repository) Authenticate(ctx context.Context, username, password string) (*User, error) {
	u, err := r.GetByUsername(ctx, username)
	if errors.Is(err, ErrUserNotFound) {
		return nil, auth.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if err := auth.CheckPassword(u.PasswordHash, password); err != nil {
		return nil, err
	}

	return u, nil
}

// caller holds the lock
func (r *Repository) taken(username, email, exceptID string) bool {
	for id, u := range r.items {
		if id == exceptID {
			continue
		}

		if strings.EqualFold(u.Username, username) || strings.EqualFold(u.Email, email) {
			return true
		}
	}

	return false
}
