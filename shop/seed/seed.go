// Package seed fills the in-memory repositories at server start, from a YAML
// file or the embedded defaults.
package seed

import (
	"context"
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tanker327/react-project-structure-best-practices/shop/products"
	"github.com/tanker327/react-project-structure-best-practices/shop/users"
)

//go:embed default.yaml
var defaultSeed []byte

type File struct {
	Products []Product `yaml:"products"`
	Users    []User    `yaml:"users"`
}

type Product struct {
	Name        string  `yaml:"name"`
	Description string  `yaml:"description"`
	Price       float64 `yaml:"price"`
	Category    string  `yaml:"category"`
	Stock       int     `yaml:"stock"`
}

type User struct {
	Username string `yaml:"username"`
	Email    string `yaml:"email"`
	Name     string `yaml:"name"`
	Password string `yaml:"password"`
	IsAdmin  bool   `yaml:"is_admin"`
}

// reads a seed file; an empty path selects the embedded defaults
func Load(path string) (*File, error) {
	data := defaultSeed

	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read seed file: %w", err)
		}
		data = b
	}

	return Parse(data)
}

func Parse(data []byte) (*File, error) {
	var f File

	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}

	return &f, nil
}

// inserts every seeded record, stopping at the first failure
func (f *File) Apply(ctx context.Context, productRepo *products.Repository, userRepo *users.Repository) error {
	for i, p := range f.Products {
		_, err := productRepo.Create(ctx, products.CreateProductRequest{
			Name:        p.Name,
			Description: p.Description,
			Price:       p.Price,
			Category:    p.Category,
			Stock:       p.Stock,
		})
		if err != nil {
			return fmt.Errorf("seed product %d (%s): %w", i, p.Name, err)
		}
	}

	for i, u := range f.Users {
		_, err := userRepo.Create(ctx, users.CreateUserRequest{
			Username: u.Username,
			Email:    u.Email,
			Name:     u.Name,
			Password: u.Password,
			IsAdmin:  u.IsAdmin,
		})
		if err != nil {
			return fmt.Errorf("seed user %d (%s): %w", i, u.Username, err)
		}
	}

	return nil
}
