package main

import (
	"context"
	"fmt"

	"github.com/tanker327/react-project-structure-best-practices/api/rest"
	"github.com/tanker327/react-project-structure-best-practices/internal/auth"
	"github.com/tanker327/react-project-structure-best-practices/internal/config"
	"github.com/tanker327/react-project-structure-best-practices/internal/logger"
	"github.com/tanker327/react-project-structure-best-practices/shop/products"
	"github.com/tanker327/react-project-structure-best-practices/shop/seed"
	"github.com/tanker327/react-project-structure-best-practices/shop/users"
)

// creates and configures a new server instance with all dependencies
func NewServer(ctx context.Context, cfg *config.ServerConfig) (*Server, error) {
	signer, err := auth.NewSigner(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to create token signer: %w", err)
	}

	productRepo := products.NewRepository()
	userRepo := users.NewRepository()

	// empty SeedFile loads the embedded catalog
	data, err := seed.Load(cfg.SeedFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load seed data: %w", err)
	}

	if err := data.Apply(ctx, productRepo, userRepo); err != nil {
		return nil, fmt.Errorf("failed to apply seed data: %w", err)
	}

	logger.Info("seed data loaded",
		"products", len(data.Products),
		"users", len(data.Users),
		"source", seedSource(cfg.SeedFile),
	)

	router, err := rest.NewRouter(rest.Deps{
		Products:       productRepo,
		Users:          userRepo,
		Signer:         signer,
		LoginRateLimit: cfg.LoginRateLimit,
		CORSOrigins:    cfg.CORSOrigins,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create router: %w", err)
	}

	return &Server{
		config:      cfg,
		signer:      signer,
		productRepo: productRepo,
		userRepo:    userRepo,
		router:      router,
	}, nil
}

func seedSource(path string) string {
	if path == "" {
		return "embedded"
	}

	return path
}
