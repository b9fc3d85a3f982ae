// Package services holds the typed API clients for the storefront. Remote
// operations are instrumented twice: as typed methods and as by-name entries
// in each service's operation table.
package services

import (
	"context"
	"fmt"
	"strings"

	apperrors "github.com/tanker327/react-project-structure-best-practices/internal/errors"
	"github.com/tanker327/react-project-structure-best-practices/internal/transport"
)

type Services struct {
	Products *ProductService
	Users    *UserService
	Auth     *AuthService

	entities map[string]*apperrors.Entity
}

func New(api API, tokens *transport.TokenHolder) *Services {
	s := &Services{
		Products: NewProductService(api),
		Users:    NewUserService(api),
		Auth:     NewAuthService(api, tokens),
	}

	s.entities = make(map[string]*apperrors.Entity, 3)
	for _, e := range s.Entities() {
		s.entities[e.Name()] = e
	}

	return s
}

func (s *Services) Entities() []*apperrors.Entity {
	return []*apperrors.Entity{
		s.Products.Operations(),
		s.Users.Operations(),
		s.Auth.Operations(),
	}
}

// Call dispatches "<Entity>.<operation>" with untyped (JSON-decoded) arguments.
func (s *Services) Call(ctx context.Context, qualified string, args ...any) (any, error) {
	entityName, op, ok := strings.Cut(qualified, ".")
	if !ok {
		return nil, fmt.Errorf("%w: %q is not <Entity>.<operation>", apperrors.ErrUnknownOperation, qualified)
	}

	e, found := s.entities[entityName]
	if !found {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrUnknownOperation, qualified)
	}

	return e.Call(ctx, op, args...)
}
