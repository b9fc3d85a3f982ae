package services

import (
	"context"

	apperrors "github.com/tanker327/react-project-structure-best-practices/internal/errors"
	"github.com/tanker327/react-project-structure-best-practices/internal/transport"
	"github.com/tanker327/react-project-structure-best-practices/internal/validate"
)

const authEntity = "AuthService"

// AuthService manages the session token shared with the transport client.
type AuthService struct {
	tokens *transport.TokenHolder
	entity *apperrors.Entity

	login          func(context.Context, LoginRequest) (*LoginResponse, error)
	logout         func(context.Context) error
	getCurrentUser func(context.Context) (*User, error)
}

func NewAuthService(api API, tokens *transport.TokenHolder) *AuthService {
	c := authCalls{api: api, tokens: tokens, users: userCalls{api: api}}

	s := &AuthService{
		tokens:         tokens,
		login:          apperrors.Wrap1(authOp("login"), c.login),
		logout:         apperrors.WrapErr0(authOp("logout"), c.logout),
		getCurrentUser: apperrors.Wrap0(authOp("getCurrentUser"), c.getCurrentUser),
	}

	s.entity = apperrors.Instrument(apperrors.EntityDef{
		Name: authEntity,
		Operations: []apperrors.OperationDef{
			apperrors.AsyncOp("login", func(ctx context.Context, args ...any) (any, error) {
				req, err := argAt[LoginRequest](args, 0, true)
				if err != nil {
					return nil, err
				}
				return c.login(ctx, req)
			}),
			apperrors.AsyncOp("logout", func(ctx context.Context, _ ...any) (any, error) {
				return nil, c.logout(ctx)
			}),
			apperrors.AsyncOp("getCurrentUser", func(ctx context.Context, _ ...any) (any, error) {
				return c.getCurrentUser(ctx)
			}),
			apperrors.SyncOp("isAuthenticated", func(context.Context, ...any) (any, error) {
				return s.IsAuthenticated(), nil
			}),
		},
	})

	return s
}

func authOp(method string) apperrors.Op {
	return apperrors.Op{Entity: authEntity, Method: method}
}

func (s *AuthService) Operations() *apperrors.Entity { return s.entity }

// Login exchanges credentials for a token and keeps it for later requests.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	return s.login(ctx, req)
}

// Logout notifies the server and always drops the local token.
func (s *AuthService) Logout(ctx context.Context) error {
	return s.logout(ctx)
}

func (s *AuthService) GetCurrentUser(ctx context.Context) (*User, error) {
	return s.getCurrentUser(ctx)
}

func (s *AuthService) IsAuthenticated() bool {
	return s.tokens.Get() != ""
}

type authCalls struct {
	api    API
	tokens *transport.TokenHolder
	users  userCalls
}

func (c authCalls) login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}

	var resp LoginResponse
	if err := c.api.Post(ctx, "/auth/login", req, &resp); err != nil {
		return nil, err
	}

	if err := validate.Struct(resp); err != nil {
		return nil, err
	}

	c.tokens.Set(resp.Token)

	return &resp, nil
}

func (c authCalls) logout(ctx context.Context) error {
	defer c.tokens.Clear()

	return c.api.Post(ctx, "/auth/logout", nil, nil)
}

func (c authCalls) getCurrentUser(ctx context.Context) (*User, error) {
	return c.users.fetch(ctx, "/auth/me")
}
