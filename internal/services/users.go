package services

import (
	"context"
	"net/url"

	apperrors "github.com/tanker327/react-project-structure-best-practices/internal/errors"
	"github.com/tanker327/react-project-structure-best-practices/internal/validate"
)

const userEntity = "UserService"

type UserService struct {
	entity *apperrors.Entity

	getUsers   func(context.Context) ([]User, error)
	getUser    func(context.Context, string) (*User, error)
	createUser func(context.Context, UserInput) (*User, error)
	updateUser func(context.Context, string, UserInput) (*User, error)
	deleteUser func(context.Context, string) error
}

func NewUserService(api API) *UserService {
	c := userCalls{api: api}

	s := &UserService{
		getUsers:   apperrors.Wrap0(userOp("getUsers"), c.getUsers),
		getUser:    apperrors.Wrap1(userOp("getUser"), c.getUser),
		createUser: apperrors.Wrap1(userOp("createUser"), c.createUser),
		updateUser: apperrors.Wrap2(userOp("updateUser"), c.updateUser),
		deleteUser: apperrors.WrapErr1(userOp("deleteUser"), c.deleteUser),
	}

	s.entity = apperrors.Instrument(apperrors.EntityDef{
		Name: userEntity,
		Operations: []apperrors.OperationDef{
			apperrors.AsyncOp("getUsers", func(ctx context.Context, _ ...any) (any, error) {
				return c.getUsers(ctx)
			}),
			apperrors.AsyncOp("getUser", func(ctx context.Context, args ...any) (any, error) {
				id, err := argAt[string](args, 0, true)
				if err != nil {
					return nil, err
				}
				return c.getUser(ctx, id)
			}),
			apperrors.AsyncOp("createUser", func(ctx context.Context, args ...any) (any, error) {
				in, err := argAt[UserInput](args, 0, true)
				if err != nil {
					return nil, err
				}
				return c.createUser(ctx, in)
			}),
			apperrors.AsyncOp("updateUser", func(ctx context.Context, args ...any) (any, error) {
				id, err := argAt[string](args, 0, true)
				if err != nil {
					return nil, err
				}
				in, err := argAt[UserInput](args, 1, true)
				if err != nil {
					return nil, err
				}
				return c.updateUser(ctx, id, in)
			}),
			apperrors.AsyncOp("deleteUser", func(ctx context.Context, args ...any) (any, error) {
				id, err := argAt[string](args, 0, true)
				if err != nil {
					return nil, err
				}
				return nil, c.deleteUser(ctx, id)
			}),
		},
	})

	return s
}

func userOp(method string) apperrors.Op {
	return apperrors.Op{Entity: userEntity, Method: method}
}

func (s *UserService) Operations() *apperrors.Entity { return s.entity }

func (s *UserService) GetUsers(ctx context.Context) ([]User, error) {
	return s.getUsers(ctx)
}

func (s *UserService) GetUser(ctx context.Context, id string) (*User, error) {
	return s.getUser(ctx, id)
}

func (s *UserService) CreateUser(ctx context.Context, in UserInput) (*User, error) {
	return s.createUser(ctx, in)
}

func (s *UserService) UpdateUser(ctx context.Context, id string, in UserInput) (*User, error) {
	return s.updateUser(ctx, id, in)
}

func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	return s.deleteUser(ctx, id)
}

type userCalls struct {
	api API
}

func (c userCalls) getUsers(ctx context.Context) ([]User, error) {
	var resp userList
	if err := c.api.Get(ctx, "/users", &resp); err != nil {
		return nil, err
	}

	if err := validate.Struct(resp); err != nil {
		return nil, err
	}

	if err := validate.Slice(resp.Users); err != nil {
		return nil, err
	}

	return resp.Users, nil
}

func (c userCalls) getUser(ctx context.Context, id string) (*User, error) {
	if err := validate.Var("id", id, "required"); err != nil {
		return nil, err
	}

	return c.fetch(ctx, "/users/"+url.PathEscape(id))
}

func (c userCalls) createUser(ctx context.Context, in UserInput) (*User, error) {
	if err := validate.Struct(in); err != nil {
		return nil, err
	}

	// fields optional on update are mandatory here
	for _, check := range []struct {
		path, value string
	}{
		{"username", in.Username},
		{"email", in.Email},
		{"password", in.Password},
	} {
		if err := validate.Var(check.path, check.value, "required"); err != nil {
			return nil, err
		}
	}

	var u User
	if err := c.api.Post(ctx, "/users", in, &u); err != nil {
		return nil, err
	}

	return checked(&u)
}

func (c userCalls) updateUser(ctx context.Context, id string, in UserInput) (*User, error) {
	if err := validate.Var("id", id, "required"); err != nil {
		return nil, err
	}

	if err := validate.Struct(in); err != nil {
		return nil, err
	}

	if in.Username != "" {
		return nil, validate.NewError(apperrors.Violation{Path: "username", Message: "cannot be changed"})
	}

	var u User
	if err := c.api.Put(ctx, "/users/"+url.PathEscape(id), in, &u); err != nil {
		return nil, err
	}

	return checked(&u)
}

func (c userCalls) deleteUser(ctx context.Context, id string) error {
	if err := validate.Var("id", id, "required"); err != nil {
		return err
	}

	return c.api.Delete(ctx, "/users/"+url.PathEscape(id), nil)
}

func (c userCalls) fetch(ctx context.Context, path string) (*User, error) {
	var u User
	if err := c.api.Get(ctx, path, &u); err != nil {
		return nil, err
	}

	return checked(&u)
}

func checked(u *User) (*User, error) {
	if err := validate.Struct(u); err != nil {
		return nil, err
	}

	return u, nil
}
