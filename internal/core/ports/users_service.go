package ports

import (
	"context"

	"github.com/99minutos/identity-admin/internal/core/domain"
	"github.com/99minutos/identity-admin/internal/core/result"
)

// CreateUserInput carries the data needed to create a user.
type CreateUserInput struct {
	Username string
	Password string
	Email    string
	Roles    []string
}

// UpdateUserInput is a partial patch: nil fields keep their prior values.
type UpdateUserInput struct {
	Email    *string
	Password *string
	Roles    *[]string
}

// ListUsersFilter narrows GetAll. The zero value matches everything.
type ListUsersFilter struct {
	Role     string // keep only users carrying this role
	Username string // exact username match
}

// UsersService defines the use-case operations on the users resource.
//
// Expected outcomes (not found, duplicate username, bad input) are delivered
// inside the Result; the plain error return carries only fatal infrastructure
// failures and is never used for a condition a caller could act on.
//
// Per-operation expected failures:
//
//	FindOne → NotFound
//	Create  → AlreadyExists (username taken), Validation
//	Update  → NotFound
//	Remove  → NotFound (including a second Remove of the same id)
type UsersService interface {
	GetAll(ctx context.Context, filter ListUsersFilter) ([]domain.User, error)
	FindOne(ctx context.Context, id string) (result.Result[domain.User], error)
	Create(ctx context.Context, input CreateUserInput) (result.Result[domain.User], error)
	Update(ctx context.Context, id string, input UpdateUserInput) (result.Result[domain.User], error)
	Remove(ctx context.Context, id string) (result.Result[domain.User], error)
}
