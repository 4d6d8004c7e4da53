package ports

import (
	"context"

	"github.com/99minutos/identity-admin/internal/core/domain"
	"github.com/99minutos/identity-admin/internal/core/result"
)

// CreateRoleInput carries the data needed to create a role definition.
type CreateRoleInput struct {
	Name        string
	Description string
}

// UpdateRoleInput is a partial patch: nil fields keep their prior values.
// The role name is its uniqueness key and cannot be changed after creation.
type UpdateRoleInput struct {
	Description *string
}

// RolesService defines the use-case operations on the roles resource.
// Same Result contract as UsersService: FindOne/Update/Remove may carry
// NotFound, Create may carry AlreadyExists (name taken) or Validation.
type RolesService interface {
	GetAll(ctx context.Context) ([]domain.Role, error)
	FindOne(ctx context.Context, id string) (result.Result[domain.Role], error)
	Create(ctx context.Context, input CreateRoleInput) (result.Result[domain.Role], error)
	Update(ctx context.Context, id string, input UpdateRoleInput) (result.Result[domain.Role], error)
	Remove(ctx context.Context, id string) (result.Result[domain.Role], error)
}
