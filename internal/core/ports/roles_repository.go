package ports

import (
	"context"

	"github.com/99minutos/identity-admin/internal/core/domain"
)

// RolePatch is the storage-level partial update. Nil fields are untouched.
type RolePatch struct {
	Description *string
}

// RolesRepository defines role-definition persistence. Error contract
// matches UsersRepository: misses are KindNotFound, duplicate names are
// KindAlreadyExists, everything else is fatal.
type RolesRepository interface {
	List(ctx context.Context) ([]domain.Role, error)
	FindByID(ctx context.Context, id string) (*domain.Role, error)
	Insert(ctx context.Context, role *domain.Role) (*domain.Role, error)
	Update(ctx context.Context, id string, patch RolePatch) (*domain.Role, error)
	Delete(ctx context.Context, id string) (*domain.Role, error)
}
