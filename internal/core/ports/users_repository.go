package ports

import (
	"context"

	"github.com/99minutos/identity-admin/internal/core/domain"
)

// UserPatch is the storage-level partial update. Nil fields are untouched.
type UserPatch struct {
	Email        *string
	PasswordHash *string
	Roles        *[]string
}

// UsersRepository defines user persistence.
//
// Lookups that miss return *domain.Error with KindNotFound; Insert on a
// taken username returns KindAlreadyExists. Anything else is a fatal storage
// failure. List is order-stable: sorted by creation time, then id.
type UsersRepository interface {
	List(ctx context.Context, filter ListUsersFilter) ([]domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	Insert(ctx context.Context, user *domain.User) (*domain.User, error)
	Update(ctx context.Context, id string, patch UserPatch) (*domain.User, error)
	// Delete removes the user and returns the removed snapshot. A second
	// Delete of the same id reports NotFound, never a cached success.
	Delete(ctx context.Context, id string) (*domain.User, error)
}

// UserCache is a read-through cache in front of user lookups by id.
// A nil-safe wrapper is not provided; callers check for a configured cache.
type UserCache interface {
	Get(ctx context.Context, id string) (*domain.User, bool)
	Set(ctx context.Context, user *domain.User)
	Invalidate(ctx context.Context, id string)
}
