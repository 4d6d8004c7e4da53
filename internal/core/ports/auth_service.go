package ports

import (
	"context"

	"github.com/99minutos/identity-admin/internal/core/domain"
)

// AuthService authenticates a user and issues a signed token carrying the
// user's role set. How callers are authenticated is outside the authorization
// core; the gate only ever consumes the resolved roles.
type AuthService interface {
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
}
