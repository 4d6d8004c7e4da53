package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/99minutos/identity-admin/internal/core/domain"
	"github.com/99minutos/identity-admin/internal/core/ports"
	"github.com/99minutos/identity-admin/internal/core/result"
)

// UsersService implements CRUD on user accounts on top of a repository and
// an optional read cache. All expected failures come back inside the Result.
type UsersService struct {
	repo   ports.UsersRepository
	cache  ports.UserCache
	logger zerolog.Logger
}

func NewUsersService(repo ports.UsersRepository, cache ports.UserCache, logger zerolog.Logger) *UsersService {
	return &UsersService{repo: repo, cache: cache, logger: logger}
}

// GetAll lists users matching the filter. An empty filter matches everything.
// Repository ordering (creation time, then id) is passed through untouched.
func (s *UsersService) GetAll(ctx context.Context, filter ports.ListUsersFilter) ([]domain.User, error) {
	users, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list users")
		return nil, err
	}
	return users, nil
}

// FindOne fetches a user by id, consulting the cache first.
func (s *UsersService) FindOne(ctx context.Context, id string) (result.Result[domain.User], error) {
	if s.cache != nil {
		if u, hit := s.cache.Get(ctx, id); hit {
			return result.Ok(*u), nil
		}
	}

	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return s.asResult(err)
	}

	if s.cache != nil {
		s.cache.Set(ctx, u)
	}
	return result.Ok(*u), nil
}

// Create registers a new user. The username is the uniqueness key; when it
// is already taken the Result carries AlreadyExists. The stored password is
// a bcrypt hash, never the plaintext.
func (s *UsersService) Create(ctx context.Context, input ports.CreateUserInput) (result.Result[domain.User], error) {
	if de := validateCreateUser(input); de != nil {
		return result.Err[domain.User](de), nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return result.Result[domain.User]{}, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: string(hash),
		Roles:        input.Roles,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Insert(ctx, user)
	if err != nil {
		return s.asResult(err)
	}

	s.logger.Info().Str("user_id", created.ID).Str("username", created.Username).Msg("user created")
	return result.Ok(*created), nil
}

// Update applies a partial patch; unset fields keep their prior values.
func (s *UsersService) Update(ctx context.Context, id string, input ports.UpdateUserInput) (result.Result[domain.User], error) {
	patch := ports.UserPatch{Email: input.Email, Roles: input.Roles}
	if input.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return result.Result[domain.User]{}, err
		}
		hashed := string(hash)
		patch.PasswordHash = &hashed
	}

	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return s.asResult(err)
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx, id)
	}
	s.logger.Info().Str("user_id", id).Msg("user updated")
	return result.Ok(*updated), nil
}

// Remove deletes the user and returns the removed snapshot. A second Remove
// of the same id surfaces NotFound.
func (s *UsersService) Remove(ctx context.Context, id string) (result.Result[domain.User], error) {
	removed, err := s.repo.Delete(ctx, id)
	if err != nil {
		return s.asResult(err)
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx, id)
	}
	s.logger.Info().Str("user_id", id).Str("username", removed.Username).Msg("user removed")
	return result.Ok(*removed), nil
}

// asResult routes a repository error: expected domain failures become the
// error branch of the Result, anything else stays fatal.
func (s *UsersService) asResult(err error) (result.Result[domain.User], error) {
	if de, ok := domain.AsError(err); ok {
		return result.Err[domain.User](de), nil
	}
	s.logger.Error().Err(err).Msg("users repository failure")
	return result.Result[domain.User]{}, err
}

func validateCreateUser(input ports.CreateUserInput) *domain.Error {
	switch {
	case strings.TrimSpace(input.Username) == "":
		return domain.Invalid("username is required")
	case len(input.Password) < 8:
		return domain.Invalid("password must be at least 8 characters")
	case len(input.Roles) == 0:
		return domain.Invalid("at least one role is required")
	}
	return nil
}
