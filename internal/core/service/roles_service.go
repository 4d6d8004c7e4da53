package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/identity-admin/internal/core/domain"
	"github.com/99minutos/identity-admin/internal/core/ports"
	"github.com/99minutos/identity-admin/internal/core/result"
)

// RolesService implements CRUD on role definitions.
type RolesService struct {
	repo   ports.RolesRepository
	logger zerolog.Logger
}

func NewRolesService(repo ports.RolesRepository, logger zerolog.Logger) *RolesService {
	return &RolesService{repo: repo, logger: logger}
}

func (s *RolesService) GetAll(ctx context.Context) ([]domain.Role, error) {
	roles, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list roles")
		return nil, err
	}
	return roles, nil
}

func (s *RolesService) FindOne(ctx context.Context, id string) (result.Result[domain.Role], error) {
	role, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return s.asResult(err)
	}
	return result.Ok(*role), nil
}

// Create registers a new role definition. The name is the uniqueness key.
func (s *RolesService) Create(ctx context.Context, input ports.CreateRoleInput) (result.Result[domain.Role], error) {
	if strings.TrimSpace(input.Name) == "" {
		return result.Err[domain.Role](domain.Invalid("role name is required")), nil
	}

	now := time.Now().UTC()
	role := &domain.Role{
		Name:        input.Name,
		Description: input.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.repo.Insert(ctx, role)
	if err != nil {
		return s.asResult(err)
	}

	s.logger.Info().Str("role_id", created.ID).Str("name", created.Name).Msg("role created")
	return result.Ok(*created), nil
}

func (s *RolesService) Update(ctx context.Context, id string, input ports.UpdateRoleInput) (result.Result[domain.Role], error) {
	updated, err := s.repo.Update(ctx, id, ports.RolePatch{Description: input.Description})
	if err != nil {
		return s.asResult(err)
	}

	s.logger.Info().Str("role_id", id).Msg("role updated")
	return result.Ok(*updated), nil
}

func (s *RolesService) Remove(ctx context.Context, id string) (result.Result[domain.Role], error) {
	removed, err := s.repo.Delete(ctx, id)
	if err != nil {
		return s.asResult(err)
	}

	s.logger.Info().Str("role_id", id).Str("name", removed.Name).Msg("role removed")
	return result.Ok(*removed), nil
}

func (s *RolesService) asResult(err error) (result.Result[domain.Role], error) {
	if de, ok := domain.AsError(err); ok {
		return result.Err[domain.Role](de), nil
	}
	s.logger.Error().Err(err).Msg("roles repository failure")
	return result.Result[domain.Role]{}, err
}
