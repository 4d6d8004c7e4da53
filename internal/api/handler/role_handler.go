package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/identity-admin/internal/api/metrics"
	"github.com/99minutos/identity-admin/internal/core/domain"
	"github.com/99minutos/identity-admin/internal/core/ports"
)

// RoleHandler folds RolesService Results into HTTP responses.
type RoleHandler struct {
	service ports.RolesService
}

func NewRoleHandler(service ports.RolesService) *RoleHandler {
	return &RoleHandler{service: service}
}

type createRoleRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description,omitempty"`
}

type updateRoleRequest struct {
	Description *string `json:"description,omitempty"`
}

type roleResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

type roleListResponse struct {
	Items []roleResponse `json:"items"`
	Total int            `json:"total"`
}

func toRoleResponse(r domain.Role) roleResponse {
	return roleResponse{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		CreatedAt:   r.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:   r.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

// List handles GET /v1/roles.
//
// @Summary      List role definitions
// @Tags         roles
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  roleListResponse
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /v1/roles [get]
func (h *RoleHandler) List(c echo.Context) error {
	roles, err := h.service.GetAll(c.Request().Context())
	if err != nil {
		return err
	}

	items := make([]roleResponse, 0, len(roles))
	for _, r := range roles {
		items = append(items, toRoleResponse(r))
	}
	return c.JSON(http.StatusOK, roleListResponse{Items: items, Total: len(items)})
}

// Get handles GET /v1/roles/:id.
//
// @Summary      Get a role by id
// @Tags         roles
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Role id"
// @Success      200  {object}  roleResponse
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  errorBody
// @Router       /v1/roles/{id} [get]
func (h *RoleHandler) Get(c echo.Context) error {
	res, err := h.service.FindOne(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	return res.Cata(
		func(e *domain.Error) error { return domainError(c, e) },
		func(r domain.Role) error { return c.JSON(http.StatusOK, toRoleResponse(r)) },
	)
}

// Create handles POST /v1/roles.
//
// @Summary      Create a role definition
// @Tags         roles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createRoleRequest  true  "Role details"
// @Success      201   {object}  roleResponse
// @Failure      400   {object}  errorBody
// @Failure      403   {object}  map[string]string
// @Failure      409   {object}  errorBody
// @Router       /v1/roles [post]
func (h *RoleHandler) Create(c echo.Context) error {
	var req createRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	res, err := h.service.Create(c.Request().Context(), ports.CreateRoleInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return err
	}

	return res.Cata(
		func(e *domain.Error) error { return domainError(c, e) },
		func(r domain.Role) error {
			metrics.RolesCreatedTotal.Inc()
			return c.JSON(http.StatusCreated, toRoleResponse(r))
		},
	)
}

// Update handles PATCH /v1/roles/:id.
//
// @Summary      Update a role definition
// @Tags         roles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Role id"
// @Param        body  body      updateRoleRequest  true  "Fields to change"
// @Success      200   {object}  roleResponse
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  errorBody
// @Router       /v1/roles/{id} [patch]
func (h *RoleHandler) Update(c echo.Context) error {
	var req updateRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	res, err := h.service.Update(c.Request().Context(), c.Param("id"), ports.UpdateRoleInput{
		Description: req.Description,
	})
	if err != nil {
		return err
	}

	return res.Cata(
		func(e *domain.Error) error { return domainError(c, e) },
		func(r domain.Role) error { return c.JSON(http.StatusOK, toRoleResponse(r)) },
	)
}

// Delete handles DELETE /v1/roles/:id and returns the removed snapshot.
//
// @Summary      Delete a role definition
// @Tags         roles
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Role id"
// @Success      200  {object}  roleResponse
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  errorBody
// @Router       /v1/roles/{id} [delete]
func (h *RoleHandler) Delete(c echo.Context) error {
	res, err := h.service.Remove(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	return res.Cata(
		func(e *domain.Error) error { return domainError(c, e) },
		func(r domain.Role) error { return c.JSON(http.StatusOK, toRoleResponse(r)) },
	)
}
