package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/identity-admin/internal/api/metrics"
	"github.com/99minutos/identity-admin/internal/core/domain"
	"github.com/99minutos/identity-admin/internal/core/ports"
)

// UserHandler folds service Results into HTTP responses. It runs strictly
// after the authorization gate: by the time a handler executes, the caller
// is already allowed to perform the operation.
type UserHandler struct {
	service ports.UsersService
}

func NewUserHandler(service ports.UsersService) *UserHandler {
	return &UserHandler{service: service}
}

// List handles GET /v1/users.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        role      query     string  false  "Keep only users carrying this role"
// @Param        username  query     string  false  "Exact username match"
// @Success      200       {object}  userListResponse
// @Failure      401       {object}  map[string]string
// @Failure      403       {object}  map[string]string
// @Router       /v1/users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.service.GetAll(c.Request().Context(), ports.ListUsersFilter{
		Role:     c.QueryParam("role"),
		Username: c.QueryParam("username"),
	})
	if err != nil {
		return err
	}

	items := make([]userResponse, 0, len(users))
	for _, u := range users {
		items = append(items, toUserResponse(u))
	}
	return c.JSON(http.StatusOK, userListResponse{Items: items, Total: len(items)})
}

// Get handles GET /v1/users/:id.
//
// @Summary      Get a user by id
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  userResponse
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  errorBody
// @Router       /v1/users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	res, err := h.service.FindOne(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	return res.Cata(
		func(e *domain.Error) error { return domainError(c, e) },
		func(u domain.User) error { return c.JSON(http.StatusOK, toUserResponse(u)) },
	)
}

// Create handles POST /v1/users.
//
// @Summary      Create a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createUserRequest  true  "User details"
// @Success      201   {object}  userResponse
// @Failure      400   {object}  errorBody
// @Failure      403   {object}  map[string]string
// @Failure      409   {object}  errorBody
// @Router       /v1/users [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	res, err := h.service.Create(c.Request().Context(), ports.CreateUserInput{
		Username: req.Username,
		Password: req.Password,
		Email:    req.Email,
		Roles:    req.Roles,
	})
	if err != nil {
		return err
	}

	return res.Cata(
		func(e *domain.Error) error { return domainError(c, e) },
		func(u domain.User) error {
			metrics.UsersCreatedTotal.Inc()
			return c.JSON(http.StatusCreated, toUserResponse(u))
		},
	)
}

// Update handles PATCH /v1/users/:id.
//
// @Summary      Update a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "User id"
// @Param        body  body      updateUserRequest  true  "Fields to change"
// @Success      200   {object}  userResponse
// @Failure      400   {object}  errorBody
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  errorBody
// @Router       /v1/users/{id} [patch]
func (h *UserHandler) Update(c echo.Context) error {
	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	res, err := h.service.Update(c.Request().Context(), c.Param("id"), ports.UpdateUserInput{
		Email:    req.Email,
		Password: req.Password,
		Roles:    req.Roles,
	})
	if err != nil {
		return err
	}

	return res.Cata(
		func(e *domain.Error) error { return domainError(c, e) },
		func(u domain.User) error { return c.JSON(http.StatusOK, toUserResponse(u)) },
	)
}

// Delete handles DELETE /v1/users/:id and returns the removed snapshot.
//
// @Summary      Delete a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  userResponse
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  errorBody
// @Router       /v1/users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	res, err := h.service.Remove(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	return res.Cata(
		func(e *domain.Error) error { return domainError(c, e) },
		func(u domain.User) error { return c.JSON(http.StatusOK, toUserResponse(u)) },
	)
}
