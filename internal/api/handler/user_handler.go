package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eparcel/eparcel-api/internal/core/domain"
	"github.com/eparcel/eparcel-api/internal/core/ports"
)

// UserHandler handles the admin-only account management endpoints.
type UserHandler struct {
	userService ports.UserService
}

func NewUserHandler(userService ports.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// List handles GET /v1/users?role=STAFF|CLIENT.
//
// @Summary      List accounts for a role
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        role  query     string  true  "Target role"  Enums(STAFF, CLIENT)
// @Success      200   {object}  listUsersResponse
// @Failure      400   {object}  errorEnvelope
// @Failure      403   {object}  errorEnvelope
// @Router       /v1/users [get]
func (h *UserHandler) List(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	role := domain.Role(c.QueryParam("role"))
	if role != domain.RoleStaff && role != domain.RoleClient {
		return echo.NewHTTPError(http.StatusBadRequest, "role must be STAFF or CLIENT")
	}

	users, err := h.userService.List(c.Request().Context(), actor, role)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toListUsersResponse(users))
}

// Create handles POST /v1/users.
//
// @Summary      Create a staff or client account
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createUserRequest  true  "Account details"
// @Success      201   {object}  userResponse
// @Failure      400   {object}  errorEnvelope
// @Failure      403   {object}  errorEnvelope
// @Failure      409   {object}  errorEnvelope
// @Router       /v1/users [post]
func (h *UserHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.userService.Create(c.Request().Context(), actor, ports.CreateUserInput{
		Name:            req.Name,
		Email:           req.Email,
		Password:        req.Password,
		Role:            domain.Role(req.Role),
		AssignedClients: req.AssignedClients,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toUserResponse(user))
}

// SetStatus handles PUT /v1/users/:id/status — activate or deactivate an account.
//
// @Summary      Activate or deactivate an account
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "User id"
// @Param        body  body      setUserStatusRequest  true  "Desired active flag"
// @Success      204   "No Content"
// @Failure      400   {object}  errorEnvelope
// @Failure      403   {object}  errorEnvelope
// @Failure      404   {object}  errorEnvelope
// @Router       /v1/users/{id}/status [put]
func (h *UserHandler) SetStatus(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req setUserStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.userService.SetActive(c.Request().Context(), actor, c.Param("id"), *req.IsActive); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}
