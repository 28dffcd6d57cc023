package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/staffdir/directory-api/internal/core/domain"
	"github.com/staffdir/directory-api/internal/core/ports"
)

// UserHandler handles HTTP requests for user operations.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

type createUserRequest struct {
	Name      string `json:"name" validate:"required,min=3,max=100,alphaspace,hasupper"`
	Username  string `json:"username" validate:"required,min=3,max=100"`
	Password  string `json:"password" validate:"required,min=6,max=255"`
	Role      string `json:"role" validate:"required,role"`
	CompanyID *int64 `json:"company_id"`
}

type updateUserRequest struct {
	Name      *string `json:"name" validate:"omitempty,min=3,max=100,alphaspace,hasupper"`
	Username  *string `json:"username" validate:"omitempty,min=3,max=100"`
	Password  *string `json:"password" validate:"omitempty,min=6,max=255"`
	Role      *string `json:"role" validate:"omitempty,role"`
	CompanyID *int64  `json:"company_id"`
}

// List handles GET /users.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        page        query     int     false  "Page number (default 1)"
// @Param        page_size   query     int     false  "Page size (default 12)"
// @Param        company_id  query     int     false  "Filter by company"
// @Param        role        query     string  false  "Filter by role"
// @Success      200         {array}   userResponse
// @Failure      401         {object}  map[string]string
// @Failure      403         {object}  map[string]string
// @Router       /users [get]
func (h *UserHandler) List(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var filter ports.UserFilter
	if raw := c.QueryParam("company_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid company_id")
		}
		filter.CompanyID = &id
	}
	if raw := c.QueryParam("role"); raw != "" {
		role, ok := domain.ParseRole(raw)
		if !ok {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid role")
		}
		filter.Role = &role
	}

	users, err := h.service.List(c.Request().Context(), principal, ports.ListUsersInput{
		Filter: filter,
		Page:   pageInput(c),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponses(users))
}

// Get handles GET /users/:id.
//
// @Summary      Get a user by id
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "User id"
// @Success      200  {object}  userResponse
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	user, err := h.service.Get(c.Request().Context(), principal, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// Self handles GET /user — the authenticated principal's own record.
//
// @Summary      Get the authenticated user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  userResponse
// @Failure      401  {object}  map[string]string
// @Router       /user [get]
func (h *UserHandler) Self(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	user, err := h.service.Self(c.Request().Context(), principal)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// Create handles POST /users.
//
// @Summary      Create a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createUserRequest  true  "User details"
// @Success      201   {object}  userResponse
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /users [post]
func (h *UserHandler) Create(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.service.Create(c.Request().Context(), principal, ports.CreateUserInput{
		Name:      req.Name,
		Username:  req.Username,
		Password:  req.Password,
		Role:      domain.Role(req.Role),
		CompanyID: req.CompanyID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toUserResponse(user))
}

// Update handles PUT /users/:id. Absent fields keep their current values.
//
// @Summary      Update a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                true  "User id"
// @Param        body  body      updateUserRequest  true  "Fields to update"
// @Success      200   {object}  userResponse
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /users/{id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	in := ports.UpdateUserInput{
		ID:        id,
		Name:      req.Name,
		Username:  req.Username,
		Password:  req.Password,
		CompanyID: req.CompanyID,
	}
	if req.Role != nil {
		role := domain.Role(*req.Role)
		in.Role = &role
	}

	user, err := h.service.Update(c.Request().Context(), principal, in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// SetCompany handles PUT /users/:id/set-company/:companyId.
//
// @Summary      Assign a user to a company
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id         path      int  true  "User id"
// @Param        companyId  path      int  true  "Company id"
// @Success      200        {object}  messageResponse
// @Failure      403        {object}  map[string]string
// @Failure      404        {object}  map[string]string
// @Router       /users/{id}/set-company/{companyId} [put]
func (h *UserHandler) SetCompany(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	companyID, err := paramID(c, "companyId")
	if err != nil {
		return err
	}
	if err := h.service.SetCompany(c.Request().Context(), principal, id, companyID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "User was set to company successfully"})
}

// UnsetCompany handles PUT /users/:id/unset-company.
//
// @Summary      Remove a user from their company
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "User id"
// @Success      200  {object}  messageResponse
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /users/{id}/unset-company [put]
func (h *UserHandler) UnsetCompany(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.service.UnsetCompany(c.Request().Context(), principal, id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "User was unset from company successfully"})
}

// Delete handles DELETE /users/:id.
//
// @Summary      Delete a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "User id"
// @Success      200  {object}  messageResponse
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), principal, id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "User deleted successfully"})
}
