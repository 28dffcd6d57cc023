package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/staffdir/directory-api/internal/core/ports"
)

// CompanyHandler handles HTTP requests for company operations.
type CompanyHandler struct {
	service ports.CompanyService
}

func NewCompanyHandler(service ports.CompanyService) *CompanyHandler {
	return &CompanyHandler{service: service}
}

type companyRequest struct {
	Name string `json:"name" validate:"required,min=5,max=100"`
}

// List handles GET /companies.
//
// @Summary      List companies
// @Tags         companies
// @Produce      json
// @Param        page       query     int  false  "Page number (default 1)"
// @Param        page_size  query     int  false  "Page size (default 12)"
// @Success      200        {array}   companyResponse
// @Router       /companies [get]
func (h *CompanyHandler) List(c echo.Context) error {
	companies, err := h.service.List(c.Request().Context(), pageInput(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCompanyResponses(companies))
}

// Get handles GET /companies/:id.
//
// @Summary      Get a company by id
// @Tags         companies
// @Produce      json
// @Param        id   path      int  true  "Company id"
// @Success      200  {object}  companyResponse
// @Failure      404  {object}  map[string]string
// @Router       /companies/{id} [get]
func (h *CompanyHandler) Get(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	company, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCompanyResponse(company))
}

// Users handles GET /companies/:id/users.
//
// @Summary      List the users of a company
// @Tags         companies
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Company id"
// @Success      200  {array}   userResponse
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /companies/{id}/users [get]
func (h *CompanyHandler) Users(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	users, err := h.service.UsersOf(c.Request().Context(), principal, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponses(users))
}

// Create handles POST /companies.
//
// @Summary      Create a company
// @Tags         companies
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      companyRequest  true  "Company details"
// @Success      201   {object}  companyResponse
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /companies [post]
func (h *CompanyHandler) Create(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req companyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	company, err := h.service.Create(c.Request().Context(), principal, ports.CreateCompanyInput{Name: req.Name})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toCompanyResponse(company))
}

// Update handles PUT /companies/:id.
//
// @Summary      Update a company
// @Tags         companies
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int             true  "Company id"
// @Param        body  body      companyRequest  true  "Company details"
// @Success      200   {object}  companyResponse
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /companies/{id} [put]
func (h *CompanyHandler) Update(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var req companyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	company, err := h.service.Update(c.Request().Context(), principal, ports.UpdateCompanyInput{ID: id, Name: req.Name})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCompanyResponse(company))
}

// Delete handles DELETE /companies/:id.
//
// @Summary      Delete a company
// @Tags         companies
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Company id"
// @Success      200  {object}  messageResponse
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /companies/{id} [delete]
func (h *CompanyHandler) Delete(c echo.Context) error {
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
	return c.JSON(http.StatusOK, messageResponse{Message: "Company deleted successfully"})
}
