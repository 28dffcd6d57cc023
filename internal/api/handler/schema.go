package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/staffdir/directory-api/internal/core/domain"
	"github.com/staffdir/directory-api/internal/core/ports"
)

// messageResponse is the envelope for mutations that return no body.
type messageResponse struct {
	Message string `json:"message"`
}

type companyResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type userResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Username  string `json:"username"`
	Role      string `json:"role"`
	CompanyID *int64 `json:"company_id,omitempty"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func toCompanyResponse(c *domain.Company) companyResponse {
	return companyResponse{
		ID:        c.ID,
		Name:      c.Name,
		CreatedAt: c.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: c.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func toCompanyResponses(companies []domain.Company) []companyResponse {
	out := make([]companyResponse, 0, len(companies))
	for i := range companies {
		out = append(out, toCompanyResponse(&companies[i]))
	}
	return out
}

// toUserResponse shapes a user for the wire. The password hash never leaves
// the process.
func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Name:      u.Name,
		Username:  u.Username,
		Role:      string(u.Role),
		CompanyID: u.CompanyID,
		CreatedAt: u.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: u.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func toUserResponses(users []domain.User) []userResponse {
	out := make([]userResponse, 0, len(users))
	for i := range users {
		out = append(out, toUserResponse(&users[i]))
	}
	return out
}

// paramID parses an integer path parameter.
func paramID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return id, nil
}

// pageInput reads page/page_size query parameters; malformed values fall
// back to defaults.
func pageInput(c echo.Context) ports.PageInput {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	size, _ := strconv.Atoi(c.QueryParam("page_size"))
	return ports.PageInput{Page: page, PageSize: size}
}
