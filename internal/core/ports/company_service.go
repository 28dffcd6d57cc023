package ports

import (
	"context"

	"github.com/staffdir/directory-api/internal/core/domain"
)

// PageInput carries pagination parameters for list endpoints.
// Zero values fall back to page 1 and the default page size.
type PageInput struct {
	Page     int
	PageSize int
}

// CreateCompanyInput carries the data needed to create a company.
type CreateCompanyInput struct {
	Name string
}

// UpdateCompanyInput carries the data needed to rename a company.
type UpdateCompanyInput struct {
	ID   int64
	Name string
}

// CompanyService defines use-case operations on companies. Operations taking
// a principal enforce the access policy before touching the store.
type CompanyService interface {
	List(ctx context.Context, page PageInput) ([]domain.Company, error)
	Get(ctx context.Context, id int64) (*domain.Company, error)
	UsersOf(ctx context.Context, p domain.Principal, companyID int64) ([]domain.User, error)
	Create(ctx context.Context, p domain.Principal, in CreateCompanyInput) (*domain.Company, error)
	Update(ctx context.Context, p domain.Principal, in UpdateCompanyInput) (*domain.Company, error)
	Delete(ctx context.Context, p domain.Principal, id int64) error
}
