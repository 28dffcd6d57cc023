package ports

import (
	"context"

	"github.com/staffdir/directory-api/internal/core/domain"
)

// CompanyRepository is the persistence gateway for companies. Name
// uniqueness is enforced here; Create and Update return
// domain.ErrCompanyNameTaken on a duplicate.
type CompanyRepository interface {
	FindByID(ctx context.Context, id int64) (*domain.Company, error)
	// List returns one page of companies ordered by id descending.
	List(ctx context.Context, page, pageSize int) ([]domain.Company, error)
	// UsersOf returns every user belonging to the company.
	UsersOf(ctx context.Context, companyID int64) ([]domain.User, error)
	Create(ctx context.Context, company *domain.Company) (*domain.Company, error)
	Update(ctx context.Context, company *domain.Company) error
	// Delete removes the company and unsets company_id on its members.
	// Members are never cascade-deleted.
	Delete(ctx context.Context, id int64) error
}
