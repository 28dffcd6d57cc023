package ports

import (
	"context"

	"github.com/staffdir/directory-api/internal/core/domain"
)

// ListUsersInput carries filters and pagination for the user list.
type ListUsersInput struct {
	Filter UserFilter
	Page   PageInput
}

// CreateUserInput carries the data needed to create a user.
type CreateUserInput struct {
	Name      string
	Username  string
	Password  string
	Role      domain.Role
	CompanyID *int64
}

// UpdateUserInput carries a partial update; nil fields keep current values.
type UpdateUserInput struct {
	ID        int64
	Name      *string
	Username  *string
	Password  *string
	Role      *domain.Role
	CompanyID *int64
}

// UserService defines use-case operations on users.
type UserService interface {
	List(ctx context.Context, p domain.Principal, in ListUsersInput) ([]domain.User, error)
	Get(ctx context.Context, p domain.Principal, id int64) (*domain.User, error)
	// Self returns the principal's own record.
	Self(ctx context.Context, p domain.Principal) (*domain.User, error)
	Create(ctx context.Context, p domain.Principal, in CreateUserInput) (*domain.User, error)
	Update(ctx context.Context, p domain.Principal, in UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, p domain.Principal, id int64) error
	SetCompany(ctx context.Context, p domain.Principal, userID, companyID int64) error
	UnsetCompany(ctx context.Context, p domain.Principal, userID int64) error
}
