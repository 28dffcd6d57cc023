package ports

import (
	"context"

	"github.com/staffdir/directory-api/internal/core/domain"
)

// UserFilter narrows List results. Nil fields match everything.
type UserFilter struct {
	CompanyID *int64
	Role      *domain.Role
}

// UserRepository is the persistence gateway for users. Passwords are hashed
// exactly once, inside this layer's write path: Create and Update receive the
// plaintext separately from the model and persist only the hash. Username
// uniqueness and company referential integrity are enforced here.
type UserRepository interface {
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	// List returns one page of users ordered by id descending.
	List(ctx context.Context, filter UserFilter, page, pageSize int) ([]domain.User, error)
	// Create persists a new user. Returns domain.ErrUsernameTaken on a
	// duplicate username and domain.ErrCompanyNotFound when CompanyID
	// references no existing company.
	Create(ctx context.Context, user *domain.User, password string) (*domain.User, error)
	// Update replaces the mutable fields of an existing user. An empty
	// password keeps the stored hash.
	Update(ctx context.Context, user *domain.User, password string) error
	Delete(ctx context.Context, id int64) error
	// SetCompany assigns the user to a company, or clears the assignment
	// when companyID is nil.
	SetCompany(ctx context.Context, userID int64, companyID *int64) error
}
