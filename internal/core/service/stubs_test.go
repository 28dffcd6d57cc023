package service

import (
	"context"
	"sort"

	"golang.org/x/crypto/bcrypt"

	"github.com/staffdir/directory-api/internal/core/domain"
	"github.com/staffdir/directory-api/internal/core/ports"
)

// In-memory fakes implementing the repository and recorder ports.

func int64Ptr(v int64) *int64 { return &v }

func strPtr(s string) *string { return &s }

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

type stubUserRepo struct {
	users  map[int64]*domain.User
	nextID int64

	findErr error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[int64]*domain.User)}
}

func (r *stubUserRepo) add(u domain.User, password string) *domain.User {
	r.nextID++
	u.ID = r.nextID
	if password != "" {
		hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
		u.PasswordHash = string(hash)
	}
	r.users[u.ID] = cloneUser(&u)
	return cloneUser(&u)
}

func (r *stubUserRepo) FindByID(_ context.Context, id int64) (*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) List(_ context.Context, filter ports.UserFilter, page, pageSize int) ([]domain.User, error) {
	var out []domain.User
	for _, u := range r.users {
		if filter.CompanyID != nil && (u.CompanyID == nil || *u.CompanyID != *filter.CompanyID) {
			continue
		}
		if filter.Role != nil && u.Role != *filter.Role {
			continue
		}
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	start := (page - 1) * pageSize
	if start >= len(out) {
		return nil, nil
	}
	end := start + pageSize
	if end > len(out) {
		end = len(out)
	}
	return out[start:end], nil
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User, password string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == user.Username {
			return nil, domain.ErrUsernameTaken
		}
	}
	return r.add(*user, password), nil
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User, password string) error {
	existing, ok := r.users[user.ID]
	if !ok {
		return domain.ErrUserNotFound
	}
	for _, u := range r.users {
		if u.ID != user.ID && u.Username == user.Username {
			return domain.ErrUsernameTaken
		}
	}
	updated := cloneUser(user)
	updated.PasswordHash = existing.PasswordHash
	if password != "" {
		hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
		updated.PasswordHash = string(hash)
	}
	r.users[user.ID] = updated
	return nil
}

func (r *stubUserRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *stubUserRepo) SetCompany(_ context.Context, userID int64, companyID *int64) error {
	u, ok := r.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.CompanyID = companyID
	return nil
}

type stubCompanyRepo struct {
	companies map[int64]*domain.Company
	members   *stubUserRepo
	nextID    int64
}

func newStubCompanyRepo(members *stubUserRepo) *stubCompanyRepo {
	return &stubCompanyRepo{companies: make(map[int64]*domain.Company), members: members}
}

func (r *stubCompanyRepo) add(c domain.Company) *domain.Company {
	r.nextID++
	c.ID = r.nextID
	clone := c
	r.companies[c.ID] = &clone
	out := c
	return &out
}

func (r *stubCompanyRepo) FindByID(_ context.Context, id int64) (*domain.Company, error) {
	c, ok := r.companies[id]
	if !ok {
		return nil, domain.ErrCompanyNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *stubCompanyRepo) List(_ context.Context, page, pageSize int) ([]domain.Company, error) {
	var out []domain.Company
	for _, c := range r.companies {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	start := (page - 1) * pageSize
	if start >= len(out) {
		return nil, nil
	}
	end := start + pageSize
	if end > len(out) {
		end = len(out)
	}
	return out[start:end], nil
}

func (r *stubCompanyRepo) UsersOf(_ context.Context, companyID int64) ([]domain.User, error) {
	var out []domain.User
	for _, u := range r.members.users {
		if u.CompanyID != nil && *u.CompanyID == companyID {
			out = append(out, *u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *stubCompanyRepo) Create(_ context.Context, company *domain.Company) (*domain.Company, error) {
	for _, c := range r.companies {
		if c.Name == company.Name {
			return nil, domain.ErrCompanyNameTaken
		}
	}
	return r.add(*company), nil
}

func (r *stubCompanyRepo) Update(_ context.Context, company *domain.Company) error {
	if _, ok := r.companies[company.ID]; !ok {
		return domain.ErrCompanyNotFound
	}
	for _, c := range r.companies {
		if c.ID != company.ID && c.Name == company.Name {
			return domain.ErrCompanyNameTaken
		}
	}
	clone := *company
	r.companies[company.ID] = &clone
	return nil
}

func (r *stubCompanyRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.companies[id]; !ok {
		return domain.ErrCompanyNotFound
	}
	delete(r.companies, id)
	if r.members != nil {
		for _, u := range r.members.users {
			if u.CompanyID != nil && *u.CompanyID == id {
				u.CompanyID = nil
			}
		}
	}
	return nil
}

type stubAudit struct {
	events []domain.AuditEvent
}

func (a *stubAudit) Record(event domain.AuditEvent) {
	a.events = append(a.events, event)
}

func (a *stubAudit) lastType() domain.AuditEventType {
	if len(a.events) == 0 {
		return ""
	}
	return a.events[len(a.events)-1].Type
}

type stubThrottle struct {
	blocked  bool
	failures int
	resets   int
}

func (t *stubThrottle) TooManyAttempts(context.Context, string) (bool, error) {
	return t.blocked, nil
}

func (t *stubThrottle) RecordFailure(context.Context, string) error {
	t.failures++
	return nil
}

func (t *stubThrottle) Reset(context.Context, string) error {
	t.resets++
	return nil
}
