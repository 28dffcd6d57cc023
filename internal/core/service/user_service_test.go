package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/staffdir/directory-api/internal/core/domain"
	"github.com/staffdir/directory-api/internal/core/ports"
)

type userServiceFixture struct {
	users     *stubUserRepo
	companies *stubCompanyRepo
	audit     *stubAudit
	svc       *UserService

	acme   *domain.Company
	globex *domain.Company
}

func newUserServiceFixture() *userServiceFixture {
	users := newStubUserRepo()
	companies := newStubCompanyRepo(users)
	audit := &stubAudit{}
	f := &userServiceFixture{
		users:     users,
		companies: companies,
		audit:     audit,
		svc:       NewUserService(users, companies, audit, zerolog.Nop()),
	}
	f.acme = companies.add(domain.Company{Name: "Acme"})
	f.globex = companies.add(domain.Company{Name: "Globex"})
	return f
}

func principalFor(u *domain.User) domain.Principal {
	return domain.Principal{ID: u.ID, Username: u.Username, Role: u.Role, CompanyID: u.CompanyID}
}

func TestUserService_List_DeniedForRegularUser(t *testing.T) {
	f := newUserServiceFixture()
	worker := f.users.add(domain.User{Username: "worker", Role: domain.RoleUser, CompanyID: &f.acme.ID}, "pass")

	if _, err := f.svc.List(context.Background(), principalFor(worker), ports.ListUsersInput{}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if f.audit.lastType() != domain.AuditAccessDenied {
		t.Errorf("expected access_denied audit event, got %q", f.audit.lastType())
	}
}

func TestUserService_List_FiltersApply(t *testing.T) {
	f := newUserServiceFixture()
	admin := f.users.add(domain.User{Username: "root", Role: domain.RoleSuperAdmin}, "pass")
	f.users.add(domain.User{Username: "a1", Role: domain.RoleUser, CompanyID: &f.acme.ID}, "pass")
	f.users.add(domain.User{Username: "a2", Role: domain.RoleCompanyAdmin, CompanyID: &f.acme.ID}, "pass")
	f.users.add(domain.User{Username: "g1", Role: domain.RoleUser, CompanyID: &f.globex.ID}, "pass")

	role := domain.RoleUser
	got, err := f.svc.List(context.Background(), principalFor(admin), ports.ListUsersInput{
		Filter: ports.UserFilter{CompanyID: &f.acme.ID, Role: &role},
	})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(got) != 1 || got[0].Username != "a1" {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestUserService_Get_OrderingForCompanyAdmin(t *testing.T) {
	f := newUserServiceFixture()
	admin := f.users.add(domain.User{Username: "manager", Role: domain.RoleCompanyAdmin, CompanyID: &f.acme.ID}, "pass")
	outsider := f.users.add(domain.User{Username: "g1", Role: domain.RoleUser, CompanyID: &f.globex.ID}, "pass")
	insider := f.users.add(domain.User{Username: "a1", Role: domain.RoleUser, CompanyID: &f.acme.ID}, "pass")

	p := principalFor(admin)

	// Same company: allowed.
	got, err := f.svc.Get(context.Background(), p, insider.ID)
	if err != nil {
		t.Fatalf("Get own member returned error: %v", err)
	}
	if got.Username != "a1" {
		t.Fatalf("unexpected user: %+v", got)
	}

	// Other company: forbidden.
	if _, err := f.svc.Get(context.Background(), p, outsider.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	// The scoping needs the target's company, so a missing target reads as
	// not found rather than forbidden.
	if _, err := f.svc.Get(context.Background(), p, 9999); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_Get_OrderingForRegularUser(t *testing.T) {
	f := newUserServiceFixture()
	worker := f.users.add(domain.User{Username: "worker", Role: domain.RoleUser, CompanyID: &f.acme.ID}, "pass")
	other := f.users.add(domain.User{Username: "other", Role: domain.RoleUser, CompanyID: &f.acme.ID}, "pass")

	p := principalFor(worker)

	// Own record: allowed.
	if _, err := f.svc.Get(context.Background(), p, worker.ID); err != nil {
		t.Fatalf("Get self returned error: %v", err)
	}

	// Someone else: forbidden.
	if _, err := f.svc.Get(context.Background(), p, other.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	// The decision is static, so probing a nonexistent id is forbidden, not
	// not-found; existence never leaks.
	if _, err := f.svc.Get(context.Background(), p, 9999); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestUserService_Self(t *testing.T) {
	f := newUserServiceFixture()
	worker := f.users.add(domain.User{Username: "worker", Role: domain.RoleUser}, "pass")

	got, err := f.svc.Self(context.Background(), principalFor(worker))
	if err != nil {
		t.Fatalf("Self returned error: %v", err)
	}
	if got.ID != worker.ID {
		t.Fatalf("unexpected user: %+v", got)
	}
}

func TestUserService_Create(t *testing.T) {
	f := newUserServiceFixture()
	admin := f.users.add(domain.User{Username: "manager", Role: domain.RoleCompanyAdmin, CompanyID: &f.acme.ID}, "pass")

	got, err := f.svc.Create(context.Background(), principalFor(admin), ports.CreateUserInput{
		Name:      "New Hire",
		Username:  "newhire",
		Password:  "s3cret",
		Role:      domain.RoleUser,
		CompanyID: &f.acme.ID,
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if got.ID == 0 {
		t.Fatalf("expected an assigned id")
	}
	if got.PasswordHash == "s3cret" {
		t.Fatalf("expected the password to be hashed")
	}
	if f.audit.lastType() != domain.AuditEntityCreated {
		t.Errorf("expected entity_created audit event, got %q", f.audit.lastType())
	}
}

func TestUserService_Create_DeniedForRegularUser(t *testing.T) {
	f := newUserServiceFixture()
	worker := f.users.add(domain.User{Username: "worker", Role: domain.RoleUser}, "pass")

	_, err := f.svc.Create(context.Background(), principalFor(worker), ports.CreateUserInput{
		Name: "X", Username: "x", Password: "p", Role: domain.RoleUser,
	})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestUserService_Create_DuplicateUsername(t *testing.T) {
	f := newUserServiceFixture()
	admin := f.users.add(domain.User{Username: "root", Role: domain.RoleSuperAdmin}, "pass")
	f.users.add(domain.User{Username: "taken", Role: domain.RoleUser}, "pass")

	_, err := f.svc.Create(context.Background(), principalFor(admin), ports.CreateUserInput{
		Name: "Dup", Username: "taken", Password: "p", Role: domain.RoleUser,
	})
	if !errors.Is(err, domain.ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestUserService_Update_PartialFields(t *testing.T) {
	f := newUserServiceFixture()
	admin := f.users.add(domain.User{Username: "root", Role: domain.RoleSuperAdmin}, "pass")
	worker := f.users.add(domain.User{Name: "Old Name", Username: "worker", Role: domain.RoleUser, CompanyID: &f.acme.ID}, "pass")

	got, err := f.svc.Update(context.Background(), principalFor(admin), ports.UpdateUserInput{
		ID:   worker.ID,
		Name: strPtr("New Name"),
	})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if got.Name != "New Name" {
		t.Errorf("name not updated: %+v", got)
	}
	if got.Username != "worker" || got.Role != domain.RoleUser {
		t.Errorf("untouched fields changed: %+v", got)
	}
	if got.CompanyID == nil || *got.CompanyID != f.acme.ID {
		t.Errorf("company changed: %+v", got.CompanyID)
	}
}

func TestUserService_Update_OrderingForCompanyAdmin(t *testing.T) {
	f := newUserServiceFixture()
	admin := f.users.add(domain.User{Username: "manager", Role: domain.RoleCompanyAdmin, CompanyID: &f.acme.ID}, "pass")
	outsider := f.users.add(domain.User{Username: "g1", Role: domain.RoleUser, CompanyID: &f.globex.ID}, "pass")

	p := principalFor(admin)

	if _, err := f.svc.Update(context.Background(), p, ports.UpdateUserInput{ID: outsider.ID, Name: strPtr("Hacked")}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if _, err := f.svc.Update(context.Background(), p, ports.UpdateUserInput{ID: 9999, Name: strPtr("Ghost")}); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_Update_DeniedForRegularUserEvenOnSelf(t *testing.T) {
	f := newUserServiceFixture()
	worker := f.users.add(domain.User{Username: "worker", Role: domain.RoleUser}, "pass")

	if _, err := f.svc.Update(context.Background(), principalFor(worker), ports.UpdateUserInput{ID: worker.ID, Name: strPtr("Me")}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestUserService_Delete(t *testing.T) {
	f := newUserServiceFixture()
	root := f.users.add(domain.User{Username: "root", Role: domain.RoleSuperAdmin}, "pass")
	worker := f.users.add(domain.User{Username: "worker", Role: domain.RoleUser}, "pass")

	if err := f.svc.Delete(context.Background(), principalFor(root), worker.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if _, err := f.users.FindByID(context.Background(), worker.ID); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("user still present after delete")
	}
	if f.audit.lastType() != domain.AuditEntityDeleted {
		t.Errorf("expected entity_deleted audit event, got %q", f.audit.lastType())
	}
}

func TestUserService_Delete_DeniedForCompanyAdmin(t *testing.T) {
	f := newUserServiceFixture()
	admin := f.users.add(domain.User{Username: "manager", Role: domain.RoleCompanyAdmin, CompanyID: &f.acme.ID}, "pass")
	member := f.users.add(domain.User{Username: "a1", Role: domain.RoleUser, CompanyID: &f.acme.ID}, "pass")

	// Deletion is statically denied, so even a nonexistent target is
	// forbidden, not not-found.
	if err := f.svc.Delete(context.Background(), principalFor(admin), member.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for own member, got %v", err)
	}
	if err := f.svc.Delete(context.Background(), principalFor(admin), 9999); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for missing target, got %v", err)
	}
}

func TestUserService_SetCompany(t *testing.T) {
	f := newUserServiceFixture()
	root := f.users.add(domain.User{Username: "root", Role: domain.RoleSuperAdmin}, "pass")
	worker := f.users.add(domain.User{Username: "worker", Role: domain.RoleUser}, "pass")

	if err := f.svc.SetCompany(context.Background(), principalFor(root), worker.ID, f.acme.ID); err != nil {
		t.Fatalf("SetCompany returned error: %v", err)
	}
	got, _ := f.users.FindByID(context.Background(), worker.ID)
	if got.CompanyID == nil || *got.CompanyID != f.acme.ID {
		t.Fatalf("company not assigned: %+v", got.CompanyID)
	}

	if err := f.svc.SetCompany(context.Background(), principalFor(root), worker.ID, 9999); !errors.Is(err, domain.ErrCompanyNotFound) {
		t.Fatalf("expected ErrCompanyNotFound, got %v", err)
	}
	if err := f.svc.SetCompany(context.Background(), principalFor(root), 9999, f.acme.ID); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_UnsetCompany(t *testing.T) {
	f := newUserServiceFixture()
	root := f.users.add(domain.User{Username: "root", Role: domain.RoleSuperAdmin}, "pass")
	worker := f.users.add(domain.User{Username: "worker", Role: domain.RoleUser, CompanyID: &f.acme.ID}, "pass")

	if err := f.svc.UnsetCompany(context.Background(), principalFor(root), worker.ID); err != nil {
		t.Fatalf("UnsetCompany returned error: %v", err)
	}
	got, _ := f.users.FindByID(context.Background(), worker.ID)
	if got.CompanyID != nil {
		t.Fatalf("company not cleared: %v", *got.CompanyID)
	}
}

func TestUserService_SetCompany_DeniedForCompanyAdmin(t *testing.T) {
	f := newUserServiceFixture()
	admin := f.users.add(domain.User{Username: "manager", Role: domain.RoleCompanyAdmin, CompanyID: &f.acme.ID}, "pass")
	member := f.users.add(domain.User{Username: "a1", Role: domain.RoleUser, CompanyID: &f.acme.ID}, "pass")

	if err := f.svc.SetCompany(context.Background(), principalFor(admin), member.ID, f.acme.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if err := f.svc.UnsetCompany(context.Background(), principalFor(admin), member.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}
