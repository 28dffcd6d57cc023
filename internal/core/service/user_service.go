package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/staffdir/directory-api/internal/core/domain"
	"github.com/staffdir/directory-api/internal/core/policy"
	"github.com/staffdir/directory-api/internal/core/ports"
)

// UserService implements user use cases with policy enforcement. Check
// ordering follows policy.NeedsTarget: decisions on static facts come before
// existence checks (Forbidden wins over NotFound); decisions scoped by the
// target's company load the target first (a missing target is NotFound even
// to a principal who would otherwise be denied).
type UserService struct {
	users     ports.UserRepository
	companies ports.CompanyRepository
	audit     ports.AuditRecorder
	log       zerolog.Logger
}

func NewUserService(
	users ports.UserRepository,
	companies ports.CompanyRepository,
	audit ports.AuditRecorder,
	log zerolog.Logger,
) *UserService {
	return &UserService{users: users, companies: companies, audit: audit, log: log}
}

func (s *UserService) List(ctx context.Context, p domain.Principal, in ports.ListUsersInput) ([]domain.User, error) {
	if policy.Decide(p, policy.ActionListUsers, policy.Target{}) == policy.Deny {
		return nil, s.deny(p, policy.ActionListUsers, "")
	}
	page, size := normalizePage(in.Page)
	return s.users.List(ctx, in.Filter, page, size)
}

func (s *UserService) Get(ctx context.Context, p domain.Principal, id int64) (*domain.User, error) {
	if policy.NeedsTarget(p.Role, policy.ActionViewUser) {
		user, err := s.users.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		target := policy.Target{UserID: &id, UserCompanyID: user.CompanyID}
		if policy.Decide(p, policy.ActionViewUser, target) == policy.Deny {
			return nil, s.deny(p, policy.ActionViewUser, fmt.Sprintf("user:%d", id))
		}
		return user, nil
	}

	if policy.Decide(p, policy.ActionViewUser, policy.Target{UserID: &id}) == policy.Deny {
		return nil, s.deny(p, policy.ActionViewUser, fmt.Sprintf("user:%d", id))
	}
	return s.users.FindByID(ctx, id)
}

func (s *UserService) Self(ctx context.Context, p domain.Principal) (*domain.User, error) {
	if policy.Decide(p, policy.ActionViewSelf, policy.Target{}) == policy.Deny {
		return nil, s.deny(p, policy.ActionViewSelf, "")
	}
	return s.users.FindByID(ctx, p.ID)
}

func (s *UserService) Create(ctx context.Context, p domain.Principal, in ports.CreateUserInput) (*domain.User, error) {
	if policy.Decide(p, policy.ActionCreateUser, policy.Target{}) == policy.Deny {
		return nil, s.deny(p, policy.ActionCreateUser, "")
	}

	now := time.Now().UTC()
	user, err := s.users.Create(ctx, &domain.User{
		Name:      in.Name,
		Username:  in.Username,
		Role:      in.Role,
		CompanyID: in.CompanyID,
		CreatedAt: now,
		UpdatedAt: now,
	}, in.Password)
	if err != nil {
		return nil, err
	}

	s.recordChange(p, domain.AuditEntityCreated, fmt.Sprintf("user:%d", user.ID))
	s.log.Info().Int64("user_id", user.ID).Str("username", user.Username).Msg("user created")
	return user, nil
}

func (s *UserService) Update(ctx context.Context, p domain.Principal, in ports.UpdateUserInput) (*domain.User, error) {
	var user *domain.User
	var err error

	if policy.NeedsTarget(p.Role, policy.ActionUpdateUser) {
		// Scoping requires the target's company, so existence is checked
		// first.
		user, err = s.users.FindByID(ctx, in.ID)
		if err != nil {
			return nil, err
		}
		target := policy.Target{UserID: &in.ID, UserCompanyID: user.CompanyID}
		if policy.Decide(p, policy.ActionUpdateUser, target) == policy.Deny {
			return nil, s.deny(p, policy.ActionUpdateUser, fmt.Sprintf("user:%d", in.ID))
		}
	} else {
		if policy.Decide(p, policy.ActionUpdateUser, policy.Target{UserID: &in.ID}) == policy.Deny {
			return nil, s.deny(p, policy.ActionUpdateUser, fmt.Sprintf("user:%d", in.ID))
		}
		user, err = s.users.FindByID(ctx, in.ID)
		if err != nil {
			return nil, err
		}
	}

	if in.Name != nil {
		user.Name = *in.Name
	}
	if in.Username != nil {
		user.Username = *in.Username
	}
	if in.Role != nil {
		user.Role = *in.Role
	}
	if in.CompanyID != nil {
		user.CompanyID = in.CompanyID
	}
	user.UpdatedAt = time.Now().UTC()

	password := ""
	if in.Password != nil {
		password = *in.Password
	}
	if err := s.users.Update(ctx, user, password); err != nil {
		return nil, err
	}

	s.recordChange(p, domain.AuditEntityUpdated, fmt.Sprintf("user:%d", user.ID))
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, p domain.Principal, id int64) error {
	if policy.Decide(p, policy.ActionDeleteUser, policy.Target{UserID: &id}) == policy.Deny {
		return s.deny(p, policy.ActionDeleteUser, fmt.Sprintf("user:%d", id))
	}
	if _, err := s.users.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}

	s.recordChange(p, domain.AuditEntityDeleted, fmt.Sprintf("user:%d", id))
	s.log.Info().Int64("user_id", id).Msg("user deleted")
	return nil
}

func (s *UserService) SetCompany(ctx context.Context, p domain.Principal, userID, companyID int64) error {
	if policy.Decide(p, policy.ActionSetUserCompany, policy.Target{UserID: &userID}) == policy.Deny {
		return s.deny(p, policy.ActionSetUserCompany, fmt.Sprintf("user:%d", userID))
	}
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return err
	}
	if _, err := s.companies.FindByID(ctx, companyID); err != nil {
		return err
	}
	if err := s.users.SetCompany(ctx, userID, &companyID); err != nil {
		return err
	}

	s.recordChange(p, domain.AuditEntityUpdated, fmt.Sprintf("user:%d", userID))
	return nil
}

func (s *UserService) UnsetCompany(ctx context.Context, p domain.Principal, userID int64) error {
	if policy.Decide(p, policy.ActionUnsetUserCompany, policy.Target{UserID: &userID}) == policy.Deny {
		return s.deny(p, policy.ActionUnsetUserCompany, fmt.Sprintf("user:%d", userID))
	}
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return err
	}
	if err := s.users.SetCompany(ctx, userID, nil); err != nil {
		return err
	}

	s.recordChange(p, domain.AuditEntityUpdated, fmt.Sprintf("user:%d", userID))
	return nil
}

func (s *UserService) deny(p domain.Principal, action policy.Action, target string) error {
	s.audit.Record(domain.AuditEvent{
		Type:      domain.AuditAccessDenied,
		Actor:     p.Username,
		ActorID:   p.ID,
		Action:    string(action),
		Target:    target,
		Timestamp: time.Now().UTC(),
	})
	return domain.ErrForbidden
}

func (s *UserService) recordChange(p domain.Principal, typ domain.AuditEventType, target string) {
	s.audit.Record(domain.AuditEvent{
		Type:      typ,
		Actor:     p.Username,
		ActorID:   p.ID,
		Target:    target,
		Timestamp: time.Now().UTC(),
	})
}
