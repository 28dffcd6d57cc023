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

const (
	defaultPageSize = 12
	maxPageSize     = 100
)

// normalizePage clamps pagination input to sane bounds.
func normalizePage(in ports.PageInput) (page, size int) {
	page, size = in.Page, in.PageSize
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}
	return page, size
}

// CompanyService implements company use cases with policy enforcement.
type CompanyService struct {
	companies ports.CompanyRepository
	audit     ports.AuditRecorder
	log       zerolog.Logger
}

func NewCompanyService(companies ports.CompanyRepository, audit ports.AuditRecorder, log zerolog.Logger) *CompanyService {
	return &CompanyService{companies: companies, audit: audit, log: log}
}

// List is readable by everyone, including unauthenticated callers.
func (s *CompanyService) List(ctx context.Context, in ports.PageInput) ([]domain.Company, error) {
	page, size := normalizePage(in)
	return s.companies.List(ctx, page, size)
}

func (s *CompanyService) Get(ctx context.Context, id int64) (*domain.Company, error) {
	return s.companies.FindByID(ctx, id)
}

// UsersOf lists the members of a company. The tenant scope is claimed by the
// request path, so authorization is decided before the existence check: a
// company admin probing another tenant gets Forbidden even when the company
// does not exist.
func (s *CompanyService) UsersOf(ctx context.Context, p domain.Principal, companyID int64) ([]domain.User, error) {
	target := policy.Target{CompanyID: &companyID}
	if policy.Decide(p, policy.ActionListCompanyUsers, target) == policy.Deny {
		return nil, s.deny(p, policy.ActionListCompanyUsers, fmt.Sprintf("company:%d", companyID))
	}
	if _, err := s.companies.FindByID(ctx, companyID); err != nil {
		return nil, err
	}
	return s.companies.UsersOf(ctx, companyID)
}

func (s *CompanyService) Create(ctx context.Context, p domain.Principal, in ports.CreateCompanyInput) (*domain.Company, error) {
	if policy.Decide(p, policy.ActionCreateCompany, policy.Target{}) == policy.Deny {
		return nil, s.deny(p, policy.ActionCreateCompany, "")
	}

	now := time.Now().UTC()
	company, err := s.companies.Create(ctx, &domain.Company{
		Name:      in.Name,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return nil, err
	}

	s.recordChange(p, domain.AuditEntityCreated, fmt.Sprintf("company:%d", company.ID))
	s.log.Info().Int64("company_id", company.ID).Str("name", company.Name).Msg("company created")
	return company, nil
}

func (s *CompanyService) Update(ctx context.Context, p domain.Principal, in ports.UpdateCompanyInput) (*domain.Company, error) {
	if policy.Decide(p, policy.ActionUpdateCompany, policy.Target{CompanyID: &in.ID}) == policy.Deny {
		return nil, s.deny(p, policy.ActionUpdateCompany, fmt.Sprintf("company:%d", in.ID))
	}

	company, err := s.companies.FindByID(ctx, in.ID)
	if err != nil {
		return nil, err
	}
	company.Name = in.Name
	company.UpdatedAt = time.Now().UTC()
	if err := s.companies.Update(ctx, company); err != nil {
		return nil, err
	}

	s.recordChange(p, domain.AuditEntityUpdated, fmt.Sprintf("company:%d", company.ID))
	return company, nil
}

func (s *CompanyService) Delete(ctx context.Context, p domain.Principal, id int64) error {
	if policy.Decide(p, policy.ActionDeleteCompany, policy.Target{CompanyID: &id}) == policy.Deny {
		return s.deny(p, policy.ActionDeleteCompany, fmt.Sprintf("company:%d", id))
	}

	if _, err := s.companies.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.companies.Delete(ctx, id); err != nil {
		return err
	}

	s.recordChange(p, domain.AuditEntityDeleted, fmt.Sprintf("company:%d", id))
	s.log.Info().Int64("company_id", id).Msg("company deleted")
	return nil
}

func (s *CompanyService) deny(p domain.Principal, action policy.Action, target string) error {
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

func (s *CompanyService) recordChange(p domain.Principal, typ domain.AuditEventType, target string) {
	s.audit.Record(domain.AuditEvent{
		Type:      typ,
		Actor:     p.Username,
		ActorID:   p.ID,
		Target:    target,
		Timestamp: time.Now().UTC(),
	})
}
