// Command seed bootstraps the directory with an initial super admin and,
// optionally, a set of demo companies and users.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/staffdir/directory-api/internal/core/domain"
	"github.com/staffdir/directory-api/internal/infrastructure/config"
	mongostore "github.com/staffdir/directory-api/internal/infrastructure/db/mongo"
	"github.com/staffdir/directory-api/pkg/logger"
)

func main() {
	var (
		username = flag.String("username", "admin", "super admin username")
		password = flag.String("password", "", "super admin password (required)")
		name     = flag.String("name", "Super Admin", "super admin display name")
		demo     = flag.Bool("demo", false, "also create demo companies and users")
	)
	flag.Parse()

	cfg := config.Load()
	log := logger.New(cfg.Env, cfg.LogLevel)

	if *password == "" {
		log.Fatal().Msg("-password is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, db, err := mongostore.Connect(ctx, mongostore.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection")
	}
	defer client.Disconnect(ctx)

	if err := mongostore.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("mongodb indexes")
	}

	users := mongostore.NewUserRepository(db)
	companies := mongostore.NewCompanyRepository(db)

	admin, err := users.Create(ctx, &domain.User{
		Name:     *name,
		Username: *username,
		Role:     domain.RoleSuperAdmin,
	}, *password)
	switch {
	case errors.Is(err, domain.ErrUsernameTaken):
		log.Info().Str("username", *username).Msg("super admin already exists, skipping")
	case err != nil:
		log.Fatal().Err(err).Msg("create super admin")
	default:
		log.Info().Int64("id", admin.ID).Str("username", admin.Username).Msg("super admin created")
	}

	if *demo {
		if err := seedDemo(ctx, companies, users, log); err != nil {
			log.Fatal().Err(err).Msg("seed demo data")
		}
	}

	log.Info().Msg("seeding complete")
}

type demoMember struct {
	name     string
	username string
	role     domain.Role
}

type demoCompany struct {
	name    string
	members []demoMember
}

// Demo names satisfy the same constraints the API enforces on user input:
// letters and spaces only, at least one uppercase letter.
var demoCompanies = []demoCompany{
	{"Acme Logistics", []demoMember{
		{"Alice Mercer", "acme.admin", domain.RoleCompanyAdmin},
		{"Bruno Keller", "acme.bruno", domain.RoleUser},
		{"Carla Moreno", "acme.carla", domain.RoleUser},
	}},
	{"Globex Industries", []demoMember{
		{"Dana Whitfield", "globex.admin", domain.RoleCompanyAdmin},
		{"Elias Grant", "globex.elias", domain.RoleUser},
		{"Frida Olsen", "globex.frida", domain.RoleUser},
	}},
	{"Initech Solutions", []demoMember{
		{"Gustavo Reyes", "initech.admin", domain.RoleCompanyAdmin},
		{"Hanna Berg", "initech.hanna", domain.RoleUser},
		{"Ivan Petrov", "initech.ivan", domain.RoleUser},
	}},
}

func seedDemo(
	ctx context.Context,
	companies *mongostore.MongoCompanyRepository,
	users *mongostore.MongoUserRepository,
	log zerolog.Logger,
) error {
	for _, dc := range demoCompanies {
		company, err := companies.Create(ctx, &domain.Company{Name: dc.name})
		if errors.Is(err, domain.ErrCompanyNameTaken) {
			log.Info().Str("company", dc.name).Msg("demo company already exists, skipping")
			continue
		}
		if err != nil {
			return fmt.Errorf("create company %q: %w", dc.name, err)
		}
		log.Info().Int64("id", company.ID).Str("name", company.Name).Msg("demo company created")

		for _, m := range dc.members {
			if err := createDemoUser(ctx, users, m, &company.ID, log); err != nil {
				return err
			}
		}
	}
	return nil
}

func createDemoUser(
	ctx context.Context,
	users *mongostore.MongoUserRepository,
	m demoMember,
	companyID *int64,
	log zerolog.Logger,
) error {
	user, err := users.Create(ctx, &domain.User{
		Name:      m.name,
		Username:  m.username,
		Role:      m.role,
		CompanyID: companyID,
	}, "password123")
	if errors.Is(err, domain.ErrUsernameTaken) {
		log.Info().Str("username", m.username).Msg("demo user already exists, skipping")
		return nil
	}
	if err != nil {
		return fmt.Errorf("create user %q: %w", m.username, err)
	}
	log.Info().Int64("id", user.ID).Str("username", user.Username).Msg("demo user created")
	return nil
}
