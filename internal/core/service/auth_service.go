package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/staffdir/directory-api/internal/core/domain"
	"github.com/staffdir/directory-api/internal/core/ports"
)

// AuthService implements credential verification and token issuance.
type AuthService struct {
	users    ports.UserRepository
	tokens   ports.TokenService
	throttle ports.LoginThrottle
	audit    ports.AuditRecorder
	log      zerolog.Logger
}

func NewAuthService(
	users ports.UserRepository,
	tokens ports.TokenService,
	throttle ports.LoginThrottle,
	audit ports.AuditRecorder,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{users: users, tokens: tokens, throttle: throttle, audit: audit, log: log}
}

// Login verifies the credentials and returns a signed token. Lookup misses
// and password mismatches are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		return "", domain.ErrInvalidCredentials
	}

	if s.throttle != nil {
		blocked, err := s.throttle.TooManyAttempts(ctx, username)
		if err != nil {
			s.log.Warn().Err(err).Str("username", username).Msg("throttle check failed, allowing attempt")
		} else if blocked {
			return "", domain.ErrTooManyAttempts
		}
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.recordFailure(ctx, username)
			return "", domain.ErrInvalidCredentials
		}
		return "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.recordFailure(ctx, username)
		return "", domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(ports.TokenClaims{
		ID:       user.ID,
		Username: user.Username,
		Role:     user.Role,
	})
	if err != nil {
		return "", err
	}

	if s.throttle != nil {
		if err := s.throttle.Reset(ctx, username); err != nil {
			s.log.Warn().Err(err).Str("username", username).Msg("throttle reset failed")
		}
	}
	s.audit.Record(domain.AuditEvent{
		Type:      domain.AuditLoginSucceeded,
		Actor:     username,
		ActorID:   user.ID,
		Timestamp: time.Now().UTC(),
	})
	s.log.Info().Str("username", username).Msg("login succeeded")

	return token, nil
}

func (s *AuthService) recordFailure(ctx context.Context, username string) {
	if s.throttle != nil {
		if err := s.throttle.RecordFailure(ctx, username); err != nil {
			s.log.Warn().Err(err).Str("username", username).Msg("throttle record failed")
		}
	}
	s.audit.Record(domain.AuditEvent{
		Type:      domain.AuditLoginFailed,
		Actor:     username,
		Timestamp: time.Now().UTC(),
	})
}
