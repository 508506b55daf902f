package auth

import (
	"context"
	"errors"
	"regexp"
	"time"

	"techos-service/internal/model"
	"techos-service/internal/store"
	"techos-service/pkg/config"
	"techos-service/pkg/jwtutil"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCredentials is the single answer for every authentication
	// failure; it never reveals whether the email or the password was wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidSession covers expired, malformed or revoked tokens.
	ErrInvalidSession = errors.New("invalid session")
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const minPasswordLength = 6

// UserLookup resolves an account by email. Satisfied by store.UserStore;
// tests plug in fakes.
type UserLookup interface {
	FindByEmail(ctx context.Context, email string) (*model.User, error)
}

// Service is the Identity & Access engine: it authenticates credentials,
// issues and validates tokens, and revokes them at logout.
type Service struct {
	users       UserLookup
	sessions    *SessionStore
	devPassword string
	log         *zap.Logger
}

// NewService wires the identity engine. The development master password is
// only honored in the development environment; production always requires a
// stored account with a bcrypt hash.
func NewService(users UserLookup, sessions *SessionStore, cfg *config.Config, log *zap.Logger) *Service {
	dev := ""
	if cfg.IsDevelopment() {
		dev = cfg.Auth.DevMasterPassword
	}
	return &Service{users: users, sessions: sessions, devPassword: dev, log: log}
}

// Authenticate checks the credentials and returns the principal plus a signed
// token. Login-form rules run first: a malformed email or a password shorter
// than six characters fails before any lookup.
//
// Accounts found in the store authenticate against their bcrypt hash. In
// development, the configured master password also signs in: with a matching
// account it resolves that account's role and company; without one it mints a
// generic company-admin principal, mirroring the original mock backend.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*Principal, string, error) {
	if !emailPattern.MatchString(email) || len(password) < minPasswordLength {
		return nil, "", ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, "", err
	}

	if user != nil {
		if !user.Active {
			return nil, "", ErrInvalidCredentials
		}
		if !s.passwordMatches(user.Password, password) {
			return nil, "", ErrInvalidCredentials
		}
		p := &Principal{
			ID:        user.ID,
			Name:      user.Name,
			Email:     user.Email,
			Role:      Role(user.Role),
			CompanyID: user.CompanyID,
		}
		token, err := s.issueToken(p)
		return p, token, err
	}

	// No account: development master password mints a generic admin,
	// the mock backend's behavior.
	if s.devPassword == "" || password != s.devPassword {
		return nil, "", ErrInvalidCredentials
	}
	p := &Principal{
		Name:  "Administrador",
		Email: email,
		Role:  RoleCompanyAdmin,
	}
	token, err := s.issueToken(p)
	return p, token, err
}

func (s *Service) passwordMatches(hash, password string) bool {
	if hash != "" && bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil {
		return true
	}
	// Seeded development accounts carry no hash; the master password opens them.
	return s.devPassword != "" && password == s.devPassword
}

func (s *Service) issueToken(p *Principal) (string, error) {
	companyName := ""
	token, err := jwtutil.GenerateToken(p.Email, p.Name, p.ID, string(p.Role), p.CompanyID, companyName)
	if err != nil {
		s.log.Error("Failed to generate token", zap.Error(err))
		return "", err
	}
	return token, nil
}

// ValidateSession verifies the token signature and expiry and checks the
// revocation set. Presence alone is never enough.
func (s *Service) ValidateSession(ctx context.Context, token string) (*Principal, error) {
	claims, err := jwtutil.ValidateToken(token)
	if err != nil {
		return nil, ErrInvalidSession
	}
	if s.sessions.IsRevoked(ctx, claims.ID) {
		return nil, ErrInvalidSession
	}
	return &Principal{
		ID:        claims.UserID,
		Name:      claims.Name,
		Email:     claims.Email,
		Role:      Role(claims.Role),
		CompanyID: claims.CompanyID,
	}, nil
}

// Logout revokes the token for its remaining lifetime. Local logout succeeds
// regardless: a failed or unreachable revocation store is logged, not
// surfaced, so the client always clears its session.
func (s *Service) Logout(ctx context.Context, token string) {
	claims, err := jwtutil.ValidateToken(token)
	if err != nil {
		return // expired or garbage, nothing left to revoke
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	if err := s.sessions.Revoke(ctx, claims.ID, ttl); err != nil {
		s.log.Warn("Token revocation failed, session cleared locally only", zap.Error(err))
	}
}
