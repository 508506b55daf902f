package auth

import (
	"context"
	"testing"

	"techos-service/internal/model"
	"techos-service/internal/store"
	"techos-service/pkg/config"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type fakeUserLookup struct {
	users map[string]*model.User
}

func (f *fakeUserLookup) FindByEmail(_ context.Context, email string) (*model.User, error) {
	if u, ok := f.users[email]; ok {
		return u, nil
	}
	return nil, store.ErrNotFound
}

func devService(t *testing.T, users map[string]*model.User) *Service {
	t.Helper()
	cfg := &config.Config{
		Server: config.ServerConfig{Env: "development"},
		Auth:   config.AuthConfig{DevMasterPassword: "123456"},
	}
	sessions := NewSessionStore(nil, zap.NewNop())
	return NewService(&fakeUserLookup{users: users}, sessions, cfg, zap.NewNop())
}

func TestAuthenticateDevMasterPassword(t *testing.T) {
	svc := devService(t, nil)

	p, token, err := svc.Authenticate(context.Background(), "someone@example.com", "123456")
	if err != nil {
		t.Fatalf("Authenticate() error = %v", err)
	}
	if token == "" {
		t.Error("expected a signed token")
	}
	if p.Role != RoleCompanyAdmin {
		t.Errorf("minted principal role = %q, want %q", p.Role, RoleCompanyAdmin)
	}
	if p.Email != "someone@example.com" {
		t.Errorf("principal email = %q", p.Email)
	}
}

func TestAuthenticateWrongSecret(t *testing.T) {
	svc := devService(t, nil)

	if _, _, err := svc.Authenticate(context.Background(), "someone@example.com", "000000"); err != ErrInvalidCredentials {
		t.Errorf("wrong secret: err = %v, want ErrInvalidCredentials", err)
	}
}

func TestAuthenticateFormRules(t *testing.T) {
	svc := devService(t, nil)

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"malformed email", "not-an-email", "123456"},
		{"email without domain dot", "a@b", "123456"},
		{"email with spaces", "a b@c.com", "123456"},
		{"short password", "someone@example.com", "12345"},
		{"empty password", "someone@example.com", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := svc.Authenticate(context.Background(), tt.email, tt.password); err != ErrInvalidCredentials {
				t.Errorf("err = %v, want ErrInvalidCredentials", err)
			}
		})
	}
}

func TestAuthenticateStoredAccount(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cretpw"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	companyID := uint(4)
	svc := devService(t, map[string]*model.User{
		"admin@techos.com.br": {
			ID:        10,
			Name:      "Admin",
			Email:     "admin@techos.com.br",
			Password:  string(hash),
			Role:      model.RoleCompanyAdmin,
			CompanyID: &companyID,
			Active:    true,
		},
	})

	p, _, err := svc.Authenticate(context.Background(), "admin@techos.com.br", "s3cretpw")
	if err != nil {
		t.Fatalf("Authenticate() error = %v", err)
	}
	if p.ID != 10 || p.Role != RoleCompanyAdmin {
		t.Errorf("principal = %+v", p)
	}
	if p.CompanyID == nil || *p.CompanyID != companyID {
		t.Errorf("principal company = %v, want %d", p.CompanyID, companyID)
	}

	if _, _, err := svc.Authenticate(context.Background(), "admin@techos.com.br", "wrongpw"); err != ErrInvalidCredentials {
		t.Errorf("wrong password: err = %v, want ErrInvalidCredentials", err)
	}
}

func TestAuthenticateInactiveAccount(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("s3cretpw"), bcrypt.MinCost)
	svc := devService(t, map[string]*model.User{
		"off@techos.com.br": {
			ID: 11, Email: "off@techos.com.br", Password: string(hash),
			Role: model.RoleUser, Active: false,
		},
	})

	if _, _, err := svc.Authenticate(context.Background(), "off@techos.com.br", "s3cretpw"); err != ErrInvalidCredentials {
		t.Errorf("inactive account: err = %v, want ErrInvalidCredentials", err)
	}
}

func TestValidateSessionRoundTrip(t *testing.T) {
	svc := devService(t, nil)

	p, token, err := svc.Authenticate(context.Background(), "someone@example.com", "123456")
	if err != nil {
		t.Fatal(err)
	}

	got, err := svc.ValidateSession(context.Background(), token)
	if err != nil {
		t.Fatalf("ValidateSession() error = %v", err)
	}
	if got.Email != p.Email || got.Role != p.Role {
		t.Errorf("round-tripped principal = %+v, want %+v", got, p)
	}
}

func TestValidateSessionGarbage(t *testing.T) {
	svc := devService(t, nil)

	if _, err := svc.ValidateSession(context.Background(), "not-a-token"); err != ErrInvalidSession {
		t.Errorf("garbage token: err = %v, want ErrInvalidSession", err)
	}
	if _, err := svc.ValidateSession(context.Background(), ""); err != ErrInvalidSession {
		t.Errorf("empty token: err = %v, want ErrInvalidSession", err)
	}
}

func TestAuthenticateProductionDisablesMasterPassword(t *testing.T) {
	cfg := &config.Config{
		Server: config.ServerConfig{Env: "production"},
		Auth:   config.AuthConfig{DevMasterPassword: "123456"},
	}
	svc := NewService(&fakeUserLookup{}, NewSessionStore(nil, zap.NewNop()), cfg, zap.NewNop())

	if _, _, err := svc.Authenticate(context.Background(), "someone@example.com", "123456"); err != ErrInvalidCredentials {
		t.Errorf("production master password: err = %v, want ErrInvalidCredentials", err)
	}
}
