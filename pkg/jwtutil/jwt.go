package jwtutil

import (
	"time"

	"techos-service/pkg/config"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

var (
	secret     = []byte("secret-key")
	expiration = 24 * time.Hour
)

// Initialize sets the signing key and token lifetime from configuration.
// Must be called once at startup before any token is generated or validated.
func Initialize(cfg *config.JWTConfig) {
	secret = []byte(cfg.SigningKey)
	if cfg.ExpirationHours > 0 {
		expiration = time.Duration(cfg.ExpirationHours) * time.Hour
	}
}

// UserClaims represents the JWT claims for user authentication
type UserClaims struct {
	Email       string `json:"email"`
	Name        string `json:"name,omitempty"`
	UserID      uint   `json:"user_id"`
	Role        string `json:"role,omitempty"`       // super_admin, admin_empresa or user
	CompanyID   *uint  `json:"company_id,omitempty"` // tenant scope; nil for super admins
	CompanyName string `json:"company_name,omitempty"`
	jwt.RegisteredClaims
}

// GenerateToken creates a signed JWT carrying the user's identity, role and
// tenant scope. The token id (jti) is used by the revocation store at logout.
func GenerateToken(email, name string, userID uint, role string, companyID *uint, companyName string) (string, error) {
	now := time.Now()
	claims := UserClaims{
		Email:       email,
		Name:        name,
		UserID:      userID,
		Role:        role,
		CompanyID:   companyID,
		CompanyName: companyName,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiration)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ValidateToken validates and parses the JWT token
func ValidateToken(tokenString string) (*UserClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &UserClaims{}, func(token *jwt.Token) (interface{}, error) {
		return secret, nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*UserClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, jwt.ErrSignatureInvalid
}
