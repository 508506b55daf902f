package store

import (
	"context"
	"errors"
	"strings"

	"techos-service/internal/model"

	"gorm.io/gorm"
)

// UserStore manages accounts. Email is the natural key and is unique across
// the whole platform, not per company, so the generic store runs unscoped and
// company filtering happens in the listing queries.
type UserStore struct {
	*Store[model.User, *model.User]
	db *gorm.DB
}

// NewUserStore builds the user collection store.
func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{
		Store: New[model.User, *model.User](db, Config{
			KeyColumn:   "email",
			OrderColumn: "name",
		}),
		db: db,
	}
}

// FindByEmail looks an account up by its email, case-insensitively.
// Returns ErrNotFound when no account matches.
func (s *UserStore) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := s.db.WithContext(ctx).
		Where("lower(email) = lower(?)", strings.TrimSpace(email)).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// ListByCompany returns a company's users sorted by name. Super admin
// accounts never appear in listings; companyID zero lists every company.
func (s *UserStore) ListByCompany(ctx context.Context, companyID uint) ([]model.User, error) {
	q := s.db.WithContext(ctx).Where("role <> ?", model.RoleSuperAdmin)
	if companyID != 0 {
		q = q.Where("company_id = ?", companyID)
	}

	var users []model.User
	if err := q.Order("lower(name) ASC, id ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
