package store

import (
	"context"
	"errors"

	"techos-service/internal/model"

	"gorm.io/gorm"
)

// PlatformStats is the super-admin dashboard summary. Super admin accounts
// are platform staff and are excluded from the user counts.
type PlatformStats struct {
	TotalCompanies  int64 `json:"total_companies"`
	ActiveCompanies int64 `json:"active_companies"`
	TotalUsers      int64 `json:"total_users"`
	ActiveUsers     int64 `json:"active_users"`
}

// CompanyStore manages tenants. CNPJ is the natural key, compared digits-only.
type CompanyStore struct {
	*Store[model.Company, *model.Company]
	db *gorm.DB
}

// NewCompanyStore builds the company collection store.
func NewCompanyStore(db *gorm.DB) *CompanyStore {
	return &CompanyStore{
		Store: New[model.Company, *model.Company](db, Config{
			KeyColumn:   "tax_id",
			OrderColumn: "legal_name",
			DigitsKey:   true,
		}),
		db: db,
	}
}

// UpdateSettings applies the subset of fields a company admin may edit.
// Fields outside the whitelist are ignored even if present in the payload.
func (s *CompanyStore) UpdateSettings(ctx context.Context, id uint, patch model.SettingsPatch) (model.Company, error) {
	var company model.Company
	if err := s.db.WithContext(ctx).First(&company, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return company, ErrNotFound
		}
		return company, err
	}

	updates := map[string]interface{}{}
	if patch.TradeName != nil {
		updates["trade_name"] = *patch.TradeName
	}
	if patch.Phone != nil {
		updates["phone"] = *patch.Phone
	}
	if patch.Address != nil {
		updates["address"] = *patch.Address
	}
	if patch.City != nil {
		updates["city"] = *patch.City
	}
	if patch.State != nil {
		updates["state"] = *patch.State
	}
	if patch.CEP != nil {
		updates["cep"] = *patch.CEP
	}
	if patch.Terms != nil {
		updates["terms"] = *patch.Terms
	}
	if len(updates) == 0 {
		return company, nil
	}

	if err := s.db.WithContext(ctx).Model(&company).Updates(updates).Error; err != nil {
		return company, err
	}
	return company, nil
}

// Stats aggregates the platform-wide totals for the super-admin dashboard.
func (s *CompanyStore) Stats(ctx context.Context) (PlatformStats, error) {
	var stats PlatformStats
	db := s.db.WithContext(ctx)

	if err := db.Model(&model.Company{}).Count(&stats.TotalCompanies).Error; err != nil {
		return stats, err
	}
	if err := db.Model(&model.Company{}).Where("active = ?", true).Count(&stats.ActiveCompanies).Error; err != nil {
		return stats, err
	}
	if err := db.Model(&model.User{}).Where("role <> ?", model.RoleSuperAdmin).Count(&stats.TotalUsers).Error; err != nil {
		return stats, err
	}
	if err := db.Model(&model.User{}).Where("role <> ? AND active = ?", model.RoleSuperAdmin, true).Count(&stats.ActiveUsers).Error; err != nil {
		return stats, err
	}
	return stats, nil
}
