package store

import (
	"context"
	"strings"

	"techos-service/internal/model"

	"gorm.io/gorm"
)

// searchLimit caps live-search results; the UI shows at most ten suggestions.
const searchLimit = 10

// ClientStore adds the live-search capability on top of the generic store.
type ClientStore struct {
	*Store[model.Client, *model.Client]
}

// NewClientStore builds the client collection store. Tax id is the natural
// key, optional and compared digits-only.
func NewClientStore(db *gorm.DB) *ClientStore {
	return &ClientStore{
		Store: New[model.Client, *model.Client](db, Config{
			KeyColumn:    "tax_id",
			OrderColumn:  "name",
			DigitsKey:    true,
			TenantScoped: true,
			OptionalKey:  true,
		}),
	}
}

// Search matches active clients whose name, phone or tax id contains the term
// (case-insensitive), ordered by name ascending and capped at ten results.
func (s *ClientStore) Search(ctx context.Context, companyID uint, term string) ([]model.Client, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return []model.Client{}, nil
	}
	pattern := "%" + strings.ToLower(term) + "%"

	var clients []model.Client
	err := s.db.WithContext(ctx).
		Where("company_id = ? AND active = ?", companyID, true).
		Where("lower(name) LIKE ? OR phone LIKE ? OR tax_id LIKE ?", pattern, "%"+term+"%", "%"+term+"%").
		Order("lower(name) ASC, id ASC").
		Limit(searchLimit).
		Find(&clients).Error
	if err != nil {
		return nil, err
	}
	return clients, nil
}
