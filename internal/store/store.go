package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Record is the contract every stored entity satisfies (on its pointer type).
// The natural key is the human-meaningful uniqueness field, distinct from the
// numeric surrogate id the database assigns.
type Record interface {
	GetID() uint
	GetNaturalKey() string
	GetActive() bool
	SetActive(bool)
	GetCompanyID() uint
	SetCompanyID(uint)
}

// Config tunes a Store for one entity kind.
type Config struct {
	// KeyColumn is the column holding the natural key ("name", "email", "tax_id").
	KeyColumn string
	// OrderColumn is the display-name column collections are sorted by.
	// Defaults to KeyColumn.
	OrderColumn string
	// DigitsKey makes duplicate detection compare the key digits-only
	// (tax ids) instead of case-insensitively (names, emails).
	DigitsKey bool
	// TenantScoped restricts every operation to one company's rows.
	TenantScoped bool
	// OptionalKey allows records with an empty natural key; duplicate
	// detection skips them (clients without a tax id).
	OptionalKey bool
}

// Store is the generic keyed-collection persistence engine shared by all
// reference-data entity kinds. One instance per kind, constructed at startup
// with the database handle injected.
type Store[T any, PT interface {
	*T
	Record
}] struct {
	db  *gorm.DB
	cfg Config
}

// New builds a Store for entity kind T.
func New[T any, PT interface {
	*T
	Record
}](db *gorm.DB, cfg Config) *Store[T, PT] {
	if cfg.OrderColumn == "" {
		cfg.OrderColumn = cfg.KeyColumn
	}
	return &Store[T, PT]{db: db, cfg: cfg}
}

func (s *Store[T, PT]) scope(q *gorm.DB, companyID uint) *gorm.DB {
	if s.cfg.TenantScoped {
		q = q.Where("company_id = ?", companyID)
	}
	return q
}

func (s *Store[T, PT]) ordered(q *gorm.DB) *gorm.DB {
	return q.Order(fmt.Sprintf("lower(%s) ASC, id ASC", s.cfg.OrderColumn))
}

// List returns the whole collection sorted by display name ascending,
// case-insensitively, with the id as a stable tiebreaker.
func (s *Store[T, PT]) List(ctx context.Context, companyID uint) ([]T, error) {
	var items []T
	q := s.ordered(s.scope(s.db.WithContext(ctx), companyID))
	if err := q.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// ListActive returns only records whose active flag is set, same ordering.
func (s *Store[T, PT]) ListActive(ctx context.Context, companyID uint) ([]T, error) {
	var items []T
	q := s.ordered(s.scope(s.db.WithContext(ctx), companyID)).Where("active = ?", true)
	if err := q.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// GetByID fetches one record or ErrNotFound.
func (s *Store[T, PT]) GetByID(ctx context.Context, companyID, id uint) (T, error) {
	var item T
	q := s.scope(s.db.WithContext(ctx), companyID)
	if err := q.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return item, ErrNotFound
		}
		return item, err
	}
	return item, nil
}

// Create inserts a new record after checking the natural key against every
// existing row, active or inactive. The id comes from the database sequence.
func (s *Store[T, PT]) Create(ctx context.Context, entity PT) error {
	taken, err := s.keyTaken(ctx, entity.GetCompanyID(), entity.GetNaturalKey(), 0)
	if err != nil {
		return err
	}
	if taken {
		return ErrDuplicateKey
	}
	return s.db.WithContext(ctx).Create(entity).Error
}

// Update replaces an existing record, keeping its id and creation timestamp.
// The duplicate check excludes the record's own id so saving an unchanged
// natural key is not a collision.
func (s *Store[T, PT]) Update(ctx context.Context, entity PT) error {
	id := entity.GetID()
	if _, err := s.GetByID(ctx, entity.GetCompanyID(), id); err != nil {
		return err
	}
	taken, err := s.keyTaken(ctx, entity.GetCompanyID(), entity.GetNaturalKey(), id)
	if err != nil {
		return err
	}
	if taken {
		return ErrDuplicateKey
	}
	return s.db.WithContext(ctx).Model(entity).Select("*").
		Omit("id", "company_id", "created_at").Updates(entity).Error
}

// Delete hard-deletes the record. There is no tombstoning and no cascade:
// service orders referencing the id keep it and render a fallback label.
func (s *Store[T, PT]) Delete(ctx context.Context, companyID, id uint) error {
	var zero T
	res := s.scope(s.db.WithContext(ctx), companyID).Delete(&zero, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ToggleActive flips the active flag and returns the updated record.
// Applying it twice returns the record to its original state.
func (s *Store[T, PT]) ToggleActive(ctx context.Context, companyID, id uint) (T, error) {
	item, err := s.GetByID(ctx, companyID, id)
	if err != nil {
		return item, err
	}
	p := PT(&item)
	p.SetActive(!p.GetActive())
	if err := s.db.WithContext(ctx).Model(p).Update("active", p.GetActive()).Error; err != nil {
		return item, err
	}
	return item, nil
}

func (s *Store[T, PT]) keyTaken(ctx context.Context, companyID uint, key string, excludeID uint) (bool, error) {
	if s.cfg.DigitsKey {
		key = DigitsOnly(key)
	}
	if key == "" {
		if s.cfg.OptionalKey {
			return false, nil
		}
		// An empty required key never collides; validation rejects it upstream.
		return false, nil
	}

	q := s.scope(s.db.WithContext(ctx).Model(PT(new(T))), companyID)
	if s.cfg.DigitsKey {
		q = q.Where(fmt.Sprintf(`regexp_replace(%s, '\D', '', 'g') = ?`, s.cfg.KeyColumn), key)
	} else {
		q = q.Where(fmt.Sprintf("lower(%s) = lower(?)", s.cfg.KeyColumn), key)
	}
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
