package store

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"techos-service/internal/model"

	"gorm.io/gorm"
)

// OrderStore persists service orders. Orders have no natural key: the numeric
// id, assigned by the database sequence, is the business identifier shown to
// users as a five-digit padded number.
type OrderStore struct {
	db *gorm.DB
}

// NewOrderStore builds the service-order collection store.
func NewOrderStore(db *gorm.DB) *OrderStore {
	return &OrderStore{db: db}
}

// List returns a company's orders, most recently opened first.
func (s *OrderStore) List(ctx context.Context, companyID uint) ([]model.ServiceOrder, error) {
	var orders []model.ServiceOrder
	err := s.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Preload("Photos").
		Order("opened_at DESC, id DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// GetByID fetches one order with its photo list, or ErrNotFound.
func (s *OrderStore) GetByID(ctx context.Context, companyID, id uint) (model.ServiceOrder, error) {
	var order model.ServiceOrder
	err := s.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Preload("Photos").
		First(&order, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return order, ErrNotFound
		}
		return order, err
	}
	return order, nil
}

// Create inserts a validated order. Status always starts at 'aberta' and
// OpenedAt is stamped here, never by the caller.
func (s *OrderStore) Create(ctx context.Context, order *model.ServiceOrder) error {
	order.ID = 0
	order.Status = "aberta"
	order.OpenedAt = time.Now()
	return s.db.WithContext(ctx).Create(order).Error
}

// Update replaces an order's mutable fields. The id, company and OpenedAt of
// the stored record always win over whatever the payload carries.
func (s *OrderStore) Update(ctx context.Context, order *model.ServiceOrder) error {
	existing, err := s.GetByID(ctx, order.CompanyID, order.ID)
	if err != nil {
		return err
	}
	order.OpenedAt = existing.OpenedAt
	order.CreatedAt = existing.CreatedAt

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(order).Select("*").
			Omit("id", "company_id", "opened_at", "created_at", "Photos").
			Updates(order).Error; err != nil {
			return err
		}
		// Photo list is replaced wholesale; partial edits are not a thing.
		if err := tx.Where("order_id = ?", order.ID).Delete(&model.OrderPhoto{}).Error; err != nil {
			return err
		}
		for i := range order.Photos {
			order.Photos[i].ID = 0
			order.Photos[i].OrderID = order.ID
		}
		if len(order.Photos) > 0 {
			if err := tx.Create(&order.Photos).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete hard-deletes an order and its photo metadata.
func (s *OrderStore) Delete(ctx context.Context, companyID, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("company_id = ?", companyID).Delete(&model.ServiceOrder{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return tx.Where("order_id = ?", id).Delete(&model.OrderPhoto{}).Error
	})
}

// Search matches orders whose client name contains the term
// (case-insensitive) or whose id contains the term's digits.
func (s *OrderStore) Search(ctx context.Context, companyID uint, term string) ([]model.ServiceOrder, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return []model.ServiceOrder{}, nil
	}

	q := s.db.WithContext(ctx).Where("company_id = ?", companyID)
	pattern := "%" + strings.ToLower(term) + "%"
	if _, err := strconv.Atoi(term); err == nil {
		q = q.Where("lower(client_name) LIKE ? OR CAST(id AS TEXT) LIKE ?", pattern, "%"+term+"%")
	} else {
		q = q.Where("lower(client_name) LIKE ?", pattern)
	}

	var orders []model.ServiceOrder
	if err := q.Order("opened_at DESC, id DESC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}
