package model

import (
	"time"
)

// Company represents a tenant of the platform. Every user and every business
// record (clients, catalog entries, service orders) belongs to exactly one
// company. Companies are managed by super admins only.
type Company struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	LegalName string    `json:"legal_name" gorm:"type:varchar(255);not null"`
	TradeName string    `json:"trade_name" gorm:"type:varchar(255)"`
	TaxID     string    `json:"tax_id" gorm:"type:varchar(20);index"` // CNPJ, digits compared after normalization
	Email     string    `json:"email" gorm:"type:varchar(100)"`
	Phone     string    `json:"phone" gorm:"type:varchar(20)"`
	Address   string    `json:"address" gorm:"type:varchar(255)"`
	City      string    `json:"city" gorm:"type:varchar(100)"`
	State     string    `json:"state" gorm:"type:varchar(2)"`
	CEP       string    `json:"cep" gorm:"type:varchar(10)"`
	Plan      string    `json:"plan" gorm:"type:varchar(20);default:'basico'"` // 'basico' or 'premium'
	Terms     string    `json:"terms" gorm:"type:text"`
	Active    bool      `json:"active" gorm:"default:true"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Company) GetID() uint           { return c.ID }
func (c *Company) GetNaturalKey() string { return c.TaxID }
func (c *Company) GetActive() bool       { return c.Active }
func (c *Company) SetActive(v bool)      { c.Active = v }
func (c *Company) GetCompanyID() uint    { return 0 } // companies are not tenant-scoped
func (c *Company) SetCompanyID(uint)     {}

// SettingsPatch carries the subset of company fields a company admin may edit.
// Everything else (legal name, tax id, plan, active flag) stays super-admin only.
type SettingsPatch struct {
	TradeName *string `json:"trade_name,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Address   *string `json:"address,omitempty"`
	City      *string `json:"city,omitempty"`
	State     *string `json:"state,omitempty"`
	CEP       *string `json:"cep,omitempty"`
	Terms     *string `json:"terms,omitempty"`
}
