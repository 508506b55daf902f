package model

import (
	"time"
)

// Product is an equipment type a company services (split AC, fridge, washer...).
// Name is unique per company, compared case-insensitively.
type Product struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CompanyID uint      `json:"company_id" gorm:"index;not null"`
	Name      string    `json:"name" gorm:"type:varchar(255);not null"`
	Active    bool      `json:"active" gorm:"default:true"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Product) GetID() uint           { return p.ID }
func (p *Product) GetNaturalKey() string { return p.Name }
func (p *Product) GetActive() bool       { return p.Active }
func (p *Product) SetActive(v bool)      { p.Active = v }
func (p *Product) GetCompanyID() uint    { return p.CompanyID }
func (p *Product) SetCompanyID(id uint)  { p.CompanyID = id }

// Brand is an equipment manufacturer. Same uniqueness rule as Product.
type Brand struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CompanyID uint      `json:"company_id" gorm:"index;not null"`
	Name      string    `json:"name" gorm:"type:varchar(255);not null"`
	Active    bool      `json:"active" gorm:"default:true"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (b *Brand) GetID() uint           { return b.ID }
func (b *Brand) GetNaturalKey() string { return b.Name }
func (b *Brand) GetActive() bool       { return b.Active }
func (b *Brand) SetActive(v bool)      { b.Active = v }
func (b *Brand) GetCompanyID() uint    { return b.CompanyID }
func (b *Brand) SetCompanyID(id uint)  { b.CompanyID = id }

// Technician is a field worker service orders can be assigned to. Deleting a
// technician leaves orders pointing at the old id; reads render a fallback
// label instead of enforcing referential integrity.
type Technician struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CompanyID uint      `json:"company_id" gorm:"index;not null"`
	Name      string    `json:"name" gorm:"type:varchar(255);not null"`
	Phone     string    `json:"phone" gorm:"type:varchar(20)"`
	Active    bool      `json:"active" gorm:"default:true"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (t *Technician) GetID() uint           { return t.ID }
func (t *Technician) GetNaturalKey() string { return t.Name }
func (t *Technician) GetActive() bool       { return t.Active }
func (t *Technician) SetActive(v bool)      { t.Active = v }
func (t *Technician) GetCompanyID() uint    { return t.CompanyID }
func (t *Technician) SetCompanyID(id uint)  { t.CompanyID = id }
