package model

import (
	"time"
)

// Client represents a customer of a company. The TaxID (CPF or CNPJ) is the
// natural key: when present it must be unique within the company after
// stripping non-digit characters.
type Client struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	CompanyID uint   `json:"company_id" gorm:"index;not null"`
	Name      string `json:"name" gorm:"type:varchar(255);not null"`
	Phone     string `json:"phone" gorm:"type:varchar(20);not null"`
	Email     string `json:"email" gorm:"type:varchar(100)"`
	TaxID     string `json:"tax_id" gorm:"type:varchar(20);index"` // CPF/CNPJ

	AddressCEP        string `json:"address_cep" gorm:"type:varchar(10)"`
	AddressStreet     string `json:"address_street" gorm:"type:varchar(255)"`
	AddressNumber     string `json:"address_number" gorm:"type:varchar(20)"`
	AddressComplement string `json:"address_complement" gorm:"type:varchar(100)"`
	AddressDistrict   string `json:"address_district" gorm:"type:varchar(100)"`
	AddressCity       string `json:"address_city" gorm:"type:varchar(100)"`
	AddressState      string `json:"address_state" gorm:"type:varchar(2)"`
	AddressLandmark   string `json:"address_landmark" gorm:"type:varchar(255)"`

	Notes     string    `json:"notes" gorm:"type:text"`
	Active    bool      `json:"active" gorm:"default:true"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Client) GetID() uint           { return c.ID }
func (c *Client) GetNaturalKey() string { return c.TaxID }
func (c *Client) GetActive() bool       { return c.Active }
func (c *Client) SetActive(v bool)      { c.Active = v }
func (c *Client) GetCompanyID() uint    { return c.CompanyID }
func (c *Client) SetCompanyID(id uint)  { c.CompanyID = id }
