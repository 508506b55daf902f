package model

import (
	"time"
)

// MaxOrderPhotos caps the photo list attached to a service order.
const MaxOrderPhotos = 5

// ServiceOrder is the central work-tracking record: a repair, sale, warranty
// claim or technical visit. Client data is snapshotted onto the order at
// creation time; ClientID is a weak reference kept for lookup only.
//
// OpenedAt is set once at creation and never altered by updates. Status and
// category are open enumerations: any status may follow any other via edit,
// matching the product's intentionally loose lifecycle.
type ServiceOrder struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CompanyID uint      `json:"company_id" gorm:"index;not null"`
	Category  string    `json:"category" gorm:"type:varchar(20);not null"`
	Status    string    `json:"status" gorm:"type:varchar(20);not null;default:'aberta'"`
	OpenedAt  time.Time `json:"opened_at" gorm:"not null"`

	ClientID    *uint  `json:"client_id,omitempty" gorm:"index"`
	ClientName  string `json:"client_name" gorm:"type:varchar(255);not null"`
	ClientPhone string `json:"client_phone" gorm:"type:varchar(20);not null"`

	AddressCEP        string `json:"address_cep" gorm:"type:varchar(10)"`
	AddressStreet     string `json:"address_street" gorm:"type:varchar(255)"`
	AddressNumber     string `json:"address_number" gorm:"type:varchar(20)"`
	AddressComplement string `json:"address_complement" gorm:"type:varchar(100)"`
	AddressDistrict   string `json:"address_district" gorm:"type:varchar(100)"`
	AddressCity       string `json:"address_city" gorm:"type:varchar(100)"`
	AddressState      string `json:"address_state" gorm:"type:varchar(2)"`
	AddressLandmark   string `json:"address_landmark" gorm:"type:varchar(255)"`

	ProductID      uint   `json:"product_id"`
	BrandID        uint   `json:"brand_id"`
	EquipmentModel string `json:"equipment_model" gorm:"type:varchar(100)"`

	TechnicianID    *uint   `json:"technician_id,omitempty" gorm:"index"`
	DisplacementFee float64 `json:"displacement_fee" gorm:"default:0"`
	PaymentMethod   string  `json:"payment_method" gorm:"type:varchar(20)"`
	TotalValue      float64 `json:"total_value" gorm:"default:0"`

	Defect        string `json:"defect" gorm:"type:text;not null"`
	PendingIssues string `json:"pending_issues" gorm:"type:text"`
	VisitHistory  string `json:"visit_history" gorm:"type:text"`
	WarrantyNotes string `json:"warranty_notes" gorm:"type:text"`

	Photos []OrderPhoto `json:"photos,omitempty" gorm:"foreignKey:OrderID"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OrderPhoto is metadata for a photo attached to an order. File storage lives
// elsewhere; only the reference is kept here.
type OrderPhoto struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	OrderID    uint      `json:"order_id" gorm:"index;not null"`
	Filename   string    `json:"filename" gorm:"type:varchar(255)"`
	URL        string    `json:"url" gorm:"type:varchar(500)"`
	UploadedAt time.Time `json:"uploaded_at"`
}
