package model

import (
	"time"
)

// Roles a user can hold. Authorization is exact-membership: a super admin is
// not implicitly granted company-scoped capabilities and vice versa.
const (
	RoleSuperAdmin   = "super_admin"
	RoleCompanyAdmin = "admin_empresa"
	RoleUser         = "user"
)

// User represents an account that can sign in. Super admins carry no company;
// everyone else belongs to exactly one.
type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"type:varchar(255);not null"`
	Email     string    `json:"email" gorm:"type:varchar(100);uniqueIndex"`
	Phone     string    `json:"phone" gorm:"type:varchar(20)"`
	Password  string    `json:"-" gorm:"type:varchar(255)"`
	Role      string    `json:"role" gorm:"type:varchar(20);not null;default:'user'"`
	CompanyID *uint     `json:"company_id,omitempty" gorm:"index"`
	Active    bool      `json:"active" gorm:"default:true"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) GetID() uint           { return u.ID }
func (u *User) GetNaturalKey() string { return u.Email }
func (u *User) GetActive() bool       { return u.Active }
func (u *User) SetActive(v bool)      { u.Active = v }
func (u *User) GetCompanyID() uint {
	if u.CompanyID == nil {
		return 0
	}
	return *u.CompanyID
}
func (u *User) SetCompanyID(id uint) {
	if id == 0 {
		u.CompanyID = nil
		return
	}
	u.CompanyID = &id
}
