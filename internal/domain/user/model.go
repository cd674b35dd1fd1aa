package user

import (
	"time"

	"github.com/Harishkumar132003/service-app-backend/internal/domain/company"
)

type Role string

const (
	RoleAdmin           Role = "admin"
	RoleUser            Role = "user"
	RoleManager         Role = "manager"
	RoleServiceProvider Role = "serviceprovider"
	RoleAccountant      Role = "accountant"
)

func ValidRole(r string) bool {
	switch Role(r) {
	case RoleAdmin, RoleUser, RoleManager, RoleServiceProvider, RoleAccountant:
		return true
	}
	return false
}

// User is an account in one of the five workflow roles. CompanyID is the
// primary membership (required for plain users); Companies is the oversight
// set managers and accountants act across. OnsiteCompanyID is a display
// hint only and never feeds authorization.
type User struct {
	ID              string            `gorm:"primaryKey;size:36" json:"id"`
	Name            string            `gorm:"size:255" json:"name"`
	Email           string            `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash    string            `gorm:"size:255;not null" json:"-"`
	Role            Role              `gorm:"size:32;not null;default:'user'" json:"role"`
	CompanyID       *string           `gorm:"size:36;index" json:"company_id"`
	Companies       []company.Company `gorm:"many2many:user_companies" json:"-"`
	OnsiteCompanyID *string           `gorm:"size:36" json:"onsite_company_id,omitempty"`
	Verified        bool              `gorm:"default:false" json:"verified"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}
