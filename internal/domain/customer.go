package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CustomerStatus is the onboarding/lifecycle state shown on customer cards.
type CustomerStatus string

const (
	CustomerActive            CustomerStatus = "active"
	CustomerPendingOnboarding CustomerStatus = "pending_onboarding"
	CustomerInactive          CustomerStatus = "inactive"
	CustomerBlocked           CustomerStatus = "blocked"
	CustomerOther             CustomerStatus = "other"
)

// CustomerStatuses lists every status in display order (dashboard stats use it).
var CustomerStatuses = []CustomerStatus{
	CustomerActive,
	CustomerPendingOnboarding,
	CustomerInactive,
	CustomerBlocked,
	CustomerOther,
}

// IsValid reports whether s is one of the known statuses.
func (s CustomerStatus) IsValid() bool {
	for _, v := range CustomerStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// Customer is an RM Club client managed by a relationship manager.
type Customer struct {
	CustomerID uuid.UUID      `gorm:"column:customer_id;type:uuid;primaryKey" json:"id"`
	FirstName  string         `gorm:"column:first_name;not null" json:"first_name"`
	LastName   string         `gorm:"column:last_name;not null" json:"last_name"`
	Email      string         `gorm:"column:email;not null;uniqueIndex" json:"email"`
	Phone      *string        `gorm:"column:phone" json:"phone"`
	Status     CustomerStatus `gorm:"column:status;type:varchar(32);not null;default:'pending_onboarding'" json:"status"`
	CreatedAt  time.Time      `gorm:"column:createdAt" json:"createdAt"`
	UpdatedAt  time.Time      `gorm:"column:updatedAt" json:"updatedAt"`
}

func (Customer) TableName() string {
	return "Customers"
}

// FullName joins first and last name the way the app renders it.
func (c Customer) FullName() string {
	if c.LastName == "" {
		return c.FirstName
	}
	return c.FirstName + " " + c.LastName
}

func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.CustomerID == uuid.Nil {
		c.CustomerID = uuid.New()
	}
	return nil
}
