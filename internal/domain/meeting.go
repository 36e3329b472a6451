package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LocationType says where a meeting happens.
type LocationType string

const (
	LocationOffice LocationType = "office"
	LocationOnline LocationType = "online"
	LocationOther  LocationType = "other"
)

// Meeting is an RM appointment, optionally tied to a customer.
type Meeting struct {
	MeetingID       uuid.UUID    `gorm:"column:meeting_id;type:uuid;primaryKey" json:"id"`
	Title           string       `gorm:"column:title;not null" json:"title"`
	CustomerID      *uuid.UUID   `gorm:"column:customer_id;type:uuid;index" json:"customer_id"`
	MeetingDate     time.Time    `gorm:"column:meeting_date;not null" json:"meeting_date"`
	LocationType    LocationType `gorm:"column:location_type;type:varchar(16);not null;default:'office'" json:"location_type"`
	LocationDetails *string      `gorm:"column:location_details" json:"location_details"`
	CreatedAt       time.Time    `gorm:"column:createdAt" json:"createdAt"`
	UpdatedAt       time.Time    `gorm:"column:updatedAt" json:"updatedAt"`
}

func (Meeting) TableName() string {
	return "Meetings"
}

func (m *Meeting) BeforeCreate(tx *gorm.DB) error {
	if m.MeetingID == uuid.Nil {
		m.MeetingID = uuid.New()
	}
	return nil
}
