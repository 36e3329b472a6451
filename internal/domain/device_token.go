package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// DeviceToken is an Expo push token registered by the mobile app.
type DeviceToken struct {
	ID        uuid.UUID      `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID      `gorm:"column:user_id;type:uuid;not null;index" json:"user_id"`
	Token     string         `gorm:"column:token;not null;uniqueIndex" json:"token"`
	Platform  string         `gorm:"column:platform;type:varchar(16)" json:"platform"`
	Device    datatypes.JSON `gorm:"column:device" json:"device"`
	CreatedAt time.Time      `gorm:"column:createdAt" json:"createdAt"`
	UpdatedAt time.Time      `gorm:"column:updatedAt" json:"updatedAt"`
}

func (DeviceToken) TableName() string {
	return "DeviceTokens"
}

func (d *DeviceToken) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}
