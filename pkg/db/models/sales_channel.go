package models

import (
	"time"

	"github.com/google/uuid"
)

// SalesChannel is a storefront tenant scope; config and data are partitioned by it.
type SalesChannel struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name      string    `gorm:"column:name;not null"`
	AccessKey string    `gorm:"column:access_key;not null;uniqueIndex:sales_channels_access_key_key"`
	IsActive  bool      `gorm:"column:is_active;not null;default:true"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
