package models

import (
	"time"

	"github.com/google/uuid"
)

// SystemConfig stores a JSON-encoded configuration value, optionally scoped to
// one sales channel. A NULL sales channel row is the global fallback.
type SystemConfig struct {
	ID             uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ConfigKey      string     `gorm:"column:config_key;not null;uniqueIndex:system_config_key_channel_key"`
	SalesChannelID *uuid.UUID `gorm:"column:sales_channel_id;type:uuid;uniqueIndex:system_config_key_channel_key"`
	ConfigValue    string     `gorm:"column:config_value;type:jsonb;not null"`
	CreatedAt      time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

func (SystemConfig) TableName() string {
	return "system_config"
}
