package models

import (
	"time"

	"github.com/google/uuid"
)

// Customer is a storefront account bound to a single sales channel.
type Customer struct {
	ID             uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	SalesChannelID uuid.UUID  `gorm:"column:sales_channel_id;type:uuid;not null;index:customers_sales_channel_id_idx;uniqueIndex:customers_channel_email_key"`
	Email          string     `gorm:"column:email;not null;uniqueIndex:customers_channel_email_key"`
	PasswordHash   string     `gorm:"column:password_hash;not null"`
	FirstName      string     `gorm:"column:first_name;not null"`
	LastName       string     `gorm:"column:last_name;not null"`
	IsActive       bool       `gorm:"column:is_active;not null;default:true"`
	LastLoginAt    *time.Time `gorm:"column:last_login_at"`
	CreatedAt      time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
