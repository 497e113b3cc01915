package models

import (
	"time"

	"github.com/google/uuid"
)

// Wishlist is a customer's saved-products collection. At most one wishlist
// exists per (customer, sales channel) pair.
type Wishlist struct {
	ID             uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CustomerID     uuid.UUID `gorm:"column:customer_id;type:uuid;not null;uniqueIndex:wishlists_customer_channel_key"`
	SalesChannelID uuid.UUID `gorm:"column:sales_channel_id;type:uuid;not null;uniqueIndex:wishlists_customer_channel_key"`
	Name           string    `gorm:"column:name;not null;default:'Wishlist'"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
