package models

import (
	"time"

	"github.com/google/uuid"
)

// WishlistProduct links a wishlist to a saved product.
type WishlistProduct struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	WishlistID uuid.UUID `gorm:"column:wishlist_id;type:uuid;not null;index:wishlist_products_wishlist_id_idx;uniqueIndex:wishlist_products_wishlist_product_key"`
	ProductID  uuid.UUID `gorm:"column:product_id;type:uuid;not null;index:wishlist_products_product_id_idx;uniqueIndex:wishlist_products_wishlist_product_key"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
}
