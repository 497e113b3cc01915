package wishlist

import (
	"context"
	"errors"

	"github.com/dmancera/shopstream-backend/pkg/db/models"
	pkgerrors "github.com/dmancera/shopstream-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository encapsulates wishlist persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a wishlist repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByCustomer returns the customer's wishlist on the given sales channel.
// The schema allows at most one; the query still caps at a single row.
func (r *Repository) FindByCustomer(ctx context.Context, customerID, salesChannelID uuid.UUID) (*models.Wishlist, error) {
	var wl models.Wishlist
	err := r.db.WithContext(ctx).
		Where("customer_id = ? AND sales_channel_id = ?", customerID, salesChannelID).
		Limit(1).
		Take(&wl).Error
	if err != nil {
		return nil, err
	}
	return &wl, nil
}

// Create inserts an empty wishlist for the customer on the channel.
func (r *Repository) Create(ctx context.Context, customerID, salesChannelID uuid.UUID) (*models.Wishlist, error) {
	wl := models.Wishlist{
		ID:             uuid.New(),
		CustomerID:     customerID,
		SalesChannelID: salesChannelID,
	}
	if err := r.db.WithContext(ctx).Create(&wl).Error; err != nil {
		return nil, err
	}
	return &wl, nil
}

// AddProduct inserts a wishlist entry and ignores duplicates.
func (r *Repository) AddProduct(ctx context.Context, wishlistID, productID uuid.UUID) error {
	if wishlistID == uuid.Nil || productID == uuid.Nil {
		return gorm.ErrInvalidValue
	}
	return r.db.WithContext(ctx).
		Exec(`INSERT INTO wishlist_products (id, wishlist_id, product_id) VALUES (?, ?, ?) ON CONFLICT (wishlist_id, product_id) DO NOTHING`,
			uuid.New(), wishlistID, productID).
		Error
}

// RemoveProduct deletes the wishlist entry if it exists.
func (r *Repository) RemoveProduct(ctx context.Context, wishlistID, productID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("wishlist_id = ? AND product_id = ?", wishlistID, productID).
		Delete(&models.WishlistProduct{}).
		Error
}

// HasProduct reports whether the product sits on the wishlist.
func (r *Repository) HasProduct(ctx context.Context, wishlistID, productID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.WishlistProduct{}).
		Where("wishlist_id = ? AND product_id = ?", wishlistID, productID).
		Count(&count).Error
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check wishlist entry")
	}
	return count > 0, nil
}

// IsNotFound reports whether err is the repository's missing-record error.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
