package customers

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dmancera/shopstream-backend/pkg/db/models"
	pkgerrors "github.com/dmancera/shopstream-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository reads and updates customer accounts.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a customer repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByEmail returns the customer registered with email on the sales
// channel. Emails are matched case-insensitively.
func (r *Repository) FindByEmail(ctx context.Context, salesChannelID uuid.UUID, email string) (*models.Customer, error) {
	var customer models.Customer
	err := r.db.WithContext(ctx).
		Where("sales_channel_id = ? AND LOWER(email) = ?", salesChannelID, strings.ToLower(strings.TrimSpace(email))).
		Take(&customer).Error
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

// FindByID returns one customer.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	var customer models.Customer
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&customer).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "customer not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find customer")
	}
	return &customer, nil
}

// UpdateLastLogin records a successful login timestamp.
func (r *Repository) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.Customer{}).
		Where("id = ?", id).
		Update("last_login_at", at).Error
}
