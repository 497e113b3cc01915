package sysconfig

import (
	"context"
	"errors"

	"github.com/dmancera/shopstream-backend/pkg/db/models"
	pkgerrors "github.com/dmancera/shopstream-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository reads system configuration rows.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a system config repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Lookup returns the raw JSON value for key as seen from the given sales
// channel. A channel-scoped row wins over the global (NULL channel) row.
// The second return is false when neither row exists.
func (r *Repository) Lookup(ctx context.Context, key string, salesChannelID uuid.UUID) (string, bool, error) {
	var row models.SystemConfig
	err := r.db.WithContext(ctx).
		Where("config_key = ?", key).
		Where("sales_channel_id = ? OR sales_channel_id IS NULL", salesChannelID).
		Order("sales_channel_id IS NULL").
		Limit(1).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup system config")
	}
	return row.ConfigValue, true, nil
}
