package saleschannels

import (
	"context"
	"errors"

	"github.com/dmancera/shopstream-backend/pkg/db/models"
	pkgerrors "github.com/dmancera/shopstream-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository reads sales channel rows.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a sales channel repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByAccessKey returns the channel owning the storefront access key.
func (r *Repository) FindByAccessKey(ctx context.Context, accessKey string) (*models.SalesChannel, error) {
	var channel models.SalesChannel
	err := r.db.WithContext(ctx).Where("access_key = ?", accessKey).Take(&channel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "unknown sales channel access key")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find sales channel")
	}
	return &channel, nil
}

// FindByID returns one sales channel.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.SalesChannel, error) {
	var channel models.SalesChannel
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&channel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "sales channel not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find sales channel")
	}
	return &channel, nil
}
