package products

import (
	"context"
	"errors"

	"github.com/dmancera/shopstream-backend/internal/criteria"
	"github.com/dmancera/shopstream-backend/pkg/db/models"
	pkgerrors "github.com/dmancera/shopstream-backend/pkg/errors"
	"github.com/dmancera/shopstream-backend/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Criteria field names accepted by product search. The wishlist fields join
// through wishlist_products so listings can be scoped to one wishlist.
const (
	FieldWishlistID   = "wishlist_products.wishlist_id"
	FieldWishlistedAt = "wishlist_products.created_at"
)

const joinWishlistProducts = "JOIN wishlist_products wp ON wp.product_id = p.id"

var searchFields = criteria.FieldMap{
	"id":              {Column: "p.id"},
	"product_number":  {Column: "p.product_number"},
	"name":            {Column: "p.name"},
	"price":           {Column: "p.price"},
	"stock":           {Column: "p.stock"},
	"is_active":       {Column: "p.is_active"},
	"created_at":      {Column: "p.created_at"},
	FieldWishlistID:   {Column: "wp.wishlist_id", Join: joinWishlistProducts},
	FieldWishlistedAt: {Column: "wp.created_at", Join: joinWishlistProducts},
}

// Repository reads the product catalog.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a product repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Search runs a criteria-driven catalog query and returns one page of
// results along with the total match count.
func (r *Repository) Search(ctx context.Context, crit *criteria.Criteria) (*ListingResult, error) {
	base := func() *gorm.DB {
		return r.db.WithContext(ctx).Table("products p")
	}

	counting, err := crit.ApplyFilters(base(), searchFields)
	if err != nil {
		return nil, err
	}
	var total int64
	if err := counting.Distinct("p.id").Count(&total).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count products")
	}

	listing, err := crit.Apply(base(), searchFields)
	if err != nil {
		return nil, err
	}
	page := crit.NormalizedPage()
	limit := crit.NormalizedLimit()

	var rows []models.Product
	err = listing.
		Select("p.*").
		Offset(crit.Offset()).
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "search products")
	}

	items := make([]ProductSummary, 0, len(rows))
	for _, row := range rows {
		items = append(items, summarize(row))
	}
	return &ListingResult{
		Items:      items,
		Pagination: pagination.BuildMeta(total, page, limit),
	}, nil
}

// FindByID returns one product regardless of listing criteria.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find product")
	}
	return &product, nil
}
