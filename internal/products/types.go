package products

import (
	"time"

	"github.com/dmancera/shopstream-backend/pkg/db/models"
	"github.com/dmancera/shopstream-backend/pkg/pagination"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductSummary is the storefront-facing shape of a catalog product.
type ProductSummary struct {
	ID            uuid.UUID       `json:"id"`
	ProductNumber string          `json:"productNumber"`
	Name          string          `json:"name"`
	Description   *string         `json:"description,omitempty"`
	Price         decimal.Decimal `json:"price"`
	Stock         int             `json:"stock"`
	IsActive      bool            `json:"isActive"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// ListingResult is one page of a product search. Post-query subscribers may
// rewrite Items before the result reaches the caller.
type ListingResult struct {
	Items      []ProductSummary `json:"items"`
	Pagination pagination.Meta  `json:"pagination"`
}

func summarize(p models.Product) ProductSummary {
	return ProductSummary{
		ID:            p.ID,
		ProductNumber: p.ProductNumber,
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price,
		Stock:         p.Stock,
		IsActive:      p.IsActive,
		CreatedAt:     p.CreatedAt,
	}
}
