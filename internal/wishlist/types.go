package wishlist

import (
	"github.com/dmancera/shopstream-backend/internal/products"
	"github.com/dmancera/shopstream-backend/pkg/db/models"
	"github.com/google/uuid"
)

// ChannelContext is the resolved storefront scope of one request: the sales
// channel it arrived on and, when the caller is logged in, the customer.
type ChannelContext struct {
	SalesChannelID uuid.UUID
	CustomerID     *uuid.UUID
}

// LoadResponse pairs the customer's wishlist with one page of its products.
type LoadResponse struct {
	Wishlist models.Wishlist         `json:"wishlist"`
	Products *products.ListingResult `json:"products"`
}
