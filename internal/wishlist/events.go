package wishlist

import (
	"net/http"

	"github.com/dmancera/shopstream-backend/internal/criteria"
	"github.com/dmancera/shopstream-backend/internal/products"
	"github.com/dmancera/shopstream-backend/pkg/db/models"
)

// Event names published while loading a wishlist listing.
const (
	// EventProductCriteria fires after the wishlist filter and sort have been
	// added, before the catalog query runs. Subscribers may adjust Criteria.
	EventProductCriteria = "wishlist.products.criteria"
	// EventProductsLoaded fires once the catalog query has run, before the
	// response is assembled. Subscribers may rewrite the result.
	EventProductsLoaded = "wishlist.products.loaded"
)

// ProductCriteriaEvent carries the fully scoped search criteria.
type ProductCriteriaEvent struct {
	Request  *http.Request
	Criteria *criteria.Criteria
	Wishlist *models.Wishlist
	Context  ChannelContext
}

func (*ProductCriteriaEvent) Name() string { return EventProductCriteria }

// ProductsLoadedEvent carries the page of products about to be returned.
type ProductsLoadedEvent struct {
	Request  *http.Request
	Result   *products.ListingResult
	Wishlist *models.Wishlist
	Context  ChannelContext
}

func (*ProductsLoadedEvent) Name() string { return EventProductsLoaded }
