package wishlist

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dmancera/shopstream-backend/internal/criteria"
	"github.com/dmancera/shopstream-backend/internal/events"
	"github.com/dmancera/shopstream-backend/internal/products"
	"github.com/dmancera/shopstream-backend/internal/sysconfig"
	"github.com/dmancera/shopstream-backend/pkg/db"
	"github.com/dmancera/shopstream-backend/pkg/db/models"
	pkgerrors "github.com/dmancera/shopstream-backend/pkg/errors"
	"github.com/google/uuid"
)

// Service exposes the storefront wishlist operations.
type Service interface {
	Load(ctx context.Context, req *http.Request, channel ChannelContext, crit *criteria.Criteria) (*LoadResponse, error)
	AddProduct(ctx context.Context, channel ChannelContext, productID uuid.UUID) (*models.Wishlist, error)
	RemoveProduct(ctx context.Context, channel ChannelContext, productID uuid.UUID) error
}

type wishlistRepository interface {
	FindByCustomer(ctx context.Context, customerID, salesChannelID uuid.UUID) (*models.Wishlist, error)
	Create(ctx context.Context, customerID, salesChannelID uuid.UUID) (*models.Wishlist, error)
	AddProduct(ctx context.Context, wishlistID, productID uuid.UUID) error
	RemoveProduct(ctx context.Context, wishlistID, productID uuid.UUID) error
}

type productSearcher interface {
	Search(ctx context.Context, crit *criteria.Criteria) (*products.ListingResult, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

type configLookup interface {
	Bool(ctx context.Context, key string, salesChannelID uuid.UUID) (bool, error)
}

type notifier interface {
	Publish(ctx context.Context, event events.Event) error
}

type service struct {
	wishlists wishlistRepository
	products  productSearcher
	config    configLookup
	notifier  notifier
}

// ServiceParams bundles the dependencies required to build a wishlist service.
type ServiceParams struct {
	WishlistRepo wishlistRepository
	ProductRepo  productSearcher
	Config       configLookup
	Notifier     notifier
}

// NewService builds a wishlist service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.WishlistRepo == nil {
		return nil, fmt.Errorf("wishlist repository is required")
	}
	if params.ProductRepo == nil {
		return nil, fmt.Errorf("product repository is required")
	}
	if params.Config == nil {
		return nil, fmt.Errorf("config service is required")
	}
	if params.Notifier == nil {
		return nil, fmt.Errorf("event dispatcher is required")
	}
	return &service{
		wishlists: params.WishlistRepo,
		products:  params.ProductRepo,
		config:    params.Config,
		notifier:  params.Notifier,
	}, nil
}

// Load returns the caller's wishlist together with one page of its products,
// selected by the caller's criteria scoped to the wishlist.
func (s *service) Load(ctx context.Context, req *http.Request, channel ChannelContext, crit *criteria.Criteria) (*LoadResponse, error) {
	customerID, err := s.guard(ctx, channel)
	if err != nil {
		return nil, err
	}

	wl, err := s.wishlists.FindByCustomer(ctx, customerID, channel.SalesChannelID)
	if err != nil {
		if IsNotFound(err) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "no wishlist found for this customer")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load wishlist")
	}

	if crit == nil {
		crit = criteria.New()
	}
	crit.AddFilter(criteria.Equals(products.FieldWishlistID, wl.ID))
	crit.AddSort(products.FieldWishlistedAt, criteria.Descending)

	err = s.notifier.Publish(ctx, &ProductCriteriaEvent{
		Request:  req,
		Criteria: crit,
		Wishlist: wl,
		Context:  channel,
	})
	if err != nil {
		return nil, err
	}

	result, err := s.products.Search(ctx, crit)
	if err != nil {
		return nil, err
	}

	err = s.notifier.Publish(ctx, &ProductsLoadedEvent{
		Request:  req,
		Result:   result,
		Wishlist: wl,
		Context:  channel,
	})
	if err != nil {
		return nil, err
	}

	return &LoadResponse{Wishlist: *wl, Products: result}, nil
}

// AddProduct puts the product on the caller's wishlist, creating the
// wishlist on first use. Adding an already-present product is a no-op.
func (s *service) AddProduct(ctx context.Context, channel ChannelContext, productID uuid.UUID) (*models.Wishlist, error) {
	customerID, err := s.guard(ctx, channel)
	if err != nil {
		return nil, err
	}
	if productID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if _, err := s.products.FindByID(ctx, productID); err != nil {
		return nil, err
	}

	wl, err := s.wishlists.FindByCustomer(ctx, customerID, channel.SalesChannelID)
	if err != nil {
		if !IsNotFound(err) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load wishlist")
		}
		wl, err = s.wishlists.Create(ctx, customerID, channel.SalesChannelID)
		if err != nil {
			// a concurrent request may have created it first
			if db.IsUniqueViolation(err, "wishlists_customer_channel_key") {
				wl, err = s.wishlists.FindByCustomer(ctx, customerID, channel.SalesChannelID)
			}
			if err != nil {
				return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create wishlist")
			}
		}
	}

	if err := s.wishlists.AddProduct(ctx, wl.ID, productID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "add wishlist product")
	}
	return wl, nil
}

// RemoveProduct drops the product from the caller's wishlist if present.
func (s *service) RemoveProduct(ctx context.Context, channel ChannelContext, productID uuid.UUID) error {
	customerID, err := s.guard(ctx, channel)
	if err != nil {
		return err
	}
	if productID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}

	wl, err := s.wishlists.FindByCustomer(ctx, customerID, channel.SalesChannelID)
	if err != nil {
		if IsNotFound(err) {
			return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "no wishlist found for this customer")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load wishlist")
	}

	if err := s.wishlists.RemoveProduct(ctx, wl.ID, productID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "remove wishlist product")
	}
	return nil
}

// guard enforces the two preconditions shared by every wishlist operation:
// the feature flag for the channel, then a logged-in customer.
func (s *service) guard(ctx context.Context, channel ChannelContext) (uuid.UUID, error) {
	enabled, err := s.config.Bool(ctx, sysconfig.ConfigKeyWishlistEnabled, channel.SalesChannelID)
	if err != nil {
		return uuid.Nil, err
	}
	if !enabled {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeFeatureDisabled, "wishlist is not activated for this sales channel")
	}
	if channel.CustomerID == nil || *channel.CustomerID == uuid.Nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "customer login is required")
	}
	return *channel.CustomerID, nil
}
