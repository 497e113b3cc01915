package controllers

import (
	"context"
	"net/http"

	"github.com/dmancera/shopstream-backend/api/middleware"
	"github.com/dmancera/shopstream-backend/api/responses"
	"github.com/dmancera/shopstream-backend/api/validators"
	"github.com/dmancera/shopstream-backend/internal/criteria"
	"github.com/dmancera/shopstream-backend/internal/wishlist"
	pkgerrors "github.com/dmancera/shopstream-backend/pkg/errors"
	"github.com/dmancera/shopstream-backend/pkg/logger"
)

// WishlistLoad returns the caller's wishlist and a page of its products.
// GET carries the listing criteria in query parameters, POST in the body.
func WishlistLoad(svc wishlist.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "wishlist service unavailable"))
			return
		}

		channel, err := channelContext(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		crit, err := criteria.FromRequest(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		resp, err := svc.Load(ctx, r, channel, crit)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, resp)
	}
}

// WishlistAddProduct puts one product on the caller's wishlist.
func WishlistAddProduct(svc wishlist.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "wishlist service unavailable"))
			return
		}

		channel, err := channelContext(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		productID, err := validators.ParseUUIDParam(r, "productId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		wl, err := svc.AddProduct(ctx, channel, productID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, wl)
	}
}

// WishlistRemoveProduct drops one product from the caller's wishlist.
func WishlistRemoveProduct(svc wishlist.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "wishlist service unavailable"))
			return
		}

		channel, err := channelContext(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		productID, err := validators.ParseUUIDParam(r, "productId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if err := svc.RemoveProduct(ctx, channel, productID); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "removed"})
	}
}

// channelContext assembles the storefront scope from middleware-seeded
// context values. The customer stays optional; services enforce login.
func channelContext(ctx context.Context) (wishlist.ChannelContext, error) {
	channelID, ok := middleware.SalesChannelIDFromContext(ctx)
	if !ok {
		return wishlist.ChannelContext{}, pkgerrors.New(pkgerrors.CodeInternal, "sales channel context missing")
	}
	return wishlist.ChannelContext{
		SalesChannelID: channelID,
		CustomerID:     middleware.CustomerIDFromContext(ctx),
	}, nil
}
