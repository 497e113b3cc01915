package controllers

import (
	"net/http"

	"github.com/dmancera/shopstream-backend/api/middleware"
	"github.com/dmancera/shopstream-backend/api/responses"
)

func PublicPing() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]string{"scope": "public", "status": "ok"})
	}
}

// StorePing answers inside the sales-channel scope; handy for storefront
// smoke tests.
func StorePing() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload := map[string]string{"scope": "store", "status": "ok"}
		if channelID, ok := middleware.SalesChannelIDFromContext(r.Context()); ok {
			payload["sales_channel_id"] = channelID.String()
		}
		if customerID := middleware.CustomerIDFromContext(r.Context()); customerID != nil {
			payload["customer_id"] = customerID.String()
		}
		responses.WriteSuccess(w, payload)
	}
}
