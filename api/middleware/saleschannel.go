package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/dmancera/shopstream-backend/api/responses"
	"github.com/dmancera/shopstream-backend/pkg/db/models"
	"github.com/dmancera/shopstream-backend/pkg/logger"
)

// SalesChannelHeader carries the storefront access key on every store-api call.
const SalesChannelHeader = "X-Sales-Channel-Key"

type channelResolver interface {
	Resolve(ctx context.Context, accessKey string) (*models.SalesChannel, error)
}

// SalesChannel resolves the access key header into a sales channel and seeds
// the request context. Requests without a valid key never reach the handler.
func SalesChannel(resolver channelResolver, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			accessKey := strings.TrimSpace(r.Header.Get(SalesChannelHeader))

			channel, err := resolver.Resolve(r.Context(), accessKey)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}

			ctx := WithSalesChannelID(r.Context(), channel.ID)
			if logg != nil {
				ctx = logg.WithSalesChannelID(ctx, channel.ID.String())
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
