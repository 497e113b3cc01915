package middleware

import (
	"context"
	"net/http"

	"github.com/dmancera/shopstream-backend/api/responses"
	"github.com/dmancera/shopstream-backend/api/validators"
	pkgauth "github.com/dmancera/shopstream-backend/pkg/auth"
	"github.com/dmancera/shopstream-backend/pkg/auth/session"
	"github.com/dmancera/shopstream-backend/pkg/config"
	pkgerrors "github.com/dmancera/shopstream-backend/pkg/errors"
	"github.com/dmancera/shopstream-backend/pkg/logger"
)

// CustomerSession validates a bearer token and seeds the context with the
// customer. The token must belong to the request's sales channel.
func CustomerSession(cfg config.JWTConfig, verifier session.AccessSessionChecker, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, err := seedCustomer(r, cfg, verifier, logg)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalCustomerSession seeds the customer when a bearer token is present
// and lets anonymous requests through untouched. A token that is present but
// invalid is still rejected. Handlers decide whether a customer is required.
func OptionalCustomerSession(cfg config.JWTConfig, verifier session.AccessSessionChecker, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if validators.BearerToken(r) == "" {
				next.ServeHTTP(w, r)
				return
			}
			ctx, err := seedCustomer(r, cfg, verifier, logg)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func seedCustomer(r *http.Request, cfg config.JWTConfig, verifier session.AccessSessionChecker, logg *logger.Logger) (context.Context, error) {
	token := validators.BearerToken(r)
	if token == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials")
	}

	claims, err := pkgauth.ParseAccessToken(cfg, token)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token")
	}
	if claims.ID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing session id")
	}

	if channelID, ok := SalesChannelIDFromContext(r.Context()); ok && channelID != claims.SalesChannelID {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "token does not belong to this sales channel")
	}

	if verifier != nil {
		ok, err := verifier.HasSession(r.Context(), claims.ID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "validate session")
		}
		if !ok {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "session unavailable")
		}
	}

	ctx := WithCustomerID(r.Context(), claims.CustomerID)
	ctx = WithAccessID(ctx, claims.ID)
	if logg != nil {
		ctx = logg.WithCustomerID(ctx, claims.CustomerID.String())
	}
	return ctx, nil
}
