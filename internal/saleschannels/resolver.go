package saleschannels

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dmancera/shopstream-backend/pkg/db/models"
	pkgerrors "github.com/dmancera/shopstream-backend/pkg/errors"
	"github.com/dmancera/shopstream-backend/pkg/logger"
	"github.com/redis/go-redis/v9"
)

// Resolver turns storefront access keys into sales channels, caching hits in
// redis so the lookup stays off the hot path.
type Resolver struct {
	repo  channelStore
	cache cacheStore
	ttl   time.Duration
	logg  *logger.Logger
}

type channelStore interface {
	FindByAccessKey(ctx context.Context, accessKey string) (*models.SalesChannel, error)
}

type cacheStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	SalesChannelKey(accessKey string) string
}

// ResolverParams bundles the dependencies required to build a resolver.
type ResolverParams struct {
	Repo     channelStore
	Cache    cacheStore
	CacheTTL time.Duration
	Logger   *logger.Logger
}

// NewResolver constructs a resolver. Cache may be nil.
func NewResolver(params ResolverParams) (*Resolver, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("sales channel repository is required")
	}
	if params.CacheTTL <= 0 {
		params.CacheTTL = 10 * time.Minute
	}
	return &Resolver{
		repo:  params.Repo,
		cache: params.Cache,
		ttl:   params.CacheTTL,
		logg:  params.Logger,
	}, nil
}

// Resolve maps an access key to its active sales channel. Unknown keys come
// back unauthorized; inactive channels come back forbidden.
func (r *Resolver) Resolve(ctx context.Context, accessKey string) (*models.SalesChannel, error) {
	if accessKey == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "sales channel access key is required")
	}

	if channel := r.cached(ctx, accessKey); channel != nil {
		return r.checkActive(channel)
	}

	channel, err := r.repo.FindByAccessKey(ctx, accessKey)
	if err != nil {
		return nil, err
	}

	if r.cache != nil {
		if encoded, err := json.Marshal(channel); err == nil {
			if err := r.cache.Set(ctx, r.cache.SalesChannelKey(accessKey), string(encoded), r.ttl); err != nil && r.logg != nil {
				r.logg.Warn(ctx, "sales channel cache write failed")
			}
		}
	}
	return r.checkActive(channel)
}

func (r *Resolver) cached(ctx context.Context, accessKey string) *models.SalesChannel {
	if r.cache == nil {
		return nil
	}
	raw, err := r.cache.Get(ctx, r.cache.SalesChannelKey(accessKey))
	if err != nil {
		if !errors.Is(err, redis.Nil) && r.logg != nil {
			r.logg.Warn(ctx, "sales channel cache read failed")
		}
		return nil
	}
	var channel models.SalesChannel
	if err := json.Unmarshal([]byte(raw), &channel); err != nil {
		return nil
	}
	return &channel
}

func (r *Resolver) checkActive(channel *models.SalesChannel) (*models.SalesChannel, error) {
	if !channel.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "sales channel is not active")
	}
	return channel, nil
}
