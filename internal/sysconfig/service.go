package sysconfig

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dmancera/shopstream-backend/pkg/logger"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ConfigKeyWishlistEnabled toggles the storefront wishlist per sales channel.
const ConfigKeyWishlistEnabled = "storefront.wishlist.enabled"

// cacheMissSentinel marks keys with no config row so absence is cached too.
const cacheMissSentinel = "__absent__"

// Service resolves configuration values with a redis read-through cache.
// Channel-scoped values shadow the global fallback.
type Service interface {
	Bool(ctx context.Context, key string, salesChannelID uuid.UUID) (bool, error)
}

type lookupStore interface {
	Lookup(ctx context.Context, key string, salesChannelID uuid.UUID) (string, bool, error)
}

type cacheStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	SysConfigKey(configKey, salesChannelID string) string
}

type service struct {
	repo  lookupStore
	cache cacheStore
	ttl   time.Duration
	logg  *logger.Logger
}

// ServiceParams bundles the dependencies required to build a config service.
type ServiceParams struct {
	Repo     lookupStore
	Cache    cacheStore
	CacheTTL time.Duration
	Logger   *logger.Logger
}

// NewService constructs a config service. Cache may be nil; lookups then
// always hit the database.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("system config repository is required")
	}
	if params.CacheTTL <= 0 {
		params.CacheTTL = 5 * time.Minute
	}
	return &service{
		repo:  params.Repo,
		cache: params.Cache,
		ttl:   params.CacheTTL,
		logg:  params.Logger,
	}, nil
}

// Bool resolves key to a boolean. A missing row and a JSON null both read as
// false; a malformed value also reads as false rather than failing the
// request.
func (s *service) Bool(ctx context.Context, key string, salesChannelID uuid.UUID) (bool, error) {
	raw, found, err := s.resolve(ctx, key, salesChannelID)
	if err != nil {
		return false, err
	}
	if !found {
		return false, nil
	}

	var value bool
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		if s.logg != nil {
			s.logg.Warn(s.logg.WithFields(ctx, map[string]any{
				"config_key": key,
				"value":      raw,
			}), "non-boolean system config value")
		}
		return false, nil
	}
	return value, nil
}

func (s *service) resolve(ctx context.Context, key string, salesChannelID uuid.UUID) (string, bool, error) {
	cacheKey := ""
	if s.cache != nil {
		cacheKey = s.cache.SysConfigKey(key, salesChannelID.String())
		cached, err := s.cache.Get(ctx, cacheKey)
		if err == nil {
			if cached == cacheMissSentinel {
				return "", false, nil
			}
			return cached, true, nil
		}
		if !errors.Is(err, redis.Nil) && s.logg != nil {
			s.logg.Warn(s.logg.WithField(ctx, "config_key", key), "system config cache read failed")
		}
	}

	raw, found, err := s.repo.Lookup(ctx, key, salesChannelID)
	if err != nil {
		return "", false, err
	}

	if s.cache != nil {
		stored := raw
		if !found {
			stored = cacheMissSentinel
		}
		if err := s.cache.Set(ctx, cacheKey, stored, s.ttl); err != nil && s.logg != nil {
			s.logg.Warn(s.logg.WithField(ctx, "config_key", key), "system config cache write failed")
		}
	}
	return raw, found, nil
}
