package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"cayyap-notifier/internal/domain/model"
	"cayyap-notifier/internal/domain/ports"
)

// DefaultTTL is used when no positive TTL is configured.
const DefaultTTL = time.Minute

const keyPrefix = "cayyap:directory:"

// client is the subset of redis.Cmdable used by the cache.
type client interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
}

// Directory caches token and info lookups of another directory in Redis.
// Redis failures fall through to the underlying directory.
type Directory struct {
	next   ports.Directory
	client client
	ttl    time.Duration
	logger ports.Logger
}

var _ ports.Directory = (*Directory)(nil)

// NewDirectory wraps next with a Redis read-through cache.
func NewDirectory(next ports.Directory, rdb redis.Cmdable, ttl time.Duration, logger ports.Logger) *Directory {
	return newDirectory(next, rdb, ttl, logger)
}

func newDirectory(next ports.Directory, c client, ttl time.Duration, logger ports.Logger) *Directory {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Directory{next: next, client: c, ttl: ttl, logger: logger}
}

type tokenEntry struct {
	Token string `json:"token"`
}

type infoEntry struct {
	DisplayName string `json:"displayName"`
	Affiliation string `json:"affiliation"`
}

// Token returns the cached device token, falling back to the wrapped directory.
func (d *Directory) Token(ctx context.Context, accountID string) (string, error) {
	key := keyPrefix + "token:" + accountID

	var cached tokenEntry
	if d.load(ctx, key, &cached) {
		return cached.Token, nil
	}

	token, err := d.next.Token(ctx, accountID)
	if err != nil {
		return "", err
	}
	// blank tokens are not cached so a freshly registered device is picked up
	if token != "" {
		d.store(ctx, key, tokenEntry{Token: token})
	}
	return token, nil
}

// Info returns cached account info, falling back to the wrapped directory.
func (d *Directory) Info(ctx context.Context, accountID string) (*model.AccountInfo, error) {
	key := keyPrefix + "info:" + accountID

	var cached infoEntry
	if d.load(ctx, key, &cached) {
		return &model.AccountInfo{DisplayName: cached.DisplayName, Affiliation: cached.Affiliation}, nil
	}

	info, err := d.next.Info(ctx, accountID)
	if err != nil || info == nil {
		return info, err
	}
	d.store(ctx, key, infoEntry{DisplayName: info.DisplayName, Affiliation: info.Affiliation})
	return info, nil
}

// ListStaff is not cached; staff membership changes must be visible on the next order.
func (d *Directory) ListStaff(ctx context.Context, businessID string) ([]model.StaffRecipient, error) {
	return d.next.ListStaff(ctx, businessID)
}

func (d *Directory) load(ctx context.Context, key string, dst any) bool {
	raw, err := d.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			d.logger.Warn(ctx, "directory cache read failed", "key", key, "error", err)
		}
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		d.logger.Warn(ctx, "directory cache entry corrupt", "key", key, "error", err)
		return false
	}
	return true
}

func (d *Directory) store(ctx context.Context, key string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := d.client.Set(ctx, key, raw, d.ttl).Err(); err != nil {
		d.logger.Warn(ctx, "directory cache write failed", "key", key, "error", err)
	}
}
