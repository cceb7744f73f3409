package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"typedterm/internal/system"
)

// Redis stores entries in a shared Redis so several web servers reuse each
// other's highlighting. Errors are logged and treated as misses.
type Redis struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// RedisOptions configures NewRedis.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
	TTL      time.Duration
}

// NewRedis connects to addr and pings it.
func NewRedis(ctx context.Context, opts RedisOptions) (*Redis, error) {
	if opts.Addr == "" {
		return nil, errors.New("redis address is empty")
	}
	if opts.Prefix == "" {
		opts.Prefix = "typedterm:hl:"
	}
	if opts.TTL <= 0 {
		opts.TTL = 24 * time.Hour
	}
	c := redis.NewClient(&redis.Options{Addr: opts.Addr, Password: opts.Password, DB: opts.DB})
	if err := c.Ping(ctx).Err(); err != nil {
		_ = c.Close()
		return nil, err
	}
	return &Redis{client: c, prefix: opts.Prefix, ttl: opts.TTL}, nil
}

func (r *Redis) Get(ctx context.Context, key string) (string, bool) {
	v, err := r.client.Get(ctx, r.prefix+key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			system.Logger.Debug("redis cache get failed", "err", err)
		}
		return "", false
	}
	return v, true
}

func (r *Redis) Set(ctx context.Context, key, val string) {
	if err := r.client.Set(ctx, r.prefix+key, val, r.ttl).Err(); err != nil {
		system.Logger.Debug("redis cache set failed", "err", err)
	}
}

// Close releases the connection pool.
func (r *Redis) Close() error { return r.client.Close() }
