package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrDisabled is returned by writes on a nil or unconfigured Client.
var ErrDisabled = errors.New("cache disabled")

// Client wraps redis.Client and degrades to a permanent cache miss when Redis
// is unreachable. A nil *Client is valid and behaves the same way.
type Client struct {
	rdb *redis.Client
}

// New creates a new Redis-backed client.
func New(addr, password string, db int) *Client {
	return &Client{rdb: redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})}
}

// Ping reports whether Redis answers.
func (c *Client) Ping(ctx context.Context) error {
	if c == nil || c.rdb == nil {
		return ErrDisabled
	}
	return c.rdb.Ping(ctx).Err()
}

// Get returns the raw value, or nil on miss or when Redis is unavailable.
func (c *Client) Get(ctx context.Context, key string) []byte {
	if c == nil || c.rdb == nil {
		return nil
	}
	res, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return nil
	}
	return res
}

// Set stores value with TTL.
func (c *Client) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if c == nil || c.rdb == nil {
		return ErrDisabled
	}
	return c.rdb.Set(ctx, key, value, ttl).Err()
}

// Delete removes keys. Deleting from a disabled cache is a no-op.
func (c *Client) Delete(ctx context.Context, keys ...string) error {
	if c == nil || c.rdb == nil || len(keys) == 0 {
		return nil
	}
	return c.rdb.Del(ctx, keys...).Err()
}

// GetJSON decodes a cached JSON value into dst and reports whether it was found.
func (c *Client) GetJSON(ctx context.Context, key string, dst interface{}) bool {
	data := c.Get(ctx, key)
	if data == nil {
		return false
	}
	return json.Unmarshal(data, dst) == nil
}

// SetJSON encodes v as JSON and caches it. Failures only cost a future miss
// and are dropped.
func (c *Client) SetJSON(ctx context.Context, key string, v interface{}, ttl time.Duration) {
	payload, err := json.Marshal(v)
	if err != nil {
		return
	}
	_ = c.Set(ctx, key, payload, ttl)
}

// Close releases the underlying connection pool.
func (c *Client) Close() error {
	if c == nil || c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}
