package rdx

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrNotFound is returned by Get when the key does not exist.
var ErrNotFound = errors.New("rdx: key not found")

// Client wraps the go-redis client with the few operations the service uses.
type Client struct {
	Conn *redis.Client
}

// Connect creates a Redis client and pings it.
func Connect(ctx context.Context, addr, password string, db int) (*Client, error) {
	conn := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password, // Empty if no password
		DB:       db,
	})
	if err := conn.Ping(ctx).Err(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("rdx: ping %s: %w", addr, err)
	}
	return &Client{Conn: conn}, nil
}

// SetWithExpiry stores value under key for ttl.
func (c *Client) SetWithExpiry(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := c.Conn.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("rdx: set %s: %w", key, err)
	}
	return nil
}

func (c *Client) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := c.Conn.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("rdx: get %s: %w", key, err)
	}
	return val, nil
}

func (c *Client) Exists(ctx context.Context, key string) (bool, error) {
	n, err := c.Conn.Exists(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("rdx: exists %s: %w", key, err)
	}
	return n > 0, nil
}

func (c *Client) Publish(ctx context.Context, channel string, payload []byte) error {
	if err := c.Conn.Publish(ctx, channel, payload).Err(); err != nil {
		return fmt.Errorf("rdx: publish %s: %w", channel, err)
	}
	return nil
}

func (c *Client) Close() error {
	return c.Conn.Close()
}
