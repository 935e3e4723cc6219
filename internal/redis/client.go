package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

type Client struct {
	rdb *redis.Client
}

// SessionData is the state of an in-progress bot conversation, keyed by the
// user who started it. The !order flow stores the numbered product menu the
// user was shown so their reply can be resolved against the same listing.
type SessionData struct {
	UserID    string                 `json:"user_id"`
	UserName  string                 `json:"user_name"`
	ChannelID string                 `json:"channel_id"`
	Command   string                 `json:"command"`
	Step      int                    `json:"step"`
	Data      map[string]interface{} `json:"data"`
	CreatedAt time.Time              `json:"created_at"`
	UpdatedAt time.Time              `json:"updated_at"`
}

// MenuEntry maps a display index from the product listing back to a product.
type MenuEntry struct {
	Index     int    `json:"index"`
	ProductID uint   `json:"product_id"`
	Name      string `json:"name"`
}

func Initialize(redisURL string) (*Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	rdb := redis.NewClient(opt)

	// Test connection
	ctx := context.Background()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Client{rdb: rdb}, nil
}

// Session management
func (c *Client) SetSession(sessionID string, data *SessionData, ttl time.Duration) error {
	ctx := context.Background()
	jsonData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal session data: %w", err)
	}

	return c.rdb.Set(ctx, "session:"+sessionID, jsonData, ttl).Err()
}

func (c *Client) GetSession(sessionID string) (*SessionData, error) {
	ctx := context.Background()
	val, err := c.rdb.Get(ctx, "session:"+sessionID).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, fmt.Errorf("session not found")
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var session SessionData
	if err := json.Unmarshal([]byte(val), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session data: %w", err)
	}

	return &session, nil
}

func (c *Client) DeleteSession(sessionID string) error {
	ctx := context.Background()
	return c.rdb.Del(ctx, "session:"+sessionID).Err()
}

// Product menu caching for the interactive order flow
func (c *Client) SetProductMenu(userID string, menu []MenuEntry, ttl time.Duration) error {
	ctx := context.Background()
	jsonData, err := json.Marshal(menu)
	if err != nil {
		return fmt.Errorf("failed to marshal product menu: %w", err)
	}

	return c.rdb.Set(ctx, "menu:"+userID, jsonData, ttl).Err()
}

func (c *Client) GetProductMenu(userID string) ([]MenuEntry, error) {
	ctx := context.Background()
	val, err := c.rdb.Get(ctx, "menu:"+userID).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, fmt.Errorf("product menu not found")
		}
		return nil, fmt.Errorf("failed to get product menu: %w", err)
	}

	var menu []MenuEntry
	if err := json.Unmarshal([]byte(val), &menu); err != nil {
		return nil, fmt.Errorf("failed to unmarshal product menu: %w", err)
	}

	return menu, nil
}

func (c *Client) DeleteProductMenu(userID string) error {
	ctx := context.Background()
	return c.rdb.Del(ctx, "menu:"+userID).Err()
}

// Close Redis connection
func (c *Client) Close() error {
	return c.rdb.Close()
}
