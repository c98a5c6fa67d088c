// Package redis backs the router's mutable collaborator state: LinkedIn
// sessions, profile/job caches, and the saved-jobs set.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vietddude/linkedin-mcp/internal/core/domain"
)

// ErrNotFound is returned when a key is absent or expired.
var ErrNotFound = errors.New("not found in redis")

// Client wraps Redis operations for sessions and caches.
type Client struct {
	rdb *redis.Client
}

// Config holds Redis connection configuration.
type Config struct {
	URL      string `yaml:"url"`
	Password string `yaml:"password"`
}

// NewClient creates a new Redis client.
func NewClient(cfg Config) (*Client, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}
	if cfg.Password != "" {
		opts.Password = cfg.Password
	}

	rdb := redis.NewClient(opts)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &Client{rdb: rdb}, nil
}

// Close closes the Redis connection.
func (c *Client) Close() error {
	return c.rdb.Close()
}

// Health checks the connection.
func (c *Client) Health(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

// Key helpers
func sessionKey(username string) string {
	return fmt.Sprintf("session:%s", username)
}

func profileKey(profileID string) string {
	return fmt.Sprintf("profile:%s", profileID)
}

func companyKey(companyID string) string {
	return fmt.Sprintf("company:%s", companyID)
}

func jobKey(jobID string) string {
	return fmt.Sprintf("job:%s", jobID)
}

// SaveSession stores a session with a TTL.
func (c *Client) SaveSession(ctx context.Context, s domain.SessionState, ttl time.Duration) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := c.rdb.Set(ctx, sessionKey(s.Username), data, ttl).Err(); err != nil {
		return fmt.Errorf("set failed: %w", err)
	}
	return nil
}

// GetSession restores a saved session for username.
func (c *Client) GetSession(ctx context.Context, username string) (domain.SessionState, error) {
	var s domain.SessionState
	data, err := c.rdb.Get(ctx, sessionKey(username)).Bytes()
	if err == redis.Nil {
		return s, ErrNotFound
	}
	if err != nil {
		return s, fmt.Errorf("get failed: %w", err)
	}
	if err := json.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("failed to decode session: %w", err)
	}
	return s, nil
}

// DeleteSession drops a saved session.
func (c *Client) DeleteSession(ctx context.Context, username string) error {
	return c.rdb.Del(ctx, sessionKey(username)).Err()
}

// CacheProfile stores a profile with a TTL.
func (c *Client) CacheProfile(ctx context.Context, p *domain.Profile, ttl time.Duration) error {
	return c.setJSON(ctx, profileKey(p.ProfileID), p, ttl)
}

// GetCachedProfile returns a cached profile, or ErrNotFound.
func (c *Client) GetCachedProfile(ctx context.Context, profileID string) (*domain.Profile, error) {
	var p domain.Profile
	if err := c.getJSON(ctx, profileKey(profileID), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// CacheCompany stores a company page with a TTL.
func (c *Client) CacheCompany(ctx context.Context, co *domain.Company, ttl time.Duration) error {
	return c.setJSON(ctx, companyKey(co.CompanyID), co, ttl)
}

// GetCachedCompany returns a cached company, or ErrNotFound.
func (c *Client) GetCachedCompany(ctx context.Context, companyID string) (*domain.Company, error) {
	var co domain.Company
	if err := c.getJSON(ctx, companyKey(companyID), &co); err != nil {
		return nil, err
	}
	return &co, nil
}

// CacheJob stores job details with a TTL.
func (c *Client) CacheJob(ctx context.Context, jd *domain.JobDetails, ttl time.Duration) error {
	return c.setJSON(ctx, jobKey(jd.JobID), jd, ttl)
}

// GetCachedJob returns cached job details, or ErrNotFound.
func (c *Client) GetCachedJob(ctx context.Context, jobID string) (*domain.JobDetails, error) {
	var jd domain.JobDetails
	if err := c.getJSON(ctx, jobKey(jobID), &jd); err != nil {
		return nil, err
	}
	return &jd, nil
}

func (c *Client) setJSON(ctx context.Context, key string, v any, ttl time.Duration) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := c.rdb.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("set %s failed: %w", key, err)
	}
	return nil
}

func (c *Client) getJSON(ctx context.Context, key string, v any) error {
	data, err := c.rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("get %s failed: %w", key, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return nil
}
