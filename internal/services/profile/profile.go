// Package profile serves member profiles, company pages, and the feed,
// with a read-through cache in front of the LinkedIn client.
package profile

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/vietddude/linkedin-mcp/internal/core/domain"
	redisclient "github.com/vietddude/linkedin-mcp/internal/infra/redis"
)

// LinkedInClient is the slice of the LinkedIn client this service needs.
type LinkedInClient interface {
	GetProfile(ctx context.Context, profileID string) (*domain.Profile, error)
	GetCompany(ctx context.Context, companyID string) (*domain.Company, error)
	GetFeed(ctx context.Context, count int, feedType string) ([]domain.FeedItem, error)
}

// Cache is the profile/company cache contract.
type Cache interface {
	CacheProfile(ctx context.Context, p *domain.Profile, ttl time.Duration) error
	GetCachedProfile(ctx context.Context, profileID string) (*domain.Profile, error)
	CacheCompany(ctx context.Context, co *domain.Company, ttl time.Duration) error
	GetCachedCompany(ctx context.Context, companyID string) (*domain.Company, error)
}

// Service implements getProfile, getCompany, and getFeed.
type Service struct {
	client LinkedInClient
	cache  Cache
	ttl    time.Duration
	log    *slog.Logger
}

// NewService creates the profile service. cache may be nil to disable caching.
func NewService(client LinkedInClient, cache Cache, ttl time.Duration, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{client: client, cache: cache, ttl: ttl, log: log}
}

// GetProfile returns a member profile, served from cache when fresh.
func (s *Service) GetProfile(ctx context.Context, profileID string) (*domain.Profile, error) {
	if s.cache != nil {
		cached, err := s.cache.GetCachedProfile(ctx, profileID)
		if err == nil {
			s.log.Debug("profile cache hit", "profile_id", profileID)
			return cached, nil
		}
		if !errors.Is(err, redisclient.ErrNotFound) {
			s.log.Warn("profile cache lookup failed", "profile_id", profileID, "error", err)
		}
	}

	p, err := s.client.GetProfile(ctx, profileID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.CacheProfile(ctx, p, s.ttl); err != nil {
			s.log.Warn("failed to cache profile", "profile_id", profileID, "error", err)
		}
	}
	return p, nil
}

// GetCompany returns a company page, served from cache when fresh.
func (s *Service) GetCompany(ctx context.Context, companyID string) (*domain.Company, error) {
	if s.cache != nil {
		cached, err := s.cache.GetCachedCompany(ctx, companyID)
		if err == nil {
			s.log.Debug("company cache hit", "company_id", companyID)
			return cached, nil
		}
		if !errors.Is(err, redisclient.ErrNotFound) {
			s.log.Warn("company cache lookup failed", "company_id", companyID, "error", err)
		}
	}

	co, err := s.client.GetCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.CacheCompany(ctx, co, s.ttl); err != nil {
			s.log.Warn("failed to cache company", "company_id", companyID, "error", err)
		}
	}
	return co, nil
}

// GetFeed returns up to count feed items. The feed is never cached; it is
// stale the moment it is fetched.
func (s *Service) GetFeed(ctx context.Context, count int, feedType string) ([]domain.FeedItem, error) {
	if count <= 0 {
		count = 10
	}
	if feedType == "" {
		feedType = "general"
	}
	return s.client.GetFeed(ctx, count, feedType)
}
