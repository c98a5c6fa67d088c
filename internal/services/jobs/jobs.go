// Package jobs serves job search, job details, recommendations, and
// saved-job management.
package jobs

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
	SearchJobs(ctx context.Context, filter domain.JobSearchFilter, page, count int) (*domain.JobSearchResult, error)
	GetJobDetails(ctx context.Context, jobID string) (*domain.JobDetails, error)
	GetRecommendedJobs(ctx context.Context, count int) ([]domain.JobDetails, error)
	SaveJob(ctx context.Context, jobID string) error
	GetSavedJobs(ctx context.Context, count int) ([]domain.JobDetails, error)
}

// Cache is the job-details cache contract.
type Cache interface {
	CacheJob(ctx context.Context, jd *domain.JobDetails, ttl time.Duration) error
	GetCachedJob(ctx context.Context, jobID string) (*domain.JobDetails, error)
}

// Service implements the job-related operations.
type Service struct {
	client LinkedInClient
	cache  Cache
	ttl    time.Duration
	log    *slog.Logger
}

// NewService creates the jobs service. cache may be nil to disable caching.
func NewService(client LinkedInClient, cache Cache, ttl time.Duration, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{client: client, cache: cache, ttl: ttl, log: log}
}

// Search runs a paginated job search and caches every result for later
// GetDetails lookups.
func (s *Service) Search(ctx context.Context, filter domain.JobSearchFilter, page, count int) (*domain.JobSearchResult, error) {
	if page <= 0 {
		page = 1
	}
	if count <= 0 {
		count = 20
	}

	result, err := s.client.SearchJobs(ctx, filter, page, count)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		for i := range result.Results {
			jd := result.Results[i]
			if err := s.cache.CacheJob(ctx, &jd, s.ttl); err != nil {
				s.log.Warn("failed to cache job", "job_id", jd.JobID, "error", err)
				break
			}
		}
	}
	return result, nil
}

// GetDetails returns one job posting, served from cache when fresh.
func (s *Service) GetDetails(ctx context.Context, jobID string) (*domain.JobDetails, error) {
	if s.cache != nil {
		cached, err := s.cache.GetCachedJob(ctx, jobID)
		if err == nil {
			s.log.Debug("job cache hit", "job_id", jobID)
			return cached, nil
		}
		if !errors.Is(err, redisclient.ErrNotFound) {
			s.log.Warn("job cache lookup failed", "job_id", jobID, "error", err)
		}
	}

	jd, err := s.client.GetJobDetails(ctx, jobID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.CacheJob(ctx, jd, s.ttl); err != nil {
			s.log.Warn("failed to cache job", "job_id", jobID, "error", err)
		}
	}
	return jd, nil
}

// Recommended returns up to count job recommendations.
func (s *Service) Recommended(ctx context.Context, count int) ([]domain.JobDetails, error) {
	if count <= 0 {
		count = 10
	}
	return s.client.GetRecommendedJobs(ctx, count)
}

// Save bookmarks a job.
func (s *Service) Save(ctx context.Context, jobID string) error {
	return s.client.SaveJob(ctx, jobID)
}

// Saved returns up to count bookmarked jobs.
func (s *Service) Saved(ctx context.Context, count int) ([]domain.JobDetails, error) {
	if count <= 0 {
		count = 10
	}
	return s.client.GetSavedJobs(ctx, count)
}
