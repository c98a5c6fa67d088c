// Package applications submits job applications through the LinkedIn
// client and records them for later status lookups.
package applications

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/vietddude/linkedin-mcp/internal/core/domain"
	"github.com/vietddude/linkedin-mcp/internal/infra/storage"
)

// LinkedInClient is the slice of the LinkedIn client this service needs.
type LinkedInClient interface {
	GetJobDetails(ctx context.Context, jobID string) (*domain.JobDetails, error)
	SubmitApplication(ctx context.Context, jobID, resumePath, coverLetterPath string) error
}

// Service implements applyToJob and getApplicationStatus.
type Service struct {
	client LinkedInClient
	docs   storage.DocumentRepository
	apps   storage.ApplicationRepository
	log    *slog.Logger
}

// NewService creates the applications service.
func NewService(client LinkedInClient, docs storage.DocumentRepository, apps storage.ApplicationRepository, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{client: client, docs: docs, apps: apps, log: log}
}

// Apply submits an application for jobID using a previously generated
// resume (and, optionally, cover letter). The referenced documents must
// exist; the job must be fetchable so the record carries title and company.
func (s *Service) Apply(ctx context.Context, jobID, resumeID, coverLetterID string) (*domain.Application, error) {
	resume, err := s.docs.GetByID(ctx, resumeID)
	if err != nil {
		return nil, fmt.Errorf("resolve resume %s: %w", resumeID, err)
	}
	if resume.Kind != domain.DocumentResume {
		return nil, &domain.ValidationError{
			Field:   "resumeId",
			Message: fmt.Sprintf("document %s is a %s, not a resume", resumeID, resume.Kind),
		}
	}

	var coverLetterPath string
	if coverLetterID != "" {
		letter, err := s.docs.GetByID(ctx, coverLetterID)
		if err != nil {
			return nil, fmt.Errorf("resolve cover letter %s: %w", coverLetterID, err)
		}
		if letter.Kind != domain.DocumentCoverLetter {
			return nil, &domain.ValidationError{
				Field:   "coverLetterId",
				Message: fmt.Sprintf("document %s is a %s, not a cover letter", coverLetterID, letter.Kind),
			}
		}
		coverLetterPath = letter.Path
	}

	jd, err := s.client.GetJobDetails(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("fetch job %s: %w", jobID, err)
	}

	if err := s.client.SubmitApplication(ctx, jobID, resume.Path, coverLetterPath); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	app := &domain.Application{
		ApplicationID: uuid.NewString(),
		JobID:         jobID,
		JobTitle:      jd.Title,
		Company:       jd.Company,
		ResumeID:      resumeID,
		CoverLetterID: coverLetterID,
		Status:        domain.ApplicationSubmitted,
		SubmittedAt:   now,
		UpdatedAt:     now,
	}
	if err := s.apps.Save(ctx, app); err != nil {
		// The application went out; only the local record is lost.
		s.log.Error("failed to record submitted application",
			"application_id", app.ApplicationID, "job_id", jobID, "error", err)
		return app, nil
	}

	s.log.Info("application submitted",
		"application_id", app.ApplicationID, "job_id", jobID, "company", jd.Company)
	return app, nil
}

// Status returns the recorded state of one application.
func (s *Service) Status(ctx context.Context, applicationID string) (*domain.Application, error) {
	return s.apps.GetByID(ctx, applicationID)
}

// ListForJob returns all recorded applications for a job, newest first.
func (s *Service) ListForJob(ctx context.Context, jobID string) ([]*domain.Application, error) {
	return s.apps.ListByJob(ctx, jobID)
}
