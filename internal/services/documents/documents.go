// Package documents generates resumes and cover letters from the member's
// profile, renders them through text templates, and records each artifact.
package documents

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/vietddude/linkedin-mcp/internal/core/domain"
	"github.com/vietddude/linkedin-mcp/internal/infra/storage"
	"github.com/vietddude/linkedin-mcp/internal/metrics"
)

// ProfileProvider fetches the member profile the documents are built from.
type ProfileProvider interface {
	GetProfile(ctx context.Context, profileID string) (*domain.Profile, error)
}

// JobProvider fetches the job posting that tailoring targets.
type JobProvider interface {
	GetDetails(ctx context.Context, jobID string) (*domain.JobDetails, error)
}

// Service renders documents and persists their metadata.
type Service struct {
	profiles ProfileProvider
	jobs     JobProvider
	repo     storage.DocumentRepository
	renderer *Renderer
	dataDir  string
	log      *slog.Logger
}

// NewService creates the documents service. Artifacts are written under
// dataDir; templates are resolved from templateDir.
func NewService(profiles ProfileProvider, jobs JobProvider, repo storage.DocumentRepository, dataDir, templateDir string, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		profiles: profiles,
		jobs:     jobs,
		repo:     repo,
		renderer: NewRenderer(templateDir),
		dataDir:  dataDir,
		log:      log,
	}
}

// GenerateResume renders a resume for profileID using the named template.
func (s *Service) GenerateResume(ctx context.Context, profileID, template, format string) (*domain.Document, error) {
	return s.generate(ctx, domain.DocumentResume, profileID, "", template, format)
}

// TailorResume renders a resume for profileID shaped toward the given job:
// skills and experience matching the posting are surfaced first.
func (s *Service) TailorResume(ctx context.Context, profileID, jobID, template, format string) (*domain.Document, error) {
	return s.generate(ctx, domain.DocumentResume, profileID, jobID, template, format)
}

// GenerateCoverLetter renders a cover letter addressed to the given job.
func (s *Service) GenerateCoverLetter(ctx context.Context, profileID, jobID, template, format string) (*domain.Document, error) {
	return s.generate(ctx, domain.DocumentCoverLetter, profileID, jobID, template, format)
}

// GetDocument returns the metadata record for one generated document.
func (s *Service) GetDocument(ctx context.Context, documentID string) (*domain.Document, error) {
	return s.repo.GetByID(ctx, documentID)
}

// ListDocuments returns all documents generated for a profile, newest first.
func (s *Service) ListDocuments(ctx context.Context, profileID string) ([]*domain.Document, error) {
	return s.repo.ListByProfile(ctx, profileID)
}

func (s *Service) generate(ctx context.Context, kind domain.DocumentKind, profileID, jobID, template, format string) (*domain.Document, error) {
	if template == "" {
		template = "standard"
	}
	if format == "" {
		format = "txt"
	}
	if !supportedFormat(format) {
		return nil, &domain.ValidationError{
			Field:   "format",
			Message: fmt.Sprintf("unsupported format %q (supported: txt, md, html)", format),
		}
	}

	p, err := s.profiles.GetProfile(ctx, profileID)
	if err != nil {
		return nil, fmt.Errorf("fetch profile: %w", err)
	}

	var job *domain.JobDetails
	if jobID != "" {
		job, err = s.jobs.GetDetails(ctx, jobID)
		if err != nil {
			return nil, fmt.Errorf("fetch job: %w", err)
		}
	}

	content, err := s.renderer.Render(kind, template, format, p, job)
	if err != nil {
		return nil, err
	}

	doc := &domain.Document{
		DocumentID: uuid.NewString(),
		Kind:       kind,
		ProfileID:  profileID,
		JobID:      jobID,
		Template:   template,
		Format:     format,
		CreatedAt:  time.Now().UTC(),
	}
	doc.Path = filepath.Join(s.dataDir, string(kind), fmt.Sprintf("%s.%s", doc.DocumentID, format))

	if err := os.MkdirAll(filepath.Dir(doc.Path), 0o755); err != nil {
		return nil, fmt.Errorf("create document dir: %w", err)
	}
	if err := os.WriteFile(doc.Path, content, 0o644); err != nil {
		return nil, fmt.Errorf("write document: %w", err)
	}

	if err := s.repo.Save(ctx, doc); err != nil {
		return nil, fmt.Errorf("save document record: %w", err)
	}

	metrics.DocumentsGenerated.WithLabelValues(string(kind), format).Inc()
	s.log.Info("document generated",
		"document_id", doc.DocumentID, "kind", kind, "profile_id", profileID, "format", format)
	return doc, nil
}

func supportedFormat(format string) bool {
	switch format {
	case "txt", "md", "html":
		return true
	}
	return false
}
