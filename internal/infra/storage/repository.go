// Package storage defines the persistence contracts for application
// records and generated document metadata. PostgreSQL backs production;
// the memory implementation serves tests and DB-less runs.
package storage

import (
	"context"
	"errors"

	"github.com/vietddude/linkedin-mcp/internal/core/domain"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("record not found")

// ApplicationRepository persists job applications.
type ApplicationRepository interface {
	Save(ctx context.Context, app *domain.Application) error
	GetByID(ctx context.Context, applicationID string) (*domain.Application, error)
	UpdateStatus(ctx context.Context, applicationID string, status domain.ApplicationStatus) error
	ListByJob(ctx context.Context, jobID string) ([]*domain.Application, error)
}

// DocumentRepository persists metadata for generated resumes and cover letters.
type DocumentRepository interface {
	Save(ctx context.Context, doc *domain.Document) error
	GetByID(ctx context.Context, documentID string) (*domain.Document, error)
	ListByProfile(ctx context.Context, profileID string) ([]*domain.Document, error)
}
