package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/vietddude/linkedin-mcp/internal/core/domain"
	"github.com/vietddude/linkedin-mcp/internal/infra/storage"
)

// ApplicationRepo implements storage.ApplicationRepository using PostgreSQL.
type ApplicationRepo struct {
	db *DB
}

// NewApplicationRepo creates a new PostgreSQL application repository.
func NewApplicationRepo(db *DB) *ApplicationRepo {
	return &ApplicationRepo{db: db}
}

type applicationRow struct {
	ApplicationID string    `db:"application_id"`
	JobID         string    `db:"job_id"`
	JobTitle      string    `db:"job_title"`
	Company       string    `db:"company"`
	ResumeID      string    `db:"resume_id"`
	CoverLetterID string    `db:"cover_letter_id"`
	Status        string    `db:"status"`
	SubmittedAt   time.Time `db:"submitted_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

func (r applicationRow) toDomain() *domain.Application {
	return &domain.Application{
		ApplicationID: r.ApplicationID,
		JobID:         r.JobID,
		JobTitle:      r.JobTitle,
		Company:       r.Company,
		ResumeID:      r.ResumeID,
		CoverLetterID: r.CoverLetterID,
		Status:        domain.ApplicationStatus(r.Status),
		SubmittedAt:   r.SubmittedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

// Save inserts an application record.
func (r *ApplicationRepo) Save(ctx context.Context, app *domain.Application) error {
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO applications (
			application_id, job_id, job_title, company,
			resume_id, cover_letter_id, status, submitted_at, updated_at
		) VALUES (
			:application_id, :job_id, :job_title, :company,
			:resume_id, :cover_letter_id, :status, :submitted_at, :updated_at
		)`,
		applicationRow{
			ApplicationID: app.ApplicationID,
			JobID:         app.JobID,
			JobTitle:      app.JobTitle,
			Company:       app.Company,
			ResumeID:      app.ResumeID,
			CoverLetterID: app.CoverLetterID,
			Status:        string(app.Status),
			SubmittedAt:   app.SubmittedAt,
			UpdatedAt:     app.UpdatedAt,
		})
	if err != nil {
		return fmt.Errorf("failed to save application: %w", err)
	}
	return nil
}

// GetByID retrieves an application by ID.
func (r *ApplicationRepo) GetByID(ctx context.Context, applicationID string) (*domain.Application, error) {
	var row applicationRow
	err := r.db.GetContext(ctx, &row,
		`SELECT * FROM applications WHERE application_id = $1`, applicationID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get application: %w", err)
	}
	return row.toDomain(), nil
}

// UpdateStatus moves an application to a new status.
func (r *ApplicationRepo) UpdateStatus(ctx context.Context, applicationID string, status domain.ApplicationStatus) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE applications SET status = $1, updated_at = NOW() WHERE application_id = $2`,
		string(status), applicationID)
	if err != nil {
		return fmt.Errorf("failed to update application status: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// ListByJob returns all applications for one job.
func (r *ApplicationRepo) ListByJob(ctx context.Context, jobID string) ([]*domain.Application, error) {
	var rows []applicationRow
	err := r.db.SelectContext(ctx, &rows,
		`SELECT * FROM applications WHERE job_id = $1 ORDER BY submitted_at DESC`, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}

	apps := make([]*domain.Application, 0, len(rows))
	for _, row := range rows {
		apps = append(apps, row.toDomain())
	}
	return apps, nil
}
