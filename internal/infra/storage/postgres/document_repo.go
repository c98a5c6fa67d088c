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

// DocumentRepo implements storage.DocumentRepository using PostgreSQL.
type DocumentRepo struct {
	db *DB
}

// NewDocumentRepo creates a new PostgreSQL document repository.
func NewDocumentRepo(db *DB) *DocumentRepo {
	return &DocumentRepo{db: db}
}

type documentRow struct {
	DocumentID string    `db:"document_id"`
	Kind       string    `db:"kind"`
	ProfileID  string    `db:"profile_id"`
	JobID      string    `db:"job_id"`
	Template   string    `db:"template"`
	Format     string    `db:"format"`
	Path       string    `db:"path"`
	CreatedAt  time.Time `db:"created_at"`
}

func (r documentRow) toDomain() *domain.Document {
	return &domain.Document{
		DocumentID: r.DocumentID,
		Kind:       domain.DocumentKind(r.Kind),
		ProfileID:  r.ProfileID,
		JobID:      r.JobID,
		Template:   r.Template,
		Format:     r.Format,
		Path:       r.Path,
		CreatedAt:  r.CreatedAt,
	}
}

// Save inserts a document metadata record.
func (r *DocumentRepo) Save(ctx context.Context, doc *domain.Document) error {
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO documents (
			document_id, kind, profile_id, job_id, template, format, path, created_at
		) VALUES (
			:document_id, :kind, :profile_id, :job_id, :template, :format, :path, :created_at
		)`,
		documentRow{
			DocumentID: doc.DocumentID,
			Kind:       string(doc.Kind),
			ProfileID:  doc.ProfileID,
			JobID:      doc.JobID,
			Template:   doc.Template,
			Format:     doc.Format,
			Path:       doc.Path,
			CreatedAt:  doc.CreatedAt,
		})
	if err != nil {
		return fmt.Errorf("failed to save document: %w", err)
	}
	return nil
}

// GetByID retrieves document metadata by ID.
func (r *DocumentRepo) GetByID(ctx context.Context, documentID string) (*domain.Document, error) {
	var row documentRow
	err := r.db.GetContext(ctx, &row,
		`SELECT * FROM documents WHERE document_id = $1`, documentID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get document: %w", err)
	}
	return row.toDomain(), nil
}

// ListByProfile returns all documents generated for one profile.
func (r *DocumentRepo) ListByProfile(ctx context.Context, profileID string) ([]*domain.Document, error) {
	var rows []documentRow
	err := r.db.SelectContext(ctx, &rows,
		`SELECT * FROM documents WHERE profile_id = $1 ORDER BY created_at DESC`, profileID)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}

	docs := make([]*domain.Document, 0, len(rows))
	for _, row := range rows {
		docs = append(docs, row.toDomain())
	}
	return docs, nil
}
