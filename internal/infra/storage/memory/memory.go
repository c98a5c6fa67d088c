// Package memory provides in-memory repository implementations for tests
// and DB-less runs.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/vietddude/linkedin-mcp/internal/core/domain"
	"github.com/vietddude/linkedin-mcp/internal/infra/storage"
)

type MemoryStorage struct {
	applications map[string]*domain.Application
	documents    map[string]*domain.Document
	mu           sync.RWMutex
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		applications: make(map[string]*domain.Application),
		documents:    make(map[string]*domain.Document),
	}
}

// -----------------------------------------------------------------------------
// Application Repository
// -----------------------------------------------------------------------------

type ApplicationRepo struct {
	store *MemoryStorage
}

func NewApplicationRepo(store *MemoryStorage) *ApplicationRepo {
	return &ApplicationRepo{store: store}
}

func (r *ApplicationRepo) Save(ctx context.Context, app *domain.Application) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	a := *app
	r.store.applications[app.ApplicationID] = &a
	return nil
}

func (r *ApplicationRepo) GetByID(ctx context.Context, applicationID string) (*domain.Application, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	app, ok := r.store.applications[applicationID]
	if !ok {
		return nil, storage.ErrNotFound
	}
	a := *app
	return &a, nil
}

func (r *ApplicationRepo) UpdateStatus(ctx context.Context, applicationID string, status domain.ApplicationStatus) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	app, ok := r.store.applications[applicationID]
	if !ok {
		return storage.ErrNotFound
	}
	app.Status = status
	app.UpdatedAt = time.Now()
	return nil
}

func (r *ApplicationRepo) ListByJob(ctx context.Context, jobID string) ([]*domain.Application, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var apps []*domain.Application
	for _, app := range r.store.applications {
		if app.JobID == jobID {
			a := *app
			apps = append(apps, &a)
		}
	}
	sort.Slice(apps, func(i, j int) bool {
		return apps[i].SubmittedAt.After(apps[j].SubmittedAt)
	})
	return apps, nil
}

// -----------------------------------------------------------------------------
// Document Repository
// -----------------------------------------------------------------------------

type DocumentRepo struct {
	store *MemoryStorage
}

func NewDocumentRepo(store *MemoryStorage) *DocumentRepo {
	return &DocumentRepo{store: store}
}

func (r *DocumentRepo) Save(ctx context.Context, doc *domain.Document) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	d := *doc
	r.store.documents[doc.DocumentID] = &d
	return nil
}

func (r *DocumentRepo) GetByID(ctx context.Context, documentID string) (*domain.Document, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	doc, ok := r.store.documents[documentID]
	if !ok {
		return nil, storage.ErrNotFound
	}
	d := *doc
	return &d, nil
}

func (r *DocumentRepo) ListByProfile(ctx context.Context, profileID string) ([]*domain.Document, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var docs []*domain.Document
	for _, doc := range r.store.documents {
		if doc.ProfileID == profileID {
			d := *doc
			docs = append(docs, &d)
		}
	}
	sort.Slice(docs, func(i, j int) bool {
		return docs[i].CreatedAt.After(docs[j].CreatedAt)
	})
	return docs, nil
}
