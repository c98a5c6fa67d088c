package documents

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vietddude/linkedin-mcp/internal/core/domain"
	"github.com/vietddude/linkedin-mcp/internal/infra/storage"
	"github.com/vietddude/linkedin-mcp/internal/infra/storage/memory"
)

type mockProfiles struct {
	profile *domain.Profile
	err     error
}

func (m *mockProfiles) GetProfile(ctx context.Context, profileID string) (*domain.Profile, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.profile, nil
}

type mockJobs struct {
	job *domain.JobDetails
}

func (m *mockJobs) GetDetails(ctx context.Context, jobID string) (*domain.JobDetails, error) {
	return m.job, nil
}

func testProfile() *domain.Profile {
	return &domain.Profile{
		ProfileID: "jane-doe",
		Name:      "Jane Doe",
		Headline:  "Backend Engineer",
		Summary:   "Eight years building distributed systems.",
		Location:  "Berlin",
		Skills:    []string{"Go", "PostgreSQL", "Kubernetes"},
		Experience: []domain.Experience{
			{Title: "Data Analyst", Company: "OldCo", StartDate: "2015"},
			{Title: "Backend Engineer", Company: "Acme", StartDate: "2018"},
		},
		Education: []domain.Education{
			{School: "TU Berlin", Degree: "BSc", Field: "CS", StartYear: "2011", EndYear: "2015"},
		},
	}
}

func testJob() *domain.JobDetails {
	return &domain.JobDetails{
		JobID:       "j1",
		Title:       "Senior Backend Engineer",
		Company:     "Acme",
		Location:    "Berlin",
		Description: "We need Go and PostgreSQL experience.",
	}
}

func newTestService(t *testing.T) (*Service, *memory.DocumentRepo) {
	t.Helper()
	repo := memory.NewDocumentRepo(memory.NewMemoryStorage())
	svc := NewService(
		&mockProfiles{profile: testProfile()},
		&mockJobs{job: testJob()},
		repo,
		t.TempDir(),
		templateDir(t),
		nil,
	)
	return svc, repo
}

// templateDir points tests at the repo's real templates.
func templateDir(t *testing.T) string {
	t.Helper()
	dir, err := filepath.Abs("../../../templates")
	if err != nil {
		t.Fatalf("resolve template dir: %v", err)
	}
	return dir
}

func TestGenerateResume(t *testing.T) {
	svc, _ := newTestService(t)

	doc, err := svc.GenerateResume(context.Background(), "jane-doe", "", "")
	if err != nil {
		t.Fatalf("GenerateResume failed: %v", err)
	}
	if doc.Kind != domain.DocumentResume || doc.Format != "txt" || doc.Template != "standard" {
		t.Errorf("unexpected document: %+v", doc)
	}
	if doc.DocumentID == "" {
		t.Error("document should get an ID")
	}

	content, err := os.ReadFile(doc.Path)
	if err != nil {
		t.Fatalf("artifact not written: %v", err)
	}
	text := string(content)
	if !strings.Contains(text, "JANE DOE") {
		t.Errorf("resume missing name header:\n%s", text)
	}
	if !strings.Contains(text, "Backend Engineer - Acme") {
		t.Errorf("resume missing experience entry:\n%s", text)
	}
}

func TestTailorResume_ReordersExperienceAndMatchesSkills(t *testing.T) {
	svc, _ := newTestService(t)

	doc, err := svc.TailorResume(context.Background(), "jane-doe", "j1", "standard", "txt")
	if err != nil {
		t.Fatalf("TailorResume failed: %v", err)
	}
	if doc.JobID != "j1" {
		t.Errorf("tailored resume should record the target job, got %q", doc.JobID)
	}

	content, err := os.ReadFile(doc.Path)
	if err != nil {
		t.Fatalf("artifact not written: %v", err)
	}
	text := string(content)

	// The matching position must come before the unrelated one.
	backend := strings.Index(text, "Backend Engineer - Acme")
	analyst := strings.Index(text, "Data Analyst - OldCo")
	if backend == -1 || analyst == -1 || backend > analyst {
		t.Errorf("experience not reordered toward the job:\n%s", text)
	}
	if !strings.Contains(text, "Go, PostgreSQL") {
		t.Errorf("matched skills missing:\n%s", text)
	}
}

func TestGenerateCoverLetter(t *testing.T) {
	svc, repo := newTestService(t)

	doc, err := svc.GenerateCoverLetter(context.Background(), "jane-doe", "j1", "", "md")
	if err != nil {
		t.Fatalf("GenerateCoverLetter failed: %v", err)
	}
	if doc.Kind != domain.DocumentCoverLetter {
		t.Errorf("kind = %q, want cover_letter", doc.Kind)
	}

	content, err := os.ReadFile(doc.Path)
	if err != nil {
		t.Fatalf("artifact not written: %v", err)
	}
	if !strings.Contains(string(content), "Senior Backend Engineer") {
		t.Errorf("cover letter missing job title:\n%s", content)
	}

	// Metadata must be queryable afterwards.
	saved, err := repo.GetByID(context.Background(), doc.DocumentID)
	if err != nil {
		t.Fatalf("document record not saved: %v", err)
	}
	if saved.Path != doc.Path {
		t.Errorf("saved path %q != %q", saved.Path, doc.Path)
	}
}

func TestGenerate_UnsupportedFormat(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.GenerateResume(context.Background(), "jane-doe", "standard", "pdf")
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError for pdf, got %v", err)
	}
}

func TestGenerate_ProfileFetchError(t *testing.T) {
	svc := NewService(
		&mockProfiles{err: &domain.NotFoundError{Resource: "profile", ID: "ghost"}},
		&mockJobs{job: testJob()},
		memory.NewDocumentRepo(memory.NewMemoryStorage()),
		t.TempDir(),
		templateDir(t),
		nil,
	)

	_, err := svc.GenerateResume(context.Background(), "ghost", "", "")
	var nfe *domain.NotFoundError
	if !errors.As(err, &nfe) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestGetDocument(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	generated, err := svc.GenerateResume(ctx, "jane-doe", "", "")
	if err != nil {
		t.Fatalf("GenerateResume failed: %v", err)
	}

	doc, err := svc.GetDocument(ctx, generated.DocumentID)
	if err != nil {
		t.Fatalf("GetDocument failed: %v", err)
	}
	if doc.DocumentID != generated.DocumentID || doc.Path != generated.Path {
		t.Errorf("GetDocument returned %+v, want %+v", doc, generated)
	}

	if _, err := svc.GetDocument(ctx, "no-such-document"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown ID, got %v", err)
	}
}

func TestListDocuments(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.GenerateResume(ctx, "jane-doe", "", ""); err != nil {
		t.Fatalf("GenerateResume failed: %v", err)
	}
	if _, err := svc.GenerateCoverLetter(ctx, "jane-doe", "j1", "", ""); err != nil {
		t.Fatalf("GenerateCoverLetter failed: %v", err)
	}

	docs, err := svc.ListDocuments(ctx, "jane-doe")
	if err != nil {
		t.Fatalf("ListDocuments failed: %v", err)
	}
	if len(docs) != 2 {
		t.Errorf("expected 2 documents, got %d", len(docs))
	}
}
