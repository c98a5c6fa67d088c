package domain

import "time"

// DocumentKind distinguishes generated artifacts.
type DocumentKind string

const (
	DocumentResume      DocumentKind = "resume"
	DocumentCoverLetter DocumentKind = "cover_letter"
)

// Document is the metadata record for one generated resume or cover letter.
// The rendered artifact itself lives on disk at Path.
type Document struct {
	DocumentID string       `json:"documentId"`
	Kind       DocumentKind `json:"kind"`
	ProfileID  string       `json:"profileId"`
	JobID      string       `json:"jobId,omitempty"` // set for cover letters and tailored resumes
	Template   string       `json:"template"`
	Format     string       `json:"format"`
	Path       string       `json:"path"`
	CreatedAt  time.Time    `json:"createdAt"`
}
