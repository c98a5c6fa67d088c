package domain

import "time"

// ApplicationStatus tracks a job application through its lifetime.
type ApplicationStatus string

const (
	ApplicationStarted   ApplicationStatus = "started"
	ApplicationSubmitted ApplicationStatus = "submitted"
	ApplicationViewed    ApplicationStatus = "viewed"
	ApplicationRejected  ApplicationStatus = "rejected"
)

// Application is one submitted (or attempted) job application.
type Application struct {
	ApplicationID string            `json:"applicationId"`
	JobID         string            `json:"jobId"`
	JobTitle      string            `json:"jobTitle,omitempty"`
	Company       string            `json:"company,omitempty"`
	ResumeID      string            `json:"resumeId"`
	CoverLetterID string            `json:"coverLetterId,omitempty"`
	Status        ApplicationStatus `json:"status"`
	SubmittedAt   time.Time         `json:"submittedAt"`
	UpdatedAt     time.Time         `json:"updatedAt"`
}
