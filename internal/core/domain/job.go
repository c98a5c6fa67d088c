package domain

import "time"

// JobDetails holds one LinkedIn job posting.
type JobDetails struct {
	JobID          string    `json:"jobId"`
	Title          string    `json:"title"`
	Company        string    `json:"company"`
	Location       string    `json:"location"`
	Description    string    `json:"description,omitempty"`
	DatePosted     string    `json:"datePosted,omitempty"`
	URL            string    `json:"url,omitempty"`
	EmploymentType string    `json:"employmentType,omitempty"`
	SeniorityLevel string    `json:"seniorityLevel,omitempty"`
	Industries     []string  `json:"industries,omitempty"`
	Skills         []string  `json:"skills,omitempty"`
	ApplicantCount int       `json:"applicantCount,omitempty"`
	FetchedAt      time.Time `json:"fetchedAt,omitempty"`
}

// JobSearchFilter narrows a job search. Zero values mean "no constraint".
type JobSearchFilter struct {
	Keywords        string   `json:"keywords,omitempty"`
	Location        string   `json:"location,omitempty"`
	Distance        int      `json:"distance,omitempty"`
	DatePosted      string   `json:"datePosted,omitempty"`
	JobType         []string `json:"jobType,omitempty"`
	ExperienceLevel []string `json:"experienceLevel,omitempty"`
	CompanyName     string   `json:"companyName,omitempty"`
}

// JobSearchResult is one page of search results.
type JobSearchResult struct {
	Total   int          `json:"total"`
	Page    int          `json:"page"`
	Count   int          `json:"count"`
	Results []JobDetails `json:"results"`
}
