package domain

import "time"

// Profile holds the fields of a LinkedIn member profile that the router
// exposes to callers and to the document generators.
type Profile struct {
	ProfileID  string            `json:"profileId"`
	Name       string            `json:"name"`
	Headline   string            `json:"headline,omitempty"`
	Summary    string            `json:"summary,omitempty"`
	Location   string            `json:"location,omitempty"`
	Industry   string            `json:"industry,omitempty"`
	Experience []Experience      `json:"experience,omitempty"`
	Education  []Education       `json:"education,omitempty"`
	Skills     []string          `json:"skills,omitempty"`
	Languages  map[string]string `json:"languages,omitempty"`
	ProfileURL string            `json:"profileUrl,omitempty"`
	FetchedAt  time.Time         `json:"fetchedAt,omitempty"`
}

// Experience is one position entry on a profile.
type Experience struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location,omitempty"`
	StartDate   string `json:"startDate,omitempty"`
	EndDate     string `json:"endDate,omitempty"`
	Description string `json:"description,omitempty"`
}

// Education is one school entry on a profile.
type Education struct {
	School    string `json:"school"`
	Degree    string `json:"degree,omitempty"`
	Field     string `json:"field,omitempty"`
	StartYear string `json:"startYear,omitempty"`
	EndYear   string `json:"endYear,omitempty"`
}

// Company holds a LinkedIn company page.
type Company struct {
	CompanyID   string `json:"companyId"`
	Name        string `json:"name"`
	Industry    string `json:"industry,omitempty"`
	Description string `json:"description,omitempty"`
	Website     string `json:"website,omitempty"`
	Size        string `json:"size,omitempty"`
	Location    string `json:"location,omitempty"`
}

// FeedItem is one post from the member's feed.
type FeedItem struct {
	ID       string    `json:"id"`
	Author   string    `json:"author"`
	Text     string    `json:"text"`
	Type     string    `json:"type"`
	PostedAt time.Time `json:"postedAt,omitempty"`
}
