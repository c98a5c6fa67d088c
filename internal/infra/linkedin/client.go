// Package linkedin implements an unofficial Voyager-style LinkedIn client.
// It is the only network edge of the router; every service collaborator
// reaches LinkedIn through it.
package linkedin

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/vietddude/linkedin-mcp/internal/core/domain"
	"github.com/vietddude/linkedin-mcp/internal/metrics"
)

// Config holds LinkedIn client settings.
type Config struct {
	BaseURL           string
	Timeout           time.Duration
	RequestsPerMinute int
}

// Client talks to LinkedIn's private JSON API using the cookies and headers
// captured at login. It owns the current session; callers swap it via
// SetSession after a successful login.
type Client struct {
	baseURL string
	http    *http.Client
	limiter *limiter

	mu      sync.RWMutex
	session domain.SessionState
}

// NewClient creates a LinkedIn client.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	rpm := cfg.RequestsPerMinute
	if rpm <= 0 {
		rpm = 30
	}
	return &Client{
		baseURL: cfg.BaseURL,
		http:    &http.Client{Timeout: timeout},
		limiter: newLimiter(time.Minute / time.Duration(rpm)),
	}
}

// SetSession installs the session used for subsequent calls.
func (c *Client) SetSession(s domain.SessionState) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.session = s
}

// Session returns the current session state.
func (c *Client) Session() domain.SessionState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.session
}

// ClearSession drops the current session.
func (c *Client) ClearSession() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.session = domain.SessionState{}
}

// Authenticate performs a credential login and returns the captured session.
func (c *Client) Authenticate(ctx context.Context, username, password string) (domain.SessionState, error) {
	body := map[string]string{"session_key": username, "session_password": password}

	var out struct {
		Status  string            `json:"login_result"`
		Cookies map[string]string `json:"cookies"`
		Headers map[string]string `json:"headers"`
	}
	if err := c.do(ctx, http.MethodPost, "/authenticate", "auth", nil, body, &out); err != nil {
		return domain.SessionState{}, err
	}
	if out.Status != "PASS" {
		return domain.SessionState{}, &domain.AuthError{Message: "login rejected: " + out.Status}
	}

	session := domain.SessionState{
		LoggedIn:  true,
		Username:  username,
		Cookies:   out.Cookies,
		Headers:   out.Headers,
		CreatedAt: time.Now(),
	}
	c.SetSession(session)
	return session, nil
}

// GetProfile fetches a member profile.
func (c *Client) GetProfile(ctx context.Context, profileID string) (*domain.Profile, error) {
	var p domain.Profile
	path := "/identity/profiles/" + url.PathEscape(profileID)
	if err := c.do(ctx, http.MethodGet, path, "profile", nil, nil, &p); err != nil {
		return nil, err
	}
	p.ProfileID = profileID
	p.FetchedAt = time.Now()
	return &p, nil
}

// GetCompany fetches a company page.
func (c *Client) GetCompany(ctx context.Context, companyID string) (*domain.Company, error) {
	var co domain.Company
	path := "/organization/companies/" + url.PathEscape(companyID)
	if err := c.do(ctx, http.MethodGet, path, "profile", nil, nil, &co); err != nil {
		return nil, err
	}
	co.CompanyID = companyID
	return &co, nil
}

// GetFeed fetches up to count feed items of the given type.
func (c *Client) GetFeed(ctx context.Context, count int, feedType string) ([]domain.FeedItem, error) {
	q := url.Values{"count": {strconv.Itoa(count)}, "type": {feedType}}

	var out struct {
		Elements []domain.FeedItem `json:"elements"`
	}
	if err := c.do(ctx, http.MethodGet, "/feed/updates", "feed", q, nil, &out); err != nil {
		return nil, err
	}
	return out.Elements, nil
}

// SearchJobs runs a paginated job search.
func (c *Client) SearchJobs(ctx context.Context, filter domain.JobSearchFilter, page, count int) (*domain.JobSearchResult, error) {
	q := url.Values{
		"start": {strconv.Itoa((page - 1) * count)},
		"count": {strconv.Itoa(count)},
	}
	if filter.Keywords != "" {
		q.Set("keywords", filter.Keywords)
	}
	if filter.Location != "" {
		q.Set("location", filter.Location)
	}
	if filter.Distance > 0 {
		q.Set("distance", strconv.Itoa(filter.Distance))
	}
	if filter.CompanyName != "" {
		q.Set("company", filter.CompanyName)
	}

	var out struct {
		Total    int                 `json:"paging_total"`
		Elements []domain.JobDetails `json:"elements"`
	}
	if err := c.do(ctx, http.MethodGet, "/jobs/search", "search", q, nil, &out); err != nil {
		return nil, err
	}
	return &domain.JobSearchResult{
		Total:   out.Total,
		Page:    page,
		Count:   count,
		Results: out.Elements,
	}, nil
}

// GetJobDetails fetches one job posting.
func (c *Client) GetJobDetails(ctx context.Context, jobID string) (*domain.JobDetails, error) {
	var jd domain.JobDetails
	path := "/jobs/" + url.PathEscape(jobID)
	if err := c.do(ctx, http.MethodGet, path, "search", nil, nil, &jd); err != nil {
		return nil, err
	}
	jd.JobID = jobID
	jd.FetchedAt = time.Now()
	return &jd, nil
}

// GetRecommendedJobs fetches job recommendations for the logged-in member.
func (c *Client) GetRecommendedJobs(ctx context.Context, count int) ([]domain.JobDetails, error) {
	q := url.Values{"count": {strconv.Itoa(count)}}

	var out struct {
		Elements []domain.JobDetails `json:"elements"`
	}
	if err := c.do(ctx, http.MethodGet, "/jobs/recommendations", "search", q, nil, &out); err != nil {
		return nil, err
	}
	return out.Elements, nil
}

// SaveJob bookmarks a job for the logged-in member.
func (c *Client) SaveJob(ctx context.Context, jobID string) error {
	path := "/jobs/" + url.PathEscape(jobID) + "/save"
	return c.do(ctx, http.MethodPost, path, "search", nil, nil, nil)
}

// GetSavedJobs fetches the member's bookmarked jobs.
func (c *Client) GetSavedJobs(ctx context.Context, count int) ([]domain.JobDetails, error) {
	q := url.Values{"count": {strconv.Itoa(count)}}

	var out struct {
		Elements []domain.JobDetails `json:"elements"`
	}
	if err := c.do(ctx, http.MethodGet, "/jobs/saved", "search", q, nil, &out); err != nil {
		return nil, err
	}
	return out.Elements, nil
}

// SubmitApplication submits an Easy Apply application with previously
// generated artifacts attached by path reference.
func (c *Client) SubmitApplication(ctx context.Context, jobID, resumePath, coverLetterPath string) error {
	body := map[string]string{"resume": resumePath}
	if coverLetterPath != "" {
		body["coverLetter"] = coverLetterPath
	}
	path := "/jobs/" + url.PathEscape(jobID) + "/apply"
	return c.do(ctx, http.MethodPost, path, "apply", nil, body, nil)
}

// do performs one API call: rate limit, request, status mapping, decode.
// Transport-level failures (connection reset, DNS) are retried here with
// go-retry. HTTP status failures are not; the dispatch layer owns that
// retry budget, and retrying twice would multiply the attempt count.
func (c *Client) do(ctx context.Context, method, path, category string, query url.Values, body, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	backoff := retry.WithMaxRetries(2, retry.NewExponential(200*time.Millisecond))

	var resp *http.Response
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, method, u, bytes.NewReader(payload))
		if err != nil {
			return err
		}
		c.setHeaders(req)

		resp, err = c.http.Do(req)
		if err != nil {
			return retry.RetryableError(fmt.Errorf("request failed: %w", err))
		}
		return nil
	})
	if err != nil {
		metrics.LinkedInCallsTotal.WithLabelValues(category, "network_error").Inc()
		// Unreachable upstream reads as transient to the dispatch classifier.
		return &domain.UnavailableError{Message: err.Error()}
	}
	defer resp.Body.Close()

	metrics.LinkedInCallsTotal.WithLabelValues(category, strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode >= 400 {
		return statusError(resp)
	}
	if out == nil {
		return nil
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Restli-Protocol-Version", "2.0.0")
	req.Header.Set("User-Agent", "linkedin-mcp/1.0")

	c.mu.RLock()
	defer c.mu.RUnlock()
	for k, v := range c.session.Headers {
		req.Header.Set(k, v)
	}
	for name, value := range c.session.Cookies {
		req.AddCookie(&http.Cookie{Name: name, Value: value})
	}
}
