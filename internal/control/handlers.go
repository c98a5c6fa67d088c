package control

import (
	"context"

	"github.com/vietddude/linkedin-mcp/internal/core/domain"
	"github.com/vietddude/linkedin-mcp/internal/dispatch"
)

// AuthService is the session lifecycle collaborator.
type AuthService interface {
	Login(ctx context.Context, username, password string) (domain.SessionState, error)
	Logout(ctx context.Context) (domain.SessionState, error)
	CheckSession(ctx context.Context) (domain.SessionState, error)
}

// ProfileService serves profiles, companies, and the feed.
type ProfileService interface {
	GetProfile(ctx context.Context, profileID string) (*domain.Profile, error)
	GetCompany(ctx context.Context, companyID string) (*domain.Company, error)
	GetFeed(ctx context.Context, count int, feedType string) ([]domain.FeedItem, error)
}

// JobsService serves search, details, recommendations, and saved jobs.
type JobsService interface {
	Search(ctx context.Context, filter domain.JobSearchFilter, page, count int) (*domain.JobSearchResult, error)
	GetDetails(ctx context.Context, jobID string) (*domain.JobDetails, error)
	Recommended(ctx context.Context, count int) ([]domain.JobDetails, error)
	Save(ctx context.Context, jobID string) error
	Saved(ctx context.Context, count int) ([]domain.JobDetails, error)
}

// DocumentsService generates resumes and cover letters.
type DocumentsService interface {
	GenerateResume(ctx context.Context, profileID, template, format string) (*domain.Document, error)
	TailorResume(ctx context.Context, profileID, jobID, template, format string) (*domain.Document, error)
	GenerateCoverLetter(ctx context.Context, profileID, jobID, template, format string) (*domain.Document, error)
}

// ApplicationsService submits applications and reports their status.
type ApplicationsService interface {
	Apply(ctx context.Context, jobID, resumeID, coverLetterID string) (*domain.Application, error)
	Status(ctx context.Context, applicationID string) (*domain.Application, error)
}

// Services bundles the collaborators the method catalogue binds to.
type Services struct {
	Auth         AuthService
	Profile      ProfileService
	Jobs         JobsService
	Documents    DocumentsService
	Applications ApplicationsService
}

// BuildRegistry binds the full method catalogue. Any registration error is
// a wiring bug; callers treat it as fatal at startup.
func BuildRegistry(svcs Services) (*dispatch.Registry, error) {
	registry := dispatch.NewRegistry()

	bindings := map[string]dispatch.Handler{
		"linkedin.login":                handleLogin(svcs.Auth),
		"linkedin.logout":               handleLogout(svcs.Auth),
		"linkedin.checkSession":         handleCheckSession(svcs.Auth),
		"linkedin.getProfile":           handleGetProfile(svcs.Profile),
		"linkedin.getCompany":           handleGetCompany(svcs.Profile),
		"linkedin.getFeed":              handleGetFeed(svcs.Profile),
		"linkedin.searchJobs":           handleSearchJobs(svcs.Jobs),
		"linkedin.getJobDetails":        handleGetJobDetails(svcs.Jobs),
		"linkedin.getRecommendedJobs":   handleGetRecommendedJobs(svcs.Jobs),
		"linkedin.saveJob":              handleSaveJob(svcs.Jobs),
		"linkedin.getSavedJobs":         handleGetSavedJobs(svcs.Jobs),
		"linkedin.generateResume":       handleGenerateResume(svcs.Documents),
		"linkedin.tailorResume":         handleTailorResume(svcs.Documents),
		"linkedin.generateCoverLetter":  handleGenerateCoverLetter(svcs.Documents),
		"linkedin.applyToJob":           handleApplyToJob(svcs.Applications),
		"linkedin.getApplicationStatus": handleGetApplicationStatus(svcs.Applications),
	}
	for name, handler := range bindings {
		if err := registry.Register(name, handler); err != nil {
			return nil, err
		}
	}
	return registry, nil
}

func handleLogin(svc AuthService) dispatch.Handler {
	return func(ctx context.Context, params map[string]any) (any, error) {
		username, err := requireString(params, "username")
		if err != nil {
			return nil, err
		}
		password, err := requireString(params, "password")
		if err != nil {
			return nil, err
		}
		return svc.Login(ctx, username, password)
	}
}

func handleLogout(svc AuthService) dispatch.Handler {
	return func(ctx context.Context, params map[string]any) (any, error) {
		return svc.Logout(ctx)
	}
}

func handleCheckSession(svc AuthService) dispatch.Handler {
	return func(ctx context.Context, params map[string]any) (any, error) {
		return svc.CheckSession(ctx)
	}
}

func handleGetProfile(svc ProfileService) dispatch.Handler {
	return func(ctx context.Context, params map[string]any) (any, error) {
		profileID, err := requireString(params, "profileId")
		if err != nil {
			return nil, err
		}
		return svc.GetProfile(ctx, profileID)
	}
}

func handleGetCompany(svc ProfileService) dispatch.Handler {
	return func(ctx context.Context, params map[string]any) (any, error) {
		companyID, err := requireString(params, "companyId")
		if err != nil {
			return nil, err
		}
		return svc.GetCompany(ctx, companyID)
	}
}

func handleGetFeed(svc ProfileService) dispatch.Handler {
	return func(ctx context.Context, params map[string]any) (any, error) {
		count, err := optionalInt(params, "count")
		if err != nil {
			return nil, err
		}
		feedType, err := optionalString(params, "type")
		if err != nil {
			return nil, err
		}
		if feedType == "" {
			// "feedType" is accepted as an alias for callers that spell it out.
			if feedType, err = optionalString(params, "feedType"); err != nil {
				return nil, err
			}
		}
		return svc.GetFeed(ctx, count, feedType)
	}
}

func handleSearchJobs(svc JobsService) dispatch.Handler {
	return func(ctx context.Context, params map[string]any) (any, error) {
		// Search criteria arrive as a nested "filter" object; flat
		// top-level keys are accepted as a convenience.
		criteria, err := optionalObject(params, "filter")
		if err != nil {
			return nil, err
		}
		if criteria == nil {
			criteria = params
		}

		var filter domain.JobSearchFilter
		if filter.Keywords, err = optionalString(criteria, "keywords"); err != nil {
			return nil, err
		}
		if filter.Location, err = optionalString(criteria, "location"); err != nil {
			return nil, err
		}
		if filter.Distance, err = optionalInt(criteria, "distance"); err != nil {
			return nil, err
		}
		if filter.DatePosted, err = optionalString(criteria, "datePosted"); err != nil {
			return nil, err
		}
		if filter.JobType, err = optionalStringSlice(criteria, "jobType"); err != nil {
			return nil, err
		}
		if filter.ExperienceLevel, err = optionalStringSlice(criteria, "experienceLevel"); err != nil {
			return nil, err
		}
		if filter.CompanyName, err = optionalString(criteria, "companyName"); err != nil {
			return nil, err
		}

		page, err := optionalInt(params, "page")
		if err != nil {
			return nil, err
		}
		count, err := optionalInt(params, "count")
		if err != nil {
			return nil, err
		}
		return svc.Search(ctx, filter, page, count)
	}
}

func handleGetJobDetails(svc JobsService) dispatch.Handler {
	return func(ctx context.Context, params map[string]any) (any, error) {
		jobID, err := requireString(params, "jobId")
		if err != nil {
			return nil, err
		}
		return svc.GetDetails(ctx, jobID)
	}
}

func handleGetRecommendedJobs(svc JobsService) dispatch.Handler {
	return func(ctx context.Context, params map[string]any) (any, error) {
		count, err := optionalInt(params, "count")
		if err != nil {
			return nil, err
		}
		return svc.Recommended(ctx, count)
	}
}

func handleSaveJob(svc JobsService) dispatch.Handler {
	return func(ctx context.Context, params map[string]any) (any, error) {
		jobID, err := requireString(params, "jobId")
		if err != nil {
			return nil, err
		}
		if err := svc.Save(ctx, jobID); err != nil {
			return nil, err
		}
		return map[string]any{"jobId": jobID, "saved": true}, nil
	}
}

func handleGetSavedJobs(svc JobsService) dispatch.Handler {
	return func(ctx context.Context, params map[string]any) (any, error) {
		count, err := optionalInt(params, "count")
		if err != nil {
			return nil, err
		}
		return svc.Saved(ctx, count)
	}
}

func handleGenerateResume(svc DocumentsService) dispatch.Handler {
	return func(ctx context.Context, params map[string]any) (any, error) {
		profileID, err := requireString(params, "profileId")
		if err != nil {
			return nil, err
		}
		template, err := optionalString(params, "template")
		if err != nil {
			return nil, err
		}
		format, err := optionalString(params, "format")
		if err != nil {
			return nil, err
		}
		return svc.GenerateResume(ctx, profileID, template, format)
	}
}

func handleTailorResume(svc DocumentsService) dispatch.Handler {
	return func(ctx context.Context, params map[string]any) (any, error) {
		profileID, err := requireString(params, "profileId")
		if err != nil {
			return nil, err
		}
		jobID, err := requireString(params, "jobId")
		if err != nil {
			return nil, err
		}
		template, err := optionalString(params, "template")
		if err != nil {
			return nil, err
		}
		format, err := optionalString(params, "format")
		if err != nil {
			return nil, err
		}
		return svc.TailorResume(ctx, profileID, jobID, template, format)
	}
}

func handleGenerateCoverLetter(svc DocumentsService) dispatch.Handler {
	return func(ctx context.Context, params map[string]any) (any, error) {
		profileID, err := requireString(params, "profileId")
		if err != nil {
			return nil, err
		}
		jobID, err := requireString(params, "jobId")
		if err != nil {
			return nil, err
		}
		template, err := optionalString(params, "template")
		if err != nil {
			return nil, err
		}
		format, err := optionalString(params, "format")
		if err != nil {
			return nil, err
		}
		return svc.GenerateCoverLetter(ctx, profileID, jobID, template, format)
	}
}

func handleApplyToJob(svc ApplicationsService) dispatch.Handler {
	return func(ctx context.Context, params map[string]any) (any, error) {
		jobID, err := requireString(params, "jobId")
		if err != nil {
			return nil, err
		}
		resumeID, err := requireString(params, "resumeId")
		if err != nil {
			return nil, err
		}
		coverLetterID, err := optionalString(params, "coverLetterId")
		if err != nil {
			return nil, err
		}
		return svc.Apply(ctx, jobID, resumeID, coverLetterID)
	}
}

func handleGetApplicationStatus(svc ApplicationsService) dispatch.Handler {
	return func(ctx context.Context, params map[string]any) (any, error) {
		applicationID, err := requireString(params, "applicationId")
		if err != nil {
			return nil, err
		}
		return svc.Status(ctx, applicationID)
	}
}
