package documents

import (
	"bytes"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"text/template"
	"time"

	"github.com/vietddude/linkedin-mcp/internal/core/domain"
)

// templateData is what every document template sees.
type templateData struct {
	Profile *domain.Profile
	Job     *domain.JobDetails
	// MatchedSkills are the profile skills that also appear in the job
	// posting, in profile order. Empty when no job is targeted.
	MatchedSkills []string
	Date          string
}

// Renderer resolves and executes document templates from a directory.
// Templates live at <dir>/<kind>/<name>.tmpl.
type Renderer struct {
	dir string
}

// NewRenderer creates a renderer rooted at dir.
func NewRenderer(dir string) *Renderer {
	return &Renderer{dir: dir}
}

// Render executes the named template for kind and returns the rendered
// bytes. When job is non-nil the profile's experience is reordered so
// entries matching the posting come first.
func (r *Renderer) Render(kind domain.DocumentKind, name, format string, p *domain.Profile, job *domain.JobDetails) ([]byte, error) {
	path := filepath.Join(r.dir, string(kind), name+".tmpl")
	tmpl, err := template.New(name + ".tmpl").Funcs(template.FuncMap{
		"join":  strings.Join,
		"upper": strings.ToUpper,
	}).ParseFiles(path)
	if err != nil {
		return nil, fmt.Errorf("parse template %s/%s: %w", kind, name, err)
	}

	data := templateData{
		Profile: p,
		Job:     job,
		Date:    time.Now().Format("January 2, 2006"),
	}
	if job != nil {
		data.Profile = tailorProfile(p, job)
		data.MatchedSkills = matchSkills(p.Skills, job)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render %s/%s: %w", kind, name, err)
	}
	return buf.Bytes(), nil
}

// tailorProfile returns a copy of p with experience entries relevant to the
// job moved to the front. Relative order within each group is preserved.
func tailorProfile(p *domain.Profile, job *domain.JobDetails) *domain.Profile {
	tailored := *p
	tailored.Experience = append([]domain.Experience(nil), p.Experience...)

	needle := strings.ToLower(job.Title + " " + job.Description)
	sort.SliceStable(tailored.Experience, func(i, j int) bool {
		return experienceMatches(tailored.Experience[i], needle) &&
			!experienceMatches(tailored.Experience[j], needle)
	})
	return &tailored
}

func experienceMatches(exp domain.Experience, needle string) bool {
	for _, word := range strings.Fields(strings.ToLower(exp.Title)) {
		if len(word) >= 3 && strings.Contains(needle, word) {
			return true
		}
	}
	return false
}

// matchSkills returns the profile skills mentioned by the job posting.
func matchSkills(skills []string, job *domain.JobDetails) []string {
	haystack := strings.ToLower(job.Title + " " + job.Description + " " + strings.Join(job.Skills, " "))
	var matched []string
	for _, skill := range skills {
		if strings.Contains(haystack, strings.ToLower(skill)) {
			matched = append(matched, skill)
		}
	}
	return matched
}
