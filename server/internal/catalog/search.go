package catalog

import (
	"strconv"
	"strings"
	"time"
)

// Results is the /api/search response body.
type Results struct {
	Projects     []ProjectHit    `json:"project"`
	Repositories []RepositoryHit `json:"repository"`
	Charts       []ChartHit      `json:"chart,omitempty"`
}

// ProjectHit is the project representation returned by Harbor.
type ProjectHit struct {
	ProjectID    int64             `json:"project_id"`
	OwnerID      int               `json:"owner_id"`
	Name         string            `json:"name"`
	CreationTime time.Time         `json:"creation_time"`
	UpdateTime   time.Time         `json:"update_time"`
	Deleted      bool              `json:"deleted"`
	OwnerName    string            `json:"owner_name,omitempty"`
	RepoCount    int64             `json:"repo_count"`
	ChartCount   uint64            `json:"chart_count,omitempty"`
	Metadata     map[string]string `json:"metadata"`
}

// RepositoryHit is a repository match.
type RepositoryHit struct {
	ProjectID      int64  `json:"project_id"`
	ProjectName    string `json:"project_name"`
	ProjectPublic  bool   `json:"project_public"`
	RepositoryName string `json:"repository_name"`
	PullCount      int64  `json:"pull_count"`
	TagsCount      int64  `json:"tags_count"`
}

// ChartHit is a chart match with its relevance score.
type ChartHit struct {
	Name  string       `json:"Name"`
	Score float64      `json:"Score"`
	Chart ChartVersion `json:"Chart"`
}

// ChartVersion describes the matched chart.
type ChartVersion struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	AppVersion  string `json:"appVersion,omitempty"`
	Description string `json:"description,omitempty"`
}

// Search matches keyword (case-insensitive substring) against project,
// repository and chart names. Anonymous callers only see public projects and
// their content. An empty keyword matches everything visible.
func (c *Catalog) Search(keyword string, authenticated bool) Results {
	kw := strings.ToLower(keyword)
	res := Results{Projects: []ProjectHit{}, Repositories: []RepositoryHit{}}

	for _, p := range c.Projects {
		if !p.Public && !authenticated {
			continue
		}
		if contains(p.Name, kw) {
			res.Projects = append(res.Projects, p.hit())
		}
		for _, r := range p.Repositories {
			if contains(r.Name, kw) {
				res.Repositories = append(res.Repositories, RepositoryHit{
					ProjectID:      p.ID,
					ProjectName:    p.Name,
					ProjectPublic:  p.Public,
					RepositoryName: r.Name,
					PullCount:      r.PullCount,
					TagsCount:      int64(len(r.Tags)),
				})
			}
		}
		for _, ch := range p.Charts {
			full := p.Name + "/" + ch.Name
			if contains(full, kw) {
				res.Charts = append(res.Charts, ChartHit{
					Name:  full,
					Score: score(ch.Name, kw),
					Chart: ChartVersion{Name: ch.Name, Version: ch.Version, AppVersion: ch.AppVersion, Description: ch.Description},
				})
			}
		}
	}
	return res
}

func (p Project) hit() ProjectHit {
	return ProjectHit{
		ProjectID:    p.ID,
		OwnerID:      p.OwnerID,
		Name:         p.Name,
		CreationTime: p.CreationTime,
		UpdateTime:   p.CreationTime,
		OwnerName:    p.OwnerName,
		RepoCount:    int64(len(p.Repositories)),
		ChartCount:   uint64(len(p.Charts)),
		Metadata:     map[string]string{"public": strconv.FormatBool(p.Public)},
	}
}

func contains(name, kw string) bool {
	return kw == "" || strings.Contains(strings.ToLower(name), kw)
}

// score is 1 for an exact name match and the matched fraction of the name otherwise.
func score(name, kw string) float64 {
	if kw == "" || len(name) == 0 {
		return 0
	}
	if strings.EqualFold(name, kw) {
		return 1
	}
	return float64(len(kw)) / float64(len(name))
}
