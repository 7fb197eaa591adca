package types

import "time"

// ------------------------------
// Core Domain Entities
// ------------------------------

// Project represents a Harbor project as returned by the search endpoint
type Project struct {
	ProjectID         int64             `json:"project_id"`
	OwnerID           int               `json:"owner_id"`
	Name              string            `json:"name"`
	CreationTime      time.Time         `json:"creation_time"`
	UpdateTime        time.Time         `json:"update_time"`
	Deleted           bool              `json:"deleted"`
	OwnerName         string            `json:"owner_name,omitempty"`
	Togglable         bool              `json:"togglable,omitempty"`
	CurrentUserRoleID int               `json:"current_user_role_id,omitempty"`
	RepoCount         int64             `json:"repo_count"`
	ChartCount        uint64            `json:"chart_count,omitempty"`
	Metadata          map[string]string `json:"metadata,omitempty"`
}

// IsPublic reports whether the project metadata marks it public.
func (p Project) IsPublic() bool {
	return p.Metadata["public"] == "true"
}

// Repository is a repository hit
type Repository struct {
	ProjectID      int64  `json:"project_id"`
	ProjectName    string `json:"project_name"`
	ProjectPublic  bool   `json:"project_public"`
	RepositoryName string `json:"repository_name"`
	PullCount      int64  `json:"pull_count"`
	TagsCount      int64  `json:"tags_count"`
}

// ChartVersion describes the chart matched by a chart hit
type ChartVersion struct {
	Name        string    `json:"name"`
	Version     string    `json:"version"`
	AppVersion  string    `json:"appVersion,omitempty"`
	Description string    `json:"description,omitempty"`
	Home        string    `json:"home,omitempty"`
	Icon        string    `json:"icon,omitempty"`
	URLs        []string  `json:"urls,omitempty"`
	Created     time.Time `json:"created"`
	Digest      string    `json:"digest,omitempty"`
}

// ChartSearchResult is a chart hit with its relevance score
type ChartSearchResult struct {
	Name  string        `json:"Name"`
	Score float64       `json:"Score"`
	Chart *ChartVersion `json:"Chart"`
}
