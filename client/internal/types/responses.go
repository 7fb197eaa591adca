package types

// ------------------------------
// Response Types
// ------------------------------

// SearchResults wraps the /api/search result
type SearchResults struct {
	Projects     []Project           `json:"project"`
	Repositories []Repository        `json:"repository"`
	Charts       []ChartSearchResult `json:"chart,omitempty"`
}

// Total returns the number of hits across all result kinds.
func (r *SearchResults) Total() int {
	if r == nil {
		return 0
	}
	return len(r.Projects) + len(r.Repositories) + len(r.Charts)
}
