package client

import "github.com/youhong316/harbor/client/internal/types"

// Public type aliases so SDK consumers can import only the client package.
type (
	// Transport
	HTTPClient     = types.HTTPClient
	RequestOptions = types.RequestOptions

	// Results
	SearchResults     = types.SearchResults
	Project           = types.Project
	Repository        = types.Repository
	ChartSearchResult = types.ChartSearchResult
	ChartVersion      = types.ChartVersion
)

// DefaultRequestOptions returns a copy of the headers sent when no
// WithRequestOptions is given.
func DefaultRequestOptions() RequestOptions { return types.DefaultGetOptions() }
