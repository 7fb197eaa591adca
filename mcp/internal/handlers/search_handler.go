package handlers

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/youhong316/harbor/client"
)

// Searcher is the part of the SDK the tool needs.
type Searcher interface {
	Search(ctx context.Context, term string) (*client.SearchResults, error)
}

// SearchHandler exposes the global_search tool.
type SearchHandler struct {
	client Searcher
}

func NewSearchHandler(c Searcher) *SearchHandler {
	return &SearchHandler{client: c}
}

// RegisterTools registers the global_search tool.
func (sh *SearchHandler) RegisterTools(s *server.MCPServer) error {
	searchTool := mcp.NewTool("global_search",
		mcp.WithDescription("Search the registry for projects, repositories and helm charts whose names contain the term. Results include:\n • project – matching projects.\n • repository – matching repositories with pull and tag counts.\n • chart – matching charts with a relevance score."),
		mcp.WithString("term", mcp.Required(), mcp.Description("Keyword to search for; sent verbatim, an empty string lists everything visible")),
		mcp.WithString("kind", mcp.Description("Restrict the payload to one of: project, repository, chart")),
	)
	s.AddTool(searchTool, sh.handleSearch)
	return nil
}

func (sh *SearchHandler) handleSearch(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	term, err := req.RequireString("term")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	kind, _ := req.GetArguments()["kind"].(string)

	resp, err := sh.client.Search(ctx, term)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
	}

	var payload any
	switch kind {
	case "":
		payload = resp
	case "project":
		payload = map[string]any{"project": resp.Projects}
	case "repository":
		payload = map[string]any{"repository": resp.Repositories}
	case "chart":
		payload = map[string]any{"chart": resp.Charts}
	default:
		return mcp.NewToolResultError(fmt.Sprintf("unknown kind %q", kind)), nil
	}
	b, _ := json.MarshalIndent(payload, "", "  ")
	return mcp.NewToolResultText(string(b)), nil
}
