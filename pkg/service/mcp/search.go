package mcp

import (
	"context"

	"github.com/kagehara/sonarbridge/pkg/model"
	"github.com/m-mizutani/goerr/v2"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type searchParams struct {
	Query string `json:"query"`
}

type searchOutput struct {
	Results []*model.SearchResult `json:"results"`
}

// handleSearch encodes the query into a reference and wraps it in a single
// search result. This never calls the upstream API: with one upstream there
// is exactly one "hit" per query, and all identity lives in the reference.
func (s *Server) handleSearch(ctx context.Context, req *mcp.CallToolRequest, params *searchParams) (*mcp.CallToolResult, *searchOutput, error) {
	query := model.Query(params.Query)
	if err := query.Validate(); err != nil {
		return nil, nil, goerr.Wrap(ErrInvalidInput, "query is required", goerr.V("cause", err.Error()))
	}

	return nil, &searchOutput{
		Results: []*model.SearchResult{model.NewSearchResult(query)},
	}, nil
}
