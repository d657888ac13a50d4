package mcp

import (
	"context"

	"github.com/kagehara/sonarbridge/pkg/adapter"
	"github.com/kagehara/sonarbridge/pkg/model"
	"github.com/kagehara/sonarbridge/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const sourceTag = "perplexity-sonar"

type fetchParams struct {
	Reference string `json:"reference"`
}

// handleFetch decodes the reference back into its query and asks the
// upstream API with default options. The reference is the only input; no
// prior search call on this session is required.
func (s *Server) handleFetch(ctx context.Context, req *mcp.CallToolRequest, params *fetchParams) (*mcp.CallToolResult, *model.Document, error) {
	ref := model.Reference(params.Reference)
	query, err := ref.Query()
	if err != nil {
		return nil, nil, err
	}

	logging.From(ctx).Debug("fetching document", "query", query)

	answer, err := s.gateway.Ask(ctx, query, adapter.AskOptions{})
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to fetch answer", goerr.V("query", query))
	}

	return nil, &model.Document{
		Reference: ref,
		Title:     string(query),
		Text:      answer.Text,
		URL:       model.LookupURL(query),
		Metadata: map[string]string{
			"model":  answer.Model(),
			"source": sourceTag,
		},
	}, nil
}
