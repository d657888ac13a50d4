package mcp

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/kagehara/sonarbridge/pkg/adapter"
	"github.com/kagehara/sonarbridge/pkg/model"
	"github.com/kagehara/sonarbridge/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Marker lines fencing the raw answer so consumers can extract it even when
// the answer itself contains markdown fences or blank lines.
const (
	answerBeginMarker = "-----BEGIN ANSWER-----"
	answerEndMarker   = "-----END ANSWER-----"
)

type answerParams struct {
	Query    string `json:"query"`
	Style    string `json:"style,omitempty"`
	MinWords int    `json:"min_words,omitempty"`
}

// handleAnswer is the raw-access path: full uncompressed answer text between
// marker lines, followed by a metadata trailer with the upstream model and
// usage diagnostics.
func (s *Server) handleAnswer(ctx context.Context, req *mcp.CallToolRequest, params *answerParams) (*mcp.CallToolResult, any, error) {
	query := model.Query(params.Query)
	if err := query.Validate(); err != nil {
		return nil, nil, goerr.Wrap(ErrInvalidInput, "query is required", goerr.V("cause", err.Error()))
	}

	style := adapter.AnswerStyle(params.Style)
	if err := style.Validate(); err != nil {
		return nil, nil, goerr.Wrap(ErrInvalidInput, "style must be one of short, medium, long",
			goerr.V("style", params.Style))
	}
	if params.MinWords < 0 {
		return nil, nil, goerr.Wrap(ErrInvalidInput, "min_words must be a positive integer",
			goerr.V("min_words", params.MinWords))
	}

	logging.From(ctx).Debug("answering query",
		"query", query, "style", params.Style, "min_words", params.MinWords)

	answer, err := s.gateway.Ask(ctx, query, adapter.AskOptions{
		Style:    style,
		MinWords: params.MinWords,
	})
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to answer query", goerr.V("query", query))
	}

	meta, err := json.Marshal(answer.Meta)
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to marshal answer metadata")
	}

	var sb strings.Builder
	sb.WriteString(answerBeginMarker + "\n")
	sb.WriteString(answer.Text + "\n")
	sb.WriteString(answerEndMarker + "\n\n")
	sb.WriteString("[meta] " + string(meta))

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: sb.String()},
		},
	}, nil, nil
}
