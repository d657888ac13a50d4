package mcp

import (
	"context"

	"github.com/kagehara/sonarbridge/pkg/adapter"
	"github.com/m-mizutani/goerr/v2"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	serverName    = "sonarbridge"
	serverVersion = "0.1.0"
)

var ErrInvalidInput = goerr.New("invalid tool input")

// Server is one tool-serving instance. Each inbound protocol session gets
// its own Server so no state can leak between sessions; it owns nothing but
// its tool registrations and the gateway it was constructed with.
type Server struct {
	gateway adapter.Sonar
	server  *mcp.Server
}

// New creates a fresh tool-serving instance backed by the given gateway
func New(gateway adapter.Sonar) *Server {
	s := &Server{gateway: gateway}

	s.server = mcp.NewServer(&mcp.Implementation{
		Name:    serverName,
		Version: serverVersion,
	}, nil)
	s.registerTools()

	return s
}

// MCPServer exposes the underlying SDK server for transport binding
func (s *Server) MCPServer() *mcp.Server {
	return s.server
}

// Run serves a single transport until it closes. Used for stdio serving;
// the HTTP path binds MCPServer to a streamable handler instead.
func (s *Server) Run(ctx context.Context, transport mcp.Transport) error {
	if err := s.server.Run(ctx, transport); err != nil {
		return goerr.Wrap(err, "MCP server terminated")
	}
	return nil
}

// registerTools adds the three tools to the MCP server
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name: "search",
		Description: "Search for a query and get back a reference that can be passed to fetch. " +
			"Always returns exactly one result; the reference encodes the query itself, so it " +
			"stays valid across sessions and servers.",
		InputSchema: searchInputSchema(),
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name: "fetch",
		Description: "Resolve a reference returned by search into a full answer document. " +
			"Calls the upstream QA API with the decoded query.",
		InputSchema: fetchInputSchema(),
	}, s.handleFetch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name: "answer",
		Description: "Ask a question and get the full raw answer text with upstream metadata. " +
			"Optional style (short/medium/long) and min_words hints steer the answer length; " +
			"precision is prioritized over hitting the word count.",
		InputSchema: answerInputSchema(),
	}, s.handleAnswer)
}
