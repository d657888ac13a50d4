package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	service "github.com/kagehara/sonarbridge/pkg/service/mcp"
	"github.com/kagehara/sonarbridge/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const mcpPath = "/mcp"

// SessionFactory mints one isolated tool-serving instance per inbound
// protocol session. Instances must not be shared: the whole point is that a
// session's registry and transport are exclusively owned by that session
// and torn down with it.
type SessionFactory func() *service.Server

// Server is the HTTP front for the MCP endpoint plus liveness and info
// paths. It holds only immutable wiring; per-session state lives in the
// instances the factory produces.
type Server struct {
	addr    string
	factory SessionFactory
}

// New creates an HTTP server serving MCP sessions from the given factory
func New(addr string, factory SessionFactory) *Server {
	return &Server{
		addr:    addr,
		factory: factory,
	}
}

// Handler builds the full HTTP handler. Exposed separately from
// ListenAndServe so tests can drive it through httptest.
func (s *Server) Handler() http.Handler {
	streamable := mcp.NewStreamableHTTPHandler(func(r *http.Request) *mcp.Server {
		// Fresh instance per session: the SDK calls this when a session is
		// established and releases the bound transport when it ends,
		// cleanly or not.
		return s.factory().MCPServer()
	}, nil)

	mux := http.NewServeMux()
	mux.Handle(mcpPath, streamable)
	mux.HandleFunc("/health", handleHealth)
	mux.HandleFunc("/{$}", handleRoot)

	return withCORS(withRecover(mux))
}

// ListenAndServe serves until the context is cancelled, then drains
// in-flight connections.
func (s *Server) ListenAndServe(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:    s.addr,
		Handler: s.Handler(),
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.ListenAndServe()
	}()

	logging.Default().Info("server started", "addr", s.addr, "endpoint", mcpPath)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return goerr.Wrap(err, "server terminated", goerr.V("addr", s.addr))
		}
		return nil
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return goerr.Wrap(err, "failed to shut down server")
		}
		return nil
	}
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

func handleRoot(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"name":"sonarbridge","description":"MCP bridge to the Perplexity Sonar API","endpoint":"` + mcpPath + `"}`))
}
