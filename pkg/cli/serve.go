package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/kagehara/sonarbridge/pkg/server"
	service "github.com/kagehara/sonarbridge/pkg/service/mcp"
	"github.com/kagehara/sonarbridge/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/urfave/cli/v3"
)

func serveCommand(cfg *config) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the MCP tools over HTTP or stdio",
		Flags: append(serverFlags(cfg), upstreamFlags(cfg)...),
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := cfg.applyFile(c); err != nil {
				return err
			}

			logging.SetDefault(logging.New(cfg.logLevel, os.Stderr))

			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			switch cfg.transport {
			case "stdio":
				// A stdio process is a single session by nature; the
				// instance lives exactly as long as the pipe.
				return service.New(cfg.newSonar()).Run(ctx, &mcp.StdioTransport{})

			case "http":
				srv := server.New(fmt.Sprintf(":%d", cfg.port), func() *service.Server {
					return service.New(cfg.newSonar())
				})
				return srv.ListenAndServe(ctx)

			default:
				return goerr.New("unsupported transport",
					goerr.V("transport", cfg.transport),
					goerr.V("supported", []string{"http", "stdio"}))
			}
		},
	}
}
