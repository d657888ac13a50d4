package cli

import (
	"context"

	"github.com/kagehara/sonarbridge/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

type Error struct {
	Code    int
	Message string
}

func Run(ctx context.Context, argv []string) *Error {
	var cfg config

	cmd := &cli.Command{
		Name:  "sonarbridge",
		Usage: "MCP bridge to the Perplexity Sonar API",
		Commands: []*cli.Command{
			serveCommand(&cfg),
			askCommand(&cfg),
		},
	}

	if err := cmd.Run(ctx, argv); err != nil {
		logging.Default().Error("command failed", "error", err)
		return &Error{
			Code:    1,
			Message: err.Error(),
		}
	}

	return nil
}
