package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kagehara/sonarbridge/pkg/adapter"
	"github.com/kagehara/sonarbridge/pkg/model"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// askCommand is the terminal shortcut to the upstream API, bypassing the
// protocol layer. Useful for checking credentials and prompt behavior.
func askCommand(cfg *config) *cli.Command {
	var style string
	var minWords int64

	flags := append(upstreamFlags(cfg),
		&cli.StringFlag{
			Name:        "style",
			Aliases:     []string{"s"},
			Usage:       "Answer length hint (short, medium, long)",
			Destination: &style,
		},
		&cli.IntFlag{
			Name:        "min-words",
			Usage:       "Minimum word count target",
			Destination: &minWords,
		},
	)

	return &cli.Command{
		Name:      "ask",
		Usage:     "Ask a question directly and print the answer",
		ArgsUsage: "<query>",
		Flags:     flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			query := model.Query(strings.Join(c.Args().Slice(), " "))
			if err := query.Validate(); err != nil {
				return goerr.Wrap(err, "query argument is required")
			}

			answerStyle := adapter.AnswerStyle(style)
			if err := answerStyle.Validate(); err != nil {
				return err
			}
			if minWords < 0 {
				return goerr.New("min-words must be a positive integer",
					goerr.V("min_words", minWords))
			}

			answer, err := cfg.newSonar().Ask(ctx, query, adapter.AskOptions{
				Style:    answerStyle,
				MinWords: int(minWords),
			})
			if err != nil {
				return err
			}

			meta, err := json.Marshal(answer.Meta)
			if err != nil {
				return goerr.Wrap(err, "failed to marshal answer metadata")
			}

			fmt.Println(answer.Text)
			fmt.Println()
			fmt.Println("[meta] " + string(meta))
			return nil
		},
	}
}
