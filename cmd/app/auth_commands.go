package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/localvault/cmd/app/commands"
	"github.com/allisson/localvault/internal/app"
	"github.com/allisson/localvault/internal/config"
)

func getAuthCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "set-auth",
			Usage: "Store bearer credentials (encrypted, session-scoped)",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "token",
					Aliases:  []string{"t"},
					Required: true,
					Usage:    "Bearer token value",
				},
				&cli.StringFlag{
					Name:    "scheme",
					Aliases: []string{"s"},
					Value:   "Bearer",
					Usage:   "Authentication scheme",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				channel, err := container.AuthChannel()
				if err != nil {
					return err
				}

				return commands.RunSetAuth(
					ctx,
					channel,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("token"),
					cmd.String("scheme"),
				)
			},
		},
		{
			Name:  "get-auth",
			Usage: "Print the stored credentials",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   "text",
					Usage:   "Output format: 'text' or 'json'",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				channel, err := container.AuthChannel()
				if err != nil {
					return err
				}

				return commands.RunGetAuth(
					ctx,
					channel,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "has-auth",
			Usage: "Report whether credentials are stored",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   "text",
					Usage:   "Output format: 'text' or 'json'",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				channel, err := container.AuthChannel()
				if err != nil {
					return err
				}

				return commands.RunHasAuth(
					ctx,
					channel,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "remove-auth",
			Usage: "Delete the stored credentials",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				channel, err := container.AuthChannel()
				if err != nil {
					return err
				}

				return commands.RunRemoveAuth(
					ctx,
					channel,
					container.Logger(),
					commands.DefaultIO().Writer,
				)
			},
		},
	}
}
