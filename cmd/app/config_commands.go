package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/localvault/cmd/app/commands"
	"github.com/allisson/localvault/internal/app"
	"github.com/allisson/localvault/internal/config"
)

func getConfigCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "set-config",
			Usage: "Store a configuration value (plaintext, persistent)",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "name",
					Aliases:  []string{"n"},
					Required: true,
					Usage:    "Configuration entry name",
				},
				&cli.StringFlag{
					Name:     "value",
					Aliases:  []string{"v"},
					Required: true,
					Usage:    "Configuration value as a JSON document",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				channel, err := container.ConfigChannel()
				if err != nil {
					return err
				}

				return commands.RunSetConfig(
					ctx,
					channel,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("name"),
					cmd.String("value"),
				)
			},
		},
		{
			Name:  "get-config",
			Usage: "Print a configuration value",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "name",
					Aliases:  []string{"n"},
					Required: true,
					Usage:    "Configuration entry name",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				channel, err := container.ConfigChannel()
				if err != nil {
					return err
				}

				return commands.RunGetConfig(
					ctx,
					channel,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("name"),
				)
			},
		},
		{
			Name:  "remove-config",
			Usage: "Delete a configuration value",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "name",
					Aliases:  []string{"n"},
					Required: true,
					Usage:    "Configuration entry name",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				channel, err := container.ConfigChannel()
				if err != nil {
					return err
				}

				return commands.RunRemoveConfig(
					ctx,
					channel,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("name"),
				)
			},
		},
	}
}
