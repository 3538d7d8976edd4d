package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/localvault/cmd/app/commands"
	"github.com/allisson/localvault/internal/app"
	"github.com/allisson/localvault/internal/config"
	cryptoService "github.com/allisson/localvault/internal/crypto/service"
)

func getSystemCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "migrate",
			Usage: "Run database migrations",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				return commands.RunMigrations(container.Logger(), cfg.DBPath)
			},
		},
		{
			Name:  "migrate-legacy",
			Usage: "Upgrade legacy obfuscated entries to authenticated encryption",
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

				migration, err := container.MigrationUseCase()
				if err != nil {
					return err
				}

				return commands.RunMigrateLegacy(
					ctx,
					migration,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "status",
			Usage: "Show per-tier entry counts and collected metrics",
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

				stores, err := container.EntryStores()
				if err != nil {
					return err
				}

				keyRepo, err := container.KeyRepository()
				if err != nil {
					return err
				}

				provider, err := container.MetricsProvider()
				if err != nil {
					return err
				}

				return commands.RunStatus(
					ctx,
					stores,
					cryptoService.NewPlatformProbe(),
					keyRepo,
					provider,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("format"),
				)
			},
		},
	}
}
