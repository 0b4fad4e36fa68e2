// Package main provides the entry point for the application with CLI commands.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/civicgate/trustplane/cmd/app/commands"
)

var version = "1.0.0"

func main() {
	cmd := &cli.Command{
		Name:    "trustplane",
		Usage:   "Cross-service trust and PII protection plane",
		Version: version,
		Commands: []*cli.Command{
			{
				Name:  "server",
				Usage: "Start the HTTP server",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunServer(ctx, version)
				},
			},
			{
				Name:  "gen-secret",
				Usage: "Generate a random secret for TRUST_TOKEN_SECRET or GATEWAY_SIGNATURE_SECRET",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunGenSecret(os.Stdout)
				},
			},
			{
				Name:  "gen-pii-key",
				Usage: "Generate a versioned PII encryption key for PII_KEYS",
				Flags: []cli.Flag{
					&cli.UintFlag{
						Name:    "version",
						Aliases: []string{"v"},
						Value:   1,
						Usage:   "Key version number",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunGenPIIKey(os.Stdout, uint(cmd.Uint("version")))
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("command failed", slog.Any("error", err))
		os.Exit(1)
	}
}
