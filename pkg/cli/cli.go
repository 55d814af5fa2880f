package cli

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/m-mizutani/ctxlog"
	"github.com/prodsync/pdgate/pkg/cli/config"
	"github.com/prodsync/pdgate/pkg/domain/types"
	"github.com/urfave/cli/v3"
)

// Run runs the CLI application
func Run(ctx context.Context, args []string) error {
	var loggerCfg config.Logger
	var logger *slog.Logger
	var configPath string

	// Values in .env become defaults for the PDGATE_* environment variables
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Default().Warn("Failed to load .env file", slog.Any("error", err))
	}

	flags := append(loggerCfg.Flags(), &cli.StringFlag{
		Name:        "config",
		Aliases:     []string{"c"},
		Usage:       "TOML configuration file",
		Destination: &configPath,
		Sources:     cli.EnvVars("PDGATE_CONFIG"),
	})

	app := &cli.Command{
		Name:    types.ServiceName,
		Usage:   "JSON gateway to the SOAP product download service",
		Version: types.Version,
		Flags:   flags,
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			var err error
			logger, err = loggerCfg.Configure()
			if err != nil {
				return nil, err
			}

			slog.SetDefault(logger)
			ctx = ctxlog.With(ctx, logger)
			return ctx, nil
		},
		Commands: []*cli.Command{
			cmdServe(&configPath),
			cmdPrepare(&configPath),
			cmdFetch(&configPath),
		},
	}

	if err := app.Run(ctx, args); err != nil {
		if logger == nil {
			logger = slog.Default()
		}
		logger.Error("CLI execution failed", slog.Any("error", err))
		return err
	}

	return nil
}

// loadConfigFile applies the optional TOML file to the binding and sink configuration
func loadConfigFile(path string, c *cli.Command, soapCfg *config.SOAP, sinkCfg *config.Sink) error {
	if path == "" {
		return nil
	}

	f, err := config.LoadFile(path)
	if err != nil {
		return err
	}

	if soapCfg != nil {
		if err := soapCfg.ApplyFile(&f.SOAP, c.IsSet); err != nil {
			return err
		}
	}
	if sinkCfg != nil {
		sinkCfg.ApplyFile(&f.Sink, c.IsSet)
	}
	return nil
}
