package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/prodsync/pdgate/pkg/cli/config"
	controller "github.com/prodsync/pdgate/pkg/controller/http"
	"github.com/prodsync/pdgate/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdServe(configPath *string) *cli.Command {
	var (
		serverCfg config.Server
		soapCfg   config.SOAP
		sinkCfg   config.Sink
		sentryCfg config.Sentry
	)

	flags := append(serverCfg.Flags(), soapCfg.Flags()...)
	flags = append(flags, sinkCfg.Flags()...)
	flags = append(flags, sentryCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			if err := loadConfigFile(*configPath, c, &soapCfg, &sinkCfg); err != nil {
				return err
			}

			flush, err := sentryCfg.Configure()
			if err != nil {
				return err
			}
			defer flush()

			logger.Info("Starting pdgate server",
				slog.String("addr", serverCfg.Addr),
				slog.String("soap_endpoint", soapCfg.Endpoint),
				slog.String("soap_service", soapCfg.Service),
				slog.String("sink", sinkCfg.Type),
			)

			// One binding for the whole process
			client := soapCfg.Build()

			fileSink, closeSink, err := sinkCfg.Build(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to create file sink")
			}
			defer func() {
				if err := closeSink(); err != nil {
					logger.Warn("Failed to close file sink", slog.Any("error", err))
				}
			}()

			// Create use cases
			downloadUC := usecase.NewDownload(client, fileSink)

			// Create HTTP server with options
			server, err := controller.NewServer(
				ctx,
				downloadUC,
				controller.WithAddr(serverCfg.Addr),
			)
			if err != nil {
				return goerr.Wrap(err, "failed to create HTTP server")
			}

			// Start server in goroutine
			go func() {
				logger.Info("HTTP server starting", slog.String("addr", serverCfg.Addr))
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Error("HTTP server error", slog.Any("error", err))
				}
			}()

			// Wait for interrupt signal
			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

			select {
			case <-ctx.Done():
				logger.Info("Context cancelled, shutting down...")
			case sig := <-sigChan:
				logger.Info("Signal received, shutting down...", slog.Any("signal", sig))
			}

			// Graceful shutdown
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				return goerr.Wrap(err, "failed to shutdown server gracefully")
			}

			logger.Info("Server shutdown complete")
			return nil
		},
	}
}
