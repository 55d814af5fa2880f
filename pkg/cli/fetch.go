package cli

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/ctxlog"
	"github.com/prodsync/pdgate/pkg/cli/config"
	"github.com/prodsync/pdgate/pkg/domain/model"
	"github.com/prodsync/pdgate/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdFetch(configPath *string) *cli.Command {
	var (
		soapCfg config.SOAP
		sinkCfg config.Sink
		req     model.GetDownloadRequest
		asJSON  bool
	)

	flags := append(soapCfg.Flags(), sinkCfg.Flags()...)
	flags = append(flags, credentialFlags(&req.User, &req.Password)...)
	flags = append(flags,
		&cli.StringFlag{Name: "file-path", Usage: "Remote file path returned by prepare", Required: true, Destination: &req.FilePath},
		&cli.BoolFlag{Name: "json", Usage: "Print the result as JSON", Destination: &asJSON},
	)

	return &cli.Command{
		Name:  "fetch",
		Usage: "Download a prepared file into the file sink",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := loadConfigFile(*configPath, c, &soapCfg, &sinkCfg); err != nil {
				return err
			}

			fileSink, closeSink, err := sinkCfg.Build(ctx)
			if err != nil {
				return err
			}
			defer func() {
				if err := closeSink(); err != nil {
					ctxlog.From(ctx).Warn("Failed to close file sink", slog.Any("error", err))
				}
			}()

			uc := usecase.NewDownload(soapCfg.Build(), fileSink)
			result, err := uc.GetDownload(ctx, &req)
			if err != nil {
				return err
			}

			w := outputOf(c)
			if asJSON {
				return printJSON(w, map[string]any{
					"message":  result.Message(),
					"location": result.Location,
					"size":     result.Size,
				})
			}
			printDownloadResult(w, result)
			return nil
		},
	}
}
