package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/prodsync/pdgate/pkg/cli/config"
	"github.com/prodsync/pdgate/pkg/domain/model"
	"github.com/prodsync/pdgate/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdPrepare(configPath *string) *cli.Command {
	var (
		soapCfg    config.SOAP
		req        model.PrepareRequest
		start, end string
		asJSON     bool
	)

	flags := append(soapCfg.Flags(), credentialFlags(&req.User, &req.Password)...)
	flags = append(flags,
		&cli.StringFlag{Name: "product", Usage: "Product code", Required: true, Destination: &req.Product},
		&cli.StringFlag{Name: "year", Usage: "Publication year", Required: true, Destination: &req.PublicationYear},
		&cli.StringFlag{Name: "language", Usage: "Language code", Required: true, Destination: &req.Language},
		&cli.StringFlag{Name: "start", Usage: "Start date (ISO-8601)", Required: true, Destination: &start},
		&cli.StringFlag{Name: "end", Usage: "End date (ISO-8601)", Required: true, Destination: &end},
		&cli.BoolFlag{Name: "json", Usage: "Print the response as JSON", Destination: &asJSON},
	)

	return &cli.Command{
		Name:  "prepare",
		Usage: "Ask the remote service to prepare a product file",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := loadConfigFile(*configPath, c, &soapCfg, nil); err != nil {
				return err
			}

			var err error
			if req.StartDate, err = model.ParseTimestamp(start); err != nil {
				return goerr.Wrap(err, "invalid --start")
			}
			if req.EndDate, err = model.ParseTimestamp(end); err != nil {
				return goerr.Wrap(err, "invalid --end")
			}

			// Prepare never touches the sink
			uc := usecase.NewDownload(soapCfg.Build(), nil)
			resp, err := uc.PrepareDownload(ctx, &req)
			if err != nil {
				return err
			}

			w := outputOf(c)
			if asJSON {
				return printJSON(w, resp)
			}
			printPrepareResponse(w, resp)
			return nil
		},
	}
}

func credentialFlags(user, password *string) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "user",
			Usage:       "Account name passed to the remote service",
			Required:    true,
			Destination: user,
			Sources:     cli.EnvVars("PDGATE_USER"),
		},
		&cli.StringFlag{
			Name:        "password",
			Usage:       "Account password passed to the remote service",
			Required:    true,
			Destination: password,
			Sources:     cli.EnvVars("PDGATE_PASSWORD"),
		},
	}
}
