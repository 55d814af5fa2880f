package config

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/prodsync/pdgate/pkg/domain/interfaces"
	"github.com/prodsync/pdgate/pkg/infra/sink"
	"github.com/urfave/cli/v3"
	"google.golang.org/api/option"
)

// Sink holds configuration of where downloaded files are written
type Sink struct {
	Type           string
	Dir            string
	GCSBucket      string
	GCSPrefix      string
	GCSCredentials string
}

// Flags returns CLI flags for the file sink
func (c *Sink) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "sink",
			Usage:       "File sink type (local, gcs)",
			Value:       "local",
			Destination: &c.Type,
			Sources:     cli.EnvVars("PDGATE_SINK"),
		},
		&cli.StringFlag{
			Name:        "sink-dir",
			Usage:       "Directory for the local sink",
			Value:       ".",
			Destination: &c.Dir,
			Sources:     cli.EnvVars("PDGATE_SINK_DIR"),
		},
		&cli.StringFlag{
			Name:        "sink-gcs-bucket",
			Usage:       "Cloud Storage bucket for the gcs sink",
			Destination: &c.GCSBucket,
			Sources:     cli.EnvVars("PDGATE_SINK_GCS_BUCKET"),
		},
		&cli.StringFlag{
			Name:        "sink-gcs-prefix",
			Usage:       "Object name prefix for the gcs sink",
			Destination: &c.GCSPrefix,
			Sources:     cli.EnvVars("PDGATE_SINK_GCS_PREFIX"),
		},
		&cli.StringFlag{
			Name:        "sink-gcs-credentials",
			Usage:       "Service account JSON file; application default credentials if empty",
			Destination: &c.GCSCredentials,
			Sources:     cli.EnvVars("PDGATE_SINK_GCS_CREDENTIALS"),
		},
	}
}

// ApplyFile fills values that were not set by flags or environment from the config file
func (c *Sink) ApplyFile(f *SinkFile, isSet isSetFunc) {
	applyString(&c.Type, f.Type, "sink", isSet)
	applyString(&c.Dir, f.Dir, "sink-dir", isSet)
	applyString(&c.GCSBucket, f.GCSBucket, "sink-gcs-bucket", isSet)
	applyString(&c.GCSPrefix, f.GCSPrefix, "sink-gcs-prefix", isSet)
	applyString(&c.GCSCredentials, f.GCSCredentials, "sink-gcs-credentials", isSet)
}

// Build creates the configured sink. The returned function releases its resources.
func (c *Sink) Build(ctx context.Context) (interfaces.FileSink, func() error, error) {
	switch c.Type {
	case "", "local":
		return sink.NewLocal(c.Dir), func() error { return nil }, nil

	case "gcs":
		var opts []option.ClientOption
		if c.GCSCredentials != "" {
			opts = append(opts, option.WithCredentialsFile(c.GCSCredentials))
		}
		gcs, err := sink.NewGCS(ctx, c.GCSBucket, c.GCSPrefix, opts...)
		if err != nil {
			return nil, nil, err
		}
		return gcs, gcs.Close, nil

	default:
		return nil, nil, goerr.New("unknown sink type", goerr.V("type", c.Type))
	}
}
