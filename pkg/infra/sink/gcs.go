package sink

import (
	"context"
	"log/slog"

	"cloud.google.com/go/storage"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/prodsync/pdgate/pkg/domain/model"
	"google.golang.org/api/option"
)

// GCS writes payloads as objects of a Cloud Storage bucket
type GCS struct {
	client *storage.Client
	bucket string
	prefix string
}

// NewGCS creates a Cloud Storage sink. Objects are named prefix+name.
func NewGCS(ctx context.Context, bucket, prefix string, opts ...option.ClientOption) (*GCS, error) {
	if bucket == "" {
		return nil, goerr.New("GCS bucket is required")
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create storage client")
	}

	return &GCS{
		client: client,
		bucket: bucket,
		prefix: prefix,
	}, nil
}

// Save uploads data, replacing any existing object of the same name
func (x *GCS) Save(ctx context.Context, name string, data []byte) (*model.DownloadResult, error) {
	objName := x.prefix + name
	w := x.client.Bucket(x.bucket).Object(objName).NewWriter(ctx)
	w.ContentType = "application/octet-stream"

	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return nil, goerr.Wrap(err, "failed to upload downloaded file",
			goerr.V("bucket", x.bucket),
			goerr.V("object", objName))
	}
	if err := w.Close(); err != nil {
		return nil, goerr.Wrap(err, "failed to finalize upload",
			goerr.V("bucket", x.bucket),
			goerr.V("object", objName))
	}

	location := "gs://" + x.bucket + "/" + objName
	ctxlog.From(ctx).Info("Uploaded downloaded file",
		slog.String("location", location),
		slog.Int("size_bytes", len(data)),
	)

	return &model.DownloadResult{
		FileName: name,
		Location: location,
		Size:     int64(len(data)),
	}, nil
}

// Close releases the storage client
func (x *GCS) Close() error {
	return x.client.Close()
}
