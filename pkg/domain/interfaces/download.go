package interfaces

//go:generate moq -out mocks/download_mock.go -pkg mocks . ProductDownloadClient FileSink DownloadUseCase

import (
	"context"

	"github.com/prodsync/pdgate/pkg/domain/model"
)

// ProductDownloadClient is the binding to the remote product download service
type ProductDownloadClient interface {
	// PrepareDownloadFile asks the service to build a file and returns its remote path
	PrepareDownloadFile(ctx context.Context, call *model.PrepareCall) (*model.PrepareResult, error)

	// GetDownloadFile fetches the bytes of a prepared file. An empty slice means no file.
	GetDownloadFile(ctx context.Context, call *model.GetDownloadCall) ([]byte, error)

	// Ping checks that the service endpoint is reachable
	Ping(ctx context.Context) error
}

// FileSink stores downloaded payloads
type FileSink interface {
	// Save writes data under name, replacing any existing file of the same name
	Save(ctx context.Context, name string, data []byte) (*model.DownloadResult, error)
}

// DownloadUseCase translates caller requests into remote operations
type DownloadUseCase interface {
	PrepareDownload(ctx context.Context, req *model.PrepareRequest) (*model.PrepareResponse, error)
	GetDownload(ctx context.Context, req *model.GetDownloadRequest) (*model.DownloadResult, error)
	CheckRemote(ctx context.Context) error
}
