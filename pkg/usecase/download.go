package usecase

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/prodsync/pdgate/pkg/domain/interfaces"
	"github.com/prodsync/pdgate/pkg/domain/model"
	"github.com/prodsync/pdgate/pkg/domain/types"
)

type downloadUseCase struct {
	client interfaces.ProductDownloadClient
	sink   interfaces.FileSink
}

// NewDownload creates a new instance of DownloadUseCase
func NewDownload(client interfaces.ProductDownloadClient, sink interfaces.FileSink) interfaces.DownloadUseCase {
	return &downloadUseCase{
		client: client,
		sink:   sink,
	}
}

// remoteError wraps a failed remote call so that its message reads "Error calling <op>: <cause>"
func remoteError(err error, op types.Operation) error {
	return goerr.Wrap(err, "Error calling "+op.String(),
		goerr.T(types.ErrTagRemoteInvocation),
		goerr.V("operation", op.String()),
	)
}

// PrepareDownload forwards the request to PrepareDownloadFile. Every call reaches the remote
// service; results are never cached.
func (uc *downloadUseCase) PrepareDownload(ctx context.Context, req *model.PrepareRequest) (*model.PrepareResponse, error) {
	logger := ctxlog.From(ctx)

	logger.Info("Preparing download",
		slog.String("user", req.User),
		slog.String("product", req.Product),
		slog.String("publication_year", req.PublicationYear),
		slog.String("language", req.Language),
		slog.String("start_date", req.StartDate.ISOFormat()),
		slog.String("end_date", req.EndDate.ISOFormat()),
	)

	result, err := uc.client.PrepareDownloadFile(ctx, &model.PrepareCall{
		User:            req.User,
		Password:        req.Password,
		Product:         req.Product,
		PublicationYear: req.PublicationYear,
		Language:        req.Language,
		StartDate:       req.StartDate.ISOFormat(),
		EndDate:         req.EndDate.ISOFormat(),
	})
	if err != nil {
		return nil, remoteError(err, types.OpPrepareDownloadFile)
	}

	errMessages := result.ErrorMessage
	if errMessages == nil {
		errMessages = []string{}
	}

	logger.Info("Download prepared",
		slog.String("file_path", result.FilePath),
		slog.Int("error_messages", len(errMessages)),
	)

	return &model.PrepareResponse{
		ErrorMessage: errMessages,
		FilePath:     result.FilePath,
	}, nil
}

// GetDownload fetches a prepared file and hands it to the sink
func (uc *downloadUseCase) GetDownload(ctx context.Context, req *model.GetDownloadRequest) (*model.DownloadResult, error) {
	logger := ctxlog.From(ctx)

	logger.Info("Fetching download",
		slog.String("user", req.User),
		slog.String("file_path", req.FilePath),
	)

	data, err := uc.client.GetDownloadFile(ctx, &model.GetDownloadCall{
		User:     req.User,
		Password: req.Password,
		FilePath: req.FilePath,
	})
	if err != nil {
		return nil, remoteError(err, types.OpGetDownloadFile)
	}

	if len(data) == 0 {
		logger.Warn("Remote service returned no file", slog.String("file_path", req.FilePath))
		return nil, goerr.New("File not found.",
			goerr.T(types.ErrTagNotFound),
			goerr.V("file_path", req.FilePath),
		)
	}

	name := model.DownloadedFileName(req.FilePath)
	result, err := uc.sink.Save(ctx, name, data)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to store downloaded file", goerr.V("name", name))
	}

	return result, nil
}

// CheckRemote reports whether the remote service endpoint is reachable
func (uc *downloadUseCase) CheckRemote(ctx context.Context) error {
	if err := uc.client.Ping(ctx); err != nil {
		return goerr.Wrap(err, "remote service is unreachable", goerr.T(types.ErrTagRemoteInvocation))
	}
	return nil
}
