package usecase_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/prodsync/pdgate/pkg/domain/model"
	"github.com/prodsync/pdgate/pkg/domain/types"
	"github.com/prodsync/pdgate/pkg/infra/sink"
	"github.com/prodsync/pdgate/pkg/usecase"
)

// MockProductDownloadClient is a mock implementation of ProductDownloadClient
type MockProductDownloadClient struct {
	prepareFunc  func(ctx context.Context, call *model.PrepareCall) (*model.PrepareResult, error)
	downloadFunc func(ctx context.Context, call *model.GetDownloadCall) ([]byte, error)
	pingFunc     func(ctx context.Context) error

	prepareCalls  []*model.PrepareCall
	downloadCalls []*model.GetDownloadCall
}

func (m *MockProductDownloadClient) PrepareDownloadFile(ctx context.Context, call *model.PrepareCall) (*model.PrepareResult, error) {
	m.prepareCalls = append(m.prepareCalls, call)
	if m.prepareFunc != nil {
		return m.prepareFunc(ctx, call)
	}
	return nil, errors.New("mock not configured")
}

func (m *MockProductDownloadClient) GetDownloadFile(ctx context.Context, call *model.GetDownloadCall) ([]byte, error) {
	m.downloadCalls = append(m.downloadCalls, call)
	if m.downloadFunc != nil {
		return m.downloadFunc(ctx, call)
	}
	return nil, errors.New("mock not configured")
}

func (m *MockProductDownloadClient) Ping(ctx context.Context) error {
	if m.pingFunc != nil {
		return m.pingFunc(ctx)
	}
	return nil
}

// failingSink always fails to save
type failingSink struct{}

func (failingSink) Save(ctx context.Context, name string, data []byte) (*model.DownloadResult, error) {
	return nil, errors.New("disk full")
}

func mustTimestamp(t *testing.T, s string) model.Timestamp {
	t.Helper()
	ts, err := model.ParseTimestamp(s)
	gt.NoError(t, err)
	return ts
}

func newPrepareRequest(t *testing.T) *model.PrepareRequest {
	return &model.PrepareRequest{
		User:            "alice",
		Password:        "s3cret",
		Product:         "VINLINK",
		PublicationYear: "2024",
		Language:        "EN",
		StartDate:       mustTimestamp(t, "2024-01-15T10:30:00Z"),
		EndDate:         mustTimestamp(t, "2024-02-01T00:00:00.250"),
	}
}

func TestDownloadUseCase_PrepareDownload(t *testing.T) {
	ctx := context.Background()
	mockClient := &MockProductDownloadClient{
		prepareFunc: func(ctx context.Context, call *model.PrepareCall) (*model.PrepareResult, error) {
			return &model.PrepareResult{
				ErrorMessage: []string{"warning one", "warning two"},
				FilePath:     "exports/2024/report.zip",
			}, nil
		},
	}
	uc := usecase.NewDownload(mockClient, sink.NewLocal(t.TempDir()))

	resp, err := uc.PrepareDownload(ctx, newPrepareRequest(t))
	gt.NoError(t, err)

	want := &model.PrepareResponse{
		ErrorMessage: []string{"warning one", "warning two"},
		FilePath:     "exports/2024/report.zip",
	}
	if diff := cmp.Diff(want, resp); diff != "" {
		t.Errorf("PrepareDownload() mismatch (-want +got):\n%s", diff)
	}

	gt.A(t, mockClient.prepareCalls).Length(1)
	wantCall := &model.PrepareCall{
		User:            "alice",
		Password:        "s3cret",
		Product:         "VINLINK",
		PublicationYear: "2024",
		Language:        "EN",
		StartDate:       "2024-01-15T10:30:00+00:00",
		EndDate:         "2024-02-01T00:00:00.250000",
	}
	if diff := cmp.Diff(wantCall, mockClient.prepareCalls[0]); diff != "" {
		t.Errorf("remote call mismatch (-want +got):\n%s", diff)
	}
}

func TestDownloadUseCase_PrepareDownload_NilErrorMessage(t *testing.T) {
	mockClient := &MockProductDownloadClient{
		prepareFunc: func(ctx context.Context, call *model.PrepareCall) (*model.PrepareResult, error) {
			return &model.PrepareResult{FilePath: "f.zip"}, nil
		},
	}
	uc := usecase.NewDownload(mockClient, sink.NewLocal(t.TempDir()))

	resp, err := uc.PrepareDownload(context.Background(), newPrepareRequest(t))
	gt.NoError(t, err)
	gt.Value(t, resp.ErrorMessage).NotNil()
	gt.A(t, resp.ErrorMessage).Length(0)
}

func TestDownloadUseCase_PrepareDownload_NotMemoized(t *testing.T) {
	mockClient := &MockProductDownloadClient{
		prepareFunc: func(ctx context.Context, call *model.PrepareCall) (*model.PrepareResult, error) {
			return &model.PrepareResult{FilePath: "f.zip"}, nil
		},
	}
	uc := usecase.NewDownload(mockClient, sink.NewLocal(t.TempDir()))
	req := newPrepareRequest(t)

	_, err := uc.PrepareDownload(context.Background(), req)
	gt.NoError(t, err)
	_, err = uc.PrepareDownload(context.Background(), req)
	gt.NoError(t, err)

	gt.A(t, mockClient.prepareCalls).Length(2)
}

func TestDownloadUseCase_PrepareDownload_RemoteFailure(t *testing.T) {
	mockClient := &MockProductDownloadClient{
		prepareFunc: func(ctx context.Context, call *model.PrepareCall) (*model.PrepareResult, error) {
			return nil, errors.New("connection refused")
		},
	}
	uc := usecase.NewDownload(mockClient, sink.NewLocal(t.TempDir()))

	_, err := uc.PrepareDownload(context.Background(), newPrepareRequest(t))
	gt.Error(t, err)
	gt.Equal(t, err.Error(), "Error calling PrepareDownloadFile: connection refused")
	gt.True(t, goerr.HasTag(err, types.ErrTagRemoteInvocation))
}

func TestDownloadUseCase_GetDownload(t *testing.T) {
	dir := t.TempDir()
	payload := []byte("%PDF-1.4 report")
	mockClient := &MockProductDownloadClient{
		downloadFunc: func(ctx context.Context, call *model.GetDownloadCall) ([]byte, error) {
			return payload, nil
		},
	}
	uc := usecase.NewDownload(mockClient, sink.NewLocal(dir))

	result, err := uc.GetDownload(context.Background(), &model.GetDownloadRequest{
		User:     "alice",
		Password: "s3cret",
		FilePath: "a/b/report.pdf",
	})
	gt.NoError(t, err)
	gt.Equal(t, result.FileName, "downloaded_report.pdf")
	gt.Equal(t, result.Message(), "File saved as 'downloaded_report.pdf'")

	data, err := os.ReadFile(filepath.Join(dir, "downloaded_report.pdf"))
	gt.NoError(t, err)
	gt.Equal(t, string(data), string(payload))

	gt.A(t, mockClient.downloadCalls).Length(1)
	gt.Equal(t, *mockClient.downloadCalls[0], model.GetDownloadCall{
		User:     "alice",
		Password: "s3cret",
		FilePath: "a/b/report.pdf",
	})
}

func TestDownloadUseCase_GetDownload_Empty(t *testing.T) {
	for _, payload := range [][]byte{nil, {}} {
		dir := t.TempDir()
		mockClient := &MockProductDownloadClient{
			downloadFunc: func(ctx context.Context, call *model.GetDownloadCall) ([]byte, error) {
				return payload, nil
			},
		}
		uc := usecase.NewDownload(mockClient, sink.NewLocal(dir))

		_, err := uc.GetDownload(context.Background(), &model.GetDownloadRequest{FilePath: "a/b/report.pdf"})
		gt.Error(t, err)
		gt.True(t, goerr.HasTag(err, types.ErrTagNotFound))
		gt.False(t, goerr.HasTag(err, types.ErrTagRemoteInvocation))

		entries, err := os.ReadDir(dir)
		gt.NoError(t, err)
		gt.A(t, entries).Length(0)
	}
}

func TestDownloadUseCase_GetDownload_RemoteFailure(t *testing.T) {
	mockClient := &MockProductDownloadClient{
		downloadFunc: func(ctx context.Context, call *model.GetDownloadCall) ([]byte, error) {
			return nil, errors.New("soap fault: invalid user")
		},
	}
	uc := usecase.NewDownload(mockClient, sink.NewLocal(t.TempDir()))

	_, err := uc.GetDownload(context.Background(), &model.GetDownloadRequest{FilePath: "x"})
	gt.Error(t, err)
	gt.Equal(t, err.Error(), "Error calling GetDownloadFile: soap fault: invalid user")
	gt.True(t, goerr.HasTag(err, types.ErrTagRemoteInvocation))
}

func TestDownloadUseCase_GetDownload_SinkFailure(t *testing.T) {
	mockClient := &MockProductDownloadClient{
		downloadFunc: func(ctx context.Context, call *model.GetDownloadCall) ([]byte, error) {
			return []byte("data"), nil
		},
	}
	uc := usecase.NewDownload(mockClient, failingSink{})

	_, err := uc.GetDownload(context.Background(), &model.GetDownloadRequest{FilePath: "x"})
	gt.Error(t, err)
	gt.False(t, goerr.HasTag(err, types.ErrTagRemoteInvocation))
	gt.False(t, goerr.HasTag(err, types.ErrTagNotFound))
}

func TestDownloadUseCase_CheckRemote(t *testing.T) {
	mockClient := &MockProductDownloadClient{}
	uc := usecase.NewDownload(mockClient, sink.NewLocal(t.TempDir()))
	gt.NoError(t, uc.CheckRemote(context.Background()))

	mockClient.pingFunc = func(ctx context.Context) error { return errors.New("timeout") }
	gt.Error(t, uc.CheckRemote(context.Background()))
}
