package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/m-mizutani/gt"
	controller "github.com/prodsync/pdgate/pkg/controller/http"
	"github.com/prodsync/pdgate/pkg/domain/model"
)

func TestHealthEndpoint(t *testing.T) {
	ctx := context.Background()

	server, err := controller.NewServer(
		ctx,
		&mockDownloadUseCase{},
		controller.WithAddr("localhost:0"),
	)
	if err != nil {
		t.Fatalf("Failed to create server: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	server.Handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Status code = %v, want %v", w.Code, http.StatusOK)
	}

	var status model.HealthStatus
	if err := json.NewDecoder(w.Body).Decode(&status); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if status.Status != "healthy" {
		t.Errorf("Status = %v, want healthy", status.Status)
	}

	if status.Service != "pdgate" {
		t.Errorf("Service = %v, want pdgate", status.Service)
	}

	if status.Version == "" {
		t.Error("Version should not be empty")
	}
}

func TestReadyEndpoint(t *testing.T) {
	tests := []struct {
		name       string
		pingErr    error
		wantStatus int
		wantRemote string
	}{
		{
			name:       "Remote reachable",
			wantStatus: http.StatusOK,
			wantRemote: "reachable",
		},
		{
			name:       "Remote unreachable",
			pingErr:    errors.New("dial tcp: connection refused"),
			wantStatus: http.StatusServiceUnavailable,
			wantRemote: "unreachable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockDownloadUseCase{
				checkRemoteFunc: func(ctx context.Context) error { return tt.pingErr },
			}
			server, err := controller.NewServer(context.Background(), uc)
			gt.NoError(t, err)

			w := httptest.NewRecorder()
			server.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
			gt.Equal(t, w.Code, tt.wantStatus)

			var status model.HealthStatus
			gt.NoError(t, json.NewDecoder(w.Body).Decode(&status))
			gt.Equal(t, status.Remote, tt.wantRemote)
		})
	}
}

func TestOpenAPIEndpoint(t *testing.T) {
	server, err := controller.NewServer(context.Background(), &mockDownloadUseCase{})
	gt.NoError(t, err)

	w := httptest.NewRecorder()
	server.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/openapi.json", nil))
	gt.Equal(t, w.Code, http.StatusOK)

	var doc map[string]any
	gt.NoError(t, json.NewDecoder(w.Body).Decode(&doc))
	paths, ok := doc["paths"].(map[string]any)
	gt.True(t, ok)
	gt.True(t, paths["/prepare-download"] != nil)
	gt.True(t, paths["/get-download-file"] != nil)
}
