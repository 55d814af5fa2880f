package http

import (
	"context"
	"net/http"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/prodsync/pdgate/pkg/domain/interfaces"
	"github.com/prodsync/pdgate/pkg/domain/model"
	"github.com/prodsync/pdgate/pkg/domain/types"
)

const readinessTimeout = 5 * time.Second

// handleHealth handles health check requests
func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(r.Context(), w, http.StatusOK, &model.HealthStatus{
		Status:  "healthy",
		Service: types.ServiceName,
		Version: types.Version,
	})
}

// handleReady reports whether the remote service answers
func handleReady(uc interfaces.DownloadUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()

		status := &model.HealthStatus{
			Status:  "ready",
			Service: types.ServiceName,
			Version: types.Version,
			Remote:  "reachable",
		}
		code := http.StatusOK

		if err := uc.CheckRemote(ctx); err != nil {
			ctxlog.From(ctx).Warn("Readiness check failed", "error", err)
			status.Status = "unavailable"
			status.Remote = "unreachable"
			code = http.StatusServiceUnavailable
		}

		writeJSON(r.Context(), w, code, status)
	}
}
