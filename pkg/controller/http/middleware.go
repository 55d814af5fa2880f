package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/prodsync/pdgate/pkg/domain/model"
	"github.com/prodsync/pdgate/pkg/domain/types"
)

// LoggingMiddleware returns a middleware that logs HTTP requests and puts a request-scoped
// logger into the request context
func LoggingMiddleware(ctx context.Context) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			logger := ctxlog.From(ctx).With(slog.String("request_id", middleware.GetReqID(r.Context())))

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			defer func() {
				logger.Info("HTTP request",
					"method", r.Method,
					"path", r.URL.Path,
					"status", ww.Status(),
					"duration_ms", time.Since(start).Milliseconds(),
				)
			}()

			next.ServeHTTP(ww, r.WithContext(ctxlog.With(r.Context(), logger)))
		})
	}
}

// validationDetail is one entry of a 422 response
type validationDetail struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		ctxlog.From(ctx).Error("Failed to encode response", "error", err)
	}
}

// writeDetail writes a {"detail": ...} error body
func writeDetail(ctx context.Context, w http.ResponseWriter, status int, detail any) {
	writeJSON(ctx, w, status, map[string]any{"detail": detail})
}

// writeError maps an error kind to its status code and writes the error body
func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	logger := ctxlog.From(ctx)

	var verrs model.ValidationErrors
	switch {
	case goerr.HasTag(err, types.ErrTagValidation) && errors.As(err, &verrs):
		logger.Warn("Invalid request body", "error", err)
		details := make([]validationDetail, 0, len(verrs))
		for _, v := range verrs {
			loc := []string{"body"}
			if v.Field != "" {
				loc = append(loc, v.Field)
			}
			details = append(details, validationDetail{
				Loc:  loc,
				Msg:  v.Reason,
				Type: v.Type,
			})
		}
		writeDetail(ctx, w, http.StatusUnprocessableEntity, details)

	case goerr.HasTag(err, types.ErrTagNotFound):
		logger.Warn("File not found", "error", err)
		writeDetail(ctx, w, http.StatusNotFound, "File not found.")

	default:
		logger.Error("Request failed", "error", err)
		sentry.CaptureException(err)
		writeDetail(ctx, w, http.StatusInternalServerError, err.Error())
	}
}
