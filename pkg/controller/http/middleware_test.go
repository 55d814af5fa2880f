package http_test

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/gt"
	controller "github.com/prodsync/pdgate/pkg/controller/http"
	"github.com/prodsync/pdgate/pkg/infra/sink"
	"github.com/prodsync/pdgate/pkg/infra/soap"
	"github.com/prodsync/pdgate/pkg/usecase"
)

func TestLoggingMiddleware(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	ctx := ctxlog.With(context.Background(), logger)

	var inner *slog.Logger
	handler := controller.LoggingMiddleware(ctx)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		inner = ctxlog.From(r.Context())
		inner.Info("handling")
		w.WriteHeader(http.StatusTeapot)
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	gt.Equal(t, w.Code, http.StatusTeapot)
	gt.True(t, inner != nil)
	gt.S(t, buf.String()).Contains(`"msg":"handling"`)
	gt.S(t, buf.String()).Contains(`"msg":"HTTP request"`)
	gt.S(t, buf.String()).Contains(`"path":"/health"`)
	gt.S(t, buf.String()).Contains(`"status":418`)
}

func TestPrepareDownload_SOAPFaultDetail(t *testing.T) {
	remote := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/xml; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`<s:Envelope xmlns:s="http://schemas.xmlsoap.org/soap/envelope/"><s:Body>` +
			`<s:Fault><faultcode>s:Client</faultcode><faultstring xml:lang="en-US">Invalid credentials</faultstring></s:Fault>` +
			`</s:Body></s:Envelope>`))
	}))
	defer remote.Close()

	uc := usecase.NewDownload(soap.NewClient(soap.Config{Endpoint: remote.URL}), sink.NewLocal(t.TempDir()))
	server, err := controller.NewServer(context.Background(), uc)
	gt.NoError(t, err)

	w := post(server, "/prepare-download", validPrepareBody)
	gt.Equal(t, w.Code, http.StatusInternalServerError)
	gt.Equal(t, decodeDetail(t, w), "Error calling PrepareDownloadFile: Invalid credentials")

	w = post(server, "/get-download-file", `{"User":"a","Password":"b","FilePath":"x/y.pdf"}`)
	gt.Equal(t, w.Code, http.StatusInternalServerError)
	gt.Equal(t, decodeDetail(t, w), "Error calling GetDownloadFile: Invalid credentials")
}
