package http

import (
	"net/http"

	"github.com/prodsync/pdgate/pkg/domain/interfaces"
	"github.com/prodsync/pdgate/pkg/domain/model"
)

// DownloadHandler serves the prepare and get-download endpoints
type DownloadHandler struct {
	uc        interfaces.DownloadUseCase
	validator *validator
}

// PrepareDownload handles POST /prepare-download and /prepare_download_file
func (h *DownloadHandler) PrepareDownload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.PrepareRequest
	if err := h.validator.decode(w, r, prepareRequestSchema, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	resp, err := h.uc.PrepareDownload(ctx, &req)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, resp)
}

// GetDownloadFile handles POST /get-download-file
func (h *DownloadHandler) GetDownloadFile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.GetDownloadRequest
	if err := h.validator.decode(w, r, getDownloadRequestSchema, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.uc.GetDownload(ctx, &req)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, map[string]string{
		"message": result.Message(),
	})
}
