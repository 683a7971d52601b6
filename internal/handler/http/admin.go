package http

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/jengamart/storefront/internal/backend"
	apperrors "github.com/jengamart/storefront/pkg/errors"
)

// maxUploadBytes caps product image uploads at 10 MiB.
const maxUploadBytes = 10 << 20

// MediaAPI is the slice of the backend client the admin handler needs.
type MediaAPI interface {
	UploadProductImage(ctx context.Context, filename string, file io.Reader) (*backend.UploadResult, error)
}

// AdminHandler serves dashboard endpoints restricted to the admin role.
type AdminHandler struct {
	media  MediaAPI
	logger *slog.Logger
}

// NewAdminHandler creates a new admin HTTP handler.
func NewAdminHandler(media MediaAPI, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		media:  media,
		logger: logger,
	}
}

// UploadImage handles POST /api/v1/admin/products/images
func (h *AdminHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, r, apperrors.InvalidInput("invalid multipart form: "+err.Error()))
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		writeError(w, r, apperrors.InvalidInput("image file is required"))
		return
	}
	defer file.Close()

	result, err := h.media.UploadProductImage(r.Context(), header.Filename, file)
	if err != nil {
		writeError(w, r, err)
		return
	}

	h.logger.InfoContext(r.Context(), "product image uploaded",
		slog.String("filename", header.Filename),
		slog.Int64("size", header.Size),
	)

	writeJSON(w, http.StatusCreated, response{Data: result})
}
