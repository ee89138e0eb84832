package controller

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"mimo/internal/dto"
	apperrors "mimo/internal/errors"
)

type MediaStorage interface {
	Upload(ctx context.Context, kind, filename string, content io.Reader) (string, error)
}

type DraftRegistrar interface {
	RegisterMediaRef(ctx context.Context, sessionID, kind, url string) error
}

type Controller struct {
	storage  MediaStorage
	drafts   DraftRegistrar
	maxBytes int64
	logger   *zap.Logger
}

func NewController(storage MediaStorage, drafts DraftRegistrar, maxBytes int64, logger *zap.Logger) *Controller {
	return &Controller{storage: storage, drafts: drafts, maxBytes: maxBytes, logger: logger}
}

// HandleUpload accepts one multipart file, hands it to media storage and
// records the returned URL into the session's media fragment.
func (c *Controller) HandleUpload(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	r.Body = http.MaxBytesReader(w, r.Body, c.maxBytes)
	if err := r.ParseMultipartForm(c.maxBytes); err != nil {
		c.writeJSON(w, http.StatusBadRequest, map[string]string{
			"error":   "VALIDATION_ERROR",
			"message": "request must be multipart and within the size limit",
		})
		return
	}

	sessionID := r.FormValue("session")
	kind := r.FormValue("kind")
	if sessionID == "" || (kind != "audio" && kind != "video") {
		c.writeJSON(w, http.StatusBadRequest, map[string]string{
			"error":   "VALIDATION_ERROR",
			"message": "session and kind (audio|video) are required",
		})
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		c.writeJSON(w, http.StatusBadRequest, map[string]string{
			"error":   "VALIDATION_ERROR",
			"message": "file is required",
		})
		return
	}
	defer file.Close()

	url, err := c.storage.Upload(r.Context(), kind, header.Filename, file)
	if err != nil {
		if ue, ok := apperrors.IsUpstreamError(err); ok {
			logger.Error("media upload failed",
				zap.String("kind", kind),
				zap.String("diagnostic", ue.Diagnostic),
				zap.Error(err))
			c.writeJSON(w, http.StatusBadGateway, map[string]string{
				"error":   "STORAGE_UNAVAILABLE",
				"message": "Falha no upload. Tente novamente.",
			})
			return
		}
		logger.Error("unexpected media upload error", zap.Error(err))
		c.writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error":   "INTERNAL_ERROR",
			"message": "an unexpected error occurred",
		})
		return
	}

	if err := c.drafts.RegisterMediaRef(r.Context(), sessionID, kind, url); err != nil {
		if ce, ok := apperrors.IsConflictError(err); ok {
			c.writeJSON(w, http.StatusConflict, map[string]string{
				"error":   "CONFLICT",
				"message": ce.Message,
			})
			return
		}
		logger.Error("registering media ref failed", zap.Error(err))
		c.writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error":   "INTERNAL_ERROR",
			"message": "an unexpected error occurred",
		})
		return
	}

	c.writeJSON(w, http.StatusOK, dto.MediaUploadResponse{Kind: kind, URL: url})
}

func (c *Controller) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
