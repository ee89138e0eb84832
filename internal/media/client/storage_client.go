package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"mimo/internal/config"
	apperrors "mimo/internal/errors"
)

// StorageClient forwards uploaded blobs to the media storage service and
// returns the stable retrieval URL. The pipeline never keeps the bytes.
type StorageClient struct {
	httpClient *http.Client
	cfg        config.MediaConfig
}

func New(cfg config.MediaConfig) *StorageClient {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &StorageClient{
		httpClient: &http.Client{Timeout: timeout},
		cfg:        cfg,
	}
}

type uploadResponse struct {
	Success   bool   `json:"success"`
	URL       string `json:"url"`
	AudioPath string `json:"audioPath"`
	VideoPath string `json:"videoPath"`
	Error     string `json:"error"`
}

func (c *StorageClient) Upload(ctx context.Context, kind, filename string, content io.Reader) (string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile(kind, filename)
	if err != nil {
		return "", apperrors.NewInternalError("building upload form", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return "", apperrors.NewInternalError("copying upload content", err)
	}
	if err := writer.Close(); err != nil {
		return "", apperrors.NewInternalError("finalizing upload form", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.UploadURL, &body)
	if err != nil {
		return "", apperrors.NewInternalError("building upload request", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", apperrors.NewUpstreamError(apperrors.UpstreamNetwork, "media storage call failed", "", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", apperrors.NewUpstreamError(apperrors.UpstreamNetwork, "reading media storage response", "", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", apperrors.NewUpstreamError(apperrors.UpstreamBusiness,
			fmt.Sprintf("media storage refused upload (status %d)", resp.StatusCode), string(raw), nil)
	}

	var ur uploadResponse
	if err := json.Unmarshal(raw, &ur); err != nil {
		return "", apperrors.NewUpstreamError(apperrors.UpstreamNetwork, "malformed media storage response", string(raw), err)
	}
	if !ur.Success {
		return "", apperrors.NewUpstreamError(apperrors.UpstreamBusiness, "media storage reported failure", ur.Error, nil)
	}

	// The storage service answers with different field names per kind.
	url := ur.URL
	if url == "" {
		url = ur.AudioPath
	}
	if url == "" {
		url = ur.VideoPath
	}
	if url == "" {
		return "", apperrors.NewUpstreamError(apperrors.UpstreamNetwork, "media storage response has no url", string(raw), nil)
	}

	return url, nil
}
