package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"mimo/internal/config"
	apperrors "mimo/internal/errors"
)

// Fixed package profile: the gift envelope is a business constant, not
// user input.
const (
	productCode = "03298" // PAC under contract
	originCEP   = "79080705"
	weightGrams = "300"
	objectType  = "1"
	lengthCM    = "20"
	widthCM     = "15"
	heightCM    = "10"
	batchID     = "001"
)

type Client struct {
	httpClient *http.Client
	cfg        config.ShippingConfig
	logger     *zap.Logger
}

func New(cfg config.ShippingConfig, logger *zap.Logger) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		cfg:        cfg,
		logger:     logger,
	}
}

type tokenResponse struct {
	Token string          `json:"token"`
	APIs  json.RawMessage `json:"apis"`
}

// Authenticate exchanges the contract number for a bearer token using
// basic auth. A non-2xx answer is an upstream auth failure carrying the
// provider's raw body for diagnostics.
func (c *Client) Authenticate(ctx context.Context) (string, error) {
	body, err := json.Marshal(map[string]string{"numero": c.cfg.Contract})
	if err != nil {
		return "", apperrors.NewInternalError("encoding token request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.cfg.BaseURL+"/token/v1/autentica/contrato", bytes.NewReader(body))
	if err != nil {
		return "", apperrors.NewInternalError("building token request", err)
	}
	req.SetBasicAuth(c.cfg.User, c.cfg.Password)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", apperrors.NewUpstreamError(apperrors.UpstreamNetwork, "carrier token call failed", "", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", apperrors.NewUpstreamError(apperrors.UpstreamNetwork, "reading carrier token response", "", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", apperrors.NewUpstreamError(apperrors.UpstreamAuth,
			fmt.Sprintf("carrier rejected credentials (status %d)", resp.StatusCode), string(raw), nil)
	}

	var tr tokenResponse
	if err := json.Unmarshal(raw, &tr); err != nil || tr.Token == "" {
		return "", apperrors.NewUpstreamError(apperrors.UpstreamNetwork, "malformed carrier token response", string(raw), err)
	}

	c.logger.Debug("carrier token obtained", zap.ByteString("apis", tr.APIs))
	return tr.Token, nil
}

// Price runs the national pricing call for the fixed package profile and
// returns the raw body; the resolver normalizes the provider's unstable
// response shapes.
func (c *Client) Price(ctx context.Context, token, destinationCEP string) ([]byte, error) {
	payload := map[string]any{
		"idLote": batchID,
		"parametrosProduto": []map[string]string{{
			"coProduto":   productCode,
			"nuContrato":  c.cfg.Contract,
			"cepOrigem":   originCEP,
			"cepDestino":  destinationCEP,
			"psObjeto":    weightGrams,
			"tpObjeto":    objectType,
			"comprimento": lengthCM,
			"largura":     widthCM,
			"altura":      heightCM,
		}},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, apperrors.NewInternalError("encoding price request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.cfg.BaseURL+"/preco/v3/nacional", bytes.NewReader(body))
	if err != nil {
		return nil, apperrors.NewInternalError("building price request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.NewUpstreamError(apperrors.UpstreamNetwork, "carrier price call failed", "", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.NewUpstreamError(apperrors.UpstreamNetwork, "reading carrier price response", "", err)
	}

	return raw, nil
}
