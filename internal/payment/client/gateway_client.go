package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"mimo/internal/config"
	apperrors "mimo/internal/errors"
)

type Client struct {
	httpClient *http.Client
	cfg        config.PaymentConfig
	logger     *zap.Logger
}

func New(cfg config.PaymentConfig, logger *zap.Logger) *Client {
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

type CreatePaymentRequest struct {
	AmountCents     int64
	Email           string
	Description     string
	PaymentMethodID string // "pix" or "bolbradesco"
	PayerFirstName  string
	PayerLastName   string
	PayerDocType    string
	PayerDocNumber  string
}

type Payment struct {
	ID           string
	Status       string
	MethodID     string
	QRCode       string
	QRCodeBase64 string
	DocumentURL  string
}

type gatewayPayment struct {
	ID                 json.Number `json:"id"`
	Status             string      `json:"status"`
	PaymentMethodID    string      `json:"payment_method_id"`
	PointOfInteraction struct {
		TransactionData struct {
			QRCode       string `json:"qr_code"`
			QRCodeBase64 string `json:"qr_code_base64"`
		} `json:"transaction_data"`
	} `json:"point_of_interaction"`
	TransactionDetails struct {
		ExternalResourceURL string `json:"external_resource_url"`
	} `json:"transaction_details"`
}

// CreatePayment opens a pending payment at the gateway. Amounts travel
// as decimal units, so cents are converted at this boundary only.
func (c *Client) CreatePayment(ctx context.Context, req CreatePaymentRequest) (*Payment, error) {
	payer := map[string]any{"email": req.Email}
	if req.PayerDocNumber != "" {
		payer["first_name"] = req.PayerFirstName
		payer["last_name"] = req.PayerLastName
		payer["identification"] = map[string]string{
			"type":   req.PayerDocType,
			"number": req.PayerDocNumber,
		}
	}

	body, err := json.Marshal(map[string]any{
		"transaction_amount": float64(req.AmountCents) / 100,
		"description":        req.Description,
		"payment_method_id":  req.PaymentMethodID,
		"payer":              payer,
	})
	if err != nil {
		return nil, apperrors.NewInternalError("encoding payment request", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.cfg.BaseURL+"/v1/payments", bytes.NewReader(body))
	if err != nil {
		return nil, apperrors.NewInternalError("building payment request", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.cfg.AccessToken)
	// The gateway dedupes retried creates by this key.
	httpReq.Header.Set("X-Idempotency-Key", uuid.New().String())

	return c.do(httpReq)
}

// GetPayment fetches the current state of a payment; the reconciler
// trusts this over whatever status the webhook notification carried.
func (c *Client) GetPayment(ctx context.Context, id string) (*Payment, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.cfg.BaseURL+"/v1/payments/"+id, nil)
	if err != nil {
		return nil, apperrors.NewInternalError("building payment lookup", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.cfg.AccessToken)

	return c.do(httpReq)
}

func (c *Client) do(req *http.Request) (*Payment, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.NewUpstreamError(apperrors.UpstreamNetwork, "gateway call failed", "", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.NewUpstreamError(apperrors.UpstreamNetwork, "reading gateway response", "", err)
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, apperrors.NewUpstreamError(apperrors.UpstreamAuth,
			fmt.Sprintf("gateway rejected credentials (status %d)", resp.StatusCode), string(raw), nil)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, apperrors.NewUpstreamError(apperrors.UpstreamBusiness,
			fmt.Sprintf("gateway refused payment (status %d)", resp.StatusCode), string(raw), nil)
	}

	var gp gatewayPayment
	if err := json.Unmarshal(raw, &gp); err != nil {
		return nil, apperrors.NewUpstreamError(apperrors.UpstreamNetwork, "malformed gateway response", string(raw), err)
	}
	if gp.ID.String() == "" {
		return nil, apperrors.NewUpstreamError(apperrors.UpstreamNetwork, "gateway response has no payment id", string(raw), nil)
	}

	return &Payment{
		ID:           gp.ID.String(),
		Status:       gp.Status,
		MethodID:     gp.PaymentMethodID,
		QRCode:       gp.PointOfInteraction.TransactionData.QRCode,
		QRCodeBase64: gp.PointOfInteraction.TransactionData.QRCodeBase64,
		DocumentURL:  gp.TransactionDetails.ExternalResourceURL,
	}, nil
}
