package controller

import (
	"context"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"mimo/internal/dto"
)

type Reconciler interface {
	HandleNotification(ctx context.Context, n dto.PaymentNotification)
}

// WebhookController receives the gateway's payment notifications. It
// answers 200 no matter what happens inside, because any error status
// makes the gateway redeliver indefinitely.
type WebhookController struct {
	reconciler Reconciler
	logger     *zap.Logger
}

func NewWebhookController(reconciler Reconciler, logger *zap.Logger) *WebhookController {
	return &WebhookController{reconciler: reconciler, logger: logger}
}

type webhookBody struct {
	Type string `json:"type"`
	Data struct {
		ID string `json:"id"`
	} `json:"data"`
}

func (c *WebhookController) HandleNotification(w http.ResponseWriter, r *http.Request) {
	n := dto.PaymentNotification{
		Type: r.URL.Query().Get("type"),
	}
	// The gateway sends the id as "data.id" or "id" depending on the
	// notification flavor.
	n.ID = r.URL.Query().Get("data.id")
	if n.ID == "" {
		n.ID = r.URL.Query().Get("id")
	}

	// Newer notification versions carry the same fields in the body.
	if n.ID == "" || n.Type == "" {
		var body webhookBody
		if err := json.NewDecoder(r.Body).Decode(&body); err == nil {
			if n.Type == "" {
				n.Type = body.Type
			}
			if n.ID == "" {
				n.ID = body.Data.ID
			}
		}
	}

	c.logger.Info("payment notification received",
		zap.String("id", n.ID), zap.String("type", n.Type))

	c.reconciler.HandleNotification(r.Context(), n)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(map[string]bool{"received": true}); err != nil {
		c.logger.Error("failed to encode webhook ack", zap.Error(err))
	}
}
