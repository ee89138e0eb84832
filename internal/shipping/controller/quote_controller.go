package controller

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"mimo/internal/domain"
	"mimo/internal/dto"
	apperrors "mimo/internal/errors"
)

type QuoteResolver interface {
	Quote(ctx context.Context, postalCode string) domain.QuoteOutcome
}

type QuoteStore interface {
	SetQuote(ctx context.Context, sessionID string, quote domain.ShippingQuote) error
}

type Controller struct {
	resolver QuoteResolver
	store    QuoteStore
	logger   *zap.Logger
}

func NewController(resolver QuoteResolver, store QuoteStore, logger *zap.Logger) *Controller {
	return &Controller{resolver: resolver, store: store, logger: logger}
}

// User-facing texts; provider diagnostics stay in the logs.
const (
	msgUnstable   = "O serviço de frete está instável. Tente novamente."
	msgNotEnabled = "Cálculo de frete pendente de liberação comercial."
)

func (c *Controller) HandleQuote(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	var req dto.QuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	outcome := c.resolver.Quote(r.Context(), req.PostalCode)

	switch outcome.Status {
	case domain.QuoteNotReady:
		c.writeJSON(w, http.StatusOK, dto.QuoteResponse{Status: string(domain.QuoteNotReady)})

	case domain.QuoteResolved:
		quote := *outcome.Quote
		if req.Session != "" {
			if err := c.store.SetQuote(r.Context(), req.Session, quote); err != nil {
				// The quote is still useful to the caller even if the
				// session write failed.
				logger.Error("storing shipping quote failed",
					zap.String("session", req.Session), zap.Error(err))
			}
		}
		c.writeJSON(w, http.StatusOK, dto.QuoteResponse{
			Status:        string(domain.QuoteResolved),
			PriceCents:    quote.PriceCents,
			LeadTimeLabel: quote.LeadTimeLabel,
			ServiceName:   quote.ServiceName,
		})

	case domain.QuoteUnavailable:
		msg := msgUnstable
		if outcome.Reason == domain.ReasonNotEnabled {
			msg = msgNotEnabled
		}
		logger.Warn("shipping quote unavailable",
			zap.String("reason", string(outcome.Reason)),
			zap.String("diagnostic", outcome.Diagnostic))
		c.writeJSON(w, http.StatusOK, dto.QuoteResponse{
			Status:  string(domain.QuoteUnavailable),
			Reason:  string(outcome.Reason),
			Message: msg,
		})
	}
}

type validationErrorResponse struct {
	Error   string                       `json:"error"`
	Message string                       `json:"message"`
	Details []apperrors.ValidationDetail `json:"details"`
}

func (c *Controller) writeValidationError(w http.ResponseWriter, message string, details ...apperrors.ValidationDetail) {
	c.writeJSON(w, http.StatusBadRequest, validationErrorResponse{
		Error:   "VALIDATION_ERROR",
		Message: message,
		Details: details,
	})
}

func (c *Controller) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
