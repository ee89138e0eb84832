package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"mimo/internal/dto"
	apperrors "mimo/internal/errors"
)

type CheckoutUseCase interface {
	Checkout(ctx context.Context, req dto.CheckoutRequest) (*dto.CheckoutResponse, error)
}

type CheckoutController struct {
	useCase CheckoutUseCase
	logger  *zap.Logger
}

func NewCheckoutController(useCase CheckoutUseCase, logger *zap.Logger) *CheckoutController {
	return &CheckoutController{useCase: useCase, logger: logger}
}

func (c *CheckoutController) HandleCheckout(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	var req dto.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	if err := c.validateCheckoutRequest(req); err != nil {
		ve, _ := apperrors.IsValidationError(err)
		c.writeValidationError(w, ve.Message, ve.Details...)
		return
	}

	resp, err := c.useCase.Checkout(r.Context(), req)
	if err != nil {
		c.handleUseCaseError(w, err, logger)
		return
	}

	resp.TraceID = traceID
	c.writeJSON(w, http.StatusCreated, resp)
}

func (c *CheckoutController) validateCheckoutRequest(req dto.CheckoutRequest) error {
	var details []apperrors.ValidationDetail

	if strings.TrimSpace(req.Session) == "" {
		details = append(details, apperrors.ValidationDetail{
			Field:   "session",
			Message: "session is required",
		})
	}
	if strings.TrimSpace(req.Method) == "" {
		details = append(details, apperrors.ValidationDetail{
			Field:   "method",
			Message: "method is required",
		})
	}
	if req.Email != "" && !strings.Contains(req.Email, "@") {
		details = append(details, apperrors.ValidationDetail{
			Field:   "email",
			Message: "email must be a valid address",
		})
	}

	if len(details) > 0 {
		return apperrors.NewValidationError("validation failed", details...)
	}
	return nil
}

func (c *CheckoutController) handleUseCaseError(w http.ResponseWriter, err error, logger *zap.Logger) {
	if ve, ok := apperrors.IsValidationError(err); ok {
		c.writeValidationError(w, ve.Message, ve.Details...)
		return
	}
	if ce, ok := apperrors.IsConflictError(err); ok {
		c.writeJSON(w, http.StatusConflict, map[string]string{
			"error":   "CONFLICT",
			"message": ce.Message,
		})
		return
	}
	if ue, ok := apperrors.IsUpstreamError(err); ok {
		// Provider details go to the log; the user gets a retryable
		// generic failure.
		logger.Error("payment dispatch failed",
			zap.String("kind", string(ue.Kind)),
			zap.String("diagnostic", ue.Diagnostic),
			zap.Error(err))
		c.writeJSON(w, http.StatusBadGateway, map[string]string{
			"error":   "PAYMENT_UNAVAILABLE",
			"message": "Erro ao processar pagamento. Verifique os dados e tente novamente.",
		})
		return
	}

	logger.Error("unexpected checkout error", zap.Error(err))
	c.writeJSON(w, http.StatusInternalServerError, map[string]string{
		"error":   "INTERNAL_ERROR",
		"message": "an unexpected error occurred",
	})
}

type validationErrorResponse struct {
	Error   string                       `json:"error"`
	Message string                       `json:"message"`
	Details []apperrors.ValidationDetail `json:"details"`
}

func (c *CheckoutController) writeValidationError(w http.ResponseWriter, message string, details ...apperrors.ValidationDetail) {
	c.writeJSON(w, http.StatusBadRequest, validationErrorResponse{
		Error:   "VALIDATION_ERROR",
		Message: message,
		Details: details,
	})
}

func (c *CheckoutController) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
