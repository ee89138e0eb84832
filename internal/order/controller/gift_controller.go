package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"mimo/internal/domain"
	"mimo/internal/dto"
	apperrors "mimo/internal/errors"
)

type OrderReader interface {
	FindByID(ctx context.Context, id uint) (*domain.Order, error)
}

// GiftController serves the reveal pages: the content portion of a paid
// order, nothing financial or logistic.
type GiftController struct {
	orders OrderReader
	logger *zap.Logger
}

func NewGiftController(orders OrderReader, logger *zap.Logger) *GiftController {
	return &GiftController{orders: orders, logger: logger}
}

func (c *GiftController) HandleGetGift(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil {
		c.writeJSON(w, http.StatusBadRequest, map[string]string{
			"error":   "VALIDATION_ERROR",
			"message": "id must be a positive integer",
		})
		return
	}

	order, err := c.orders.FindByID(r.Context(), uint(id))
	if err != nil {
		if _, ok := apperrors.IsNotFoundError(err); ok {
			c.writeJSON(w, http.StatusNotFound, map[string]string{
				"error":   "NOT_FOUND",
				"message": "gift not found",
			})
			return
		}
		c.logger.Error("gift lookup failed", zap.Uint64("id", id), zap.Error(err))
		c.writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error":   "INTERNAL_ERROR",
			"message": "an unexpected error occurred",
		})
		return
	}

	// Unpaid gifts stay closed.
	if order.Financial.PaymentStatus != domain.PaymentStatusPaid {
		c.writeJSON(w, http.StatusNotFound, map[string]string{
			"error":   "NOT_FOUND",
			"message": "gift not found",
		})
		return
	}

	c.writeJSON(w, http.StatusOK, dto.GiftResponse{
		From:     order.Content.From,
		To:       order.Content.To,
		Text:     order.Content.Text,
		Format:   string(order.Content.FormatSlug),
		AudioRef: order.Content.AudioRef,
		VideoRef: order.Content.VideoRef,
	})
}

func (c *GiftController) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
