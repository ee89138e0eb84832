package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"mimo/internal/domain"
	"mimo/internal/dto"
	apperrors "mimo/internal/errors"
)

type DraftService interface {
	PutMessage(ctx context.Context, sessionID string, draft domain.MessageDraft) (*domain.MessageDraft, error)
	PutMedia(ctx context.Context, sessionID string, draft domain.MediaDraft) error
	PutDelivery(ctx context.Context, sessionID string, draft domain.DeliveryDraft) error
	Session(ctx context.Context, sessionID string) (*domain.DraftSession, error)
}

type Controller struct {
	svc    DraftService
	logger *zap.Logger
}

func NewController(svc DraftService, logger *zap.Logger) *Controller {
	return &Controller{svc: svc, logger: logger}
}

func (c *Controller) HandlePutMessage(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	sessionID, ok := c.sessionID(w, r)
	if !ok {
		return
	}

	var req dto.PutMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	draft, err := c.svc.PutMessage(r.Context(), sessionID, domain.MessageDraft{
		From:      req.From,
		To:        req.To,
		Text:      req.Text,
		Format:    domain.FormatSlug(req.Format),
		Anonymous: req.Anonymous,
	})
	if err != nil {
		c.handleServiceError(w, err, logger)
		return
	}

	c.writeJSON(w, http.StatusOK, messageView(draft))
}

func (c *Controller) HandlePutMedia(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	sessionID, ok := c.sessionID(w, r)
	if !ok {
		return
	}

	var req dto.PutMediaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	err := c.svc.PutMedia(r.Context(), sessionID, domain.MediaDraft{
		AudioRef: req.AudioRef,
		VideoRef: req.VideoRef,
	})
	if err != nil {
		c.handleServiceError(w, err, logger)
		return
	}

	c.writeJSON(w, http.StatusOK, map[string]bool{"stored": true})
}

func (c *Controller) HandlePutDelivery(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	sessionID, ok := c.sessionID(w, r)
	if !ok {
		return
	}

	var req dto.PutDeliveryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	draft := domain.DeliveryDraft{
		Kind:          domain.DeliveryKind(req.Kind),
		Date:          req.Date,
		RecipientName: req.RecipientName,
		Address:       req.Address,
		PostalCode:    req.PostalCode,
		Contact:       domain.Contact{Email: req.Email, Phone: req.Phone},
	}
	if req.DigitalMethod != nil {
		m := domain.DigitalMethod(*req.DigitalMethod)
		draft.DigitalMethod = &m
	}
	if req.PhysicalMethod != nil {
		m := domain.PhysicalMethod(*req.PhysicalMethod)
		draft.PhysicalMethod = &m
	}

	if err := c.svc.PutDelivery(r.Context(), sessionID, draft); err != nil {
		c.handleServiceError(w, err, logger)
		return
	}

	c.writeJSON(w, http.StatusOK, map[string]bool{"stored": true})
}

func (c *Controller) HandleGetSession(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	sessionID, ok := c.sessionID(w, r)
	if !ok {
		return
	}

	session, err := c.svc.Session(r.Context(), sessionID)
	if err != nil {
		c.handleServiceError(w, err, logger)
		return
	}

	resp := dto.SessionResponse{Session: sessionID}
	if session.Message != nil {
		resp.Message = messageView(session.Message)
	}
	if session.Media != nil {
		resp.Media = &dto.MediaView{AudioRef: session.Media.AudioRef, VideoRef: session.Media.VideoRef}
	}
	if session.Delivery != nil {
		d := session.Delivery
		view := &dto.DeliveryView{
			Kind:          string(d.Kind),
			Date:          d.Date,
			RecipientName: d.RecipientName,
			Address:       d.Address,
			PostalCode:    d.PostalCode,
			Email:         d.Contact.Email,
			Phone:         d.Contact.Phone,
		}
		if d.DigitalMethod != nil {
			m := string(*d.DigitalMethod)
			view.DigitalMethod = &m
		}
		if d.PhysicalMethod != nil {
			m := string(*d.PhysicalMethod)
			view.PhysicalMethod = &m
		}
		resp.Delivery = view
	}
	if session.Quote != nil {
		resp.Quote = &dto.QuoteView{
			PriceCents:    session.Quote.PriceCents,
			LeadTimeLabel: session.Quote.LeadTimeLabel,
			ServiceName:   session.Quote.ServiceName,
			ResolvedAt:    session.Quote.ResolvedAt,
		}
	}

	c.writeJSON(w, http.StatusOK, resp)
}

func (c *Controller) HandleListFormats(w http.ResponseWriter, r *http.Request) {
	formats := domain.Formats()
	views := make([]dto.FormatView, len(formats))
	for i, f := range formats {
		views[i] = dto.FormatView{
			Slug:           string(f.Slug),
			Label:          f.Label,
			UnitPriceCents: f.UnitPriceCents,
			NeedsAudio:     f.NeedsAudio,
			NeedsVideo:     f.NeedsVideo,
		}
	}
	c.writeJSON(w, http.StatusOK, views)
}

func messageView(m *domain.MessageDraft) *dto.MessageView {
	return &dto.MessageView{
		From:           m.From,
		To:             m.To,
		Text:           m.Text,
		Format:         string(m.Format),
		UnitPriceCents: m.UnitPriceCents,
		Anonymous:      m.Anonymous,
	}
}

func (c *Controller) sessionID(w http.ResponseWriter, r *http.Request) (string, bool) {
	sessionID := strings.TrimSpace(chi.URLParam(r, "session"))
	if sessionID == "" {
		c.writeValidationError(w, "invalid session", apperrors.ValidationDetail{
			Field:   "session",
			Message: "session id is required",
		})
		return "", false
	}
	return sessionID, true
}

func (c *Controller) handleServiceError(w http.ResponseWriter, err error, logger *zap.Logger) {
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
	logger.Error("draft operation failed", zap.Error(err))
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
