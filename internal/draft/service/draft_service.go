package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"mimo/internal/domain"
	apperrors "mimo/internal/errors"
)

// Repository is the narrow persistence contract behind the wizard: plain
// byte values addressed by session and fragment type. A nil value from
// Get means the fragment does not exist.
type Repository interface {
	Get(ctx context.Context, sessionID string, fragment domain.FragmentType) ([]byte, error)
	Put(ctx context.Context, sessionID string, fragment domain.FragmentType, value []byte) error
	Clear(ctx context.Context, sessionID string, fragments ...domain.FragmentType) error
}

// Service owns the step-gating rules: a fragment write is refused when
// its required predecessor is missing, and later steps never mutate
// earlier fragments.
type Service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

const anonymousSender = "Anônimo"

func (s *Service) PutMessage(ctx context.Context, sessionID string, draft domain.MessageDraft) (*domain.MessageDraft, error) {
	var details []apperrors.ValidationDetail
	if strings.TrimSpace(draft.To) == "" {
		details = append(details, apperrors.ValidationDetail{Field: "to", Message: "to is required"})
	}
	if strings.TrimSpace(draft.Text) == "" {
		details = append(details, apperrors.ValidationDetail{Field: "text", Message: "text is required"})
	}
	format, ok := domain.FormatBySlug(draft.Format)
	if !ok {
		details = append(details, apperrors.ValidationDetail{Field: "format", Message: "unknown format"})
	}
	if len(details) > 0 {
		return nil, apperrors.NewValidationError("invalid message draft", details...)
	}

	if draft.Anonymous || strings.TrimSpace(draft.From) == "" {
		draft.From = anonymousSender
	}
	// The unit price is captured at authoring time so a later catalog
	// change cannot re-price a draft already in flight.
	draft.UnitPriceCents = format.UnitPriceCents

	if err := s.putFragment(ctx, sessionID, domain.FragmentMessage, draft); err != nil {
		return nil, err
	}
	return &draft, nil
}

func (s *Service) PutMedia(ctx context.Context, sessionID string, draft domain.MediaDraft) error {
	session, err := s.Session(ctx, sessionID)
	if err != nil {
		return err
	}
	if session.Message == nil {
		return apperrors.NewConflictError("media step requires a message draft")
	}
	return s.putFragment(ctx, sessionID, domain.FragmentMedia, draft)
}

// RegisterMediaRef sets a single media ref without touching the other
// one, so audio and video uploads can land independently.
func (s *Service) RegisterMediaRef(ctx context.Context, sessionID, kind, url string) error {
	session, err := s.Session(ctx, sessionID)
	if err != nil {
		return err
	}
	if session.Message == nil {
		return apperrors.NewConflictError("media step requires a message draft")
	}

	draft := domain.MediaDraft{}
	if session.Media != nil {
		draft = *session.Media
	}
	switch kind {
	case "audio":
		draft.AudioRef = &url
	case "video":
		draft.VideoRef = &url
	default:
		return apperrors.NewValidationError("invalid media kind", apperrors.ValidationDetail{
			Field:   "kind",
			Message: "kind must be audio or video",
		})
	}
	return s.putFragment(ctx, sessionID, domain.FragmentMedia, draft)
}

func (s *Service) PutDelivery(ctx context.Context, sessionID string, draft domain.DeliveryDraft) error {
	session, err := s.Session(ctx, sessionID)
	if err != nil {
		return err
	}
	if session.Message == nil {
		return apperrors.NewConflictError("delivery step requires a message draft")
	}
	if session.RequiresMedia() && !session.MediaComplete() {
		return apperrors.NewConflictError("delivery step requires the media step for this format")
	}

	var details []apperrors.ValidationDetail
	switch draft.Kind {
	case domain.DeliveryDigital, domain.DeliveryPhysical, domain.DeliveryBoth:
	default:
		details = append(details, apperrors.ValidationDetail{Field: "kind", Message: "kind must be digital, physical or both"})
	}
	if draft.Kind.IncludesDigital() && draft.DigitalMethod == nil {
		details = append(details, apperrors.ValidationDetail{Field: "digitalMethod", Message: "digitalMethod is required for digital delivery"})
	}
	if draft.Kind.IncludesPhysical() && draft.PhysicalMethod == nil {
		details = append(details, apperrors.ValidationDetail{Field: "physicalMethod", Message: "physicalMethod is required for physical delivery"})
	}
	if draft.DigitalMethod != nil {
		switch *draft.DigitalMethod {
		case domain.DigitalWhatsApp, domain.DigitalEmail:
		default:
			details = append(details, apperrors.ValidationDetail{Field: "digitalMethod", Message: "digitalMethod must be whatsapp or email"})
		}
	}
	if draft.PhysicalMethod != nil {
		switch *draft.PhysicalMethod {
		case domain.PhysicalCarrier, domain.PhysicalPickup:
		default:
			details = append(details, apperrors.ValidationDetail{Field: "physicalMethod", Message: "physicalMethod must be carrier or pickup"})
		}
	}
	if len(details) > 0 {
		return apperrors.NewValidationError("invalid delivery draft", details...)
	}

	return s.putFragment(ctx, sessionID, domain.FragmentDelivery, draft)
}

// SetQuote stores the session's resolved shipping numbers. A new quote
// supersedes the previous one; nothing is versioned.
func (s *Service) SetQuote(ctx context.Context, sessionID string, quote domain.ShippingQuote) error {
	return s.putFragment(ctx, sessionID, domain.FragmentQuote, quote)
}

func (s *Service) Session(ctx context.Context, sessionID string) (*domain.DraftSession, error) {
	session := &domain.DraftSession{ID: sessionID}

	if err := s.getFragment(ctx, sessionID, domain.FragmentMessage, &session.Message); err != nil {
		return nil, err
	}
	if err := s.getFragment(ctx, sessionID, domain.FragmentMedia, &session.Media); err != nil {
		return nil, err
	}
	if err := s.getFragment(ctx, sessionID, domain.FragmentDelivery, &session.Delivery); err != nil {
		return nil, err
	}
	if err := s.getFragment(ctx, sessionID, domain.FragmentQuote, &session.Quote); err != nil {
		return nil, err
	}

	return session, nil
}

// ClearAll discards every fragment of a session, called once the order
// snapshot is durably written.
func (s *Service) ClearAll(ctx context.Context, sessionID string) error {
	return s.repo.Clear(ctx, sessionID, domain.AllFragments()...)
}

func (s *Service) putFragment(ctx context.Context, sessionID string, fragment domain.FragmentType, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return apperrors.NewInternalError(fmt.Sprintf("encoding %s fragment", fragment), err)
	}
	if err := s.repo.Put(ctx, sessionID, fragment, raw); err != nil {
		return apperrors.NewInternalError(fmt.Sprintf("storing %s fragment", fragment), err)
	}
	s.logger.Debug("draft fragment stored", zap.String("session", sessionID), zap.String("fragment", string(fragment)))
	return nil
}

// getFragment decodes into **T so an absent fragment leaves the target
// pointer nil.
func (s *Service) getFragment(ctx context.Context, sessionID string, fragment domain.FragmentType, target any) error {
	raw, err := s.repo.Get(ctx, sessionID, fragment)
	if err != nil {
		return apperrors.NewInternalError(fmt.Sprintf("loading %s fragment", fragment), err)
	}
	if raw == nil {
		return nil
	}
	if err := json.Unmarshal(raw, target); err != nil {
		// A corrupt fragment must not be trusted; treat it as absent.
		s.logger.Warn("discarding unreadable draft fragment",
			zap.String("session", sessionID), zap.String("fragment", string(fragment)), zap.Error(err))
		return nil
	}
	return nil
}
