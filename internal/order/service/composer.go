package service

import (
	"strings"
	"time"

	"mimo/internal/domain"
	apperrors "mimo/internal/errors"
)

// Composer merges a session's fragments and its shipping quote into one
// immutable order snapshot. Compose is pure apart from the clock and the
// id suffix generator, both injected.
type Composer struct {
	idgen IDGenerator
	now   func() time.Time
}

func NewComposer(idgen IDGenerator, now func() time.Time) *Composer {
	if now == nil {
		now = time.Now
	}
	return &Composer{idgen: idgen, now: now}
}

// Compose validates the fragment set for the chosen delivery kind and
// produces the snapshot. A validation failure rejects the whole
// submission; partial snapshots are never created.
func (c *Composer) Compose(session *domain.DraftSession, origin domain.OrderOrigin, method domain.PaymentMethod) (*domain.Order, error) {
	if session.Message == nil {
		return nil, apperrors.NewConflictError("submission requires a message draft")
	}
	if session.Delivery == nil {
		return nil, apperrors.NewConflictError("submission requires a delivery draft")
	}
	if session.RequiresMedia() && !session.MediaComplete() {
		return nil, apperrors.NewConflictError("submission requires the media step for this format")
	}

	msg := session.Message
	delivery := session.Delivery

	if err := validateDelivery(delivery); err != nil {
		return nil, err
	}

	order := &domain.Order{
		OrderID:   c.orderID(origin),
		Origin:    origin,
		CreatedAt: c.now().UTC(),
		Customer: domain.Customer{
			Name:  delivery.RecipientName,
			Email: delivery.Contact.Email,
			Phone: delivery.Contact.Phone,
		},
		Content: domain.Content{
			From:         msg.From,
			To:           msg.To,
			Text:         msg.Text,
			FormatSlug:   msg.Format,
			DeliveryDate: delivery.Date,
		},
		Logistics: domain.Logistics{
			Kind:           delivery.Kind,
			DigitalMethod:  delivery.DigitalMethod,
			PhysicalMethod: delivery.PhysicalMethod,
		},
		Financial: domain.Financial{
			Method:        method,
			PaymentStatus: domain.PaymentStatusPending,
		},
	}

	if session.Media != nil {
		order.Content.AudioRef = session.Media.AudioRef
		order.Content.VideoRef = session.Media.VideoRef
	}

	if delivery.Kind.IncludesPhysical() {
		address := delivery.Address
		if delivery.IsPickup() {
			address = domain.PickupAddressMarker
		}
		order.Logistics.Address = &address
		if delivery.PostalCode != "" {
			cep := delivery.PostalCode
			order.Logistics.PostalCode = &cep
		}
	}

	order.Financial.TotalCents, order.Financial.ShippingPending = c.total(session)

	return order, nil
}

// total adds the shipping contribution to the format's unit price.
// Pickup always contributes zero regardless of any quote; a missing
// quote on a carrier delivery flags the total as shipping-pending
// instead of silently charging nothing.
func (c *Composer) total(session *domain.DraftSession) (int64, bool) {
	total := session.Message.UnitPriceCents
	delivery := session.Delivery

	if !delivery.Kind.IncludesPhysical() || delivery.IsPickup() {
		return total, false
	}

	if session.Quote == nil {
		return total, true
	}
	return total + session.Quote.PriceCents, false
}

func validateDelivery(delivery *domain.DeliveryDraft) error {
	var details []apperrors.ValidationDetail

	if delivery.Kind.IncludesDigital() {
		if delivery.DigitalMethod == nil {
			details = append(details, apperrors.ValidationDetail{
				Field: "delivery.digitalMethod", Message: "digital delivery requires a method",
			})
		} else {
			switch *delivery.DigitalMethod {
			case domain.DigitalEmail:
				if !strings.Contains(delivery.Contact.Email, "@") {
					details = append(details, apperrors.ValidationDetail{
						Field: "delivery.contact.email", Message: "a valid email is required for email delivery",
					})
				}
			case domain.DigitalWhatsApp:
				if strings.TrimSpace(delivery.Contact.Phone) == "" {
					details = append(details, apperrors.ValidationDetail{
						Field: "delivery.contact.phone", Message: "a phone number is required for whatsapp delivery",
					})
				}
			}
		}
	}

	if delivery.Kind.IncludesPhysical() {
		if strings.TrimSpace(delivery.RecipientName) == "" {
			details = append(details, apperrors.ValidationDetail{
				Field: "delivery.recipientName", Message: "recipient name is required for physical delivery",
			})
		}
		if !delivery.IsPickup() {
			if strings.TrimSpace(delivery.Address) == "" {
				details = append(details, apperrors.ValidationDetail{
					Field: "delivery.address", Message: "address is required for physical delivery",
				})
			}
			if strings.TrimSpace(delivery.PostalCode) == "" {
				details = append(details, apperrors.ValidationDetail{
					Field: "delivery.postalCode", Message: "postal code is required for physical delivery",
				})
			}
		}
	}

	if len(details) > 0 {
		return apperrors.NewValidationError("missing required delivery fields", details...)
	}
	return nil
}

func (c *Composer) orderID(origin domain.OrderOrigin) string {
	prefix := "SITE"
	if origin == domain.OriginAssisted {
		prefix = "WPP"
	}
	return prefix + "-" + c.idgen.Suffix()
}
