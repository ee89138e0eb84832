package domain

import "time"

// FragmentType names the per-session draft fragments. Each fragment is
// written by exactly one wizard step; later steps only read it.
type FragmentType string

const (
	FragmentMessage  FragmentType = "message"
	FragmentMedia    FragmentType = "media"
	FragmentDelivery FragmentType = "delivery"
	FragmentQuote    FragmentType = "quote"
)

func AllFragments() []FragmentType {
	return []FragmentType{FragmentMessage, FragmentMedia, FragmentDelivery, FragmentQuote}
}

type DeliveryKind string

const (
	DeliveryDigital  DeliveryKind = "digital"
	DeliveryPhysical DeliveryKind = "physical"
	DeliveryBoth     DeliveryKind = "both"
)

func (k DeliveryKind) IncludesDigital() bool {
	return k == DeliveryDigital || k == DeliveryBoth
}

func (k DeliveryKind) IncludesPhysical() bool {
	return k == DeliveryPhysical || k == DeliveryBoth
}

type DigitalMethod string

const (
	DigitalWhatsApp DigitalMethod = "whatsapp"
	DigitalEmail    DigitalMethod = "email"
)

type PhysicalMethod string

const (
	PhysicalCarrier PhysicalMethod = "carrier"
	PhysicalPickup  PhysicalMethod = "pickup"
)

// PickupAddressMarker replaces the street address on pickup orders.
const PickupAddressMarker = "RETIRADA_LOCAL"

type MessageDraft struct {
	From           string     `json:"from"`
	To             string     `json:"to"`
	Text           string     `json:"text"`
	Format         FormatSlug `json:"format"`
	UnitPriceCents int64      `json:"unitPriceCents"`
	Anonymous      bool       `json:"anonymous"`
}

type MediaDraft struct {
	AudioRef *string `json:"audioRef,omitempty"`
	VideoRef *string `json:"videoRef,omitempty"`
}

type Contact struct {
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type DeliveryDraft struct {
	Kind           DeliveryKind    `json:"kind"`
	Date           *time.Time      `json:"date,omitempty"`
	DigitalMethod  *DigitalMethod  `json:"digitalMethod,omitempty"`
	PhysicalMethod *PhysicalMethod `json:"physicalMethod,omitempty"`
	RecipientName  string          `json:"recipientName"`
	Address        string          `json:"address,omitempty"`
	PostalCode     string          `json:"postalCode,omitempty"`
	Contact        Contact         `json:"contact"`
}

func (d DeliveryDraft) IsPickup() bool {
	return d.PhysicalMethod != nil && *d.PhysicalMethod == PhysicalPickup
}

// DraftSession is the explicit aggregate of all fragments a session has
// produced so far. Nil fields mean the step has not run yet.
type DraftSession struct {
	ID       string
	Message  *MessageDraft
	Media    *MediaDraft
	Delivery *DeliveryDraft
	Quote    *ShippingQuote
}

// RequiresMedia reports whether the chosen format makes the media step
// mandatory before delivery can be selected.
func (s *DraftSession) RequiresMedia() bool {
	if s.Message == nil {
		return false
	}
	f, ok := FormatBySlug(s.Message.Format)
	return ok && (f.NeedsAudio || f.NeedsVideo)
}

// MediaComplete reports whether every media ref the format needs is present.
func (s *DraftSession) MediaComplete() bool {
	if !s.RequiresMedia() {
		return true
	}
	f, _ := FormatBySlug(s.Message.Format)
	if s.Media == nil {
		return false
	}
	if f.NeedsAudio && s.Media.AudioRef == nil {
		return false
	}
	if f.NeedsVideo && s.Media.VideoRef == nil {
		return false
	}
	return true
}
