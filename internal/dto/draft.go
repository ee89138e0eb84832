package dto

import "time"

type PutMessageRequest struct {
	From      string `json:"from"`
	To        string `json:"to"`
	Text      string `json:"text"`
	Format    string `json:"format"`
	Anonymous bool   `json:"anonymous"`
}

type PutMediaRequest struct {
	AudioRef *string `json:"audioRef,omitempty"`
	VideoRef *string `json:"videoRef,omitempty"`
}

type PutDeliveryRequest struct {
	Kind           string     `json:"kind"`
	Date           *time.Time `json:"date,omitempty"`
	DigitalMethod  *string    `json:"digitalMethod,omitempty"`
	PhysicalMethod *string    `json:"physicalMethod,omitempty"`
	RecipientName  string     `json:"recipientName"`
	Address        string     `json:"address,omitempty"`
	PostalCode     string     `json:"postalCode,omitempty"`
	Email          string     `json:"email,omitempty"`
	Phone          string     `json:"phone,omitempty"`
}

type MessageView struct {
	From           string `json:"from"`
	To             string `json:"to"`
	Text           string `json:"text"`
	Format         string `json:"format"`
	UnitPriceCents int64  `json:"unitPriceCents"`
	Anonymous      bool   `json:"anonymous"`
}

type MediaView struct {
	AudioRef *string `json:"audioRef,omitempty"`
	VideoRef *string `json:"videoRef,omitempty"`
}

type DeliveryView struct {
	Kind           string     `json:"kind"`
	Date           *time.Time `json:"date,omitempty"`
	DigitalMethod  *string    `json:"digitalMethod,omitempty"`
	PhysicalMethod *string    `json:"physicalMethod,omitempty"`
	RecipientName  string     `json:"recipientName"`
	Address        string     `json:"address,omitempty"`
	PostalCode     string     `json:"postalCode,omitempty"`
	Email          string     `json:"email,omitempty"`
	Phone          string     `json:"phone,omitempty"`
}

type QuoteView struct {
	PriceCents    int64     `json:"priceCents"`
	LeadTimeLabel string    `json:"leadTimeLabel"`
	ServiceName   string    `json:"serviceName"`
	ResolvedAt    time.Time `json:"resolvedAt"`
}

type SessionResponse struct {
	Session  string        `json:"session"`
	Message  *MessageView  `json:"message,omitempty"`
	Media    *MediaView    `json:"media,omitempty"`
	Delivery *DeliveryView `json:"delivery,omitempty"`
	Quote    *QuoteView    `json:"quote,omitempty"`
}

type FormatView struct {
	Slug           string `json:"slug"`
	Label          string `json:"label"`
	UnitPriceCents int64  `json:"unitPriceCents"`
	NeedsAudio     bool   `json:"needsAudio"`
	NeedsVideo     bool   `json:"needsVideo"`
}
