package domain

import "time"

type QuoteStatus string

const (
	// QuoteResolved carries a usable price and lead time.
	QuoteResolved QuoteStatus = "resolved"
	// QuoteUnavailable means the provider could not produce a price.
	QuoteUnavailable QuoteStatus = "unavailable"
	// QuoteNotReady means the postal code is incomplete; no call was made
	// and the caller should keep whatever state it already has.
	QuoteNotReady QuoteStatus = "not_ready"
)

type UnavailableReason string

const (
	ReasonAuth       UnavailableReason = "auth"
	ReasonNotEnabled UnavailableReason = "not-enabled"
	ReasonNetwork    UnavailableReason = "network"
)

type ShippingQuote struct {
	PriceCents    int64     `json:"priceCents"`
	LeadTimeLabel string    `json:"leadTimeLabel"`
	ServiceName   string    `json:"serviceName"`
	ResolvedAt    time.Time `json:"resolvedAt"`
}

// QuoteOutcome is the resolver's only result type: the quote-or-unavailable
// sum the rest of the pipeline consumes. Diagnostic holds raw provider text
// for logs and is never rendered to the end user.
type QuoteOutcome struct {
	Status     QuoteStatus
	Quote      *ShippingQuote
	Reason     UnavailableReason
	Diagnostic string
}

func ResolvedQuote(q ShippingQuote) QuoteOutcome {
	return QuoteOutcome{Status: QuoteResolved, Quote: &q}
}

func UnavailableQuote(reason UnavailableReason, diagnostic string) QuoteOutcome {
	return QuoteOutcome{Status: QuoteUnavailable, Reason: reason, Diagnostic: diagnostic}
}

func NotReadyQuote() QuoteOutcome {
	return QuoteOutcome{Status: QuoteNotReady}
}
