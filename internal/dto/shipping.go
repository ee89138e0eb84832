package dto

type QuoteRequest struct {
	Session    string `json:"session"`
	PostalCode string `json:"postalCode"`
}

type QuoteResponse struct {
	Status        string `json:"status"`
	PriceCents    int64  `json:"priceCents,omitempty"`
	LeadTimeLabel string `json:"leadTimeLabel,omitempty"`
	ServiceName   string `json:"serviceName,omitempty"`
	Reason        string `json:"reason,omitempty"`
	// Message is the user-facing text for unavailable quotes; provider
	// diagnostics never travel here.
	Message string `json:"message,omitempty"`
}
