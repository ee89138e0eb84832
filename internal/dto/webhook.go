package dto

// PaymentNotification is the gateway's inbound webhook payload. The
// gateway sends ids either as "data.id" or "id" query parameters; the
// controller collapses both into ID.
type PaymentNotification struct {
	ID   string
	Type string
}

type MediaUploadResponse struct {
	Kind string `json:"kind"`
	URL  string `json:"url"`
}
