package dto

import "time"

type CheckoutRequest struct {
	Session string `json:"session"`
	Method  string `json:"method"`
	// Email typed at checkout wins over the delivery fragment's contact.
	Email string     `json:"email,omitempty"`
	Payer *PayerInfo `json:"payer,omitempty"`
	// Card payments are authorized by the embedded widget; the client
	// reports the widget's payment id and status here.
	CardPaymentID string `json:"cardPaymentId,omitempty"`
	CardStatus    string `json:"cardStatus,omitempty"`
}

type PayerInfo struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	DocType   string `json:"docType"`
	DocNumber string `json:"docNumber"`
}

type CheckoutResponse struct {
	TraceID           string        `json:"traceId"`
	OrderID           string        `json:"orderId"`
	TotalCents        int64         `json:"totalCents"`
	Method            string        `json:"method"`
	PaymentStatus     string        `json:"paymentStatus"`
	ExternalPaymentID string        `json:"externalPaymentId,omitempty"`
	ShippingPending   bool          `json:"shippingPending,omitempty"`
	Artifact          *ArtifactView `json:"artifact,omitempty"`
	Timestamp         time.Time     `json:"timestamp"`
}

type ArtifactView struct {
	QRPayload     string `json:"qrPayload,omitempty"`
	QRImageBase64 string `json:"qrImageBase64,omitempty"`
	DocumentURL   string `json:"documentUrl,omitempty"`
	DeepLink      string `json:"deepLink,omitempty"`
}

type GiftResponse struct {
	From     string  `json:"from"`
	To       string  `json:"to"`
	Text     string  `json:"text"`
	Format   string  `json:"format"`
	AudioRef *string `json:"audioRef,omitempty"`
	VideoRef *string `json:"videoRef,omitempty"`
}
