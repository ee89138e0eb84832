package domain

import "time"

type Order struct {
	StoreID         uint
	OrderID         string
	Origin          OrderOrigin
	Customer        Customer
	Content         Content
	Logistics       Logistics
	Financial       Financial
	ConfirmedMethod *string
	PaidAt          *time.Time
	CreatedAt       time.Time
}

type Customer struct {
	Name  string
	Email string
	Phone string
}

type Content struct {
	From         string
	To           string
	Text         string
	FormatSlug   FormatSlug
	DeliveryDate *time.Time
	AudioRef     *string
	VideoRef     *string
}

type Logistics struct {
	Kind           DeliveryKind
	Address        *string
	PostalCode     *string
	DigitalMethod  *DigitalMethod
	PhysicalMethod *PhysicalMethod
}

type Financial struct {
	TotalCents        int64
	Method            PaymentMethod
	ExternalPaymentID *string
	PaymentStatus     PaymentStatus
	// ShippingPending marks a physical order whose carrier quote was
	// unavailable at submission; the total omits shipping rather than
	// pretending it is zero.
	ShippingPending bool
}

type OrderOrigin string

const (
	OriginSite     OrderOrigin = "site"
	OriginAssisted OrderOrigin = "assisted"
)

type PaymentMethod string

const (
	MethodPix      PaymentMethod = "pix"
	MethodBoleto   PaymentMethod = "boleto"
	MethodCard     PaymentMethod = "card"
	MethodAssisted PaymentMethod = "assisted"
)

type PaymentStatus string

// Payment status is monotonic: pending may become paid, paid never
// transitions back.
const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusFailed  PaymentStatus = "failed"
)

func ValidPaymentMethod(m PaymentMethod) bool {
	switch m {
	case MethodPix, MethodBoleto, MethodCard, MethodAssisted:
		return true
	}
	return false
}
