package service

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"mimo/internal/config"
	"mimo/internal/domain"
	"mimo/internal/dto"
	apperrors "mimo/internal/errors"
	"mimo/internal/payment/client"
)

type GatewayClient interface {
	CreatePayment(ctx context.Context, req client.CreatePaymentRequest) (*client.Payment, error)
}

// PaymentArtifact is the method-specific pending-payment handle returned
// to the client: a pix QR payload, a boleto document URL, or the
// assisted-channel deep link.
type PaymentArtifact struct {
	ExternalPaymentID string
	Status            string
	QRPayload         string
	QRImageBase64     string
	DocumentURL       string
	DeepLink          string
}

const paymentDescription = "Mimo Personalizado"

type Dispatcher struct {
	gateway  GatewayClient
	assisted config.AssistedConfig
	logger   *zap.Logger
}

func NewDispatcher(gateway GatewayClient, assisted config.AssistedConfig, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{gateway: gateway, assisted: assisted, logger: logger}
}

// Dispatch submits the snapshot's amount and contact to the gateway for
// the chosen method. It never persists anything; the caller writes the
// order only after a successful return.
func (d *Dispatcher) Dispatch(ctx context.Context, snapshot *domain.Order, payer *dto.PayerInfo) (*PaymentArtifact, error) {
	switch snapshot.Financial.Method {
	case domain.MethodPix:
		return d.dispatchGateway(ctx, snapshot, "pix", nil)

	case domain.MethodBoleto:
		if payer == nil || payer.DocNumber == "" {
			return nil, apperrors.NewValidationError("boleto requires payer identification",
				apperrors.ValidationDetail{Field: "payer.docNumber", Message: "payer document is required for boleto"})
		}
		return d.dispatchGateway(ctx, snapshot, "bolbradesco", payer)

	case domain.MethodCard:
		// Card runs entirely inside the embedded widget; by the time the
		// pipeline sees it the payment already exists.
		return nil, apperrors.NewInternalError("card payments are not dispatched server-side", nil)

	case domain.MethodAssisted:
		return &PaymentArtifact{
			Status:   string(domain.PaymentStatusPending),
			DeepLink: d.assistedDeepLink(snapshot),
		}, nil
	}

	return nil, apperrors.NewValidationError("unknown payment method",
		apperrors.ValidationDetail{Field: "method", Message: "method must be pix, boleto, card or assisted"})
}

func (d *Dispatcher) dispatchGateway(ctx context.Context, snapshot *domain.Order, methodID string, payer *dto.PayerInfo) (*PaymentArtifact, error) {
	req := client.CreatePaymentRequest{
		AmountCents:     snapshot.Financial.TotalCents,
		Email:           snapshot.Customer.Email,
		Description:     paymentDescription,
		PaymentMethodID: methodID,
	}
	if payer != nil {
		req.PayerFirstName = payer.FirstName
		req.PayerLastName = payer.LastName
		req.PayerDocType = payer.DocType
		req.PayerDocNumber = payer.DocNumber
	}

	payment, err := d.gateway.CreatePayment(ctx, req)
	if err != nil {
		return nil, err
	}

	d.logger.Info("payment dispatched",
		zap.String("orderId", snapshot.OrderID),
		zap.String("externalPaymentId", payment.ID),
		zap.String("method", methodID),
		zap.String("status", payment.Status))

	return &PaymentArtifact{
		ExternalPaymentID: payment.ID,
		Status:            payment.Status,
		QRPayload:         payment.QRCode,
		QRImageBase64:     payment.QRCodeBase64,
		DocumentURL:       payment.DocumentURL,
	}, nil
}

// assistedDeepLink builds the pre-filled conversation opener carrying
// the order id and totals for manual confirmation.
func (d *Dispatcher) assistedDeepLink(snapshot *domain.Order) string {
	date := "A combinar"
	if snapshot.Content.DeliveryDate != nil {
		date = snapshot.Content.DeliveryDate.Format("02/01/2006")
	}

	var msg strings.Builder
	fmt.Fprintf(&msg, "*NOVO PEDIDO: %s*\n", snapshot.OrderID)
	msg.WriteString("----------------------------------\n")
	fmt.Fprintf(&msg, "*De:* %s\n", snapshot.Content.From)
	fmt.Fprintf(&msg, "*Para:* %s\n", snapshot.Content.To)
	fmt.Fprintf(&msg, "*Data de Entrega:* %s\n", date)
	fmt.Fprintf(&msg, "*Total:* R$ %s\n", formatBRL(snapshot.Financial.TotalCents))
	msg.WriteString("----------------------------------\n")
	msg.WriteString("Olá! Quero finalizar o pagamento via WhatsApp.")

	return fmt.Sprintf("https://wa.me/%s?text=%s", d.assisted.WhatsAppNumber, url.QueryEscape(msg.String()))
}

func formatBRL(cents int64) string {
	return strings.Replace(fmt.Sprintf("%.2f", float64(cents)/100), ".", ",", 1)
}
