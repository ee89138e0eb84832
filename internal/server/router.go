package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	draftcontroller "mimo/internal/draft/controller"
	mediacontroller "mimo/internal/media/controller"
	"mimo/internal/order"
	shippingcontroller "mimo/internal/shipping/controller"
)

func NewRouter(
	drafts *draftcontroller.Controller,
	shipping *shippingcontroller.Controller,
	media *mediacontroller.Controller,
	orders *order.Module,
) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Route("/drafts/{session}", func(r chi.Router) {
			r.Put("/message", drafts.HandlePutMessage)
			r.Put("/media", drafts.HandlePutMedia)
			r.Put("/delivery", drafts.HandlePutDelivery)
			r.Get("/", drafts.HandleGetSession)
		})
		r.Get("/formats", drafts.HandleListFormats)

		r.Post("/shipping/quote", shipping.HandleQuote)
		r.Post("/media", media.HandleUpload)

		r.Post("/checkout", orders.Checkout.HandleCheckout)
		r.Post("/webhooks/payment", orders.Webhook.HandleNotification)
		r.Get("/orders/{id}/gift", orders.Gift.HandleGetGift)
	})

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	return r
}
