package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"mimo/internal/domain"
	apperrors "mimo/internal/errors"
)

type ProviderClient interface {
	Authenticate(ctx context.Context) (string, error)
	Price(ctx context.Context, token, destinationCEP string) ([]byte, error)
}

const serviceName = "PAC"

// Resolver turns a destination postal code into the quote-or-unavailable
// sum type. It never returns an error: every failure mode collapses into
// a QuoteOutcome.
type Resolver struct {
	client ProviderClient
	logger *zap.Logger
	now    func() time.Time
}

func NewResolver(client ProviderClient, logger *zap.Logger) *Resolver {
	return &Resolver{client: client, logger: logger, now: time.Now}
}

func (r *Resolver) Quote(ctx context.Context, postalCode string) domain.QuoteOutcome {
	cep := digitsOnly(postalCode)
	if len(cep) != 8 {
		// Incomplete input is not an error; the caller keeps its
		// previous state until the code is fully typed.
		return domain.NotReadyQuote()
	}

	token, err := r.client.Authenticate(ctx)
	if err != nil {
		return r.unavailable(err, cep)
	}

	raw, err := r.client.Price(ctx, token, cep)
	if err != nil {
		return r.unavailable(err, cep)
	}

	normalized, err := normalizeQuoteResponse(raw)
	if err != nil {
		if errors.Is(err, errNotEnabled) {
			r.logger.Info("carrier pricing pending commercial activation", zap.String("cep", cep))
			return domain.UnavailableQuote(domain.ReasonNotEnabled, err.Error())
		}
		r.logger.Warn("malformed carrier price response", zap.String("cep", cep), zap.Error(err))
		return domain.UnavailableQuote(domain.ReasonNetwork, err.Error())
	}

	return domain.ResolvedQuote(domain.ShippingQuote{
		PriceCents:    normalized.PriceCents,
		LeadTimeLabel: normalized.LeadTimeLabel,
		ServiceName:   serviceName,
		ResolvedAt:    r.now(),
	})
}

func (r *Resolver) unavailable(err error, cep string) domain.QuoteOutcome {
	if ue, ok := apperrors.IsUpstreamError(err); ok {
		switch ue.Kind {
		case apperrors.UpstreamAuth:
			r.logger.Warn("carrier auth failed", zap.String("cep", cep),
				zap.String("diagnostic", ue.Diagnostic))
			return domain.UnavailableQuote(domain.ReasonAuth, ue.Diagnostic)
		case apperrors.UpstreamBusiness:
			return domain.UnavailableQuote(domain.ReasonNotEnabled, ue.Diagnostic)
		}
	}
	r.logger.Warn("carrier call failed", zap.String("cep", cep), zap.Error(err))
	return domain.UnavailableQuote(domain.ReasonNetwork, err.Error())
}

func digitsOnly(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			out = append(out, r)
		}
	}
	return string(out)
}
