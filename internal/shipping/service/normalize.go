package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// The provider answers the national pricing call in more than one shape:
// sometimes a bare array of product rows, sometimes an object wrapping
// the same rows under parametrosProduto, with diagnostic codes embedded
// in a msgs array. normalizeQuoteResponse collapses all of them into one
// row before anything downstream sees the payload.

var errNotEnabled = errors.New("pricing api pending commercial activation")

// notEnabledCode is the provider's diagnostic for a contract whose
// pricing API has not been commercially released yet.
const notEnabledCode = "GTW-012"

type normalizedQuote struct {
	PriceCents    int64
	LeadTimeLabel string
}

type providerRow struct {
	PcFinal      string `json:"pcFinal"`
	PcExibir     string `json:"pcExibir"`
	PrazoEntrega string `json:"prazoEntrega"`
}

type providerEnvelope struct {
	ParametrosProduto []providerRow `json:"parametrosProduto"`
	Msgs              []string      `json:"msgs"`
}

func normalizeQuoteResponse(raw []byte) (*normalizedQuote, error) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" {
		return nil, errors.New("empty price response")
	}

	var row providerRow
	switch {
	case strings.HasPrefix(trimmed, "["):
		var rows []providerRow
		if err := json.Unmarshal(raw, &rows); err != nil {
			return nil, fmt.Errorf("decoding price response list: %w", err)
		}
		if len(rows) == 0 {
			return nil, errors.New("price response list is empty")
		}
		row = rows[0]
	default:
		var env providerEnvelope
		if err := json.Unmarshal(raw, &env); err != nil {
			return nil, fmt.Errorf("decoding price response object: %w", err)
		}
		if len(env.Msgs) > 0 && strings.Contains(env.Msgs[0], notEnabledCode) {
			return nil, errNotEnabled
		}
		if len(env.ParametrosProduto) == 0 {
			// Last shape: a bare single row object.
			if err := json.Unmarshal(raw, &row); err != nil {
				return nil, fmt.Errorf("decoding price response row: %w", err)
			}
		} else {
			row = env.ParametrosProduto[0]
		}
	}

	price := row.PcFinal
	if price == "" {
		price = row.PcExibir
	}
	cents, err := parsePriceCents(price)
	if err != nil {
		return nil, err
	}
	if row.PrazoEntrega == "" {
		return nil, errors.New("price response has no lead time")
	}

	return &normalizedQuote{PriceCents: cents, LeadTimeLabel: row.PrazoEntrega}, nil
}

// parsePriceCents accepts the provider's decimal formats: "65.46",
// "65,46" and "1.065,46".
func parsePriceCents(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errors.New("price response has no price")
	}

	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	}

	value, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing price %q: %w", s, err)
	}
	if value <= 0 {
		return 0, fmt.Errorf("non-positive price %q", s)
	}

	return int64(value*100 + 0.5), nil
}
