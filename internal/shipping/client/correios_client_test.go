package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"mimo/internal/config"
	apperrors "mimo/internal/errors"
)

func newTestClient(baseURL string) *Client {
	return New(config.ShippingConfig{
		BaseURL:  baseURL,
		User:     "mimo-user",
		Password: "mimo-pass",
		Contract: "9912726956",
		Timeout:  2 * time.Second,
	}, zap.NewNop())
}

func TestAuthenticate_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/token/v1/autentica/contrato" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		user, pass, ok := r.BasicAuth()
		if !ok || user != "mimo-user" || pass != "mimo-pass" {
			t.Error("expected basic auth credentials")
		}

		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decoding request body: %v", err)
		}
		if body["numero"] != "9912726956" {
			t.Errorf("expected contract number, got %q", body["numero"])
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"token":"jwt-token","apis":[{"api":34}]}`))
	}))
	defer srv.Close()

	token, err := newTestClient(srv.URL).Authenticate(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token != "jwt-token" {
		t.Errorf("expected jwt-token, got %q", token)
	}
}

func TestAuthenticate_RejectedCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"msgs":["credencial inválida"]}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Authenticate(context.Background())

	ue, ok := apperrors.IsUpstreamError(err)
	if !ok {
		t.Fatalf("expected UpstreamError, got %T", err)
	}
	if ue.Kind != apperrors.UpstreamAuth {
		t.Errorf("expected auth kind, got %s", ue.Kind)
	}
	if ue.Diagnostic == "" {
		t.Error("expected diagnostic to carry the provider body")
	}
}

func TestAuthenticate_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"no_token_here":true}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Authenticate(context.Background())

	ue, ok := apperrors.IsUpstreamError(err)
	if !ok {
		t.Fatalf("expected UpstreamError, got %T", err)
	}
	if ue.Kind != apperrors.UpstreamNetwork {
		t.Errorf("expected network kind, got %s", ue.Kind)
	}
}

func TestPrice_SendsFixedProfile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/preco/v3/nacional" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer jwt-token" {
			t.Errorf("expected bearer token, got %q", r.Header.Get("Authorization"))
		}

		var payload struct {
			IDLote            string              `json:"idLote"`
			ParametrosProduto []map[string]string `json:"parametrosProduto"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("decoding request body: %v", err)
		}
		if len(payload.ParametrosProduto) != 1 {
			t.Fatalf("expected one product row, got %d", len(payload.ParametrosProduto))
		}

		row := payload.ParametrosProduto[0]
		if row["coProduto"] != "03298" {
			t.Errorf("expected PAC product code, got %q", row["coProduto"])
		}
		if row["cepOrigem"] != "79080705" {
			t.Errorf("expected fixed origin, got %q", row["cepOrigem"])
		}
		if row["cepDestino"] != "01310100" {
			t.Errorf("expected destination cep, got %q", row["cepDestino"])
		}
		if row["psObjeto"] != "300" {
			t.Errorf("expected fixed weight, got %q", row["psObjeto"])
		}

		w.Write([]byte(`[{"pcFinal":"65.46","prazoEntrega":"9"}]`))
	}))
	defer srv.Close()

	raw, err := newTestClient(srv.URL).Price(context.Background(), "jwt-token", "01310100")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(raw) == 0 {
		t.Error("expected raw body to be returned")
	}
}

func TestPrice_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	_, err := newTestClient(srv.URL).Price(context.Background(), "jwt-token", "01310100")

	ue, ok := apperrors.IsUpstreamError(err)
	if !ok {
		t.Fatalf("expected UpstreamError, got %T", err)
	}
	if ue.Kind != apperrors.UpstreamNetwork {
		t.Errorf("expected network kind, got %s", ue.Kind)
	}
}
