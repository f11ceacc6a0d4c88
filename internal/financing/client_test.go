package financing

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"warranty/internal/config"
)

func testClient(endpoint string) *Client {
	return NewClient(config.FinancingConfig{
		APIKey:        "test-api-key",
		SigningSecret: knownAnswerSecret,
		Endpoint:      endpoint,
		Timeout:       2 * time.Second,
	})
}

func TestClient_Initiate_Success(t *testing.T) {
	t.Parallel()

	var requests int32
	var received map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("server could not decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"redirect_url": "https://provider.test/pay/xyz",
			"token":        "tok-42",
		})
	}))
	defer srv.Close()

	p := knownAnswerPayload()
	p.ProductDescription = "24 month warranty cover"

	got, err := testClient(srv.URL).Initiate(context.Background(), p)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if got.RedirectURL != "https://provider.test/pay/xyz" {
		t.Errorf("expected redirect URL, got %s", got.RedirectURL)
	}
	if got.Token != "tok-42" {
		t.Errorf("expected token, got %s", got.Token)
	}
	if requests != 1 {
		t.Errorf("expected exactly 1 request, got %d", requests)
	}

	// The outbound request re-adds the fields excluded from signing.
	if received[FieldAPIKey] != "test-api-key" {
		t.Errorf("request missing api key field")
	}
	if received[FieldProductDescription] != "24 month warranty cover" {
		t.Errorf("request missing product description")
	}
	wantSig := SignPayload(p, knownAnswerSecret)
	if received[FieldSignature] != wantSig {
		t.Errorf("request signature mismatch: got %v, want %s", received[FieldSignature], wantSig)
	}
}

func TestClient_Initiate_FailureModes(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "non-2xx status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
			},
		},
		{
			name: "2xx with unparsable body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("<html>not json</html>"))
			},
		},
		{
			name: "2xx with body missing the redirect URL",
			handler: func(w http.ResponseWriter, r *http.Request) {
				json.NewEncoder(w).Encode(map[string]string{"token": "tok-1"})
			},
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var requests int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				atomic.AddInt32(&requests, 1)
				tc.handler(w, r)
			}))
			defer srv.Close()

			_, err := testClient(srv.URL).Initiate(context.Background(), knownAnswerPayload())
			if !errors.Is(err, ErrInitiationFailed) {
				t.Fatalf("expected ErrInitiationFailed, got: %v", err)
			}

			// One attempt per checkout click, no automatic retries.
			if requests != 1 {
				t.Errorf("expected exactly 1 request, got %d", requests)
			}
		})
	}
}

func TestClient_Initiate_TransportFailure(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	_, err := testClient(srv.URL).Initiate(context.Background(), knownAnswerPayload())
	if !errors.Is(err, ErrInitiationFailed) {
		t.Fatalf("expected ErrInitiationFailed, got: %v", err)
	}
}
