package financing

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"

	"warranty/internal/config"
)

// ErrInitiationFailed covers every provider-side failure mode when
// opening a transaction: transport failure, non-2xx status, unparsable
// body, or a body without a redirect URL.
var ErrInitiationFailed = errors.New("transaction initiation failed")

// Initiation is the provider's successful response to a
// transaction-initiation request.
type Initiation struct {
	RedirectURL string
	Token       string
}

// initiationResponse is the provider's response body. Decoding into one
// struct and validating the redirect URL keeps success and failure
// shapes from being sniffed ad hoc.
type initiationResponse struct {
	RedirectURL string `json:"redirect_url"`
	Token       string `json:"token"`
}

// Client sends signed transaction-initiation requests to the financing
// provider's fixed endpoint. One attempt per call; retries are a caller
// decision and the caller never retries initiation.
type Client struct {
	cfg        config.FinancingConfig
	httpClient *http.Client
}

// NewClient creates a provider client from configuration.
func NewClient(cfg config.FinancingConfig) *Client {
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

// Initiate signs the payload and opens a transaction with the provider.
// Log lines carry the order reference and status only; bodies, keys and
// signatures stay out of the logs.
func (c *Client) Initiate(ctx context.Context, p Payload) (*Initiation, error) {
	signature := SignPayload(p, c.cfg.SigningSecret)
	body, err := json.Marshal(p.RequestFields(c.cfg.APIKey, signature))
	if err != nil {
		return nil, fmt.Errorf("%w: encode request: %v", ErrInitiationFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", ErrInitiationFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Printf("financing: initiation transport failure order_reference=%s", p.OrderReference)
		return nil, fmt.Errorf("%w: %v", ErrInitiationFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		log.Printf("financing: initiation rejected order_reference=%s status=%d", p.OrderReference, resp.StatusCode)
		return nil, fmt.Errorf("%w: provider returned status %d", ErrInitiationFailed, resp.StatusCode)
	}

	var parsed initiationResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		log.Printf("financing: unparsable initiation response order_reference=%s", p.OrderReference)
		return nil, fmt.Errorf("%w: decode response: %v", ErrInitiationFailed, err)
	}

	if parsed.RedirectURL == "" {
		log.Printf("financing: initiation response missing redirect URL order_reference=%s", p.OrderReference)
		return nil, fmt.Errorf("%w: response missing redirect URL", ErrInitiationFailed)
	}

	return &Initiation{RedirectURL: parsed.RedirectURL, Token: parsed.Token}, nil
}
