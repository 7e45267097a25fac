// Package paymongo is the HTTP client for the hosted checkout gateway
// consumed through the clinic's payment proxy endpoint.
package paymongo

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"
)

var (
	// ErrNoCheckoutURL is returned when the gateway accepts the request
	// but returns no checkout redirect.
	ErrNoCheckoutURL = errors.New("no checkout URL received from payment gateway")
)

// GatewayError carries the gateway's own error payload for non-2xx
// responses.
type GatewayError struct {
	StatusCode int
	Message    string
	Details    string
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("payment gateway error (status %d): %s", e.StatusCode, e.Message)
}

// CheckoutRequest is the create-payment-intent call body. Amount is in
// the gateway's smallest currency unit (centavos).
type CheckoutRequest struct {
	Amount            int64  `json:"amount"`
	Description       string `json:"description"`
	PaymentMethodType string `json:"payment_method_type"`
	ReturnURL         string `json:"return_url"`
}

// CheckoutSession is the parsed success response.
type CheckoutSession struct {
	ID              string
	CheckoutURL     string
	PaymentIntentID string
}

type checkoutResponse struct {
	Data struct {
		ID         string `json:"id"`
		Attributes struct {
			CheckoutURL     string `json:"checkout_url"`
			PaymentIntentID string `json:"payment_intent_id"`
		} `json:"attributes"`
	} `json:"data"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details"`
}

type intentStatusResponse struct {
	Status string `json:"status"`
}

// Intent status values reported by the gateway
const (
	IntentStatusSucceeded = "succeeded"
	IntentStatusFailed    = "failed"
)

// Client talks to the payment proxy endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *logrus.Logger
}

func NewClient(baseURL string, log *logrus.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		log:        log,
	}
}

// CreateCheckout requests a hosted checkout session. The caller performs
// the redirect and stores the payment intent id for later polling.
func (c *Client) CreateCheckout(ctx context.Context, req *CheckoutRequest) (*CheckoutSession, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal checkout request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/api/create-payment-intent", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build checkout request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("call payment gateway: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var gwErr errorResponse
		if decodeErr := json.NewDecoder(resp.Body).Decode(&gwErr); decodeErr != nil {
			gwErr.Error = "unreadable gateway error"
		}
		c.log.Warnf("Payment gateway rejected checkout: status=%d, error=%s", resp.StatusCode, gwErr.Error)
		return nil, &GatewayError{
			StatusCode: resp.StatusCode,
			Message:    gwErr.Error,
			Details:    gwErr.Details,
		}
	}

	var body checkoutResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode checkout response: %w", err)
	}

	if body.Data.Attributes.CheckoutURL == "" {
		return nil, ErrNoCheckoutURL
	}

	return &CheckoutSession{
		ID:              body.Data.ID,
		CheckoutURL:     body.Data.Attributes.CheckoutURL,
		PaymentIntentID: body.Data.Attributes.PaymentIntentID,
	}, nil
}

// RetrieveIntentStatus polls the gateway for a payment intent's status.
func (c *Client) RetrieveIntentStatus(ctx context.Context, paymentIntentID string) (string, error) {
	endpoint := fmt.Sprintf("%s/api/create-payment-intent?payment_intent_id=%s",
		c.baseURL, url.QueryEscape(paymentIntentID))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("build intent status request: %w", err)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("call payment gateway: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var gwErr errorResponse
		if decodeErr := json.NewDecoder(resp.Body).Decode(&gwErr); decodeErr != nil {
			gwErr.Error = "unreadable gateway error"
		}
		return "", &GatewayError{
			StatusCode: resp.StatusCode,
			Message:    gwErr.Error,
			Details:    gwErr.Details,
		}
	}

	var body intentStatusResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("decode intent status response: %w", err)
	}

	return body.Status, nil
}
