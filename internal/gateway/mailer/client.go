// Package mailer is the HTTP client for the transactional email API used
// to deliver account-verification OTP codes.
package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

type sendOTPRequest struct {
	Email   string `json:"email"`
	OTPCode string `json:"otpCode"`
	Name    string `json:"name"`
}

type sendOTPResponse struct {
	Success   bool   `json:"success"`
	MessageID string `json:"messageId"`
	Error     string `json:"error,omitempty"`
}

// Client talks to the email API endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *logrus.Logger
}

func NewClient(baseURL string, log *logrus.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		log:        log,
	}
}

// SendOTP delivers a one-time verification code to a new account's email.
func (c *Client) SendOTP(ctx context.Context, email, otpCode, name string) error {
	payload, err := json.Marshal(sendOTPRequest{Email: email, OTPCode: otpCode, Name: name})
	if err != nil {
		return fmt.Errorf("marshal otp request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/api/send-otp", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build otp request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("call email API: %w", err)
	}
	defer resp.Body.Close()

	var body sendOTPResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return fmt.Errorf("decode otp response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 || !body.Success {
		return fmt.Errorf("email API rejected otp send (status %d): %s", resp.StatusCode, body.Error)
	}

	c.log.Debugf("OTP email sent: messageId=%s", body.MessageID)
	return nil
}
