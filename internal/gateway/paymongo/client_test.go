package paymongo

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCheckout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/create-payment-intent", r.URL.Path)

		var req CheckoutRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		// 500.00 pesos in centavos
		assert.Equal(t, int64(50000), req.Amount)
		assert.Equal(t, "gcash", req.PaymentMethodType)
		assert.Contains(t, req.ReturnURL, "appointment_id=")

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"id":"evt_1","attributes":{"checkout_url":"https://checkout.example.com/cs_123","payment_intent_id":"pi_123"}}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, logrus.New())

	session, err := client.CreateCheckout(context.Background(), &CheckoutRequest{
		Amount:            50000,
		Description:       "Vaccination for Milo",
		PaymentMethodType: "gcash",
		ReturnURL:         "https://clinic.example.com/api/v1/payments/callback?appointment_id=abc",
	})
	require.NoError(t, err)

	assert.Equal(t, "evt_1", session.ID)
	assert.Equal(t, "https://checkout.example.com/cs_123", session.CheckoutURL)
	assert.Equal(t, "pi_123", session.PaymentIntentID)
}

func TestCreateCheckoutGatewayError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"error":"amount below minimum","details":"minimum is 2000"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, logrus.New())

	_, err := client.CreateCheckout(context.Background(), &CheckoutRequest{Amount: 100})
	require.Error(t, err)

	var gwErr *GatewayError
	require.ErrorAs(t, err, &gwErr)
	assert.Equal(t, http.StatusUnprocessableEntity, gwErr.StatusCode)
	assert.Equal(t, "amount below minimum", gwErr.Message)
	assert.Equal(t, "minimum is 2000", gwErr.Details)
}

func TestCreateCheckoutMissingURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{"id":"evt_1","attributes":{"payment_intent_id":"pi_123"}}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, logrus.New())

	_, err := client.CreateCheckout(context.Background(), &CheckoutRequest{Amount: 50000})
	assert.ErrorIs(t, err, ErrNoCheckoutURL)
}

func TestRetrieveIntentStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "pi_123", r.URL.Query().Get("payment_intent_id"))
		w.Write([]byte(`{"status":"succeeded"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, logrus.New())

	status, err := client.RetrieveIntentStatus(context.Background(), "pi_123")
	require.NoError(t, err)
	assert.Equal(t, IntentStatusSucceeded, status)
}
