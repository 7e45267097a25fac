package mailer

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

func TestSendOTP(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/send-otp", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "client@example.com", body["email"])
		assert.Equal(t, "123456", body["otpCode"])
		assert.Equal(t, "Jamie Cruz", body["name"])

		w.Write([]byte(`{"success":true,"messageId":"msg_1"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, logrus.New())

	err := client.SendOTP(context.Background(), "client@example.com", "123456", "Jamie Cruz")
	assert.NoError(t, err)
}

func TestSendOTPRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`{"success":false,"error":"smtp relay down"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, logrus.New())

	err := client.SendOTP(context.Background(), "client@example.com", "123456", "Jamie Cruz")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "smtp relay down")
}

func TestSendOTPSoftFailure(t *testing.T) {
	// 200 with success=false still counts as a failure
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":false,"error":"invalid recipient"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, logrus.New())

	err := client.SendOTP(context.Background(), "client@example.com", "123456", "Jamie Cruz")
	assert.Error(t, err)
}
