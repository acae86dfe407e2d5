package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"justfood/pkg/config"
	"justfood/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sign(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature(t *testing.T) {
	client := NewClient(&config.RazorpayConfig{
		KeyID:     "rzp_test_key",
		KeySecret: "secret123",
	}, logger.New("test"))

	valid := sign("secret123", "order_abc", "pay_xyz")
	assert.True(t, client.VerifySignature("order_abc", "pay_xyz", valid))

	assert.False(t, client.VerifySignature("order_abc", "pay_xyz", "deadbeef"))
	assert.False(t, client.VerifySignature("order_abc", "pay_other", valid))
	assert.False(t, client.VerifySignature("order_abc", "pay_xyz", ""))

	wrongKey := sign("othersecret", "order_abc", "pay_xyz")
	assert.False(t, client.VerifySignature("order_abc", "pay_xyz", wrongKey))
}

func TestCreateOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/orders", r.URL.Path)

		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "rzp_test_key", user)
		assert.Equal(t, "secret123", pass)

		var payload map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, float64(27000), payload["amount"], "amount must be converted to paise")
		assert.Equal(t, "INR", payload["currency"])
		assert.Equal(t, "JF123456ABCD", payload["receipt"])

		_ = json.NewEncoder(w).Encode(GatewayOrder{
			ID:       "order_abc",
			Amount:   27000,
			Currency: "INR",
			Receipt:  "JF123456ABCD",
			Status:   "created",
		})
	}))
	defer srv.Close()

	client := NewClient(&config.RazorpayConfig{
		KeyID:     "rzp_test_key",
		KeySecret: "secret123",
		BaseURL:   srv.URL,
	}, logger.New("test"))

	gatewayOrder, err := client.CreateOrder(context.Background(), 270.0, "", "JF123456ABCD")
	require.NoError(t, err)
	assert.Equal(t, "order_abc", gatewayOrder.ID)
	assert.Equal(t, int64(27000), gatewayOrder.Amount)
}

func TestCreateOrderGatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := NewClient(&config.RazorpayConfig{BaseURL: srv.URL}, logger.New("test"))

	_, err := client.CreateOrder(context.Background(), 100, "INR", "JF000000AAAA")
	assert.Error(t, err)
}
