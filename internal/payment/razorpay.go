package payment

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"time"

	"justfood/pkg/config"
	"justfood/pkg/logger"
)

const defaultBaseURL = "https://api.razorpay.com"

// Client talks to the Razorpay orders API and verifies payment signatures.
type Client struct {
	keyID     string
	keySecret string
	baseURL   string
	httpc     *http.Client
	mylog     *logger.Logger
}

func NewClient(cfg *config.RazorpayConfig, mylog *logger.Logger) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		keyID:     cfg.KeyID,
		keySecret: cfg.KeySecret,
		baseURL:   baseURL,
		httpc:     &http.Client{Timeout: 10 * time.Second},
		mylog:     mylog,
	}
}

// GatewayOrder is the handle Razorpay returns for a created order.
// Amount is in paise.
type GatewayOrder struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

// CreateOrder registers a payment intent with the gateway. The amount is in
// rupees and converted to paise on the wire.
func (c *Client) CreateOrder(ctx context.Context, amount float64, currency, receipt string) (*GatewayOrder, error) {
	if currency == "" {
		currency = "INR"
	}

	payload := map[string]interface{}{
		"amount":   int64(math.Round(amount * 100)),
		"currency": currency,
		"receipt":  receipt,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/orders", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.keyID, c.keySecret)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var gatewayOrder GatewayOrder
	if err := json.NewDecoder(resp.Body).Decode(&gatewayOrder); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	c.mylog.Debug("", "gateway_order_created",
		fmt.Sprintf("Gateway order %s created for receipt %s", gatewayOrder.ID, receipt))
	return &gatewayOrder, nil
}

// VerifySignature checks the HMAC-SHA256 signature the gateway computes
// over "<orderID>|<paymentID>". The comparison is constant-time.
func (c *Client) VerifySignature(gatewayOrderID, paymentID, signature string) bool {
	mac := hmac.New(sha256.New, []byte(c.keySecret))
	mac.Write([]byte(gatewayOrderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
