package api

import (
	"encoding/json"
	"errors"
	"net/http"
)

type paymentIntentRequest struct {
	OrderNumber string `json:"order_number"`
}

type paymentIntentResponse struct {
	RazorpayOrderID string  `json:"razorpay_order_id"`
	Amount          int64   `json:"amount"`
	Currency        string  `json:"currency"`
	KeyID           string  `json:"key_id"`
	TotalAmount     float64 `json:"total_amount"`
}

type paymentVerifyRequest struct {
	OrderNumber       string `json:"order_number"`
	RazorpayOrderID   string `json:"razorpay_order_id"`
	RazorpayPaymentID string `json:"razorpay_payment_id"`
	RazorpaySignature string `json:"razorpay_signature"`
}

func (s *Server) handlePaymentIntent(w http.ResponseWriter, r *http.Request) {
	requestID := requestIDFrom(r)

	var req paymentIntentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, http.StatusBadRequest, errors.New("failed to parse JSON"))
		return
	}

	o, err := s.orders.GetByNumber(r.Context(), req.OrderNumber)
	if err != nil {
		s.writeOrderError(w, requestID, err)
		return
	}

	gatewayOrder, err := s.payments.CreateOrder(r.Context(), o.TotalAmount, "INR", o.OrderNumber)
	if err != nil {
		s.mylog.Error(requestID, "gateway_order_failed", "Failed to create gateway order", err)
		jsonError(w, http.StatusBadGateway, errors.New("payment gateway unavailable"))
		return
	}

	if err := s.orders.AttachGatewayOrder(r.Context(), o.OrderNumber, gatewayOrder.ID); err != nil {
		s.writeOrderError(w, requestID, err)
		return
	}

	jsonResponse(w, http.StatusOK, paymentIntentResponse{
		RazorpayOrderID: gatewayOrder.ID,
		Amount:          gatewayOrder.Amount,
		Currency:        gatewayOrder.Currency,
		KeyID:           s.cfg.Razorpay.KeyID,
		TotalAmount:     o.TotalAmount,
	})
}

func (s *Server) handlePaymentVerify(w http.ResponseWriter, r *http.Request) {
	requestID := requestIDFrom(r)

	var req paymentVerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, http.StatusBadRequest, errors.New("failed to parse JSON"))
		return
	}

	if !s.payments.VerifySignature(req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature) {
		s.mylog.Warn(requestID, "signature_rejected", "Payment signature verification failed for order "+req.OrderNumber)
		jsonError(w, http.StatusBadRequest, errors.New("invalid payment signature"))
		return
	}

	o, err := s.orders.ConfirmPayment(r.Context(), req.OrderNumber, req.RazorpayOrderID, req.RazorpayPaymentID)
	if err != nil {
		s.writeOrderError(w, requestID, err)
		return
	}

	s.mylog.Info(requestID, "payment_confirmed", "Payment confirmed for order "+req.OrderNumber)
	jsonResponse(w, http.StatusOK, o)
}
