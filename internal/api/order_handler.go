package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"justfood/internal/order"
	"justfood/pkg/models"

	"github.com/go-chi/chi/v5"
)

func (s *Server) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	requestID := requestIDFrom(r)

	var req models.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.mylog.Error(requestID, "parse_failed", "Failed to parse order request", err)
		jsonError(w, http.StatusBadRequest, errors.New("failed to parse JSON"))
		return
	}

	var userID *int64
	if claims := claimsFrom(r); claims != nil {
		userID = &claims.UserID
	}

	newOrder, err := s.orders.Create(r.Context(), req, userID)
	if err != nil {
		s.writeOrderError(w, requestID, err)
		return
	}

	s.mylog.Info(requestID, "order_accepted", "Order "+newOrder.OrderNumber+" accepted")
	jsonResponse(w, http.StatusCreated, newOrder)
}

func (s *Server) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	requestID := requestIDFrom(r)
	orderNumber := chi.URLParam(r, "orderNumber")

	o, err := s.orders.GetByNumber(r.Context(), orderNumber)
	if err != nil {
		s.writeOrderError(w, requestID, err)
		return
	}

	jsonResponse(w, http.StatusOK, o)
}

func (s *Server) handleUserOrders(w http.ResponseWriter, r *http.Request) {
	requestID := requestIDFrom(r)
	claims := claimsFrom(r)

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	list, err := s.orders.ListByUser(r.Context(), claims.UserID, page, limit)
	if err != nil {
		s.writeOrderError(w, requestID, err)
		return
	}

	jsonResponse(w, http.StatusOK, list)
}

// writeOrderError maps engine errors onto HTTP statuses. An invalid
// transition reports both sides so operator tooling can act on the
// rejection without a separate allowed-transitions query.
func (s *Server) writeOrderError(w http.ResponseWriter, requestID string, err error) {
	var invalidTransition *order.InvalidTransitionError
	var validation *order.ValidationError

	switch {
	case errors.Is(err, order.ErrOrderNotFound):
		jsonError(w, http.StatusNotFound, err)
	case errors.As(err, &invalidTransition):
		jsonResponse(w, http.StatusConflict, map[string]interface{}{
			"error":            invalidTransition.Error(),
			"current_status":   invalidTransition.From.String(),
			"requested_status": invalidTransition.To.String(),
			"allowed_statuses": invalidTransition.From.AllowedNext(),
		})
	case errors.As(err, &validation):
		jsonError(w, http.StatusBadRequest, err)
	default:
		s.mylog.Error(requestID, "request_failed", "Order operation failed", err)
		jsonError(w, http.StatusInternalServerError, errors.New("internal server error"))
	}
}
