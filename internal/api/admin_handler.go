package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"justfood/pkg/models"

	"github.com/go-chi/chi/v5"
)

func (s *Server) handleListOrders(w http.ResponseWriter, r *http.Request) {
	requestID := requestIDFrom(r)

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	status := r.URL.Query().Get("status")

	list, err := s.orders.List(r.Context(), status, page, limit)
	if err != nil {
		s.writeOrderError(w, requestID, err)
		return
	}

	jsonResponse(w, http.StatusOK, list)
}

func (s *Server) handleTransition(w http.ResponseWriter, r *http.Request) {
	requestID := requestIDFrom(r)
	orderNumber := chi.URLParam(r, "orderNumber")

	var req models.TransitionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.mylog.Error(requestID, "parse_failed", "Failed to parse transition request", err)
		jsonError(w, http.StatusBadRequest, errors.New("failed to parse JSON"))
		return
	}

	updated, err := s.orders.Transition(r.Context(), orderNumber, req.Status, req.Note)
	if err != nil {
		s.writeOrderError(w, requestID, err)
		return
	}

	jsonResponse(w, http.StatusOK, updated)
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	requestID := requestIDFrom(r)

	stats, err := s.orders.Dashboard(r.Context())
	if err != nil {
		s.mylog.Error(requestID, "dashboard_failed", "Failed to aggregate dashboard stats", err)
		jsonError(w, http.StatusInternalServerError, errors.New("internal server error"))
		return
	}

	jsonResponse(w, http.StatusOK, stats)
}
