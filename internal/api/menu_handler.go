package api

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
)

func (s *Server) handleMenuItems(w http.ResponseWriter, r *http.Request) {
	requestID := requestIDFrom(r)

	var isVeg *bool
	if raw := r.URL.Query().Get("veg"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			jsonError(w, http.StatusBadRequest, errors.New("veg must be a boolean"))
			return
		}
		isVeg = &v
	}

	items, err := s.content.MenuItems(r.Context(), r.URL.Query().Get("category"), isVeg)
	if err != nil {
		s.mylog.Error(requestID, "cms_fetch_failed", "Failed to fetch menu items", err)
		jsonError(w, http.StatusBadGateway, errors.New("content store unavailable"))
		return
	}

	jsonResponse(w, http.StatusOK, items)
}

func (s *Server) handleMenuCategories(w http.ResponseWriter, r *http.Request) {
	requestID := requestIDFrom(r)

	categories, err := s.content.Categories(r.Context())
	if err != nil {
		s.mylog.Error(requestID, "cms_fetch_failed", "Failed to fetch categories", err)
		jsonError(w, http.StatusBadGateway, errors.New("content store unavailable"))
		return
	}

	jsonResponse(w, http.StatusOK, categories)
}

// handleSanityWebhook acknowledges CMS content-change notifications. The
// body signature is an HMAC-SHA256 hex digest checked in constant time.
func (s *Server) handleSanityWebhook(w http.ResponseWriter, r *http.Request) {
	requestID := requestIDFrom(r)

	body, err := io.ReadAll(r.Body)
	if err != nil {
		jsonError(w, http.StatusBadRequest, errors.New("failed to read body"))
		return
	}

	if secret := s.cfg.Sanity.WebhookSecret; secret != "" {
		signature := r.Header.Get("Sanity-Webhook-Signature")
		mac := hmac.New(sha256.New, []byte(secret))
		mac.Write(body)
		expected := hex.EncodeToString(mac.Sum(nil))
		if !hmac.Equal([]byte(expected), []byte(signature)) {
			jsonError(w, http.StatusUnauthorized, errors.New("invalid signature"))
			return
		}
	}

	var payload struct {
		Type  string `json:"_type"`
		Title string `json:"title"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		jsonError(w, http.StatusBadRequest, errors.New("failed to parse JSON"))
		return
	}

	if payload.Type == "menuItem" {
		s.mylog.Info(requestID, "menu_item_updated", "Menu item updated in CMS: "+payload.Title)
	}

	jsonResponse(w, http.StatusOK, map[string]bool{"received": true})
}
