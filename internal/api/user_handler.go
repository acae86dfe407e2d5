package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"justfood/internal/auth"
	"justfood/internal/user"
	"justfood/pkg/models"
)

type registerRequest struct {
	Name     string  `json:"name"`
	Phone    string  `json:"phone"`
	Email    *string `json:"email,omitempty"`
	Password string  `json:"password"`
}

type loginRequest struct {
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	requestID := requestIDFrom(r)

	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, http.StatusBadRequest, errors.New("failed to parse JSON"))
		return
	}
	if req.Name == "" || req.Phone == "" || len(req.Password) < 6 {
		jsonError(w, http.StatusBadRequest, errors.New("name, phone and a password of at least 6 characters are required"))
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		s.mylog.Error(requestID, "hash_failed", "Failed to hash password", err)
		jsonError(w, http.StatusInternalServerError, errors.New("internal server error"))
		return
	}

	newUser, err := s.users.Create(r.Context(), req.Name, req.Phone, req.Email, hash)
	if err != nil {
		if errors.Is(err, user.ErrDuplicatePhone) {
			jsonError(w, http.StatusConflict, err)
			return
		}
		s.mylog.Error(requestID, "user_create_failed", "Failed to create user", err)
		jsonError(w, http.StatusInternalServerError, errors.New("internal server error"))
		return
	}

	token, err := auth.BuildJWT(s.cfg.Auth.JWTSecret, newUser.ID, newUser.Role)
	if err != nil {
		s.mylog.Error(requestID, "token_build_failed", "Failed to build token", err)
		jsonError(w, http.StatusInternalServerError, errors.New("internal server error"))
		return
	}

	s.mylog.Info(requestID, "user_registered", "User registered: "+newUser.Phone)
	jsonResponse(w, http.StatusCreated, authResponse{Token: token, User: newUser})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	requestID := requestIDFrom(r)

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, http.StatusBadRequest, errors.New("failed to parse JSON"))
		return
	}

	u, err := s.users.GetByPhone(r.Context(), req.Phone)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			jsonError(w, http.StatusUnauthorized, errors.New("invalid credentials"))
			return
		}
		s.mylog.Error(requestID, "user_lookup_failed", "Failed to look up user", err)
		jsonError(w, http.StatusInternalServerError, errors.New("internal server error"))
		return
	}

	if !auth.CheckPassword(u.PasswordHash, req.Password) {
		jsonError(w, http.StatusUnauthorized, errors.New("invalid credentials"))
		return
	}

	token, err := auth.BuildJWT(s.cfg.Auth.JWTSecret, u.ID, u.Role)
	if err != nil {
		s.mylog.Error(requestID, "token_build_failed", "Failed to build token", err)
		jsonError(w, http.StatusInternalServerError, errors.New("internal server error"))
		return
	}

	jsonResponse(w, http.StatusOK, authResponse{Token: token, User: u})
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	requestID := requestIDFrom(r)
	claims := claimsFrom(r)

	u, err := s.users.GetByID(r.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			jsonError(w, http.StatusNotFound, err)
			return
		}
		s.mylog.Error(requestID, "user_lookup_failed", "Failed to look up user", err)
		jsonError(w, http.StatusInternalServerError, errors.New("internal server error"))
		return
	}

	jsonResponse(w, http.StatusOK, u)
}

func (s *Server) handleListAddresses(w http.ResponseWriter, r *http.Request) {
	requestID := requestIDFrom(r)
	claims := claimsFrom(r)

	addresses, err := s.users.ListAddresses(r.Context(), claims.UserID)
	if err != nil {
		s.mylog.Error(requestID, "address_list_failed", "Failed to list addresses", err)
		jsonError(w, http.StatusInternalServerError, errors.New("internal server error"))
		return
	}

	jsonResponse(w, http.StatusOK, map[string]any{"addresses": addresses})
}

func (s *Server) handleCreateAddress(w http.ResponseWriter, r *http.Request) {
	requestID := requestIDFrom(r)
	claims := claimsFrom(r)

	var req models.AddressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, http.StatusBadRequest, errors.New("failed to parse JSON"))
		return
	}

	addr, err := s.users.CreateAddress(r.Context(), claims.UserID, req)
	if err != nil {
		if errors.Is(err, user.ErrInvalidAddress) {
			jsonError(w, http.StatusBadRequest, err)
			return
		}
		s.mylog.Error(requestID, "address_create_failed", "Failed to save address", err)
		jsonError(w, http.StatusInternalServerError, errors.New("internal server error"))
		return
	}

	jsonResponse(w, http.StatusCreated, addr)
}
