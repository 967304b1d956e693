package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/jlfs-dev/picshare/internal/auth"
	"github.com/jlfs-dev/picshare/internal/dto"
	"github.com/jlfs-dev/picshare/internal/metrics"
	"github.com/jlfs-dev/picshare/internal/service"
)

// ==========================
// Auth Handler
// ==========================
type AuthHandler struct {
	Users  *service.UserService
	Tokens *auth.TokenService
}

// ==========================
// Signup (POST /auth/signup)
// ==========================
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var input dto.UserDetailsRequest

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	created, err := h.Users.Create(r.Context(), dto.UserDto{
		FullName: input.FullName,
		Username: input.Username,
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	metrics.IncSignups()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(created)
}

// ==========================
// Signin (POST /auth/signin)
// ==========================
func (h *AuthHandler) Signin(w http.ResponseWriter, r *http.Request) {
	var input dto.LoginRequest

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	token, err := h.Tokens.Authenticate(r.Context(), input.Username, input.Password)
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(dto.TokenResponse{
		Token:    token,
		Username: input.Username,
	})
}
