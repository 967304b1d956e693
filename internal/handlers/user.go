package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/jlfs-dev/picshare/internal/dto"
	"github.com/jlfs-dev/picshare/internal/service"
)

// ==========================
// UserHandler
// ==========================
type UserHandler struct {
	Users *service.UserService
}

// ==========================
// List Users (GET /users)
// ==========================
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.Users.FindAll(r.Context())
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(users)
}

// ==========================
// Get User (GET /users/{id})
// ==========================
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		PlainError(w, "invalid user id", http.StatusBadRequest)
		return
	}

	user, err := h.Users.FindByID(r.Context(), id)
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(user)
}

// ==========================
// Update User (PUT /users)
// ==========================
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input dto.UserDetailsRequest

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	updated, err := h.Users.Update(r.Context(), dto.UserDto{
		ID:       input.ID,
		FullName: input.FullName,
		Username: input.Username,
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(updated)
}

// ==========================
// Delete User (DELETE /users/{id})
// ==========================
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		PlainError(w, "invalid user id", http.StatusBadRequest)
		return
	}

	if err := h.Users.Delete(r.Context(), id); err != nil {
		WriteDomainError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("user was deleted!"))
}
