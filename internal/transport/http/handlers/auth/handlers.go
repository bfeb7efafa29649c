package authhandler

import (
	"encoding/json"
	"net/http"
	"time"

	"slipgen/internal/auth"
	"slipgen/internal/transport/http/api"
	"slipgen/internal/transport/http/middleware"
)

const tokenTTL = 12 * time.Hour

// Handler authenticates the single configured admin user.
type Handler struct {
	Secret       string
	AdminEmail   string
	PasswordHash string
}

func NewHandler(secret, adminEmail, passwordHash string) *Handler {
	return &Handler{Secret: secret, AdminEmail: adminEmail, PasswordHash: passwordHash}
}

func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid request body", middleware.GetRequestID(r.Context()))
		return
	}

	if body.Email != h.AdminEmail || auth.CheckPassword(h.PasswordHash, body.Password) != nil {
		api.Fail(w, http.StatusUnauthorized, "invalid credentials", middleware.GetRequestID(r.Context()))
		return
	}

	token, err := auth.GenerateToken(h.Secret, auth.Claims{Email: body.Email}, tokenTTL)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "failed to issue token", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"token": token}, middleware.GetRequestID(r.Context()))
}
