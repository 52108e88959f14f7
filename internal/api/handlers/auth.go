package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/eventbook/server/internal/api/problem"
	"github.com/eventbook/server/internal/auth"
	"github.com/eventbook/server/internal/domain/accounts"
	"github.com/eventbook/server/internal/metrics"
)

type AuthHandler struct {
	Accounts *accounts.Service
	Tokens   *auth.JWTManager
	Env      string
}

func NewAuthHandler(service *accounts.Service, tokens *auth.JWTManager, env string) *AuthHandler {
	return &AuthHandler{Accounts: service, Tokens: tokens, Env: env}
}

type tokenRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// Token exchanges account credentials for a bearer token.
func (h *AuthHandler) Token(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.Accounts == nil || h.Tokens == nil {
		problem.Write(w, r, http.StatusInternalServerError, problemServerError, "Server error", nil, h.Env)
		return
	}

	var req tokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		problem.Write(w, r, http.StatusBadRequest, problemValidation, "Invalid request", err, h.Env)
		return
	}

	account, err := h.Accounts.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, accounts.ErrInvalidCredentials) {
			problem.Write(w, r, http.StatusUnauthorized, problemUnauthorized, "Invalid credentials", err, h.Env)
			return
		}
		problem.Write(w, r, http.StatusInternalServerError, problemServerError, "Server error", err, h.Env)
		return
	}

	token, err := h.Tokens.Generate(account.ID, account.Email, account.Roles)
	if err != nil {
		problem.Write(w, r, http.StatusInternalServerError, problemServerError, "Server error", err, h.Env)
		return
	}

	metrics.AuthTokensIssuedTotal.Inc()
	writeJSON(w, http.StatusOK, tokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(h.Tokens.Expiry().Seconds()),
	})
}
