package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"assetcore/internal/auth"
	"assetcore/internal/services"
)

// Register self-registers an employee account pending admin approval.
func Register(identity *services.IdentityService, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req services.RegisterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			badRequest(w, err.Error())
			return
		}
		acct, err := identity.Register(r.Context(), req)
		if err != nil {
			respondError(w, lg, err)
			return
		}
		respondJSON(w, http.StatusCreated, acct)
	}
}

// RegisterAdmin creates an auto-approved administrator, gated by the shared
// admin secret.
func RegisterAdmin(identity *services.IdentityService, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req services.AdminRegisterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			badRequest(w, err.Error())
			return
		}
		acct, err := identity.RegisterAdmin(r.Context(), req)
		if err != nil {
			respondError(w, lg, err)
			return
		}
		respondJSON(w, http.StatusCreated, acct)
	}
}

func Login(identity *services.IdentityService, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			badRequest(w, err.Error())
			return
		}
		token, acct, err := identity.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			respondError(w, lg, err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]any{
			"access_token": token,
			"token_type":   "bearer",
			"user":         acct,
		})
	}
}

// Me returns the authenticated account.
func Me() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, auth.CurrentAccount(r.Context()))
	}
}
