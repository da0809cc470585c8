package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"assetcore/internal/auth"
	"assetcore/internal/services"
)

func PendingUsers(identity *services.IdentityService, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accounts, err := identity.ListPending(r.Context())
		if err != nil {
			respondError(w, lg, err)
			return
		}
		respondJSON(w, http.StatusOK, accounts)
	}
}

func AllUsers(identity *services.IdentityService, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accounts, err := identity.ListAll(r.Context())
		if err != nil {
			respondError(w, lg, err)
			return
		}
		respondJSON(w, http.StatusOK, accounts)
	}
}

func ApproveUser(identity *services.IdentityService, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor := auth.CurrentAccount(r.Context())
		acct, err := identity.Approve(r.Context(), actor, chi.URLParam(r, "id"))
		if err != nil {
			respondError(w, lg, err)
			return
		}
		respondJSON(w, http.StatusOK, acct)
	}
}

func RejectUser(identity *services.IdentityService, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor := auth.CurrentAccount(r.Context())
		if err := identity.Reject(r.Context(), actor, chi.URLParam(r, "id")); err != nil {
			respondError(w, lg, err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]string{"message": "User rejected and removed"})
	}
}

func DeactivateUser(identity *services.IdentityService, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := identity.Deactivate(r.Context(), chi.URLParam(r, "id")); err != nil {
			respondError(w, lg, err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]string{"message": "User deactivated successfully"})
	}
}
