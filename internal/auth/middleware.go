package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"assetcore/internal/apperr"
	"assetcore/internal/models"
)

// AccountSource loads the account record behind a token subject. Every
// authenticated request re-reads the account so role and activation changes
// take effect immediately even though tokens are not revocable.
type AccountSource interface {
	AccountByID(ctx context.Context, id string) (*models.Account, error)
}

// Authenticate validates the bearer token and attaches the loaded account to
// the request context. Approval is not checked here: unapproved users may
// still view items already assigned to them.
func Authenticate(tokens Tokens, accounts AccountSource) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := r.Header.Get("Authorization")
			if !strings.HasPrefix(h, "Bearer ") {
				writeErr(w, apperr.Unauthorized, "Missing bearer token")
				return
			}
			claims, err := tokens.Verify(strings.TrimPrefix(h, "Bearer "))
			if err != nil {
				writeErr(w, apperr.Unauthorized, "Invalid authentication credentials")
				return
			}
			acct, err := accounts.AccountByID(r.Context(), claims.Subject)
			if err != nil || acct == nil {
				writeErr(w, apperr.Unauthorized, "User not found")
				return
			}
			if !acct.IsActive {
				writeErr(w, apperr.Forbidden, "User account is inactive")
				return
			}
			next.ServeHTTP(w, r.WithContext(WithAccount(r.Context(), acct)))
		})
	}
}

// RequireAdmin gates admin-only routes.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		a := CurrentAccount(r.Context())
		if a == nil || !a.IsAdmin() {
			writeErr(w, apperr.Forbidden, "Admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireApproved gates features that need an approved account. Admins pass
// regardless of the flag.
func RequireApproved(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		a := CurrentAccount(r.Context())
		if a == nil || (!a.IsAdmin() && !a.IsApproved) {
			writeErr(w, apperr.Forbidden, "Your account is pending approval. Please wait for admin approval.")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeErr(w http.ResponseWriter, kind apperr.Kind, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(kind.HTTPStatus())
	_ = json.NewEncoder(w).Encode(map[string]string{"code": kind.Code(), "message": msg})
}
