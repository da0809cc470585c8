package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"assetcore/internal/services"
	"assetcore/internal/store"
)

// AuditLogs queries the audit trail with optional filters: action,
// resource_type, user_id, start_date, end_date (RFC 3339), limit.
func AuditLogs(svc *services.AuditService, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		f := store.AuditFilter{
			Action:       q.Get("action"),
			ResourceType: q.Get("resource_type"),
			UserID:       q.Get("user_id"),
		}
		if v := q.Get("start_date"); v != "" {
			t, err := time.Parse(time.RFC3339, v)
			if err != nil {
				badRequest(w, "start_date must be RFC 3339")
				return
			}
			f.Start = &t
		}
		if v := q.Get("end_date"); v != "" {
			t, err := time.Parse(time.RFC3339, v)
			if err != nil {
				badRequest(w, "end_date must be RFC 3339")
				return
			}
			f.End = &t
		}
		limit, _ := strconv.Atoi(q.Get("limit"))
		logs, err := svc.Query(r.Context(), f, limit)
		if err != nil {
			respondError(w, lg, err)
			return
		}
		respondJSON(w, http.StatusOK, logs)
	}
}

// ResourceHistory returns the full descending history of one resource.
func ResourceHistory(svc *services.AuditService, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logs, err := svc.ResourceHistory(r.Context(),
			chi.URLParam(r, "type"), chi.URLParam(r, "id"))
		if err != nil {
			respondError(w, lg, err)
			return
		}
		respondJSON(w, http.StatusOK, logs)
	}
}

func AuditStats(svc *services.AuditService, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		days, _ := strconv.Atoi(r.URL.Query().Get("days"))
		if days == 0 {
			days = 30
		}
		stats, err := svc.Stats(r.Context(), days)
		if err != nil {
			respondError(w, lg, err)
			return
		}
		respondJSON(w, http.StatusOK, stats)
	}
}
