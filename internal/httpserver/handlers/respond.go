package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"assetcore/internal/apperr"
)

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

// respondError maps a service-layer error onto its HTTP status and a JSON
// {code, message} body. Unclassified errors become 500s with a generic
// message; the cause goes to the log, not the caller.
func respondError(w http.ResponseWriter, lg *zap.SugaredLogger, err error) {
	kind := apperr.KindOf(err)
	if kind == apperr.Internal {
		lg.Errorw("request failed", "error", err)
	}
	respondJSON(w, kind.HTTPStatus(), map[string]string{
		"code":    kind.Code(),
		"message": apperr.MessageOf(err),
	})
}

func badRequest(w http.ResponseWriter, msg string) {
	respondJSON(w, http.StatusBadRequest, map[string]string{
		"code":    apperr.BadRequest.Code(),
		"message": msg,
	})
}
