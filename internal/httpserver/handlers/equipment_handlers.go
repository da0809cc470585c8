package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"assetcore/internal/auth"
	"assetcore/internal/models"
	"assetcore/internal/services"
)

func CreateEquipment(svc *services.EquipmentService, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req services.EquipmentCreate
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			badRequest(w, err.Error())
			return
		}
		e, err := svc.Create(r.Context(), auth.CurrentAccount(r.Context()), req)
		if err != nil {
			respondError(w, lg, err)
			return
		}
		respondJSON(w, http.StatusCreated, e)
	}
}

func ListEquipment(svc *services.EquipmentService, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		skip, _ := strconv.Atoi(r.URL.Query().Get("skip"))
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		out, err := svc.List(r.Context(), skip, limit)
		if err != nil {
			respondError(w, lg, err)
			return
		}
		respondJSON(w, http.StatusOK, out)
	}
}

func AvailableEquipment(svc *services.EquipmentService, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out, err := svc.ListAvailable(r.Context())
		if err != nil {
			respondError(w, lg, err)
			return
		}
		respondJSON(w, http.StatusOK, out)
	}
}

// MyEquipment lists items assigned to the caller. Available to any active
// account, approved or not.
func MyEquipment(svc *services.EquipmentService, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		acct := auth.CurrentAccount(r.Context())
		out, err := svc.ListAssignedTo(r.Context(), acct.ID)
		if err != nil {
			respondError(w, lg, err)
			return
		}
		respondJSON(w, http.StatusOK, out)
	}
}

func EquipmentStats(svc *services.EquipmentService, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, err := svc.Stats(r.Context())
		if err != nil {
			respondError(w, lg, err)
			return
		}
		respondJSON(w, http.StatusOK, st)
	}
}

func GetEquipment(svc *services.EquipmentService, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		e, err := svc.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			respondError(w, lg, err)
			return
		}
		respondJSON(w, http.StatusOK, e)
	}
}

func UpdateEquipment(svc *services.EquipmentService, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req services.EquipmentUpdate
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			badRequest(w, err.Error())
			return
		}
		e, err := svc.Update(r.Context(), auth.CurrentAccount(r.Context()), chi.URLParam(r, "id"), req)
		if err != nil {
			respondError(w, lg, err)
			return
		}
		respondJSON(w, http.StatusOK, e)
	}
}

func DeleteEquipment(svc *services.EquipmentService, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := svc.Delete(r.Context(), auth.CurrentAccount(r.Context()), chi.URLParam(r, "id"))
		if err != nil {
			respondError(w, lg, err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]string{"message": "Equipment deleted successfully"})
	}
}

func AssignEquipment(svc *services.EquipmentService, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req services.EquipmentAssign
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			badRequest(w, err.Error())
			return
		}
		e, err := svc.Assign(r.Context(), auth.CurrentAccount(r.Context()), chi.URLParam(r, "id"), req)
		if err != nil {
			respondError(w, lg, err)
			return
		}
		respondJSON(w, http.StatusOK, e)
	}
}

func UnassignEquipment(svc *services.EquipmentService, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		e, err := svc.Unassign(r.Context(), auth.CurrentAccount(r.Context()), chi.URLParam(r, "id"))
		if err != nil {
			respondError(w, lg, err)
			return
		}
		respondJSON(w, http.StatusOK, e)
	}
}

func TransferEquipment(svc *services.EquipmentService, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req services.EquipmentAssign
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			badRequest(w, err.Error())
			return
		}
		e, err := svc.Transfer(r.Context(), auth.CurrentAccount(r.Context()), chi.URLParam(r, "id"), req)
		if err != nil {
			respondError(w, lg, err)
			return
		}
		respondJSON(w, http.StatusOK, e)
	}
}

func UploadEquipmentPAR(svc *services.EquipmentService, docs *services.Documents, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		e, err := svc.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			respondError(w, lg, err)
			return
		}
		file, hdr, err := r.FormFile("file")
		if err != nil {
			badRequest(w, "file field is required")
			return
		}
		defer file.Close()
		path, err := docs.SavePAR(services.EquipmentPARDir, e.PropertyNumber, hdr.Filename, hdr.Size, file)
		if err != nil {
			respondError(w, lg, err)
			return
		}
		if _, err := svc.AttachPAR(r.Context(), e.ID, path); err != nil {
			respondError(w, lg, err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]string{
			"message":   "PAR document uploaded successfully",
			"file_path": path,
		})
	}
}

// DownloadEquipmentPAR streams the attached PAR to an admin or the current
// assignee.
func DownloadEquipmentPAR(svc *services.EquipmentService, docs *services.Documents, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		acct := auth.CurrentAccount(r.Context())
		e, err := svc.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			respondError(w, lg, err)
			return
		}
		if !acct.IsAdmin() && (e.AssignedToUserID == nil || *e.AssignedToUserID != acct.ID) {
			respondJSON(w, http.StatusForbidden, map[string]string{
				"code":    "forbidden",
				"message": "You don't have access to this PAR document",
			})
			return
		}
		if e.PARFilePath == nil || !docs.Exists(*e.PARFilePath) {
			respondJSON(w, http.StatusNotFound, map[string]string{
				"code":    "not_found",
				"message": "PAR document not found",
			})
			return
		}
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition",
			fmt.Sprintf(`attachment; filename="PAR_%s.pdf"`, e.PropertyNumber))
		http.ServeFile(w, r, *e.PARFilePath)
	}
}

// Enum list endpoints consumed by frontend dropdowns.

func EquipmentTypesList() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]any{"equipment_types": models.EquipmentTypes})
	}
}

func ConditionsList() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]any{"conditions": models.Conditions})
	}
}

func StatusesList() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]any{"statuses": models.Statuses})
	}
}

func AssignmentTypesList() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]any{"assignment_types": models.AssignmentTypes})
	}
}
