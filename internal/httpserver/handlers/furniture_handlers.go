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

func CreateFurniture(svc *services.FurnitureService, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req services.FurnitureCreate
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			badRequest(w, err.Error())
			return
		}
		f, err := svc.Create(r.Context(), auth.CurrentAccount(r.Context()), req)
		if err != nil {
			respondError(w, lg, err)
			return
		}
		respondJSON(w, http.StatusCreated, f)
	}
}

func ListFurniture(svc *services.FurnitureService, lg *zap.SugaredLogger) http.HandlerFunc {
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

func AvailableFurniture(svc *services.FurnitureService, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out, err := svc.ListAvailable(r.Context())
		if err != nil {
			respondError(w, lg, err)
			return
		}
		respondJSON(w, http.StatusOK, out)
	}
}

func MyFurniture(svc *services.FurnitureService, lg *zap.SugaredLogger) http.HandlerFunc {
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

func FurnitureStats(svc *services.FurnitureService, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, err := svc.Stats(r.Context())
		if err != nil {
			respondError(w, lg, err)
			return
		}
		respondJSON(w, http.StatusOK, st)
	}
}

func GetFurniture(svc *services.FurnitureService, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f, err := svc.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			respondError(w, lg, err)
			return
		}
		respondJSON(w, http.StatusOK, f)
	}
}

func UpdateFurniture(svc *services.FurnitureService, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req services.FurnitureUpdate
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			badRequest(w, err.Error())
			return
		}
		f, err := svc.Update(r.Context(), auth.CurrentAccount(r.Context()), chi.URLParam(r, "id"), req)
		if err != nil {
			respondError(w, lg, err)
			return
		}
		respondJSON(w, http.StatusOK, f)
	}
}

func DeleteFurniture(svc *services.FurnitureService, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := svc.Delete(r.Context(), auth.CurrentAccount(r.Context()), chi.URLParam(r, "id"))
		if err != nil {
			respondError(w, lg, err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]string{"message": "Furniture deleted successfully"})
	}
}

func AssignFurniture(svc *services.FurnitureService, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req services.FurnitureAssign
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			badRequest(w, err.Error())
			return
		}
		f, err := svc.Assign(r.Context(), auth.CurrentAccount(r.Context()), chi.URLParam(r, "id"), req)
		if err != nil {
			respondError(w, lg, err)
			return
		}
		respondJSON(w, http.StatusOK, f)
	}
}

func UnassignFurniture(svc *services.FurnitureService, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f, err := svc.Unassign(r.Context(), auth.CurrentAccount(r.Context()), chi.URLParam(r, "id"))
		if err != nil {
			respondError(w, lg, err)
			return
		}
		respondJSON(w, http.StatusOK, f)
	}
}

func UploadFurniturePAR(svc *services.FurnitureService, docs *services.Documents, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f, err := svc.Get(r.Context(), chi.URLParam(r, "id"))
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
		path, err := docs.SavePAR(services.FurniturePARDir, f.PropertyNumber, hdr.Filename, hdr.Size, file)
		if err != nil {
			respondError(w, lg, err)
			return
		}
		if _, err := svc.AttachPAR(r.Context(), f.ID, path); err != nil {
			respondError(w, lg, err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]string{
			"message":   "PAR document uploaded successfully",
			"file_path": path,
		})
	}
}

func DownloadFurniturePAR(svc *services.FurnitureService, docs *services.Documents, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		acct := auth.CurrentAccount(r.Context())
		f, err := svc.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			respondError(w, lg, err)
			return
		}
		if !acct.IsAdmin() && (f.AssignedToUserID == nil || *f.AssignedToUserID != acct.ID) {
			respondJSON(w, http.StatusForbidden, map[string]string{
				"code":    "forbidden",
				"message": "You don't have access to this PAR document",
			})
			return
		}
		if f.PARFilePath == nil || !docs.Exists(*f.PARFilePath) {
			respondJSON(w, http.StatusNotFound, map[string]string{
				"code":    "not_found",
				"message": "PAR document not found",
			})
			return
		}
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition",
			fmt.Sprintf(`attachment; filename="PAR_%s.pdf"`, f.PropertyNumber))
		http.ServeFile(w, r, *f.PARFilePath)
	}
}

func FurnitureTypesList() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]any{"furniture_types": models.FurnitureTypes})
	}
}
