package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"assetcore/internal/auth"
	"assetcore/internal/httpserver/handlers"
	"assetcore/internal/services"
)

// Deps bundles everything the route table needs.
type Deps struct {
	Identity  *services.IdentityService
	Equipment *services.EquipmentService
	Furniture *services.FurnitureService
	Audit     *services.AuditService
	Documents *services.Documents
	Tokens    auth.Tokens
	CORS      []string
	Log       *zap.SugaredLogger
}

func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Recoverer, middleware.Logger)
	r.Use(corsMiddleware(d.CORS))

	r.Post("/api/auth/register", handlers.Register(d.Identity, d.Log))
	r.Post("/api/auth/register-admin", handlers.RegisterAdmin(d.Identity, d.Log))
	r.Post("/api/auth/login", handlers.Login(d.Identity, d.Log))

	r.Group(func(protected chi.Router) {
		protected.Use(auth.Authenticate(d.Tokens, d.Identity))
		protected.Get("/api/me", handlers.Me())

		protected.Group(func(admin chi.Router) {
			admin.Use(auth.RequireAdmin)
			admin.Get("/api/admin/pending-users", handlers.PendingUsers(d.Identity, d.Log))
			admin.Get("/api/admin/all-users", handlers.AllUsers(d.Identity, d.Log))
			admin.Put("/api/admin/approve-user/{id}", handlers.ApproveUser(d.Identity, d.Log))
			admin.Delete("/api/admin/reject-user/{id}", handlers.RejectUser(d.Identity, d.Log))
			admin.Put("/api/admin/deactivate-user/{id}", handlers.DeactivateUser(d.Identity, d.Log))
		})

		protected.Route("/api/equipment", func(eq chi.Router) {
			eq.Get("/my-equipment", handlers.MyEquipment(d.Equipment, d.Log))
			eq.Get("/types/list", handlers.EquipmentTypesList())
			eq.Get("/conditions/list", handlers.ConditionsList())
			eq.Get("/statuses/list", handlers.StatusesList())
			eq.Get("/assignment-types/list", handlers.AssignmentTypesList())
			eq.Get("/{id}/download-par", handlers.DownloadEquipmentPAR(d.Equipment, d.Documents, d.Log))

			eq.Group(func(admin chi.Router) {
				admin.Use(auth.RequireAdmin)
				admin.Post("/", handlers.CreateEquipment(d.Equipment, d.Log))
				admin.Get("/", handlers.ListEquipment(d.Equipment, d.Log))
				admin.Get("/available", handlers.AvailableEquipment(d.Equipment, d.Log))
				admin.Get("/stats", handlers.EquipmentStats(d.Equipment, d.Log))
				admin.Get("/{id}", handlers.GetEquipment(d.Equipment, d.Log))
				admin.Put("/{id}", handlers.UpdateEquipment(d.Equipment, d.Log))
				admin.Delete("/{id}", handlers.DeleteEquipment(d.Equipment, d.Log))
				admin.Post("/{id}/assign", handlers.AssignEquipment(d.Equipment, d.Log))
				admin.Post("/{id}/unassign", handlers.UnassignEquipment(d.Equipment, d.Log))
				admin.Post("/{id}/transfer", handlers.TransferEquipment(d.Equipment, d.Log))
				admin.Post("/{id}/upload-par", handlers.UploadEquipmentPAR(d.Equipment, d.Documents, d.Log))
			})
		})

		protected.Route("/api/furniture", func(fu chi.Router) {
			fu.Get("/my-furniture", handlers.MyFurniture(d.Furniture, d.Log))
			fu.Get("/types/list", handlers.FurnitureTypesList())
			fu.Get("/conditions/list", handlers.ConditionsList())
			fu.Get("/statuses/list", handlers.StatusesList())
			fu.Get("/{id}/download-par", handlers.DownloadFurniturePAR(d.Furniture, d.Documents, d.Log))

			fu.Group(func(admin chi.Router) {
				admin.Use(auth.RequireAdmin)
				admin.Post("/", handlers.CreateFurniture(d.Furniture, d.Log))
				admin.Get("/", handlers.ListFurniture(d.Furniture, d.Log))
				admin.Get("/available", handlers.AvailableFurniture(d.Furniture, d.Log))
				admin.Get("/stats", handlers.FurnitureStats(d.Furniture, d.Log))
				admin.Get("/{id}", handlers.GetFurniture(d.Furniture, d.Log))
				admin.Put("/{id}", handlers.UpdateFurniture(d.Furniture, d.Log))
				admin.Delete("/{id}", handlers.DeleteFurniture(d.Furniture, d.Log))
				admin.Post("/{id}/assign", handlers.AssignFurniture(d.Furniture, d.Log))
				admin.Post("/{id}/unassign", handlers.UnassignFurniture(d.Furniture, d.Log))
				admin.Post("/{id}/upload-par", handlers.UploadFurniturePAR(d.Furniture, d.Documents, d.Log))
			})
		})

		protected.Group(func(admin chi.Router) {
			admin.Use(auth.RequireAdmin)
			admin.Get("/api/audit", handlers.AuditLogs(d.Audit, d.Log))
			admin.Get("/api/audit/resource/{type}/{id}", handlers.ResourceHistory(d.Audit, d.Log))
			admin.Get("/api/audit/stats", handlers.AuditStats(d.Audit, d.Log))
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	return r
}
