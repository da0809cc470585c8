package main

import (
	"log"
	"net/http"
	"os"
	"path/filepath"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"assetcore/internal/auth"
	"assetcore/internal/config"
	"assetcore/internal/httpserver"
	"assetcore/internal/logger"
	"assetcore/internal/models"
	"assetcore/internal/services"
	"assetcore/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	lg := logger.New(cfg.LogLevel)
	defer lg.Sync()

	// TranslateError turns unique-index violations into gorm.ErrDuplicatedKey,
	// which the store layer maps to its Conflict sentinel.
	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{TranslateError: true})
	if err != nil {
		lg.Fatalw("db connect failed", "error", err)
	}
	if err := db.AutoMigrate(&models.Account{}, &models.Equipment{}, &models.Furniture{}, &models.AuditEntry{}); err != nil {
		lg.Fatalw("automigrate failed", "error", err)
	}

	for _, dir := range []string{services.EquipmentPARDir, services.FurniturePARDir} {
		if err := os.MkdirAll(filepath.Join(cfg.UploadDir, dir), 0o755); err != nil {
			lg.Fatalw("upload dir create failed", "dir", dir, "error", err)
		}
	}

	tokens := auth.NewTokens(cfg.JWTSecret, cfg.TokenTTL())
	audit := services.NewAudit(store.NewAudit(db), lg)
	accounts := store.NewAccounts(db)
	identity := services.NewIdentity(accounts, tokens, audit, cfg.AdminSecretKey)
	equipment := services.NewEquipmentService(store.NewEquipment(db), accounts, audit)
	furniture := services.NewFurnitureService(store.NewFurniture(db), accounts, audit)
	documents := services.NewDocuments(cfg.UploadDir)

	router := httpserver.NewRouter(httpserver.Deps{
		Identity:  identity,
		Equipment: equipment,
		Furniture: furniture,
		Audit:     audit,
		Documents: documents,
		Tokens:    tokens,
		CORS:      cfg.CORSOrigins,
		Log:       lg,
	})

	lg.Infow("listening", "port", cfg.HTTPPort)
	if err := http.ListenAndServe(":"+cfg.HTTPPort, router); err != nil {
		lg.Fatalw("server stopped", "error", err)
	}
}
