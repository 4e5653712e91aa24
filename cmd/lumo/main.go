package main

import (
	"log"
	"log/slog"

	"github.com/vbonduro/lumo/internal/config"
	"github.com/vbonduro/lumo/internal/db"
	"github.com/vbonduro/lumo/internal/gallery"
	"github.com/vbonduro/lumo/internal/logging"
	"github.com/vbonduro/lumo/internal/photostore"
	"github.com/vbonduro/lumo/internal/photostore/inline"
	"github.com/vbonduro/lumo/internal/photostore/local"
	"github.com/vbonduro/lumo/internal/prefs"
	"github.com/vbonduro/lumo/internal/prefs/memory"
	"github.com/vbonduro/lumo/internal/prefs/sqlite"
	"github.com/vbonduro/lumo/internal/web"
)

func main() {
	cfg := config.Load()

	logger, cleanup, err := logging.New(cfg.LogLevel, cfg.LogFormat, cfg.LogFile)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer cleanup()

	preferences, closePrefs, err := newPrefsStore(cfg, logger)
	if err != nil {
		logger.Error("failed to initialize preferences", "error", err)
		return
	}
	defer closePrefs()

	backend := newPhotoBackend(cfg, logger)
	photos := gallery.NewStore(preferences, backend, logger)
	server := web.NewServer(photos, backend, logger)

	if err := server.ListenAndServe(cfg.ListenAddr); err != nil {
		logger.Error("server error", "error", err)
	}
}

func newPrefsStore(cfg *config.Config, logger *slog.Logger) (prefs.Store, func(), error) {
	switch cfg.PrefsBackend {
	case "memory":
		logger.Info("using in-memory preferences")
		return memory.NewMemoryStore(), func() {}, nil
	default:
		database, err := db.Open(cfg.DBPath)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("using sqlite preferences", "db_path", cfg.DBPath)
		return sqlite.NewSQLiteStore(database), func() {
			if err := database.Close(); err != nil {
				logger.Error("failed to close database", "error", err)
			}
		}, nil
	}
}

func newPhotoBackend(cfg *config.Config, logger *slog.Logger) photostore.PhotoStore {
	switch cfg.Platform {
	case config.PlatformWeb:
		logger.Info("using inline photo storage")
		return inline.NewInlinePhotoStore()
	default:
		logger.Info("using local photo storage", "data_dir", cfg.DataDir)
		return local.NewLocalPhotoStore(cfg.DataDir, cfg.FileBaseURL, logger)
	}
}
