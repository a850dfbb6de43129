package main

import (
	"context"
	"flag"
	"log"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/khoahotran/scholar-folio/adapters/persistence"
	backupUC "github.com/khoahotran/scholar-folio/internal/application/usecase/backup"
	contentUC "github.com/khoahotran/scholar-folio/internal/application/usecase/content"
	persistUC "github.com/khoahotran/scholar-folio/internal/application/usecase/persistence"
	"github.com/khoahotran/scholar-folio/internal/config"
	"github.com/khoahotran/scholar-folio/pkg/logger"
)

// backup exports stored content to a file, restores it from one, or resets it
// to the bundled defaults while the server is stopped.
func main() {
	outDir := flag.String("out", ".", "directory for the exported file")
	importPath := flag.String("import", "", "restore from this backup file instead of exporting")
	reset := flag.Bool("reset", false, "remove stored content so the next start uses the bundled defaults")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}
	appLogger := logger.NewZapLogger(cfg.App.Env)
	defer appLogger.Sync()

	ctx := context.Background()
	kv, err := persistence.OpenStore(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Cannot open storage", err)
	}
	defer kv.Close()

	controller := persistUC.NewController(persistUC.NewAdapter(kv, cfg.Storage.Prefix, appLogger), 0, appLogger)
	if *reset {
		if err := controller.Reset(ctx); err != nil {
			appLogger.Fatal("Reset failed", err)
		}
		return
	}
	snap, _ := controller.Hydrate(ctx)
	store := contentUC.NewStore(snap, controller, appLogger)
	uc := backupUC.NewBackupUseCase(store, nil, appLogger)

	if *importPath != "" {
		raw, err := os.ReadFile(*importPath)
		if err != nil {
			appLogger.Fatal("Cannot read backup file", err)
		}
		if err := uc.Import(ctx, raw); err != nil {
			appLogger.Fatal("Import failed", err)
		}
		appLogger.Info("Backup restored", zap.String("file", *importPath))
		return
	}

	raw, err := uc.Export(ctx)
	if err != nil {
		appLogger.Fatal("Export failed", err)
	}
	path := filepath.Join(*outDir, backupUC.ExportFilename(time.Now()))
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		appLogger.Fatal("Cannot write backup file", err)
	}
	appLogger.Info("Backup written", zap.String("file", path))
}
