package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/khoahotran/scholar-folio/adapters/persistence"
	authUC "github.com/khoahotran/scholar-folio/internal/application/usecase/auth"
	persistUC "github.com/khoahotran/scholar-folio/internal/application/usecase/persistence"
	"github.com/khoahotran/scholar-folio/internal/config"
	"github.com/khoahotran/scholar-folio/pkg/auth"
	"github.com/khoahotran/scholar-folio/pkg/logger"
)

func main() {
	fmt.Println("setting owner password in storage...")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("cannot load config: %v", err)
	}

	ownerPassword := os.Getenv("OWNER_PASSWORD")
	if ownerPassword == "" {
		log.Fatal("OWNER_PASSWORD is required")
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)
	ctx := context.Background()

	kv, err := persistence.OpenStore(ctx, cfg, appLogger)
	if err != nil {
		log.Fatalf("cannot open storage: %v", err)
	}
	defer kv.Close()

	controller := persistUC.NewController(persistUC.NewAdapter(kv, cfg.Storage.Prefix, appLogger), 0, appLogger)
	gate, err := authUC.NewGate(ctx, controller, auth.NewPasswordHasher(cfg.Auth.BcryptCost), authUC.GateConfig{
		DefaultPassword:   cfg.Auth.DefaultPassword,
		MinPasswordLength: cfg.Auth.MinPasswordLength,
	}, appLogger)
	if err != nil {
		log.Fatalf("cannot init auth gate: %v", err)
	}

	if err := gate.ChangePassword(ctx, ownerPassword); err != nil {
		log.Fatalf("cannot set password: %v", err)
	}

	fmt.Println("owner password updated successfully!")
}
