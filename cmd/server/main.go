package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/vault-keeper/internal/config"
	"github.com/MKhiriev/vault-keeper/internal/handler"
	"github.com/MKhiriev/vault-keeper/internal/logger"
	"github.com/MKhiriev/vault-keeper/internal/server"
	"github.com/MKhiriev/vault-keeper/internal/service"
	"github.com/MKhiriev/vault-keeper/internal/store"
	"github.com/MKhiriev/vault-keeper/internal/workers"
	"github.com/MKhiriev/vault-keeper/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	fmt.Print(buildInfo)

	cfg, err := config.GetStructuredConfig(os.Args[1:])
	if err != nil {
		logger.NewLogger("vault-server", "").Fatal().Err(err).Msg("error getting configs")
	}

	log := logger.NewLogger("vault-server", cfg.App.LogLevel)

	if cfg.App.Version == "" {
		cfg.App.Version = buildInfo.BuildVersion()
	}
	if cfg.App.TokenSignKey == "" {
		cfg.App.TokenSignKey = randomSignKey()
		log.Warn().Msg("no token sign key configured, using a random one; tokens will not survive a restart")
	}

	log.Debug().
		Str("http_address", cfg.Server.HTTPAddress).
		Str("vault_dir", cfg.Storage.Files.VaultDir).
		Uint32("kdf_memory_kib", cfg.Crypto.KDFMemoryKiB).
		Msg("received configs")

	storages, err := store.NewStorages(context.Background(), cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer storages.Close()

	services, err := service.NewServices(storages, *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers, err := handler.NewHandlers(services, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	bg := workers.NewWorkers(cfg.Storage, log)
	go bg.Run(ctx)

	if err = srv.Run(ctx); err != nil {
		log.Error().Err(err).Msg("error running server")
	}
}

func randomSignKey() string {
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		panic(err)
	}
	return hex.EncodeToString(key)
}
