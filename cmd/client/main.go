package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/vault-keeper/internal/adapter"
	"github.com/MKhiriev/vault-keeper/internal/client"
	"github.com/MKhiriev/vault-keeper/internal/config"
	"github.com/MKhiriev/vault-keeper/internal/logger"
	"github.com/MKhiriev/vault-keeper/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	args := os.Args[1:]
	if len(args) > 0 && args[0] == "version" {
		fmt.Print(models.NewAppBuildInfo(buildVersion, buildDate, buildCommit))
		return
	}

	level := os.Getenv("CLIENT_LOG_LEVEL")
	if level == "" {
		level = "warn"
	}
	log := logger.NewClientLogger("vault-client", level)
	cfg, err := config.GetClientConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	// -token before the command overrides VAULT_TOKEN.
	token := cfg.Token
	if len(args) > 1 && args[0] == "-token" {
		token, args = args[1], args[2:]
	}

	serverAdapter, err := adapter.NewHTTPServerAdapter(cfg.Adapter, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create server adapter")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var app client.Client = client.NewApp(serverAdapter, client.SystemClipboard(), token, os.Stdin, os.Stdout, log)
	if err = app.Run(ctx, args); err != nil {
		stop()
		log.Fatal().Err(err).Msg("client run error")
	}
}
