package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/urmhq/urm/internal/config"
	"github.com/urmhq/urm/internal/console"
	"github.com/urmhq/urm/internal/eventbus"
	"github.com/urmhq/urm/internal/live"
	"github.com/urmhq/urm/internal/manager"
	"github.com/urmhq/urm/internal/schema"
	"github.com/urmhq/urm/internal/store"
)

var (
	flagConfigDir  string
	flagListen     string
	flagAPIBaseURL string
)

var rootCmd = &cobra.Command{
	Use:   "console",
	Short: "URM user management console",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(flagConfigDir)
		if err != nil {
			return err
		}
		if flagListen != "" {
			cfg.Listen = flagListen
		}
		if flagAPIBaseURL != "" {
			cfg.APIBaseURL = flagAPIBaseURL
		}
		return run(cfg)
	},
}

func init() {
	rootCmd.Flags().StringVar(&flagConfigDir, "config-dir", "", "directory holding config.yaml (optional)")
	rootCmd.Flags().StringVar(&flagListen, "listen", "", "listen address (default :8080)")
	rootCmd.Flags().StringVar(&flagAPIBaseURL, "api-base-url", "", "record store base URL (default http://localhost:3001)")
}

func run(cfg config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	registry := prometheus.NewRegistry()

	client := store.New(cfg.APIBaseURL,
		store.WithMetrics(store.NewMetrics(registry)),
	)

	bus := eventbus.New(64)
	bus.Subscribe("log", eventbus.NewLogConsumer())
	hub := live.NewHub()
	bus.Subscribe("live", hub)
	bus.Start(ctx)

	m := manager.New(client, bus)
	srv := console.NewServer(schema.MustLoadUser(), m, hub, registry)

	log.Printf("console: record store at %s", cfg.APIBaseURL)
	err := srv.Run(ctx, cfg.Listen)
	stop()
	bus.Stop()
	return err
}
