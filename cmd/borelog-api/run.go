package main

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	apiserver "github.com/soilworks/borelog-registry/internal/api_server"
	"github.com/soilworks/borelog-registry/internal/config"
	"github.com/soilworks/borelog-registry/internal/docstore"
	"github.com/soilworks/borelog-registry/internal/store"
	"github.com/soilworks/borelog-registry/pkg/log"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the borelog registry api",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.New()
		if err != nil {
			return err
		}

		logger := log.Init(cfg.Service.LogLevel)
		defer func() { _ = logger.Sync() }()

		zap.S().Info("Starting API service")
		defer zap.S().Info("API service stopped")

		zap.S().Info("Initializing data store")
		db, err := store.InitDB(cfg)
		if err != nil {
			zap.S().Fatalf("initializing data store: %v", err)
		}

		st := store.NewStore(db)
		defer st.Close()

		if err := st.InitialMigration(); err != nil {
			zap.S().Fatalf("running initial migration: %v", err)
		}

		docs, err := newDocstore(cfg)
		if err != nil {
			zap.S().Fatalf("initializing document store: %v", err)
		}

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGHUP, syscall.SIGTERM, syscall.SIGQUIT)
		go func() {
			defer cancel()
			listener, err := newListener(cfg.Service.Address)
			if err != nil {
				zap.S().Fatalf("creating listener: %s", err)
			}

			server := apiserver.New(cfg, st, docs, listener)
			if err := server.Run(ctx); err != nil {
				zap.S().Fatalf("Error running server: %s", err)
			}
		}()

		go func() {
			defer cancel()
			listener, err := newListener(cfg.Service.MetricsAddress)
			if err != nil {
				zap.S().Fatalf("creating listener: %s", err)
			}

			metricsServer := apiserver.NewMetricServer(cfg.Service.MetricsAddress, listener)
			if err := metricsServer.Run(ctx); err != nil {
				zap.S().Fatalf("Error running metrics server: %s", err)
			}
		}()

		<-ctx.Done()
		return nil
	},
}

// newDocstore picks the object store backend: an S3 compatible endpoint when
// credentials are configured, an in-memory store for local development.
func newDocstore(cfg *config.Config) (*docstore.Store, error) {
	if cfg.ObjectStore.AccessKey == "" {
		zap.S().Warn("no object store credentials configured, document versions are kept in memory")
		return docstore.New(docstore.NewMemoryStore()), nil
	}

	objects, err := docstore.NewMinioStore(
		docstore.WithEndpoint(cfg.ObjectStore.Endpoint),
		docstore.WithBucket(cfg.ObjectStore.Bucket),
		docstore.WithCredentials(cfg.ObjectStore.AccessKey, cfg.ObjectStore.SecretKey),
		docstore.WithSSL(cfg.ObjectStore.UseSSL),
	)
	if err != nil {
		return nil, err
	}
	return docstore.New(objects), nil
}

func newListener(address string) (net.Listener, error) {
	if address == "" {
		address = "localhost:0"
	}
	return net.Listen("tcp", address)
}
