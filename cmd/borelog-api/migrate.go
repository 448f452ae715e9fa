package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/soilworks/borelog-registry/internal/config"
	"github.com/soilworks/borelog-registry/internal/store"
	"github.com/soilworks/borelog-registry/pkg/log"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Migrate the db",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.New()
		if err != nil {
			return err
		}

		logger := log.Init(cfg.Service.LogLevel)
		defer func() { _ = logger.Sync() }()

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

		zap.S().Info("Db migrated")
		return nil
	},
}
