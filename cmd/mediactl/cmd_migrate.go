package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/emerginginv/media-api/internal/infrastructure/database"
)

func newMigrateCmd(global *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply catalog schema migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(global)
			if err != nil {
				return err
			}
			if cfg.IsMemoryMetadata() {
				return fmt.Errorf("MEDIA_METADATA_BACKEND is memory; nothing to migrate")
			}

			db, err := database.Connect(database.ConfigFromService(cfg))
			if err != nil {
				return err
			}
			defer func() { _ = database.Close(db) }()

			if err := database.AutoMigrate(cmd.Context(), db, cliLogger(cfg)); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
			return nil
		},
	}
}
