package main

import (
	"github.com/fgiusti90/psico-app/config"
	"github.com/fgiusti90/psico-app/model"
	"github.com/fgiusti90/psico-app/store"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database schema migrations",
	RunE:  runMigrate,
}

func runMigrate(cmd *cobra.Command, args []string) error {
	log := setupLogger()

	db, err := config.ConnectDatabase()
	if err != nil {
		log.Error().Err(err).Msg("database connection failed")
		return err
	}
	if err := migrate(db, log); err != nil {
		return err
	}
	log.Info().Msg("all migrations applied successfully")
	return nil
}

func migrate(db *gorm.DB, log zerolog.Logger) error {
	if err := store.Migrate(db); err != nil {
		log.Error().Err(err).Msg("migration failed")
		return err
	}
	log.Info().Int("tables", len(model.AllModels())).Msg("schema up to date")
	return nil
}
