package main

import (
	"github.com/fgiusti90/psico-app/config"
	"github.com/fgiusti90/psico-app/util"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var logFormat string

var rootCmd = &cobra.Command{
	Use:   "psico-app",
	Short: "Practice ledger service for psychology practices",
	Long:  "Patients, treatments, sessions and fee history of a psychology practice, with inflation based fee suggestions.",
	// LOGFORMAT applies unless --log-format was given.
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cfg := config.LoadConfig()
		if !cmd.Flags().Changed("log-format") {
			logFormat = cfg.LogFormat
		}
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "Log format: text or json")
	rootCmd.AddCommand(serveCmd, migrateCmd, suggestCmd)
}

// openDatabase connects and migrates the configured database.
func openDatabase(log zerolog.Logger) (*gorm.DB, error) {
	db, err := config.ConnectDatabase()
	if err != nil {
		return nil, err
	}
	if err := migrate(db, log); err != nil {
		return nil, err
	}
	return db, nil
}

func setupLogger() zerolog.Logger {
	return util.SetupLogger(logFormat)
}
