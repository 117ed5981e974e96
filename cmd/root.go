package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	config "github.com/bobimat/workshop-tasks/internal/configs"
	repository "github.com/bobimat/workshop-tasks/internal/repositories"
)

var cfg config.Config

var rootCmd = &cobra.Command{
	Use:           "workshop-tasks",
	Short:         "Workshop task tracker",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		envErr := godotenv.Load()

		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}

		logger, err := config.NewLogger(os.Stderr, cfg.LogLevel)
		if err != nil {
			return err
		}
		slog.SetDefault(logger)

		if envErr != nil {
			slog.Debug(".env file not found, using environment variables")
		}
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// openStore opens the configured database. The returned func closes it.
func openStore() (*repository.Store, func(), error) {
	db, err := config.NewDatabaseClient(cfg.DatabaseDriver, cfg.DatabaseDSN)
	if err != nil {
		return nil, nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, err
	}

	return repository.NewStore(db), func() { _ = sqlDB.Close() }, nil
}
