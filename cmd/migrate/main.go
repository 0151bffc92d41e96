package main

import (
	"database/sql"
	"fmt"
	"os"

	"go-hrpay/internal/config"
	"go-hrpay/internal/database"
	"go-hrpay/internal/shared/connection"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var rootCmd = &cobra.Command{
	Use:          "migrate",
	Short:        "Manage the go-hrpay database schema",
	SilenceUsage: true,
}

var upCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply every pending migration",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		return database.Migrate(db)
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print the applied and latest schema versions",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		st, err := database.Status(db)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "current=%d latest=%d dirty=%t pending=%t\n",
			st.CurrentVersion, st.LatestVersion, st.Dirty, st.Pending)
		return nil
	},
}

func openDB() (*sql.DB, error) {
	cfg := config.Load()
	gormDB, err := connection.ConnectGORMWithRetry(
		cfg.DB.Host,
		cfg.DB.User,
		cfg.DB.Password,
		cfg.DB.Name,
		cfg.DB.Port,
		cfg.DB.SSLMode,
		3,
	)
	if err != nil {
		return nil, err
	}
	return gormDB.DB()
}

func main() {
	envErr := godotenv.Load()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)
	if envErr != nil {
		logger.Warn("no .env file loaded", zap.Error(envErr))
	}

	rootCmd.AddCommand(upCmd, statusCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
