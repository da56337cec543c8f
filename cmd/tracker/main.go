package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/piresc/gpstracker/internal/pkg/config"
	"github.com/piresc/gpstracker/internal/pkg/logger"
	"github.com/piresc/gpstracker/internal/pkg/models"
	"github.com/piresc/gpstracker/services/location/repository"
	"github.com/piresc/gpstracker/services/location/usecase"
	"github.com/spf13/cobra"
)

const appName = "gps-tracker"

var (
	envFile    string
	cleanupCap int
)

var rootCmd = &cobra.Command{
	Use:           "tracker",
	Short:         "GPS tracker backend",
	Long:          `Ingests position reports from a tracking device and serves the latest position and a bounded trail.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(config.InitConfig(envFile))
	},
}

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Trim the store down to the retention cap",
	Long:  `Run one retention pass against the configured store and print how many records were evicted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.InitConfig(envFile)
		capacity := cfg.Retention.Cap
		if cmd.Flags().Changed("cap") {
			if cleanupCap < 0 {
				return fmt.Errorf("--cap must be non-negative")
			}
			capacity = cleanupCap
		}
		return runCleanup(cmd.Context(), cfg, capacity, cmd.OutOrStdout())
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the location schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.InitConfig(envFile)
		// opening the store runs its migrations
		repo, err := repository.NewLocationRepository(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer repo.Close()
		fmt.Fprintf(cmd.OutOrStdout(), "%s store is ready\n", cfg.Store.Driver)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env", ".env", "dotenv file loaded when APP_ENV=local")
	cleanupCmd.Flags().IntVar(&cleanupCap, "cap", 0, "number of most recent records to keep (default RETENTION_CAP)")

	rootCmd.AddCommand(serveCmd, cleanupCmd, migrateCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		log.Printf("Error: %v", err)
		os.Exit(1)
	}
}

func runCleanup(ctx context.Context, cfg *models.Config, capacity int, out io.Writer) error {
	zapLogger, err := logger.InitZapLoggerFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer zapLogger.Close()

	repo, err := repository.NewLocationRepository(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to open location store: %w", err)
	}
	defer repo.Close()

	retentionUC := usecase.NewRetentionUC(repo, cfg.Retention.Cap, usecase.NewStorageRetrier(zapLogger), zapLogger)
	deleted, err := retentionUC.Cleanup(ctx, capacity)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "deleted %d old records (cap %d)\n", deleted, capacity)
	return nil
}
