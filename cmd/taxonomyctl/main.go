// Command taxonomyctl manages the SQL copy of the species table.
package main

import (
	"context"
	"fmt"
	"os"

	"birdcall-quiz/internal/config"
	"birdcall-quiz/internal/logger"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCommand().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func rootCommand() *cobra.Command {
	cfg := &config.Config{}

	rootCmd := &cobra.Command{
		Use:           "taxonomyctl",
		Short:         "Maintain the bird taxonomy table",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if err := logger.Initialize(loaded.Logger); err != nil {
				return err
			}
			*cfg = *loaded
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
	}

	rootCmd.AddCommand(migrateCommand(cfg))
	rootCmd.AddCommand(importCommand(cfg))
	rootCmd.AddCommand(statsCommand(cfg))
	return rootCmd
}
