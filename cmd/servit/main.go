package main

import (
	"os"

	"github.com/spf13/cobra"

	"servit/internal/interfaces/cli/migrate"
	"servit/internal/interfaces/cli/worker"
	"servit/internal/shared/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "servit",
		Short:   "Servit - repair shop workflow and reservation engine",
		Long:    `Servit manages repair tickets, quotations, warranty claims and the parts inventory, and runs the quotation lifecycle scheduler.`,
		Version: version.String(),
	}

	rootCmd.AddCommand(
		worker.NewCommand(),
		migrate.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
