package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/servly-inc/servly/internal/interfaces/cli/migrate"
	"github.com/servly-inc/servly/internal/interfaces/cli/server"
	"github.com/servly-inc/servly/internal/interfaces/cli/worker"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "servly",
		Short: "Servly - service marketplace backend",
		Long:  `Servly runs the marketplace HTTP API, database migration tools, and the background sweep worker.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		worker.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
