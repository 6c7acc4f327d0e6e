package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/nippo-inc/nippo/internal/interfaces/cli/migrate"
	"github.com/nippo-inc/nippo/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "nippo",
		Short: "Nippo - daily report service for teams",
		Long:  `Nippo is a daily report service where team members share dated reports, comment on each other's posts, and managers follow team activity and condition.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
