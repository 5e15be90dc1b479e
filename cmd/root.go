package cmd

import (
	"fmt"
	"os"

	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "atelier",
	Short: "Atelier storefront engine CLI",
	Long:  "Management CLI for the Atelier storefront: catalog import, migrations, cron.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		figure.NewFigure("atelier", "", true).Print()
	},
}

// Execute runs the root command, applying registered extension commands first.
func Execute() {
	Apply()
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
