// Package cli implements the filact command line: generic CRUD against
// any configured data provider, plus panel inspection and a live watch.
package cli

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "filact",
	Short: "Filact CLI tool",
	Long:  "Drive REST or GraphQL CRUD backends through the filact data-provider layer",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func init() {
	cobra.EnableCommandSorting = false

	rootCmd.AddCommand(NewListCommand())
	rootCmd.AddCommand(NewGetCommand())
	rootCmd.AddCommand(NewCreateCommand())
	rootCmd.AddCommand(NewUpdateCommand())
	rootCmd.AddCommand(NewDeleteCommand())
	rootCmd.AddCommand(NewDescribeCommand())
	rootCmd.AddCommand(NewWatchCommand())
	rootCmd.AddCommand(NewVersionCommand())
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
