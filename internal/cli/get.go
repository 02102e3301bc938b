package cli

import (
	"github.com/spf13/cobra"

	"github.com/sonalan/filact-sub001/pkg/provider"
)

// NewGetCommand creates the get command.
func NewGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <resource> <id>",
		Short: "Fetch one record by id",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := buildProvider()
			if err != nil {
				return err
			}

			record, err := p.GetOne(cmd.Context(), args[0], args[1], provider.GetOneParams{})
			if err != nil {
				return err
			}
			printJSON(record)
			return nil
		},
	}
}
