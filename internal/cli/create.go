package cli

import (
	"github.com/spf13/cobra"

	"github.com/sonalan/filact-sub001/pkg/logger"
	"github.com/sonalan/filact-sub001/pkg/provider"
)

// CreateOptions holds create command options.
type CreateOptions struct {
	Data string
	Sets []string
}

// NewCreateCommand creates the create command.
func NewCreateCommand() *cobra.Command {
	opts := &CreateOptions{}

	cmd := &cobra.Command{
		Use:   "create <resource>",
		Short: "Create a record",
		Long:  "Create a record from --data JSON and/or --set field=value pairs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := buildBody(opts.Data, opts.Sets)
			if err != nil {
				return err
			}

			p, err := buildProvider()
			if err != nil {
				return err
			}

			record, err := p.Create(cmd.Context(), args[0], provider.CreateParams{Data: body})
			if err != nil {
				return err
			}

			logger.New().Success("Created %s record", args[0])
			printJSON(record)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.Data, "data", "d", "", "Record body as a JSON document")
	flags.StringArrayVar(&opts.Sets, "set", nil, "Field override, e.g. name=alice or age=30 (repeatable)")

	return cmd
}
