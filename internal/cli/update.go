package cli

import (
	"github.com/spf13/cobra"

	"github.com/sonalan/filact-sub001/pkg/logger"
	"github.com/sonalan/filact-sub001/pkg/provider"
)

// UpdateOptions holds update command options.
type UpdateOptions struct {
	Data string
	Sets []string
	IDs  []string
}

// NewUpdateCommand creates the update command.
func NewUpdateCommand() *cobra.Command {
	opts := &UpdateOptions{}

	cmd := &cobra.Command{
		Use:   "update <resource> <id> [id...]",
		Short: "Update one record, or apply the same change to several",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := buildBody(opts.Data, opts.Sets)
			if err != nil {
				return err
			}

			p, err := buildProvider()
			if err != nil {
				return err
			}

			resourceName := args[0]
			ids := args[1:]
			log := logger.New()

			if len(ids) == 1 {
				record, err := p.Update(cmd.Context(), resourceName, provider.UpdateParams{ID: ids[0], Data: body})
				if err != nil {
					return err
				}
				log.Success("Updated %s/%s", resourceName, ids[0])
				printJSON(record)
				return nil
			}

			batch := make([]any, len(ids))
			for i, id := range ids {
				batch[i] = id
			}
			records, err := p.UpdateMany(cmd.Context(), resourceName, provider.UpdateManyParams{IDs: batch, Data: body})
			if err != nil {
				return err
			}
			log.Success("Updated %d %s records", len(records), resourceName)
			printRecords(records, nil)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.Data, "data", "d", "", "Record body as a JSON document")
	flags.StringArrayVar(&opts.Sets, "set", nil, "Field override, e.g. status=archived (repeatable)")

	return cmd
}
