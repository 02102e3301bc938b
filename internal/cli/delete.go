package cli

import (
	"github.com/spf13/cobra"

	"github.com/sonalan/filact-sub001/pkg/logger"
	"github.com/sonalan/filact-sub001/pkg/provider"
)

// NewDeleteCommand creates the delete command.
func NewDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <resource> <id> [id...]",
		Short: "Delete one or more records",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := buildProvider()
			if err != nil {
				return err
			}

			resourceName := args[0]
			ids := args[1:]
			log := logger.New()

			if len(ids) == 1 {
				if err := p.Delete(cmd.Context(), resourceName, provider.DeleteParams{ID: ids[0]}); err != nil {
					return err
				}
				log.Success("Deleted %s/%s", resourceName, ids[0])
				return nil
			}

			batch := make([]any, len(ids))
			for i, id := range ids {
				batch[i] = id
			}
			if err := p.DeleteMany(cmd.Context(), resourceName, provider.DeleteManyParams{IDs: batch}); err != nil {
				return err
			}
			log.Success("Deleted %d %s records", len(ids), resourceName)
			return nil
		},
	}
}
