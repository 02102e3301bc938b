package cli

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sonalan/filact-sub001/config"
	"github.com/sonalan/filact-sub001/pkg/live"
)

// NewWatchCommand creates the watch command.
func NewWatchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "watch <resource>",
		Short: "Stream live record-change events for a resource",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			client, err := live.Dial(ctx, config.GetLiveURL(), nil)
			if err != nil {
				return err
			}
			defer client.Close()

			events, err := client.Subscribe(ctx, args[0])
			if err != nil {
				return err
			}

			fmt.Printf("Watching %s (ctrl-c to stop)\n", args[0])
			for event := range events {
				if len(event.Payload) > 0 {
					fmt.Printf("%s\t%s\t%s\n", event.Type, event.Resource, string(event.Payload))
				} else {
					fmt.Printf("%s\t%s\tid=%v\n", event.Type, event.Resource, event.ID)
				}
			}

			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("live connection closed")
		},
	}
}
