package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sonalan/filact-sub001/internal/version"
)

// VersionOptions holds version command options.
type VersionOptions struct {
	OutputFormat string
}

// NewVersionCommand creates the version command.
func NewVersionCommand() *cobra.Command {
	opts := &VersionOptions{}

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.OutputFormat == "json" {
				encoded, err := json.Marshal(map[string]string{
					"version":   version.Version,
					"buildTime": version.BuildTime,
					"gitCommit": version.GitCommit,
				})
				if err != nil {
					return err
				}
				printJSON(encoded)
				return nil
			}

			fmt.Printf("filact %s (commit %s, built %s)\n", version.Version, version.GitCommit, version.BuildTime)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.OutputFormat, "output", "o", "text", "Output format (json or text)")
	return cmd
}
