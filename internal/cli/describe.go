package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/sonalan/filact-sub001/config"
)

// NewDescribeCommand creates the describe command.
func NewDescribeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "describe [resource]",
		Short: "Show the panel definition, or one resource in detail",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			panel, err := config.LoadPanel(config.GetPanelFile())
			if err != nil {
				return err
			}

			bold := color.New(color.Bold)
			if len(args) == 0 {
				if panel.Title != "" {
					bold.Println(panel.Title)
				}
				names := panel.Names()
				if len(names) == 0 {
					fmt.Println("No resources defined (see panel.file in configuration)")
					return nil
				}
				for _, name := range names {
					r, _ := panel.Lookup(name)
					fmt.Printf("%s\t%s\tpk=%s\n", name, r.Label, r.PrimaryKey)
				}
				return nil
			}

			r, ok := panel.Lookup(args[0])
			if !ok {
				return fmt.Errorf("resource %q is not defined in the panel", args[0])
			}

			bold.Printf("%s (%s)\n", r.Name, r.Label)
			fmt.Printf("Primary key: %s\n", r.PrimaryKey)
			fmt.Printf("Searchable: %v\n", r.Searchable)
			for _, f := range r.Fields {
				marker := ""
				if f.Sortable {
					marker = " [sortable]"
				}
				fmt.Printf("  %s%s\n", f.Name, marker)
			}
			return nil
		},
	}
}
