package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sonalan/filact-sub001/pkg/query"
)

// ListOptions holds list command options.
type ListOptions struct {
	Page         int
	PerPage      int
	Cursor       string
	Sort         string
	Filters      []string
	Search       string
	Fields       []string
	OutputFormat string
}

// NewListCommand creates the list command.
func NewListCommand() *cobra.Command {
	opts := &ListOptions{}

	cmd := &cobra.Command{
		Use:   "list <resource>",
		Short: "List records of a resource",
		Long:  "List records with pagination, sorting, filtering and free-text search",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, args[0], opts)
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&opts.Page, "page", 0, "Page number (offset pagination)")
	flags.IntVar(&opts.PerPage, "per-page", 0, "Records per page")
	flags.StringVar(&opts.Cursor, "cursor", "", "Opaque cursor (cursor pagination, wins over --page)")
	flags.StringVar(&opts.Sort, "sort", "", "Sort spec, e.g. name:asc,email:desc")
	flags.StringArrayVarP(&opts.Filters, "filter", "f", nil, "Filter, e.g. status.eq=active (repeatable)")
	flags.StringVarP(&opts.Search, "search", "q", "", "Free-text search")
	flags.StringSliceVar(&opts.Fields, "fields", nil, "Columns for text output")
	flags.StringVarP(&opts.OutputFormat, "output", "o", "text", "Output format (json or text)")

	return cmd
}

func runList(cmd *cobra.Command, resourceName string, opts *ListOptions) error {
	p, err := buildProvider()
	if err != nil {
		return err
	}

	params := query.ListParams{Search: opts.Search}
	if opts.Cursor != "" || opts.Page > 0 || opts.PerPage > 0 {
		params.Pagination = &query.Pagination{
			Page:    opts.Page,
			PerPage: opts.PerPage,
			Cursor:  opts.Cursor,
		}
	}
	if params.Sort, err = parseSorts(opts.Sort); err != nil {
		return err
	}
	if params.Filter, err = parseFilters(opts.Filters); err != nil {
		return err
	}

	result, err := p.GetList(cmd.Context(), resourceName, params)
	if err != nil {
		return err
	}

	if opts.OutputFormat == "json" {
		encoded, err := json.Marshal(result)
		if err != nil {
			return err
		}
		printJSON(encoded)
		return nil
	}

	printRecords(result.Data, opts.Fields)
	fmt.Printf("Total: %d\n", result.Total)
	if result.NextCursor != "" {
		fmt.Printf("Next cursor: %s\n", result.NextCursor)
	}
	return nil
}
