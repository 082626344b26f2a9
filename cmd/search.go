package cmd

import (
	"github.com/habedi/conflux/client"
	"github.com/habedi/conflux/pkg/cql"
	"github.com/spf13/cobra"
)

// searchCmd searches Confluence content with CQL assembled from the flags.
func searchCmd() *cobra.Command {
	var filter cql.Filter
	var limit int
	var cursor string

	cmd := &cobra.Command{
		Use:   "search [TEXT]",
		Short: "Search Confluence content",
		Long: "Search pages and other content. Text given as an argument is matched against the content; " +
			"the flags add title, space, label and type filters, and --cql adds a raw CQL fragment.",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 1 {
				return exactArgs(1, "at most one search text")(cmd, args)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 && filter.Text == "" {
				filter.Text = args[0]
			}
			ctrl, err := newController()
			if err != nil {
				return err
			}
			resp, err := ctrl.Search(cmd.Context(), filter, client.ListOptions{Limit: limitOrDefault(limit), Cursor: cursor})
			if err != nil {
				return err
			}
			printResponse(cmd, resp)
			return nil
		},
	}

	cmd.Flags().StringVar(&filter.Text, "text", "", "Free text to match")
	cmd.Flags().StringVar(&filter.Title, "title", "", "Match against titles")
	cmd.Flags().StringVarP(&filter.SpaceKey, "space", "s", "", "Restrict to a space key")
	cmd.Flags().StringSliceVar(&filter.Labels, "label", nil, "Require a label (repeatable)")
	cmd.Flags().StringVar(&filter.ContentType, "type", "", "Content type, e.g. page or blogpost")
	cmd.Flags().StringVar(&filter.CQL, "cql", "", "Raw CQL fragment combined with the other filters")
	cmd.Flags().IntVarP(&limit, "limit", "l", 0, "Maximum number of results (1-250)")
	cmd.Flags().StringVarP(&cursor, "cursor", "c", "", "Cursor from a previous search")
	return cmd
}
