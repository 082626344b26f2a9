package cmd

import (
	"net/url"
	"strings"

	"github.com/habedi/conflux/pkg/clierr"
	"github.com/habedi/conflux/pkg/pagination"
	"github.com/spf13/cobra"
)

// apiCmd sends a GET to any path of the site and prints the JSON response.
func apiCmd() *cobra.Command {
	var params []string
	var style string

	cmd := &cobra.Command{
		Use:   "api PATH",
		Short: "Send a raw GET request to the Confluence API",
		Long: "Send a GET request to PATH (for example /wiki/api/v2/spaces) and print the JSON body. " +
			"The continuation cursor is read using --paginate-style: offset, cursor or page.",
		Args: exactArgs(1, "an API path"),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := pagination.ParseStyle(style)
			if err != nil {
				return clierr.NewValidation(err.Error(), err)
			}
			query, err := parseParams(params)
			if err != nil {
				return err
			}

			ctrl, err := newController()
			if err != nil {
				return err
			}
			resp, err := ctrl.Raw(cmd.Context(), args[0], query, s)
			if err != nil {
				return err
			}
			printResponse(cmd, resp)
			if resp.Pagination != nil && resp.Pagination.HasMore {
				cmd.PrintErrf("Next cursor: %s\n", resp.Pagination.NextCursor)
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&params, "param", "p", nil, "Query parameter as key=value (repeatable)")
	cmd.Flags().StringVar(&style, "paginate-style", "cursor", "Pagination style of the endpoint: offset, cursor or page")
	return cmd
}

func parseParams(params []string) (url.Values, error) {
	query := url.Values{}
	for _, p := range params {
		key, value, ok := strings.Cut(p, "=")
		if !ok || strings.TrimSpace(key) == "" {
			return nil, clierr.NewValidation("invalid query parameter "+p+", expected key=value", nil)
		}
		query.Add(strings.TrimSpace(key), value)
	}
	return query, nil
}
