package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/habedi/conflux/db"
	"github.com/habedi/conflux/pkg/clierr"
	"github.com/olekukonko/tablewriter"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// cacheCmd manages the pages kept in the local database by `page get` and `space export`.
func cacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Work with the local page cache",
	}
	cmd.AddCommand(
		cacheListCmd(),
		cacheSearchCmd(),
		cacheExportCmd(),
		cacheClearCmd(),
	)
	return cmd
}

func cacheRepo() db.PageRepository {
	return db.NewPageRepository(db.GetDB())
}

func cacheFailure(err error, operation string) error {
	return newGate().Handle(err, clierr.Context{EntityType: "page cache", Operation: operation, Source: "cmd.cache"})
}

func cacheListCmd() *cobra.Command {
	var spaceKey string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the cached pages",
		Args:  exactArgs(0, "no arguments"),
		RunE: func(cmd *cobra.Command, args []string) error {
			pages, err := cacheRepo().List(cmd.Context(), spaceKey)
			if err != nil {
				return cacheFailure(err, "listing the page cache")
			}
			if len(pages) == 0 {
				cmd.Println("The page cache is empty.")
				return nil
			}
			renderPageTable(cmd.OutOrStdout(), pages)
			return nil
		},
	}

	cmd.Flags().StringVarP(&spaceKey, "space", "s", "", "Only list pages of this space")
	return cmd
}

func cacheSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search TERM",
		Short: "Search the cached pages by title",
		Long:  "Search is case-insensitive and matches the term anywhere in the page title.",
		Args:  exactArgs(1, "a search term"),
		RunE: func(cmd *cobra.Command, args []string) error {
			term := strings.TrimSpace(args[0])
			if term == "" {
				return clierr.NewValidation("search term cannot be empty", nil)
			}
			log.Info().Msgf("Searching cached pages with term=%s in the title", term)

			pages, err := cacheRepo().SearchByTitle(cmd.Context(), term)
			if err != nil {
				return cacheFailure(err, "searching the page cache")
			}
			if len(pages) == 0 {
				cmd.Println("No cached page matches the search term.")
				return nil
			}
			renderPageTable(cmd.OutOrStdout(), pages)
			return nil
		},
	}
}

func cacheExportCmd() *cobra.Command {
	var exportDir, exportFormat, spaceKey string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the cached pages to a JSON or CSV file",
		Args:  exactArgs(0, "no arguments"),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkExportFormat(exportFormat); err != nil {
				return err
			}
			pages, err := cacheRepo().List(cmd.Context(), spaceKey)
			if err != nil {
				return cacheFailure(err, "exporting the page cache")
			}
			path, err := writeExport(exportDir, "conflux_cache", exportFormat, pages)
			if err != nil {
				return err
			}
			cmd.Printf("Exported %d cached %s to %s.\n", len(pages), pluralize(len(pages), "page", "pages"), path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&exportDir, "dir", "d", ".", "Directory to write the export file to")
	cmd.Flags().StringVarP(&exportFormat, "format", "f", "json", "Export format: json or csv")
	cmd.Flags().StringVarP(&spaceKey, "space", "s", "", "Only export pages of this space")
	return cmd
}

func cacheClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every cached page",
		Args:  exactArgs(0, "no arguments"),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cacheRepo().Clear(cmd.Context()); err != nil {
				return cacheFailure(err, "clearing the page cache")
			}
			cmd.Println("Page cache cleared.")
			return nil
		},
	}
}

// renderPageTable displays cached pages in a table format.
func renderPageTable(w io.Writer, pages []db.CachedPage) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Row", "Page ID", "Space", "Title", "Version", "Fetched"})
	table.SetColMinWidth(3, 40)                      // Title column
	table.SetAlignment(tablewriter.ALIGN_LEFT)       // Align all columns to the left
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT) // Align headers to the left
	table.SetAutoWrapText(false)                     // Disable text wrapping in all columns
	table.SetRowLine(false)                          // Disable row line breaks

	for i, p := range pages {
		table.Append([]string{
			fmt.Sprintf("%d", i+1),
			p.ID,
			p.SpaceKey,
			p.Title,
			fmt.Sprintf("%d", p.Version),
			p.FetchedAt.Local().Format("2006-01-02 15:04"),
		})
	}

	table.Render()
}

func pluralize(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
