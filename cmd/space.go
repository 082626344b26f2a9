package cmd

import (
	"io"

	"github.com/habedi/conflux/client"
	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

func spaceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "space",
		Short: "List, show and export Confluence spaces",
	}
	cmd.AddCommand(
		spaceListCmd(),
		spaceGetCmd(),
		spaceExportCmd(),
	)
	return cmd
}

func spaceListCmd() *cobra.Command {
	var limit int
	var cursor string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the spaces visible to the account",
		Args:  exactArgs(0, "no arguments"),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, err := newController()
			if err != nil {
				return err
			}
			resp, err := ctrl.ListSpaces(cmd.Context(), client.ListOptions{Limit: limitOrDefault(limit), Cursor: cursor})
			if err != nil {
				return err
			}
			printResponse(cmd, resp)
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", 0, "Maximum number of spaces to return (1-250)")
	cmd.Flags().StringVarP(&cursor, "cursor", "c", "", "Cursor from a previous listing")
	return cmd
}

func spaceGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get SPACE_KEY",
		Short: "Show a space",
		Args:  exactArgs(1, "a space key"),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, err := newController()
			if err != nil {
				return err
			}
			resp, err := ctrl.GetSpace(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printResponse(cmd, resp)
			return nil
		},
	}
}

// spaceExportCmd fetches every page of a space as Markdown and writes them to a JSON or CSV file.
func spaceExportCmd() *cobra.Command {
	var numThreads int
	var exportDir, exportFormat string

	cmd := &cobra.Command{
		Use:   "export SPACE_KEY",
		Short: "Export every page of a space to a file",
		Args:  exactArgs(1, "a space key"),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkExportFormat(exportFormat); err != nil {
				return err
			}
			ctrl, err := newController()
			if err != nil {
				return err
			}

			progress := newBarProgress(cmd.ErrOrStderr())
			report, err := ctrl.ExportSpace(cmd.Context(), args[0], numThreads, progress)
			progress.Finish()
			if err != nil {
				return err
			}

			for _, f := range report.Failed {
				cmd.PrintErrf("Failed to export page %s (%s): %s\n", f.ID, f.Title, f.Err.Message)
			}

			path, err := writeExport(exportDir, "conflux_"+report.SpaceKey, exportFormat, report.Pages)
			if err != nil {
				return err
			}
			cmd.Println(report.Summary())
			cmd.Printf("Pages written to %s.\n", path)
			return nil
		},
	}

	cmd.Flags().IntVarP(&numThreads, "threads", "t", 5, "Number of pages to fetch concurrently (1-20)")
	cmd.Flags().StringVarP(&exportDir, "dir", "d", ".", "Directory to write the export file to")
	cmd.Flags().StringVarP(&exportFormat, "format", "f", "json", "Export format: json or csv")
	return cmd
}

// barProgress shows export progress with a progress bar on w.
type barProgress struct {
	w   io.Writer
	bar *progressbar.ProgressBar
}

func newBarProgress(w io.Writer) *barProgress {
	return &barProgress{w: w}
}

func (p *barProgress) Start(total int) {
	log.Info().Int("pages", total).Msg("Exporting pages")
	p.bar = progressbar.NewOptions(total,
		progressbar.OptionSetWriter(p.w),
		progressbar.OptionSetDescription("Exporting pages..."),
		progressbar.OptionSetWidth(20),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionClearOnFinish(),
	)
}

func (p *barProgress) Increment() {
	if p.bar != nil {
		_ = p.bar.Add(1)
	}
}

func (p *barProgress) Finish() {
	if p.bar != nil {
		_ = p.bar.Finish()
	}
}
