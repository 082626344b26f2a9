package cmd

import (
	"io"
	"os"

	"github.com/habedi/conflux/client"
	"github.com/habedi/conflux/controller"
	"github.com/habedi/conflux/pkg/clierr"
	"github.com/spf13/cobra"
)

func pageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "page",
		Short: "Read and write Confluence pages",
	}
	cmd.AddCommand(
		pageGetCmd(),
		pageListCmd(),
		pageCreateCmd(),
		pageUpdateCmd(),
	)
	return cmd
}

func pageGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get PAGE_ID",
		Short: "Show a page as Markdown",
		Args:  exactArgs(1, "a page ID"),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, err := newController()
			if err != nil {
				return err
			}
			resp, err := ctrl.GetPage(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printResponse(cmd, resp)
			return nil
		},
	}
}

func pageListCmd() *cobra.Command {
	var limit int
	var cursor string

	cmd := &cobra.Command{
		Use:   "list SPACE_KEY",
		Short: "List the pages of a space",
		Args:  exactArgs(1, "a space key"),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, err := newController()
			if err != nil {
				return err
			}
			resp, err := ctrl.ListPages(cmd.Context(), args[0], client.ListOptions{Limit: limitOrDefault(limit), Cursor: cursor})
			if err != nil {
				return err
			}
			printResponse(cmd, resp)
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", 0, "Maximum number of pages to return (1-250)")
	cmd.Flags().StringVarP(&cursor, "cursor", "c", "", "Cursor from a previous listing")
	return cmd
}

func pageCreateCmd() *cobra.Command {
	var in controller.CreatePageInput
	var bodyFile string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a page from Markdown",
		Long:  "Create a page in a space. The Markdown body is read from --file, or from standard input when --file is omitted or '-'.",
		Args:  exactArgs(0, "no arguments"),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := readBody(cmd, bodyFile)
			if err != nil {
				return err
			}
			in.Body = body

			ctrl, err := newController()
			if err != nil {
				return err
			}
			resp, err := ctrl.CreatePage(cmd.Context(), in)
			if err != nil {
				return err
			}
			printResponse(cmd, resp)
			return nil
		},
	}

	cmd.Flags().StringVarP(&in.SpaceKey, "space", "s", "", "Key of the space to create the page in (required)")
	cmd.Flags().StringVarP(&in.Title, "title", "t", "", "Page title (required)")
	cmd.Flags().StringVarP(&in.ParentID, "parent", "p", "", "ID of the parent page")
	cmd.Flags().StringVarP(&bodyFile, "file", "f", "", "Markdown file with the page body")
	return cmd
}

func pageUpdateCmd() *cobra.Command {
	var in controller.UpdatePageInput
	var bodyFile string

	cmd := &cobra.Command{
		Use:   "update PAGE_ID",
		Short: "Replace the body of a page with Markdown",
		Long:  "Publish a new version of a page. The Markdown body is read from --file, or from standard input when --file is omitted or '-'.",
		Args:  exactArgs(1, "a page ID"),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := readBody(cmd, bodyFile)
			if err != nil {
				return err
			}
			in.ID = args[0]
			in.Body = body

			ctrl, err := newController()
			if err != nil {
				return err
			}
			resp, err := ctrl.UpdatePage(cmd.Context(), in)
			if err != nil {
				return err
			}
			printResponse(cmd, resp)
			return nil
		},
	}

	cmd.Flags().StringVarP(&in.Title, "title", "t", "", "New title; the current title is kept when empty")
	cmd.Flags().StringVarP(&in.Message, "message", "m", "", "Version message")
	cmd.Flags().StringVarP(&bodyFile, "file", "f", "", "Markdown file with the page body")
	return cmd
}

// readBody returns the contents of path, or of standard input when path is empty or "-".
func readBody(cmd *cobra.Command, path string) (string, error) {
	var data []byte
	var err error
	if path == "" || path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", clierr.NewValidation("Failed to read the page body: "+err.Error(), err)
	}
	return string(data), nil
}
