package cmd

import (
	"errors"
	"fmt"
	"linkedin-dashboard/cmd/linkedin-cli/globals"
	"linkedin-dashboard/cmd/linkedin-cli/utils"
	"linkedin-dashboard/internal/dashboard"
	"linkedin-dashboard/internal/linkedin"
	"linkedin-dashboard/lib/export"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var (
	exportFormat string
	exportDir    string
	rawOutput    bool
)

func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&exportFormat, "export", "", "Export the response as json, csv, flat, both or all.")
	cmd.Flags().StringVar(&exportDir, "out", "", "Directory export files are written to, defaults to export_dir from the config.")
	cmd.Flags().BoolVar(&rawOutput, "raw", false, "Print the raw JSON response instead of tables.")
}

// runQuery fetches the query, shows the result and writes any requested
// exports.
func runQuery(cmd *cobra.Command, q dashboard.Query) error {
	formats, err := dashboard.ParseFormats(exportFormat)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	g := globals.Get(ctx)
	out := cmd.OutOrStdout()

	result, err := g.Dashboard.Fetch(ctx, q)
	noData := errors.Is(err, linkedin.ErrNoData)
	if err != nil && !noData {
		return err
	}

	switch {
	case rawOutput:
		text, err := export.JSON(result.Payload)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(text))
	case noData:
		fmt.Fprintln(out, "No data found.")
	default:
		utils.RenderView(out, result.View)
	}

	dir := exportDir
	if dir == "" {
		dir = g.Config.ExportDir
	}
	for _, format := range formats {
		artifact, err := dashboard.Export(result, format, dir)
		if errors.Is(err, export.ErrEmptyDataset) {
			fmt.Fprintf(cmd.ErrOrStderr(), "Nothing to export as %s.\n", format)
			continue
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(
			out, "Saved %s (%s, %s)\n",
			artifact.Path,
			artifact.MimeType,
			humanize.Bytes(uint64(artifact.Size)),
		)
	}
	return nil
}
