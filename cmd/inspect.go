package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/lehigh-university-libraries/contactsheet/internal/manifest"
	"github.com/spf13/cobra"
)

func newInspectCmd() *cobra.Command {
	var manifestPath string
	var showRecords bool

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Summarize a placement manifest",
		Long: `Reads a manifest written by build or plan (.yaml, .jsonl or .parquet) and
prints how many images landed on each page.`,
		Example: `  # Summary only
  contactsheet inspect --manifest ./sheets/manifest.parquet

  # Every placement
  contactsheet inspect --manifest plan.yaml --records`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if manifestPath == "" {
				return fmt.Errorf("--manifest is required")
			}
			return executeInspect(cmd.OutOrStdout(), manifestPath, showRecords)
		},
	}

	cmd.Flags().StringVar(&manifestPath, "manifest", "", "Path to manifest file (required)")
	cmd.Flags().BoolVar(&showRecords, "records", false, "Print every placement")

	_ = cmd.MarkFlagRequired("manifest")

	return cmd
}

func executeInspect(out io.Writer, path string, showRecords bool) error {
	m, err := manifest.Load(path)
	if err != nil {
		return fmt.Errorf("failed to load manifest: %w", err)
	}

	s := manifest.Summarize(m.Records)

	fmt.Fprintln(out, strings.Repeat("=", 40))
	fmt.Fprintln(out, "Contact Sheet Manifest")
	fmt.Fprintln(out, strings.Repeat("=", 40))
	if m.Config.Folder != "" {
		fmt.Fprintf(out, "Folder:   %s\n", m.Config.Folder)
		fmt.Fprintf(out, "Grid:     %dx%d\n", m.Config.Columns, m.Config.Rows)
	}
	fmt.Fprintf(out, "Images:   %d\n", s.Images)
	fmt.Fprintf(out, "Pages:    %d\n", s.Pages)
	fmt.Fprintf(out, "Rotated:  %d\n", s.Rotated)
	if s.Images > 0 {
		fmt.Fprintf(out, "Scale:    %.4f - %.4f\n", s.MinScale, s.MaxScale)
	}
	fmt.Fprintln(out)

	for _, page := range s.PageNumbers() {
		fmt.Fprintf(out, "  Page %d: %d image(s)\n", page, s.PerPage[page])
	}

	if showRecords {
		fmt.Fprintln(out)
		for _, r := range m.Records {
			fmt.Fprintf(out, "  p%d [%d,%d] %s scale=%.4f rotated=%v\n", r.Page, r.Row, r.Col, r.Source, r.Scale, r.Rotated)
		}
	}

	return nil
}
