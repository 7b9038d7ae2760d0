package cmd

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/lehigh-university-libraries/contactsheet/internal/config"
	"github.com/lehigh-university-libraries/contactsheet/internal/contactsheet"
	"github.com/lehigh-university-libraries/contactsheet/internal/images"
	"github.com/lehigh-university-libraries/contactsheet/internal/manifest"
	"github.com/spf13/cobra"
)

func newPlanCmd() *cobra.Command {
	var layout layoutFlags
	var manifestPath string

	cmd := &cobra.Command{
		Use:   "plan <folder>",
		Short: "Show where each image would go without building pages",
		Long: `Reads only image metadata and prints the page, cell, rotation and scale
every image would get. No image is decoded and no page is created.`,
		Example: `  # Preview a 4x4 layout
  contactsheet plan ./photos --grid 4

  # Use EXIF dimensions and save the plan
  contactsheet plan ./photos --probe exif --manifest plan.yaml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := layout.load(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("manifest") {
				cfg.Output.Manifest = manifestPath
			}

			folder := ""
			if len(args) > 0 {
				folder = args[0]
			}

			return executePlan(cmd.OutOrStdout(), cfg, folder)
		},
	}

	layout.register(cmd)
	cmd.Flags().StringVar(&manifestPath, "manifest", "", "Write the plan to a .yaml, .jsonl or .parquet file")

	return cmd
}

func executePlan(out io.Writer, cfg *config.Config, folder string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	grid, err := cfg.GridSpec()
	if err != nil {
		return err
	}
	reader, err := images.NewReader(cfg.Probe)
	if err != nil {
		return err
	}
	if reader == nil {
		return errors.New("plan needs image metadata; use --probe exif or --probe header")
	}

	files, err := images.List(folder)
	if err != nil {
		return err
	}

	placements, err := contactsheet.Plan(files, grid, reader)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Grid %dx%d, cell %.1f x %.1f px, %d image(s) on %d page(s)\n",
		grid.Columns, grid.Rows, grid.CellWidth, grid.CellHeight, len(placements), grid.PageCount(len(placements)))

	page := 0
	for _, p := range placements {
		if p.PageNumber() != page {
			page = p.PageNumber()
			fmt.Fprintln(out, strings.Repeat("-", 60))
			fmt.Fprintf(out, "Page %d\n", page)
		}
		rotated := ""
		if p.Rotated {
			rotated = " rotated"
		}
		fmt.Fprintf(out, "  [%d,%d] %s %gx%g scale %.4f%s\n",
			p.CellRow, p.CellCol, filepath.Base(p.SourcePath), p.Width, p.Height, p.ScaleFactor, rotated)
	}

	if cfg.Output.Manifest != "" {
		m := &manifest.Manifest{
			Config: manifest.Config{
				Folder:     folder,
				Columns:    grid.Columns,
				Rows:       grid.Rows,
				PageWidth:  grid.PageWidth,
				PageHeight: grid.PageHeight,
				CellWidth:  grid.CellWidth,
				CellHeight: grid.CellHeight,
			},
			Records: manifest.FromPlacements(placements),
		}
		if err := manifest.Write(cfg.Output.Manifest, m); err != nil {
			return err
		}
	}

	return nil
}
