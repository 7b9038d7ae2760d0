package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/lehigh-university-libraries/contactsheet/internal/config"
	"github.com/lehigh-university-libraries/contactsheet/internal/contactsheet"
	"github.com/lehigh-university-libraries/contactsheet/internal/host/raster"
	"github.com/lehigh-university-libraries/contactsheet/internal/images"
	"github.com/lehigh-university-libraries/contactsheet/internal/manifest"
	"github.com/spf13/cobra"
)

func newBuildCmd() *cobra.Command {
	var layout layoutFlags
	var outputDir string
	var format string
	var manifestPath string

	cmd := &cobra.Command{
		Use:   "build <folder>",
		Short: "Build contact sheet pages from a folder of images",
		Long: `Builds contact sheet pages from the jpg, jpeg, png, tif, tiff and bmp files
in a folder, in file name order.

Each image is placed in the next free cell. Portrait images are turned 90
degrees, every image is scaled to fit its cell without distortion and then
centered. A new page is started whenever the current one is full.

Pages are kept in memory unless --out is given.`,
		Example: `  # 3x3 sheets, exported as PNG
  contactsheet build ./photos --out ./sheets

  # 4 columns by 5 rows on a custom page, as TIFF with a parquet manifest
  contactsheet build ./photos --config sheet.yaml --columns 4 --rows 5 \
    --out ./sheets --format tiff --manifest ./sheets/manifest.parquet`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := layout.load(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("out") {
				cfg.Output.Dir = outputDir
			}
			if cmd.Flags().Changed("format") {
				cfg.Output.Format = format
			}
			if cmd.Flags().Changed("manifest") {
				cfg.Output.Manifest = manifestPath
			}

			folder := ""
			if len(args) > 0 {
				folder = args[0]
			}

			return executeBuild(cmd.Context(), cmd.OutOrStdout(), cfg, folder)
		},
	}

	layout.register(cmd)
	cmd.Flags().StringVarP(&outputDir, "out", "o", "", "Directory to export pages to")
	cmd.Flags().StringVar(&format, "format", "png", "Export format (png, jpeg, tiff)")
	cmd.Flags().StringVar(&manifestPath, "manifest", "", "Write placements to a .yaml, .jsonl or .parquet file")

	return cmd
}

func executeBuild(ctx context.Context, out io.Writer, cfg *config.Config, folder string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	// Everything is validated before the first host call
	if err := cfg.Validate(); err != nil {
		return err
	}
	grid, err := cfg.GridSpec()
	if err != nil {
		return err
	}
	opts, err := cfg.BuilderOptions()
	if err != nil {
		return err
	}

	files, err := images.List(folder)
	if err != nil {
		return err
	}

	slog.Info("Starting contact sheet build", "folder", folder, "images", len(files), "columns", grid.Columns, "rows", grid.Rows)

	placed := 0
	opts.Observer = func(p contactsheet.Placement) {
		placed++
		slog.Info("Placed image", "file", p.SourcePath, "page", p.PageNumber(), "progress", fmt.Sprintf("%d/%d", placed, len(files)))
	}

	h := raster.New()
	result, err := contactsheet.NewBuilder(h, grid, opts).Build(ctx, files)
	if err != nil {
		return fmt.Errorf("failed to build contact sheet: %w", err)
	}

	if cfg.Output.Dir != "" {
		paths, err := h.Export(cfg.Output.Dir, cfg.Output.Format)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Exported %d page(s) to %s\n", len(paths), cfg.Output.Dir)
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
				Timestamp:  time.Now().Format("2006-01-02_15-04-05"),
			},
			Records: manifest.FromPlacements(result.Placements),
		}
		if err := manifest.Write(cfg.Output.Manifest, m); err != nil {
			return err
		}
	}

	fmt.Fprintf(out, "Custom contact sheet created with %d page(s).\n", len(result.Pages))

	return nil
}
