package cmd

import (
	"github.com/lehigh-university-libraries/contactsheet/internal/config"
	"github.com/spf13/cobra"
)

// layoutFlags are shared by every command that lays out a folder
type layoutFlags struct {
	configPath string
	grid       int
	columns    int
	rows       int
	probe      string
	title      string
}

func (f *layoutFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.configPath, "config", "", "Path to YAML config file")
	cmd.Flags().IntVarP(&f.grid, "grid", "g", 3, "Grid size for an n x n layout (2 to 6)")
	cmd.Flags().IntVar(&f.columns, "columns", 0, "Columns per page, overrides --grid")
	cmd.Flags().IntVar(&f.rows, "rows", 0, "Rows per page, overrides --grid")
	cmd.Flags().StringVar(&f.probe, "probe", "", "How image sizes are read: exif, header or none")
	cmd.Flags().StringVar(&f.title, "title", "", "Page name prefix")
}

// load reads the config and applies the flags the user actually set
func (f *layoutFlags) load(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("grid") {
		cfg.Grid.Columns, cfg.Grid.Rows = f.grid, f.grid
	}
	if flags.Changed("columns") {
		cfg.Grid.Columns = f.columns
	}
	if flags.Changed("rows") {
		cfg.Grid.Rows = f.rows
	}
	if flags.Changed("probe") {
		cfg.Probe = f.probe
	}
	if flags.Changed("title") {
		cfg.Title = f.title
	}

	return cfg, nil
}
