// Package config loads contact sheet settings from a YAML file and
// CONTACTSHEET_* environment variables.
package config

import (
	"fmt"
	"math"
	"os"
	"strconv"

	"github.com/lehigh-university-libraries/contactsheet/internal/contactsheet"
	"github.com/lehigh-university-libraries/contactsheet/internal/host"
	"github.com/lehigh-university-libraries/contactsheet/internal/host/raster"
	"github.com/lehigh-university-libraries/contactsheet/internal/images"
	"github.com/lehigh-university-libraries/contactsheet/internal/sheet"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Title  string       `yaml:"title"`
	Page   PageConfig   `yaml:"page"`
	Grid   GridConfig   `yaml:"grid"`
	Output OutputConfig `yaml:"output"`
	// Probe selects the metadata reader: exif, header or none
	Probe string `yaml:"probe"`
}

type PageConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	DPI    float64 `yaml:"dpi"`
	Margin float64 `yaml:"margin"`
	Gap    float64 `yaml:"gap"`
	Mode   string  `yaml:"mode"`
	Fill   string  `yaml:"fill"`
}

type GridConfig struct {
	Columns int `yaml:"columns"`
	Rows    int `yaml:"rows"`
}

type OutputConfig struct {
	Dir      string `yaml:"dir"`
	Format   string `yaml:"format"`
	Manifest string `yaml:"manifest"`
}

// Default returns an A4 landscape, 300 DPI, 3x3 configuration
func Default() *Config {
	return &Config{
		Title: contactsheet.DefaultTitle,
		Page: PageConfig{
			Width:  sheet.A4Landscape.Width,
			Height: sheet.A4Landscape.Height,
			DPI:    sheet.A4Landscape.DPI,
			Margin: sheet.A4Landscape.Margin,
			Gap:    sheet.A4Landscape.Gap,
			Mode:   string(host.ModeRGB),
			Fill:   string(host.FillWhite),
		},
		Grid: GridConfig{
			Columns: 3,
			Rows:    3,
		},
		Output: OutputConfig{
			Format: "png",
		},
		Probe: "header",
	}
}

// Load reads the configuration file over the defaults. An empty path
// yields the defaults. Environment overrides are applied afterwards.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("CONTACTSHEET_TITLE"); v != "" {
		c.Title = v
	}
	if v := os.Getenv("CONTACTSHEET_PROBE"); v != "" {
		c.Probe = v
	}
	if v := os.Getenv("CONTACTSHEET_OUTPUT_DIR"); v != "" {
		c.Output.Dir = v
	}
	if v := os.Getenv("CONTACTSHEET_OUTPUT_FORMAT"); v != "" {
		c.Output.Format = v
	}
	if v := os.Getenv("CONTACTSHEET_GRID"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("CONTACTSHEET_GRID: %w", err)
		}
		c.Grid.Columns, c.Grid.Rows = n, n
	}
	if v := os.Getenv("CONTACTSHEET_DPI"); v != "" {
		dpi, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("CONTACTSHEET_DPI: %w", err)
		}
		c.Page.DPI = dpi
	}
	return nil
}

// Validate checks the configuration before any host call is made
func (c *Config) Validate() error {
	if c.Page.Width <= 0 || c.Page.Height <= 0 {
		return fmt.Errorf("page.width and page.height must be positive")
	}
	if c.Page.Width != math.Trunc(c.Page.Width) || c.Page.Height != math.Trunc(c.Page.Height) {
		return fmt.Errorf("page.width and page.height must be whole pixels, got %gx%g", c.Page.Width, c.Page.Height)
	}
	if c.Page.Margin < 0 || c.Page.Gap < 0 {
		return fmt.Errorf("page.margin and page.gap must not be negative")
	}
	if c.Page.DPI <= 0 {
		return fmt.Errorf("page.dpi must be positive")
	}
	if _, err := host.ParseMode(c.Page.Mode); err != nil {
		return fmt.Errorf("page.mode: %w", err)
	}
	if _, err := host.ParseFill(c.Page.Fill); err != nil {
		return fmt.Errorf("page.fill: %w", err)
	}
	if _, err := images.NewReader(c.Probe); err != nil {
		return fmt.Errorf("probe: %w", err)
	}
	if err := raster.CheckFormat(c.Output.Format); err != nil {
		return fmt.Errorf("output.format: %w", err)
	}
	if _, err := c.GridSpec(); err != nil {
		return err
	}
	return nil
}

// PageSpec returns the page geometry
func (c *Config) PageSpec() sheet.PageSpec {
	return sheet.PageSpec{
		Width:  c.Page.Width,
		Height: c.Page.Height,
		DPI:    c.Page.DPI,
		Margin: c.Page.Margin,
		Gap:    c.Page.Gap,
	}
}

// GridSpec lays the configured grid out on the configured page
func (c *Config) GridSpec() (sheet.GridSpec, error) {
	return sheet.NewGrid(c.PageSpec(), c.Grid.Columns, c.Grid.Rows)
}

// BuilderOptions returns the builder settings derived from the configuration
func (c *Config) BuilderOptions() (contactsheet.Options, error) {
	mode, err := host.ParseMode(c.Page.Mode)
	if err != nil {
		return contactsheet.Options{}, err
	}
	fill, err := host.ParseFill(c.Page.Fill)
	if err != nil {
		return contactsheet.Options{}, err
	}
	reader, err := images.NewReader(c.Probe)
	if err != nil {
		return contactsheet.Options{}, err
	}
	return contactsheet.Options{
		Title:    c.Title,
		DPI:      c.Page.DPI,
		Mode:     mode,
		Fill:     fill,
		Metadata: reader,
	}, nil
}
