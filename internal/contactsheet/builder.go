// Package contactsheet drives a host through building contact sheet pages:
// one pass over the ordered file list, one cell per image, a new page
// whenever the current one is full.
package contactsheet

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/lehigh-university-libraries/contactsheet/internal/host"
	"github.com/lehigh-university-libraries/contactsheet/internal/images"
	"github.com/lehigh-university-libraries/contactsheet/internal/sheet"
)

// DefaultTitle prefixes every page name
const DefaultTitle = "Custom Contact Sheet"

// Placement records where one image ended up
type Placement struct {
	SourcePath  string
	PageIndex   int
	CellRow     int
	CellCol     int
	CenterX     float64
	CenterY     float64
	ScaleFactor float64
	Rotated     bool
	// Width and Height are the intrinsic image dimensions
	Width  float64
	Height float64
}

// PageNumber returns the 1-based page the image sits on
func (p Placement) PageNumber() int {
	return p.PageIndex + 1
}

// CellIndex returns the flat index of the placement's cell across all pages
func (p Placement) CellIndex(grid sheet.GridSpec) int {
	return p.PageIndex*grid.CellsPerPage() + p.CellRow*grid.Columns + p.CellCol
}

// PageState is the cursor over the page currently being filled
type PageState struct {
	PageIndex     int
	NextCellIndex int
}

// Options configures a Builder
type Options struct {
	// Title prefixes page names as "<Title> - Page N"
	Title string
	DPI   float64
	Mode  host.Mode
	Fill  host.Fill
	// Metadata supplies the recorded image dimensions; rotation and scale
	// always follow the placed layer's bounds
	Metadata images.MetadataReader
	// Observer, if set, is called after each image is placed
	Observer func(Placement)
}

// Result is what a successful build produced
type Result struct {
	Pages      []host.Document
	Placements []Placement
}

// Builder places images onto host pages
type Builder struct {
	host host.Host
	grid sheet.GridSpec
	opts Options
}

// NewBuilder creates a builder for one grid layout
func NewBuilder(h host.Host, grid sheet.GridSpec, opts Options) *Builder {
	if opts.Title == "" {
		opts.Title = DefaultTitle
	}
	if opts.Mode == "" {
		opts.Mode = host.ModeRGB
	}
	if opts.Fill == "" {
		opts.Fill = host.FillWhite
	}
	return &Builder{host: h, grid: grid, opts: opts}
}

// Build places every file in order. Ruler units are pixels for the whole
// build and restored afterwards. The first host failure aborts the build;
// pages created before it are left in the host.
func (b *Builder) Build(ctx context.Context, files []string) (*Result, error) {
	if len(files) == 0 {
		return nil, images.ErrNoImages
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	slog.Info("Building contact sheet",
		"images", len(files),
		"grid", fmt.Sprintf("%dx%d", b.grid.Columns, b.grid.Rows),
		"pages", b.grid.PageCount(len(files)))

	result := &Result{
		Placements: make([]Placement, 0, len(files)),
	}

	err := host.WithRulerUnits(b.host, host.UnitsPixels, func() error {
		var doc host.Document
		var state PageState
		perPage := b.grid.CellsPerPage()

		for _, path := range files {
			if doc == nil || state.NextCellIndex == perPage {
				var err error
				doc, err = b.newPage(len(result.Pages) + 1)
				if err != nil {
					return err
				}
				result.Pages = append(result.Pages, doc)
				state = PageState{PageIndex: len(result.Pages) - 1}
			}

			row := state.NextCellIndex / b.grid.Columns
			col := state.NextCellIndex % b.grid.Columns

			p, err := b.place(doc, path, state.PageIndex, row, col)
			if err != nil {
				return fmt.Errorf("failed to place %s on page %d: %w", path, state.PageIndex+1, err)
			}

			result.Placements = append(result.Placements, p)
			state.NextCellIndex++

			if b.opts.Observer != nil {
				b.opts.Observer(p)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Contact sheet created", "pages", len(result.Pages), "images", len(result.Placements))

	return result, nil
}

func (b *Builder) newPage(number int) (host.Document, error) {
	name := fmt.Sprintf("%s - Page %d", b.opts.Title, number)
	doc, err := b.host.CreateDocument(host.DocumentSpec{
		Name:   name,
		Width:  int(math.Round(b.grid.PageWidth)),
		Height: int(math.Round(b.grid.PageHeight)),
		DPI:    b.opts.DPI,
		Mode:   b.opts.Mode,
		Fill:   b.opts.Fill,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create page %d: %w", number, err)
	}
	slog.Info("Page created", "page", number, "name", name)
	return doc, nil
}

// place puts one image in cell (row, col): place at the cell center, turn
// portrait images, scale to fit, then re-center on the cell.
func (b *Builder) place(doc host.Document, path string, pageIndex, row, col int) (Placement, error) {
	cx, cy := b.grid.CellCenter(row, col)

	layer, err := b.host.PlaceSmartObject(doc, path, cx, cy)
	if err != nil {
		return Placement{}, err
	}

	placed := layer.Bounds()
	fit, err := sheet.Fit(placed.Width(), placed.Height(), b.grid)
	if err != nil {
		return Placement{}, err
	}
	width, height := b.dimensions(path, placed)

	if fit.Rotated {
		if err := layer.Rotate(90, host.MiddleCenter); err != nil {
			return Placement{}, fmt.Errorf("rotate: %w", err)
		}
	}

	bounds := layer.Bounds()
	scale := sheet.Scale(bounds.Width(), bounds.Height(), b.grid)
	if err := layer.Resize(scale*100, scale*100, host.MiddleCenter); err != nil {
		return Placement{}, fmt.Errorf("resize: %w", err)
	}

	curX, curY := layer.Bounds().Center()
	if err := layer.Translate(cx-curX, cy-curY); err != nil {
		return Placement{}, fmt.Errorf("translate: %w", err)
	}

	p := Placement{
		SourcePath:  path,
		PageIndex:   pageIndex,
		CellRow:     row,
		CellCol:     col,
		CenterX:     cx,
		CenterY:     cy,
		ScaleFactor: scale,
		Rotated:     fit.Rotated,
		Width:       width,
		Height:      height,
	}
	slog.Debug("Image placed",
		"path", path,
		"page", p.PageNumber(),
		"row", row,
		"col", col,
		"scale", scale,
		"rotated", fit.Rotated)

	return p, nil
}

// dimensions returns the intrinsic size to record for path. The metadata
// reader wins when it succeeds; the placed layer's bounds are used otherwise.
// Orientation is always decided from the placed layer.
func (b *Builder) dimensions(path string, placed host.Rect) (float64, float64) {
	if b.opts.Metadata != nil {
		w, h, err := b.opts.Metadata.Dimensions(path)
		if err == nil {
			if (h > w) != (placed.Height() > placed.Width()) {
				slog.Warn("Metadata orientation disagrees with placed image",
					"path", path,
					"metadata", fmt.Sprintf("%dx%d", w, h),
					"placed", fmt.Sprintf("%gx%g", placed.Width(), placed.Height()))
			}
			return float64(w), float64(h)
		}
		slog.Debug("Metadata read failed, measuring placed layer", "path", path, "err", err)
	}
	return placed.Width(), placed.Height()
}
