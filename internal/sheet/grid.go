// Package sheet computes contact sheet page geometry: the size of each grid
// cell, where a cell's center sits on the page, and how an image is rotated
// and scaled to fit a cell.
package sheet

import (
	"errors"
	"fmt"
)

// Grid size bounds accepted from the user
const (
	MinGridSize = 2
	MaxGridSize = 6
)

var (
	// ErrInvalidGridSize is returned when a column or row count is outside [MinGridSize, MaxGridSize]
	ErrInvalidGridSize = errors.New("invalid grid size")
	// ErrGridTooLarge is returned when margins and gaps leave no room for a cell
	ErrGridTooLarge = errors.New("grid too large for page")
)

// PageSpec describes the fixed page every contact sheet is laid out on
type PageSpec struct {
	Width  float64
	Height float64
	DPI    float64
	Margin float64
	Gap    float64
}

// A4Landscape is an A4 page at 300 DPI in landscape orientation with 25px margin and gap
var A4Landscape = PageSpec{
	Width:  3508,
	Height: 2480,
	DPI:    300,
	Margin: 25,
	Gap:    25,
}

// GridSpec is the cell layout derived from a page and a column/row count.
// It is computed once per run and never modified.
type GridSpec struct {
	Columns    int
	Rows       int
	CellWidth  float64
	CellHeight float64
	Margin     float64
	Gap        float64
	PageWidth  float64
	PageHeight float64
}

// ValidateGridSize checks a single grid dimension against the accepted range
func ValidateGridSize(n int) error {
	if n < MinGridSize || n > MaxGridSize {
		return fmt.Errorf("%w: %d (choose %d to %d)", ErrInvalidGridSize, n, MinGridSize, MaxGridSize)
	}
	return nil
}

// NewGrid lays out columns x rows cells on page.
func NewGrid(page PageSpec, columns, rows int) (GridSpec, error) {
	if err := ValidateGridSize(columns); err != nil {
		return GridSpec{}, fmt.Errorf("columns: %w", err)
	}
	if err := ValidateGridSize(rows); err != nil {
		return GridSpec{}, fmt.Errorf("rows: %w", err)
	}

	cellWidth := (page.Width - 2*page.Margin - float64(columns-1)*page.Gap) / float64(columns)
	cellHeight := (page.Height - 2*page.Margin - float64(rows-1)*page.Gap) / float64(rows)
	if cellWidth <= 0 || cellHeight <= 0 {
		return GridSpec{}, fmt.Errorf("%w: %dx%d cells on %gx%g page leaves %gx%g per cell",
			ErrGridTooLarge, columns, rows, page.Width, page.Height, cellWidth, cellHeight)
	}

	return GridSpec{
		Columns:    columns,
		Rows:       rows,
		CellWidth:  cellWidth,
		CellHeight: cellHeight,
		Margin:     page.Margin,
		Gap:        page.Gap,
		PageWidth:  page.Width,
		PageHeight: page.Height,
	}, nil
}

// CellsPerPage returns how many images one page holds
func (g GridSpec) CellsPerPage() int {
	return g.Columns * g.Rows
}

// PageCount returns the number of pages needed for n images
func (g GridSpec) PageCount(n int) int {
	if n <= 0 {
		return 0
	}
	per := g.CellsPerPage()
	return (n + per - 1) / per
}

// CellCenter returns the page coordinates of the center of cell (row, col)
func (g GridSpec) CellCenter(row, col int) (x, y float64) {
	x = g.Margin + float64(col)*(g.CellWidth+g.Gap) + g.CellWidth/2
	y = g.Margin + float64(row)*(g.CellHeight+g.Gap) + g.CellHeight/2
	return x, y
}

// Locate maps a zero-based image index to its zero-based page, row and column.
// Cells fill left to right, then top to bottom.
func (g GridSpec) Locate(index int) (page, row, col int) {
	per := g.CellsPerPage()
	page = index / per
	cell := index % per
	return page, cell / g.Columns, cell % g.Columns
}
