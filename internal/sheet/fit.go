package sheet

import (
	"errors"
	"fmt"
	"math"
)

// ErrEmptyImage is returned when an image reports a non-positive width or height
var ErrEmptyImage = errors.New("image has no area")

// FitResult describes how an image must be transformed to sit inside a cell
type FitResult struct {
	// Rotated is true when the image is portrait and gets turned 90 degrees
	Rotated bool
	// Scale is applied to both axes
	Scale float64
	// Width and Height are the final on-page dimensions
	Width  float64
	Height float64
}

// ScalePercent returns Scale as the percentage hosts expect for resize calls
func (f FitResult) ScalePercent() float64 {
	return f.Scale * 100
}

// Fit decides orientation and scale for an image of the given intrinsic size.
// Portrait images (height > width) are rotated so every thumbnail is landscape;
// square images are left alone. The scale is the smaller of the two axis
// ratios, so the aspect ratio is never distorted.
func Fit(width, height float64, grid GridSpec) (FitResult, error) {
	if width <= 0 || height <= 0 {
		return FitResult{}, fmt.Errorf("%w: %gx%g", ErrEmptyImage, width, height)
	}

	var res FitResult
	if height > width {
		res.Rotated = true
		width, height = height, width
	}

	res.Scale = Scale(width, height, grid)
	res.Width = width * res.Scale
	res.Height = height * res.Scale
	return res, nil
}

// Scale returns the factor that fits a width x height box inside one cell
// without changing its orientation.
func Scale(width, height float64, grid GridSpec) float64 {
	return math.Min(grid.CellWidth/width, grid.CellHeight/height)
}
