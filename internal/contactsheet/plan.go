package contactsheet

import (
	"errors"
	"fmt"

	"github.com/lehigh-university-libraries/contactsheet/internal/images"
	"github.com/lehigh-university-libraries/contactsheet/internal/sheet"
)

// Plan computes every placement from metadata alone, without a host
func Plan(files []string, grid sheet.GridSpec, reader images.MetadataReader) ([]Placement, error) {
	if len(files) == 0 {
		return nil, images.ErrNoImages
	}
	if reader == nil {
		return nil, errors.New("planning needs a metadata reader")
	}

	placements := make([]Placement, 0, len(files))
	for i, path := range files {
		w, h, err := reader.Dimensions(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read dimensions of %s: %w", path, err)
		}

		fit, err := sheet.Fit(float64(w), float64(h), grid)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}

		page, row, col := grid.Locate(i)
		cx, cy := grid.CellCenter(row, col)
		placements = append(placements, Placement{
			SourcePath:  path,
			PageIndex:   page,
			CellRow:     row,
			CellCol:     col,
			CenterX:     cx,
			CenterY:     cy,
			ScaleFactor: fit.Scale,
			Rotated:     fit.Rotated,
			Width:       float64(w),
			Height:      float64(h),
		})
	}

	return placements, nil
}
