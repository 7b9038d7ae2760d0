// Package manifest records where every image of a contact sheet run was
// placed, as YAML, JSONL or Parquet.
package manifest

import (
	"sort"

	"github.com/lehigh-university-libraries/contactsheet/internal/contactsheet"
)

// Record is one placed image
type Record struct {
	Source  string  `json:"source" yaml:"source" parquet:"source"`
	Page    int     `json:"page" yaml:"page" parquet:"page"`
	Row     int     `json:"row" yaml:"row" parquet:"row"`
	Col     int     `json:"col" yaml:"col" parquet:"col"`
	CenterX float64 `json:"center_x" yaml:"centerx" parquet:"center_x"`
	CenterY float64 `json:"center_y" yaml:"centery" parquet:"center_y"`
	Scale   float64 `json:"scale" yaml:"scale" parquet:"scale"`
	Rotated bool    `json:"rotated" yaml:"rotated" parquet:"rotated"`
	Width   float64 `json:"width" yaml:"width" parquet:"width"`
	Height  float64 `json:"height" yaml:"height" parquet:"height"`
}

// Config describes the run that produced a manifest. Only the YAML format keeps it.
type Config struct {
	Folder     string  `yaml:"folder"`
	Columns    int     `yaml:"columns"`
	Rows       int     `yaml:"rows"`
	PageWidth  float64 `yaml:"pagewidth"`
	PageHeight float64 `yaml:"pageheight"`
	CellWidth  float64 `yaml:"cellwidth"`
	CellHeight float64 `yaml:"cellheight"`
	Timestamp  string  `yaml:"timestamp"`
}

// Manifest is a complete run record
type Manifest struct {
	Config  Config   `yaml:"config"`
	Records []Record `yaml:"records"`
}

// FromPlacements converts builder output to records with 1-based page numbers
func FromPlacements(placements []contactsheet.Placement) []Record {
	records := make([]Record, 0, len(placements))
	for _, p := range placements {
		records = append(records, Record{
			Source:  p.SourcePath,
			Page:    p.PageNumber(),
			Row:     p.CellRow,
			Col:     p.CellCol,
			CenterX: p.CenterX,
			CenterY: p.CenterY,
			Scale:   p.ScaleFactor,
			Rotated: p.Rotated,
			Width:   p.Width,
			Height:  p.Height,
		})
	}
	return records
}

// Summary aggregates a manifest
type Summary struct {
	Images  int
	Pages   int
	Rotated int
	// PerPage maps 1-based page number to image count
	PerPage  map[int]int
	MinScale float64
	MaxScale float64
}

// Summarize counts pages, images per page and rotations
func Summarize(records []Record) Summary {
	s := Summary{
		Images:  len(records),
		PerPage: make(map[int]int),
	}
	for i, r := range records {
		s.PerPage[r.Page]++
		if r.Rotated {
			s.Rotated++
		}
		if i == 0 || r.Scale < s.MinScale {
			s.MinScale = r.Scale
		}
		if i == 0 || r.Scale > s.MaxScale {
			s.MaxScale = r.Scale
		}
	}
	s.Pages = len(s.PerPage)
	return s
}

// PageNumbers returns the pages in ascending order
func (s Summary) PageNumbers() []int {
	pages := make([]int, 0, len(s.PerPage))
	for p := range s.PerPage {
		pages = append(pages, p)
	}
	sort.Ints(pages)
	return pages
}
