package sheet

import (
	"errors"
	"math"
	"testing"
)

func TestNewGridA4(t *testing.T) {
	grid, err := NewGrid(A4Landscape, 3, 3)
	if err != nil {
		t.Fatalf("NewGrid failed: %v", err)
	}

	if grid.CellWidth != 1136 {
		t.Errorf("Expected CellWidth=1136, got %g", grid.CellWidth)
	}

	wantHeight := (2480.0 - 50 - 50) / 3
	if math.Abs(grid.CellHeight-wantHeight) > 1e-9 {
		t.Errorf("Expected CellHeight=%g, got %g", wantHeight, grid.CellHeight)
	}

	if grid.CellsPerPage() != 9 {
		t.Errorf("Expected 9 cells per page, got %d", grid.CellsPerPage())
	}
}

func TestNewGridValidation(t *testing.T) {
	tests := []struct {
		name    string
		page    PageSpec
		columns int
		rows    int
		wantErr error
	}{
		{name: "columns below range", page: A4Landscape, columns: 1, rows: 3, wantErr: ErrInvalidGridSize},
		{name: "rows above range", page: A4Landscape, columns: 3, rows: 7, wantErr: ErrInvalidGridSize},
		{name: "zero", page: A4Landscape, columns: 0, rows: 0, wantErr: ErrInvalidGridSize},
		{
			name:    "margins consume page",
			page:    PageSpec{Width: 100, Height: 100, Margin: 50, Gap: 10},
			columns: 2,
			rows:    2,
			wantErr: ErrGridTooLarge,
		},
		{
			name:    "gaps consume page",
			page:    PageSpec{Width: 200, Height: 2000, Margin: 0, Gap: 50},
			columns: 6,
			rows:    2,
			wantErr: ErrGridTooLarge,
		},
		{name: "upper bound accepted", page: A4Landscape, columns: 6, rows: 6},
		{name: "non square accepted", page: A4Landscape, columns: 4, rows: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewGrid(tt.page, tt.columns, tt.rows)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Expected no error, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestCellCenter(t *testing.T) {
	grid, err := NewGrid(A4Landscape, 3, 3)
	if err != nil {
		t.Fatalf("NewGrid failed: %v", err)
	}

	for col := 0; col < grid.Columns; col++ {
		x, _ := grid.CellCenter(0, col)
		want := grid.Margin + float64(col)*(grid.CellWidth+grid.Gap) + grid.CellWidth/2
		if x != want {
			t.Errorf("col %d: expected centerX=%g, got %g", col, want, x)
		}
	}

	x, y := grid.CellCenter(0, 0)
	if x != 25+568 {
		t.Errorf("Expected first centerX=593, got %g", x)
	}
	if math.Abs(y-(25+grid.CellHeight/2)) > 1e-9 {
		t.Errorf("Expected first centerY=%g, got %g", 25+grid.CellHeight/2, y)
	}

	x, _ = grid.CellCenter(2, 2)
	if x != 25+2*(1136+25)+568 {
		t.Errorf("Expected last centerX=2915, got %g", x)
	}
}

func TestPageCount(t *testing.T) {
	tests := []struct {
		images int
		grid   int
		want   int
	}{
		{images: 0, grid: 3, want: 0},
		{images: 1, grid: 3, want: 1},
		{images: 9, grid: 3, want: 1},
		{images: 10, grid: 3, want: 2},
		{images: 18, grid: 3, want: 2},
		{images: 19, grid: 3, want: 3},
		{images: 5, grid: 2, want: 2},
		{images: 36, grid: 6, want: 1},
		{images: 37, grid: 6, want: 2},
	}

	for _, tt := range tests {
		grid, err := NewGrid(A4Landscape, tt.grid, tt.grid)
		if err != nil {
			t.Fatalf("NewGrid(%d) failed: %v", tt.grid, err)
		}
		want := int(math.Ceil(float64(tt.images) / float64(tt.grid*tt.grid)))
		if got := grid.PageCount(tt.images); got != tt.want || got != want {
			t.Errorf("PageCount(%d) on %dx%d: expected %d, got %d", tt.images, tt.grid, tt.grid, tt.want, got)
		}
	}
}

func TestLocate(t *testing.T) {
	grid, err := NewGrid(A4Landscape, 3, 2)
	if err != nil {
		t.Fatalf("NewGrid failed: %v", err)
	}

	seen := make(map[[3]int]bool)
	for i := 0; i < 20; i++ {
		page, row, col := grid.Locate(i)
		if got := page*grid.CellsPerPage() + row*grid.Columns + col; got != i {
			t.Errorf("index %d: cell index round trip gave %d", i, got)
		}
		key := [3]int{page, row, col}
		if seen[key] {
			t.Errorf("index %d: cell %v assigned twice", i, key)
		}
		seen[key] = true
	}

	page, row, col := grid.Locate(7)
	if page != 1 || row != 0 || col != 1 {
		t.Errorf("Expected (1,0,1), got (%d,%d,%d)", page, row, col)
	}
}
