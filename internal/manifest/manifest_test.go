package manifest

import (
	"path/filepath"
	"testing"

	"github.com/lehigh-university-libraries/contactsheet/internal/contactsheet"
)

func samplePlacements() []contactsheet.Placement {
	return []contactsheet.Placement{
		{SourcePath: "a.jpg", PageIndex: 0, CellRow: 0, CellCol: 0, ScaleFactor: 0.25, Width: 4000, Height: 3000},
		{SourcePath: "b.jpg", PageIndex: 0, CellRow: 0, CellCol: 1, ScaleFactor: 0.5, Rotated: true, Width: 3000, Height: 4000},
		{SourcePath: "c.jpg", PageIndex: 0, CellRow: 1, CellCol: 0, ScaleFactor: 1.5, Width: 100, Height: 100},
		{SourcePath: "d.jpg", PageIndex: 0, CellRow: 1, CellCol: 1, ScaleFactor: 0.3, Width: 4000, Height: 3000},
		{SourcePath: "e.jpg", PageIndex: 1, CellRow: 0, CellCol: 0, ScaleFactor: 0.3, Rotated: true, Width: 2000, Height: 3000},
	}
}

func TestFromPlacements(t *testing.T) {
	records := FromPlacements(samplePlacements())
	if len(records) != 5 {
		t.Fatalf("Expected 5 records, got %d", len(records))
	}
	if records[0].Page != 1 || records[4].Page != 2 {
		t.Errorf("Expected 1-based pages, got %d and %d", records[0].Page, records[4].Page)
	}
	if !records[1].Rotated || records[1].Source != "b.jpg" {
		t.Errorf("Unexpected record %+v", records[1])
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize(FromPlacements(samplePlacements()))

	if s.Images != 5 || s.Pages != 2 || s.Rotated != 2 {
		t.Errorf("Expected 5 images, 2 pages, 2 rotated, got %+v", s)
	}
	if s.PerPage[1] != 4 || s.PerPage[2] != 1 {
		t.Errorf("Expected 4 + 1 per page, got %v", s.PerPage)
	}
	if s.MinScale != 0.25 || s.MaxScale != 1.5 {
		t.Errorf("Expected scale range 0.25..1.5, got %g..%g", s.MinScale, s.MaxScale)
	}
	pages := s.PageNumbers()
	if len(pages) != 2 || pages[0] != 1 || pages[1] != 2 {
		t.Errorf("Expected pages [1 2], got %v", pages)
	}

	empty := Summarize(nil)
	if empty.Images != 0 || empty.Pages != 0 {
		t.Errorf("Expected empty summary, got %+v", empty)
	}
}

func TestWriteAndLoad(t *testing.T) {
	m := &Manifest{
		Config:  Config{Folder: "/photos", Columns: 2, Rows: 2, PageWidth: 3508, PageHeight: 2480},
		Records: FromPlacements(samplePlacements()),
	}

	for _, name := range []string{"run.yaml", "run.jsonl", "run.parquet"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "out", name)
			if err := Write(path, m); err != nil {
				t.Fatalf("Write failed: %v", err)
			}

			loaded, err := Load(path)
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			if len(loaded.Records) != len(m.Records) {
				t.Fatalf("Expected %d records, got %d", len(m.Records), len(loaded.Records))
			}
			for i := range m.Records {
				if loaded.Records[i] != m.Records[i] {
					t.Errorf("Record %d: expected %+v, got %+v", i, m.Records[i], loaded.Records[i])
				}
			}
		})
	}

	loaded, err := Load(writeYAMLFixture(t, m))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Config.Folder != "/photos" || loaded.Config.Columns != 2 {
		t.Errorf("Expected YAML to keep config, got %+v", loaded.Config)
	}
}

func writeYAMLFixture(t *testing.T, m *Manifest) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "run.yml")
	if err := Write(path, m); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	return path
}

func TestUnsupportedFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.csv")
	if err := Write(path, &Manifest{}); err == nil {
		t.Error("Expected error writing csv")
	}
	if _, err := Load(path); err == nil {
		t.Error("Expected error loading csv")
	}
}
