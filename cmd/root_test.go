package cmd

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lehigh-university-libraries/contactsheet/internal/images"
	"github.com/lehigh-university-libraries/contactsheet/internal/sheet"
)

func writeFixtures(t *testing.T, dir string, sizes [][2]int) {
	t.Helper()
	for i, s := range sizes {
		img := image.NewRGBA(image.Rect(0, 0, s[0], s[1]))
		for y := 0; y < s[1]; y++ {
			for x := 0; x < s[0]; x++ {
				img.Set(x, y, color.RGBA{uint8(40 * i), 100, 200, 255})
			}
		}
		f, err := os.Create(filepath.Join(dir, "img_"+string(rune('a'+i))+".png"))
		if err != nil {
			t.Fatalf("Failed to create fixture: %v", err)
		}
		if err := png.Encode(f, img); err != nil {
			f.Close()
			t.Fatalf("Failed to encode fixture: %v", err)
		}
		f.Close()
	}
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestBuildCommand(t *testing.T) {
	src := t.TempDir()
	writeFixtures(t, src, [][2]int{{60, 40}, {40, 60}, {50, 50}, {80, 20}, {30, 90}})

	outDir := filepath.Join(t.TempDir(), "sheets")
	manifestPath := filepath.Join(outDir, "manifest.jsonl")

	output, err := run(t, "build", src, "--grid", "2", "--out", outDir, "--manifest", manifestPath)
	if err != nil {
		t.Fatalf("build failed: %v\n%s", err, output)
	}
	if !strings.Contains(output, "Custom contact sheet created with 2 page(s).") {
		t.Errorf("Unexpected output:\n%s", output)
	}

	pages, _ := filepath.Glob(filepath.Join(outDir, "page-*.png"))
	if len(pages) != 2 {
		t.Errorf("Expected 2 exported pages, got %d", len(pages))
	}

	output, err = run(t, "inspect", "--manifest", manifestPath)
	if err != nil {
		t.Fatalf("inspect failed: %v", err)
	}
	for _, want := range []string{"Images:   5", "Pages:    2", "Rotated:  2", "Page 1: 4 image(s)", "Page 2: 1 image(s)"} {
		if !strings.Contains(output, want) {
			t.Errorf("Expected %q in inspect output:\n%s", want, output)
		}
	}
}

func TestBuildCommandInMemory(t *testing.T) {
	src := t.TempDir()
	writeFixtures(t, src, [][2]int{{20, 10}, {10, 20}})

	output, err := run(t, "build", src, "--columns", "2", "--rows", "3", "--probe", "none")
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if strings.Contains(output, "Exported") {
		t.Errorf("Expected no export without --out:\n%s", output)
	}
	if !strings.Contains(output, "1 page(s)") {
		t.Errorf("Expected 1 page:\n%s", output)
	}
}

func TestBuildCommandValidation(t *testing.T) {
	src := t.TempDir()
	writeFixtures(t, src, [][2]int{{20, 10}})
	empty := t.TempDir()

	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{name: "grid too small", args: []string{"build", src, "--grid", "1"}, wantErr: sheet.ErrInvalidGridSize},
		{name: "grid too large", args: []string{"build", src, "--grid", "7"}, wantErr: sheet.ErrInvalidGridSize},
		{name: "no folder", args: []string{"build"}, wantErr: images.ErrNoFolder},
		{name: "empty folder", args: []string{"build", empty}, wantErr: images.ErrNoImages},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outDir := filepath.Join(t.TempDir(), "out")
			_, err := run(t, append(tt.args, "--out", outDir)...)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
			if _, statErr := os.Stat(outDir); !os.IsNotExist(statErr) {
				t.Errorf("Expected no output on validation failure")
			}
		})
	}
}

func TestBuildCommandRejectsFormatUpFront(t *testing.T) {
	src := t.TempDir()
	writeFixtures(t, src, [][2]int{{20, 10}})
	outDir := filepath.Join(t.TempDir(), "out")

	_, err := run(t, "build", src, "--format", "gif", "--out", outDir)
	if err == nil || !strings.Contains(err.Error(), "output.format") {
		t.Errorf("Expected output.format error, got %v", err)
	}
	if _, statErr := os.Stat(outDir); !os.IsNotExist(statErr) {
		t.Errorf("Expected no output for an unsupported format")
	}
}

func TestPlanCommand(t *testing.T) {
	src := t.TempDir()
	writeFixtures(t, src, [][2]int{{60, 40}, {40, 60}, {50, 50}, {80, 20}, {30, 90}})
	planPath := filepath.Join(t.TempDir(), "plan.yaml")

	output, err := run(t, "plan", src, "--grid", "2", "--manifest", planPath)
	if err != nil {
		t.Fatalf("plan failed: %v", err)
	}
	for _, want := range []string{"Grid 2x2", "5 image(s) on 2 page(s)", "Page 1", "Page 2", "img_b.png 40x60", "rotated"} {
		if !strings.Contains(output, want) {
			t.Errorf("Expected %q in plan output:\n%s", want, output)
		}
	}

	output, err = run(t, "inspect", "--manifest", planPath, "--records")
	if err != nil {
		t.Fatalf("inspect failed: %v", err)
	}
	if !strings.Contains(output, "Grid:     2x2") || !strings.Contains(output, "p2 [0,0]") {
		t.Errorf("Unexpected inspect output:\n%s", output)
	}

	if _, err := run(t, "plan", src, "--probe", "none"); err == nil {
		t.Error("Expected plan to require a metadata probe")
	}
}
