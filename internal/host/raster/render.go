package raster

import (
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/lehigh-university-libraries/contactsheet/internal/host"
	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
	"golang.org/x/image/tiff"
)

// Formats accepted by Export
var Formats = []string{"png", "jpeg", "tiff"}

// Render composites the document's layers onto its background. Each
// layer's source is decoded, resampled onto the page and released before
// the next one is read.
func (d *Document) Render() (image.Image, error) {
	page := image.NewRGBA(image.Rect(0, 0, d.spec.Width, d.spec.Height))
	draw.Draw(page, page.Bounds(), &image.Uniform{fillColor(d.spec.Fill)}, image.Point{}, draw.Src)

	for _, l := range d.layers {
		r := l.box.Rect
		if r.Width() < 0.5 || r.Height() < 0.5 {
			continue
		}
		src, err := loadImage(l.Path)
		if err != nil {
			return nil, err
		}
		draw.CatmullRom.Transform(page, layerTransform(src.Bounds(), r, l.box.QuarterTurns), src, src.Bounds(), draw.Over, nil)
	}

	if d.spec.Mode == host.ModeGrayscale {
		gray := image.NewGray(page.Bounds())
		draw.Draw(gray, gray.Bounds(), page, image.Point{}, draw.Src)
		return gray, nil
	}
	return page, nil
}

func fillColor(f host.Fill) color.Color {
	switch f {
	case host.FillBlack:
		return color.Black
	case host.FillTransparent:
		return color.Transparent
	default:
		return color.White
	}
}

// layerTransform maps source pixel coordinates onto dst after turning the
// source clockwise by n quarter turns.
func layerTransform(sb image.Rectangle, dst host.Rect, n int) f64.Aff3 {
	n = ((n % 4) + 4) % 4
	w, h := float64(sb.Dx()), float64(sb.Dy())
	dw, dh := dst.Width(), dst.Height()

	var m f64.Aff3
	switch n {
	case 0:
		m = f64.Aff3{dw / w, 0, dst.X0, 0, dh / h, dst.Y0}
	case 1:
		m = f64.Aff3{0, -dw / h, dst.X0 + dw, dh / w, 0, dst.Y0}
	case 2:
		m = f64.Aff3{-dw / w, 0, dst.X0 + dw, 0, -dh / h, dst.Y0 + dh}
	case 3:
		m = f64.Aff3{0, dw / h, dst.X0, -dh / w, 0, dst.Y0 + dh}
	}

	// source coordinates are relative to sb.Min
	mx, my := float64(sb.Min.X), float64(sb.Min.Y)
	m[2] -= m[0]*mx + m[1]*my
	m[5] -= m[3]*mx + m[4]*my
	return m
}

// Export renders every document and writes it to dir as page-NN.<ext>.
// It returns the written paths in page order.
func (h *Host) Export(dir, format string) ([]string, error) {
	format = strings.ToLower(format)
	ext, err := extension(format)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	paths := make([]string, 0, len(h.docs))
	for i, doc := range h.docs {
		path := filepath.Join(dir, fmt.Sprintf("page-%02d.%s", i+1, ext))
		page, err := doc.Render()
		if err != nil {
			return paths, fmt.Errorf("failed to render %s: %w", doc.Name(), err)
		}
		if ext == "jpg" {
			page = flatten(page)
		}
		if err := writeImage(path, format, page); err != nil {
			return paths, fmt.Errorf("failed to export %s: %w", doc.Name(), err)
		}
		slog.Info("Page exported", "page", i+1, "name", doc.Name(), "path", path)
		paths = append(paths, path)
	}
	return paths, nil
}

// flatten composites img onto white for formats without alpha
func flatten(img image.Image) image.Image {
	out := image.NewRGBA(img.Bounds())
	draw.Draw(out, out.Bounds(), image.White, image.Point{}, draw.Src)
	draw.Draw(out, out.Bounds(), img, img.Bounds().Min, draw.Over)
	return out
}

// CheckFormat reports whether Export can write format
func CheckFormat(format string) error {
	_, err := extension(strings.ToLower(format))
	return err
}

func extension(format string) (string, error) {
	switch format {
	case "png":
		return "png", nil
	case "jpeg", "jpg":
		return "jpg", nil
	case "tiff", "tif":
		return "tif", nil
	default:
		return "", fmt.Errorf("unsupported format: %s (supported: %s)", format, strings.Join(Formats, ", "))
	}
}

func writeImage(path, format string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	switch format {
	case "png":
		err = png.Encode(f, img)
	case "jpeg", "jpg":
		err = jpeg.Encode(f, img, &jpeg.Options{Quality: 92})
	case "tiff", "tif":
		err = tiff.Encode(f, img, &tiff.Options{Compression: tiff.Deflate})
	}
	if err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
