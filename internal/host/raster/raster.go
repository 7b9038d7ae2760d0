// Package raster is an in-process host that renders documents to pixel
// canvases. A placed layer holds only its source path, native size and
// geometry box; source pixels are decoded one layer at a time when a page is
// rendered or exported.
package raster

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"os"

	"github.com/lehigh-university-libraries/contactsheet/internal/host"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// Host implements host.Host on in-memory canvases
type Host struct {
	docs  []*Document
	units host.Units
}

// New creates an empty raster host with ruler units in pixels
func New() *Host {
	return &Host{units: host.UnitsPixels}
}

// Document is one page canvas
type Document struct {
	spec   host.DocumentSpec
	layers []*Layer
}

func (d *Document) Name() string { return d.spec.Name }

// Spec returns the parameters the document was created with
func (d *Document) Spec() host.DocumentSpec { return d.spec }

// Layers returns the placed layers in stacking order, bottom first
func (d *Document) Layers() []*Layer { return d.layers }

// Layer is a placed source image and its current geometry
type Layer struct {
	Path   string
	width  int
	height int
	box    host.Box
}

func (l *Layer) Bounds() host.Rect { return l.box.Rect }

// QuarterTurns returns the clockwise quarter turns applied so far
func (l *Layer) QuarterTurns() int { return l.box.QuarterTurns }

func (l *Layer) Rotate(degrees float64, anchor host.Anchor) error {
	return l.box.Rotate(degrees, anchor)
}

func (l *Layer) Resize(scaleXPercent, scaleYPercent float64, anchor host.Anchor) error {
	return l.box.Resize(scaleXPercent, scaleYPercent, anchor)
}

func (l *Layer) Translate(dx, dy float64) error {
	l.box.Translate(dx, dy)
	return nil
}

// Documents returns every document created so far, in creation order
func (h *Host) Documents() []*Document {
	return h.docs
}

func (h *Host) CreateDocument(spec host.DocumentSpec) (host.Document, error) {
	if spec.Width <= 0 || spec.Height <= 0 {
		return nil, fmt.Errorf("invalid document size %dx%d", spec.Width, spec.Height)
	}
	if _, err := host.ParseMode(string(spec.Mode)); err != nil {
		return nil, err
	}
	if _, err := host.ParseFill(string(spec.Fill)); err != nil {
		return nil, err
	}

	doc := &Document{spec: spec}
	h.docs = append(h.docs, doc)
	slog.Debug("Document created", "name", spec.Name, "width", spec.Width, "height", spec.Height, "dpi", spec.DPI)
	return doc, nil
}

// PlaceSmartObject reads the file's header and places it at native pixel size
func (h *Host) PlaceSmartObject(doc host.Document, path string, centerX, centerY float64) (host.Layer, error) {
	d, ok := doc.(*Document)
	if !ok {
		return nil, fmt.Errorf("document %q does not belong to this host", doc.Name())
	}

	cfg, err := loadConfig(path)
	if err != nil {
		return nil, err
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("image %s has no pixels", path)
	}

	layer := &Layer{
		Path:   path,
		width:  cfg.Width,
		height: cfg.Height,
		box:    host.Box{Rect: host.RectAround(centerX, centerY, float64(cfg.Width), float64(cfg.Height))},
	}
	d.layers = append(d.layers, layer)
	return layer, nil
}

func (h *Host) RulerUnits() host.Units { return h.units }

func (h *Host) SetRulerUnits(units host.Units) error {
	switch units {
	case host.UnitsPixels, host.UnitsInches, host.UnitsCentimeters, host.UnitsPoints:
		h.units = units
		return nil
	default:
		return fmt.Errorf("unsupported ruler units: %s", units)
	}
}

func loadConfig(path string) (image.Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return image.Config{}, fmt.Errorf("failed to open image: %w", err)
	}
	defer file.Close()

	cfg, _, err := image.DecodeConfig(file)
	if err != nil {
		return image.Config{}, fmt.Errorf("failed to read image header %s: %w", path, err)
	}
	return cfg, nil
}

func loadImage(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}
	return img, nil
}
