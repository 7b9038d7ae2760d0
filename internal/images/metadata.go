package images

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/rwcarlsen/goexif/exif"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// MetadataReader reports the pixel size of an image without decoding its pixels
type MetadataReader interface {
	Dimensions(path string) (width, height int, err error)
}

// ExifReader reads PixelXDimension and PixelYDimension from EXIF metadata
type ExifReader struct{}

func (ExifReader) Dimensions(path string) (int, int, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, 0, err
	}
	defer file.Close()

	x, err := exif.Decode(file)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to decode exif: %w", err)
	}

	width, err := exifInt(x, exif.PixelXDimension)
	if err != nil {
		return 0, 0, err
	}
	height, err := exifInt(x, exif.PixelYDimension)
	if err != nil {
		return 0, 0, err
	}

	return width, height, nil
}

func exifInt(x *exif.Exif, name exif.FieldName) (int, error) {
	tag, err := x.Get(name)
	if err != nil {
		return 0, fmt.Errorf("exif %s: %w", name, err)
	}
	v, err := tag.Int(0)
	if err != nil {
		return 0, fmt.Errorf("exif %s: %w", name, err)
	}
	if v <= 0 {
		return 0, fmt.Errorf("exif %s is %d", name, v)
	}
	return v, nil
}

// HeaderReader decodes only the image header with the registered decoders
type HeaderReader struct{}

func (HeaderReader) Dimensions(path string) (int, int, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, 0, err
	}
	defer file.Close()

	cfg, _, err := image.DecodeConfig(file)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to decode image header: %w", err)
	}

	return cfg.Width, cfg.Height, nil
}

// Chain tries each reader in order and returns the first success
type Chain []MetadataReader

func (c Chain) Dimensions(path string) (int, int, error) {
	var errs []error
	for _, r := range c {
		w, h, err := r.Dimensions(path)
		if err == nil {
			return w, h, nil
		}
		errs = append(errs, err)
	}
	if len(errs) == 0 {
		return 0, 0, fmt.Errorf("no metadata reader configured for %s", path)
	}
	return 0, 0, errors.Join(errs...)
}

// NewReader returns the reader for a probe mode: "exif" (EXIF, then header),
// "header", or "none" which returns nil so callers measure placed layers instead.
func NewReader(probe string) (MetadataReader, error) {
	switch probe {
	case "exif":
		return Chain{ExifReader{}, HeaderReader{}}, nil
	case "header", "":
		return HeaderReader{}, nil
	case "none":
		return nil, nil
	default:
		return nil, fmt.Errorf("unsupported probe: %s (supported: exif, header, none)", probe)
	}
}
