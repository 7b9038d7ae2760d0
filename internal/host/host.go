// Package host defines the placement service a contact sheet is built
// against. An implementation owns documents and layers; the builder only
// creates pages, places images and transforms the placed layers.
package host

import "fmt"

// Mode is the colour mode of a new document
type Mode string

const (
	ModeRGB       Mode = "rgb"
	ModeGrayscale Mode = "grayscale"
)

// Fill is the initial background of a new document
type Fill string

const (
	FillWhite       Fill = "white"
	FillBlack       Fill = "black"
	FillTransparent Fill = "transparent"
)

// Units is the host's ruler unit preference
type Units string

const (
	UnitsPixels      Units = "pixels"
	UnitsInches      Units = "inches"
	UnitsCentimeters Units = "cm"
	UnitsPoints      Units = "points"
)

// DocumentSpec holds the parameters of CreateDocument
type DocumentSpec struct {
	Name   string
	Width  int
	Height int
	DPI    float64
	Mode   Mode
	Fill   Fill
}

// Document is a page created by the host
type Document interface {
	Name() string
}

// Layer is an image placed on a document
type Layer interface {
	Bounds() Rect
	Rotate(degrees float64, anchor Anchor) error
	Resize(scaleXPercent, scaleYPercent float64, anchor Anchor) error
	Translate(dx, dy float64) error
}

// Host is the capability set the builder drives
type Host interface {
	CreateDocument(spec DocumentSpec) (Document, error)
	// PlaceSmartObject embeds the file at path as a scalable layer centered on (centerX, centerY)
	PlaceSmartObject(doc Document, path string, centerX, centerY float64) (Layer, error)
	RulerUnits() Units
	SetRulerUnits(units Units) error
}

// ParseMode converts a config value to a Mode
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeRGB, ModeGrayscale:
		return Mode(s), nil
	case "":
		return ModeRGB, nil
	default:
		return "", fmt.Errorf("unsupported mode: %s (supported: rgb, grayscale)", s)
	}
}

// ParseFill converts a config value to a Fill
func ParseFill(s string) (Fill, error) {
	switch Fill(s) {
	case FillWhite, FillBlack, FillTransparent:
		return Fill(s), nil
	case "":
		return FillWhite, nil
	default:
		return "", fmt.Errorf("unsupported fill: %s (supported: white, black, transparent)", s)
	}
}
