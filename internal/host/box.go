package host

import (
	"errors"
	"fmt"
	"math"
)

// ErrUnsupportedAngle is returned by hosts that can only turn layers in quarter turns
var ErrUnsupportedAngle = errors.New("rotation must be a multiple of 90 degrees")

// Anchor names the reference point of a rotate or resize
type Anchor int

const (
	TopLeft Anchor = iota
	TopCenter
	TopRight
	MiddleLeft
	MiddleCenter
	MiddleRight
	BottomLeft
	BottomCenter
	BottomRight
)

func (a Anchor) String() string {
	switch a {
	case TopLeft:
		return "top-left"
	case TopCenter:
		return "top-center"
	case TopRight:
		return "top-right"
	case MiddleLeft:
		return "middle-left"
	case MiddleCenter:
		return "middle-center"
	case MiddleRight:
		return "middle-right"
	case BottomLeft:
		return "bottom-left"
	case BottomCenter:
		return "bottom-center"
	case BottomRight:
		return "bottom-right"
	default:
		return fmt.Sprintf("anchor(%d)", int(a))
	}
}

// Rect is a layer's bounding box in page pixels
type Rect struct {
	X0, Y0, X1, Y1 float64
}

// RectAround returns a w x h rectangle centered on (cx, cy)
func RectAround(cx, cy, w, h float64) Rect {
	return Rect{X0: cx - w/2, Y0: cy - h/2, X1: cx + w/2, Y1: cy + h/2}
}

func (r Rect) Width() float64  { return r.X1 - r.X0 }
func (r Rect) Height() float64 { return r.Y1 - r.Y0 }

// Center returns the midpoint of r
func (r Rect) Center() (x, y float64) {
	return (r.X0 + r.X1) / 2, (r.Y0 + r.Y1) / 2
}

// AnchorPoint returns the page coordinates of anchor on r
func (r Rect) AnchorPoint(a Anchor) (x, y float64) {
	col := int(a) % 3
	row := int(a) / 3
	x = r.X0 + float64(col)*r.Width()/2
	y = r.Y0 + float64(row)*r.Height()/2
	return x, y
}

// Box tracks the geometry of a placed layer: its bounds and how many
// clockwise quarter turns have been applied to the source image.
type Box struct {
	Rect         Rect
	QuarterTurns int
}

// Rotate turns the box clockwise by degrees about anchor
func (b *Box) Rotate(degrees float64, anchor Anchor) error {
	turns := degrees / 90
	if turns != math.Trunc(turns) {
		return fmt.Errorf("%w: %g", ErrUnsupportedAngle, degrees)
	}
	n := ((int(turns) % 4) + 4) % 4
	if n == 0 {
		return nil
	}

	ax, ay := b.Rect.AnchorPoint(anchor)
	x0, y0 := rotatePoint(b.Rect.X0, b.Rect.Y0, ax, ay, n)
	x1, y1 := rotatePoint(b.Rect.X1, b.Rect.Y1, ax, ay, n)
	b.Rect = Rect{
		X0: math.Min(x0, x1),
		Y0: math.Min(y0, y1),
		X1: math.Max(x0, x1),
		Y1: math.Max(y0, y1),
	}
	b.QuarterTurns = (b.QuarterTurns + n) % 4
	return nil
}

// Resize scales the box by the given percentages, keeping anchor fixed
func (b *Box) Resize(scaleXPercent, scaleYPercent float64, anchor Anchor) error {
	if scaleXPercent <= 0 || scaleYPercent <= 0 {
		return fmt.Errorf("resize percentages must be positive, got %g x %g", scaleXPercent, scaleYPercent)
	}
	sx := scaleXPercent / 100
	sy := scaleYPercent / 100
	ax, ay := b.Rect.AnchorPoint(anchor)
	b.Rect = Rect{
		X0: ax + (b.Rect.X0-ax)*sx,
		Y0: ay + (b.Rect.Y0-ay)*sy,
		X1: ax + (b.Rect.X1-ax)*sx,
		Y1: ay + (b.Rect.Y1-ay)*sy,
	}
	return nil
}

// Translate moves the box by (dx, dy)
func (b *Box) Translate(dx, dy float64) {
	b.Rect.X0 += dx
	b.Rect.X1 += dx
	b.Rect.Y0 += dy
	b.Rect.Y1 += dy
}

// rotatePoint turns (x, y) clockwise about (ax, ay) by n quarter turns.
// Page coordinates grow downwards, so clockwise maps (dx, dy) to (-dy, dx).
func rotatePoint(x, y, ax, ay float64, n int) (float64, float64) {
	dx, dy := x-ax, y-ay
	for i := 0; i < n; i++ {
		dx, dy = -dy, dx
	}
	return ax + dx, ay + dy
}
