// Package hosttest provides a recording host.Host for tests. It keeps layer
// geometry with host.Box but never touches pixels.
package hosttest

import (
	"fmt"

	"github.com/lehigh-university-libraries/contactsheet/internal/host"
)

// Operation names recorded in Call.Op
const (
	OpCreateDocument = "createDocument"
	OpPlace          = "placeSmartObject"
	OpRotate         = "rotate"
	OpResize         = "resize"
	OpTranslate      = "translate"
	OpSetRulerUnits  = "setRulerUnits"
)

// Call is one recorded host interaction
type Call struct {
	Op   string
	Doc  string
	Path string
	Args []float64
}

// Document is a recorded page
type Document struct {
	Spec   host.DocumentSpec
	Layers []*Layer
}

func (d *Document) Name() string { return d.Spec.Name }

// Layer is a recorded placement
type Layer struct {
	rec  *Recorder
	doc  *Document
	Path string
	Box  host.Box
}

func (l *Layer) Bounds() host.Rect { return l.Box.Rect }

func (l *Layer) Rotate(degrees float64, anchor host.Anchor) error {
	if err := l.rec.record(Call{Op: OpRotate, Doc: l.doc.Name(), Path: l.Path, Args: []float64{degrees, float64(anchor)}}); err != nil {
		return err
	}
	return l.Box.Rotate(degrees, anchor)
}

func (l *Layer) Resize(scaleXPercent, scaleYPercent float64, anchor host.Anchor) error {
	if err := l.rec.record(Call{Op: OpResize, Doc: l.doc.Name(), Path: l.Path, Args: []float64{scaleXPercent, scaleYPercent, float64(anchor)}}); err != nil {
		return err
	}
	return l.Box.Resize(scaleXPercent, scaleYPercent, anchor)
}

func (l *Layer) Translate(dx, dy float64) error {
	if err := l.rec.record(Call{Op: OpTranslate, Doc: l.doc.Name(), Path: l.Path, Args: []float64{dx, dy}}); err != nil {
		return err
	}
	l.Box.Translate(dx, dy)
	return nil
}

// Recorder implements host.Host by recording calls
type Recorder struct {
	// Sizes gives the native pixel size of each path; unknown paths use DefaultSize
	Sizes       map[string][2]float64
	DefaultSize [2]float64

	Calls     []Call
	Documents []*Document
	Units     host.Units

	failOn    map[string]failure
	callCount map[string]int
}

type failure struct {
	nth int
	err error
}

// New returns a Recorder whose ruler units start as inches
func New() *Recorder {
	return &Recorder{
		Sizes:       make(map[string][2]float64),
		DefaultSize: [2]float64{400, 300},
		Units:       host.UnitsInches,
		failOn:      make(map[string]failure),
		callCount:   make(map[string]int),
	}
}

// FailOn makes the nth (1-based) call of op return err
func (r *Recorder) FailOn(op string, nth int, err error) {
	r.failOn[op] = failure{nth: nth, err: err}
}

// Count returns how many times op was called
func (r *Recorder) Count(op string) int {
	return r.callCount[op]
}

// CallsOf returns the recorded calls of one operation, in order
func (r *Recorder) CallsOf(op string) []Call {
	var calls []Call
	for _, c := range r.Calls {
		if c.Op == op {
			calls = append(calls, c)
		}
	}
	return calls
}

func (r *Recorder) record(c Call) error {
	r.Calls = append(r.Calls, c)
	r.callCount[c.Op]++
	if f, ok := r.failOn[c.Op]; ok && f.nth == r.callCount[c.Op] {
		return f.err
	}
	return nil
}

func (r *Recorder) CreateDocument(spec host.DocumentSpec) (host.Document, error) {
	if err := r.record(Call{Op: OpCreateDocument, Doc: spec.Name, Args: []float64{float64(spec.Width), float64(spec.Height), spec.DPI}}); err != nil {
		return nil, err
	}
	doc := &Document{Spec: spec}
	r.Documents = append(r.Documents, doc)
	return doc, nil
}

func (r *Recorder) PlaceSmartObject(doc host.Document, path string, centerX, centerY float64) (host.Layer, error) {
	d, ok := doc.(*Document)
	if !ok {
		return nil, fmt.Errorf("document %q was not created by this recorder", doc.Name())
	}
	if err := r.record(Call{Op: OpPlace, Doc: d.Name(), Path: path, Args: []float64{centerX, centerY}}); err != nil {
		return nil, err
	}

	size, ok := r.Sizes[path]
	if !ok {
		size = r.DefaultSize
	}
	layer := &Layer{
		rec:  r,
		doc:  d,
		Path: path,
		Box:  host.Box{Rect: host.RectAround(centerX, centerY, size[0], size[1])},
	}
	d.Layers = append(d.Layers, layer)
	return layer, nil
}

func (r *Recorder) RulerUnits() host.Units { return r.Units }

func (r *Recorder) SetRulerUnits(units host.Units) error {
	if err := r.record(Call{Op: OpSetRulerUnits, Path: string(units)}); err != nil {
		return err
	}
	r.Units = units
	return nil
}
