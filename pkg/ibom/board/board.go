// Package board defines the read-only board model the BOM pipeline consumes.
//
// A Board is a snapshot taken once per generation run. Lengths are native
// fixed-point nanometres and angles are decidegrees, the way the KiCad board
// model exposes them. Optional accessors of older board-model APIs are
// described by Capabilities; consumers check capabilities instead of
// probing for fields.
package board

import "time"

// Board is the abstract board-access interface. Adapters for each supported
// board-model API generation implement it.
type Board interface {
	// FileName returns the path of the board file, or "" if the board has
	// never been saved.
	FileName() string

	// ModTime returns the modification time of the board file.
	ModTime() time.Time

	// TitleBlock returns the title block metadata.
	TitleBlock() TitleBlock

	// Capabilities reports which optional accessors are available.
	Capabilities() Capabilities

	// Footprints returns the footprints in board order.
	Footprints() []*Footprint

	// Drawings returns the board-level drawings and texts in board order.
	Drawings() []*Drawing
}

// Capabilities lists the optional accessors a board-model API generation
// provides. The zero value describes the oldest supported API.
type Capabilities struct {
	PolygonOutlines bool // drawings expose polygon outlines
	RoundRectPads   bool // pads may be rounded rectangles
	CustomPads      bool // pads may carry custom polygon shapes
	PadOffset       bool // pads expose the pad-to-hole offset
	ShownText       bool // texts expose the text with fields substituted
	TextAngle       bool // free texts expose a dedicated text angle
	TextSize        bool // texts expose dedicated height/width accessors
}

// TitleBlock holds the title block fields of a board.
type TitleBlock struct {
	Title    string
	Date     string
	Revision string
	Company  string
	Comments []string
}

// Snapshot is a plain in-memory Board. Adapters build one; tests construct
// them directly.
type Snapshot struct {
	Path     string
	Modified time.Time
	Title    TitleBlock
	Caps     Capabilities
	Modules  []*Footprint
	Items    []*Drawing
}

func (s *Snapshot) FileName() string           { return s.Path }
func (s *Snapshot) ModTime() time.Time         { return s.Modified }
func (s *Snapshot) TitleBlock() TitleBlock     { return s.Title }
func (s *Snapshot) Capabilities() Capabilities { return s.Caps }
func (s *Snapshot) Footprints() []*Footprint   { return s.Modules }
func (s *Snapshot) Drawings() []*Drawing       { return s.Items }

// FPID identifies the library footprint a placement was made from.
type FPID struct {
	Library string
	Name    string
}

// Footprint is a component placement (a module in older APIs).
type Footprint struct {
	Reference   string
	Value       string
	FPID        FPID
	Attribute   Attribute
	Layer       Layer
	Position    Point
	Orientation float64 // decidegrees
	BBox        Rect

	// ReferenceText and ValueText are the module texts carrying the
	// reference designator and value labels.
	ReferenceText *Drawing
	ValueText     *Drawing

	// Graphics are the footprint's own drawings and user texts, in file order.
	Graphics []*Drawing
	Pads     []*Pad
}

// Center returns the footprint centre used for highlighting.
func (f *Footprint) Center() Point {
	return f.Position
}

// Pad is an electrical contact of a footprint.
type Pad struct {
	Name        string
	Layers      LayerSet
	Position    Point
	Size        Size
	Orientation float64 // decidegrees
	Shape       PadShape
	Attribute   PadAttribute
	DrillShape  DrillShape
	DrillSize   Size

	// Optional, see Capabilities.
	Offset          Point
	RoundRectRadius int64
	CustomShape     PolySet
}

// Drawing is a graphical primitive or a text. Which fields are meaningful
// depends on Class and Shape.
type Drawing struct {
	Class    Class
	RawClass string // set for ClassOther
	Layer    Layer
	Shape    ShapeCode
	Parent   *Footprint // nil for board-level items
	BBox     Rect

	// Segment, circle, arc and polygon geometry. For circles and arcs
	// Start is the centre and End a point on the circumference.
	Start         Point
	End           Point
	Width         int64
	Radius        int64
	ArcAngleStart float64 // decidegrees
	Angle         float64 // arc sweep, decidegrees
	PolyShape     PolySet // requires Capabilities.PolygonOutlines

	// Text fields.
	Visible      bool
	Position     Point
	Text         string
	ShownText    string  // requires Capabilities.ShownText
	Orientation  float64 // decidegrees
	TextAngle    float64 // decidegrees, requires Capabilities.TextAngle
	DrawRotation float64 // decidegrees, effective on-board rotation
	Size         Size    // legacy height/width accessors
	TextSize     Size    // requires Capabilities.TextSize
	HorizJustify int     // -1 left, 0 center, 1 right
}
