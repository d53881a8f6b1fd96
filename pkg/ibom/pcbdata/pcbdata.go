// Package pcbdata defines the document consumed by the interactive BOM
// viewer. Field names, nesting and units (millimetres, degrees) are the
// wire contract with the renderer.
package pcbdata

import "encoding/json"

// Point is an [x, y] pair in millimetres.
type Point [2]float64

// Side is the board side of a footprint, pad or copper drawing: "F" or "B".
// The empty Side serializes as null.
type Side string

const (
	Front Side = "F"
	Back  Side = "B"
)

func (s Side) MarshalJSON() ([]byte, error) {
	if s == "" {
		return []byte("null"), nil
	}
	return json.Marshal(string(s))
}

// Document is the complete output of one generation run.
type Document struct {
	EdgesBBox  BBox               `json:"edges_bbox"`
	Edges      []Drawing          `json:"edges"`
	Silkscreen Silkscreen         `json:"silkscreen"`
	Modules    map[string]*Module `json:"modules"`
	Metadata   Metadata           `json:"metadata"`
	BOM        BOM                `json:"bom"`
}

// BBox is the board outline bounding box.
type BBox struct {
	MinX float64 `json:"minx"`
	MinY float64 `json:"miny"`
	MaxX float64 `json:"maxx"`
	MaxY float64 `json:"maxy"`
}

// Silkscreen holds the silkscreen drawings of each side.
type Silkscreen struct {
	Front []Drawing `json:"F"`
	Back  []Drawing `json:"B"`
}

// Metadata is the title block information shown by the viewer.
type Metadata struct {
	Title    string `json:"title"`
	Revision string `json:"revision"`
	Company  string `json:"company"`
	Date     string `json:"date"`
}

// BOM holds the three BOM views.
type BOM struct {
	Both  []BOMRow `json:"both"`
	Front []BOMRow `json:"F"`
	Back  []BOMRow `json:"B"`
}

// BOMRow is one grouped line of the bill of materials. It serializes as
// [quantity, value, footprint, [references...]].
type BOMRow struct {
	Quantity   int
	Value      string
	Footprint  string
	References []string
}

func (r BOMRow) MarshalJSON() ([]byte, error) {
	refs := r.References
	if refs == nil {
		refs = []string{}
	}
	return json.Marshal([]any{r.Quantity, r.Value, r.Footprint, refs})
}

// Module is the render data of one footprint.
type Module struct {
	Ref      string          `json:"ref"`
	Center   Point           `json:"center"`
	BBox     ModuleBBox      `json:"bbox"`
	Pads     []Pad           `json:"pads"`
	Drawings []ModuleDrawing `json:"drawings"`
	Layer    Side            `json:"layer"`
}

// ModuleBBox is a footprint bounding box as position and size.
type ModuleBBox struct {
	Pos  Point `json:"pos"`
	Size Point `json:"size"`
}

// ModuleDrawing is a copper drawing of a footprint tagged with its side.
type ModuleDrawing struct {
	Layer   Side    `json:"layer"`
	Drawing Drawing `json:"drawing"`
}

// Pad mount types.
const (
	PadThroughHole = "th"
	PadSMD         = "smd"
)

// Pad is the render data of one footprint pad.
type Pad struct {
	Layers     []Side    `json:"layers"`
	Pos        Point     `json:"pos"`
	Size       Point     `json:"size"`
	Angle      float64   `json:"angle"`
	Shape      string    `json:"shape"`
	Pin1       int       `json:"pin1,omitempty"`
	Polygons   [][]Point `json:"polygons,omitempty"`
	Radius     *float64  `json:"radius,omitempty"`
	Type       string    `json:"type"`
	DrillShape string    `json:"drillshape,omitempty"`
	DrillSize  *Point    `json:"drillsize,omitempty"`
	Offset     *Point    `json:"offset,omitempty"`
}
