package pcb

import (
	"math"
	"strings"

	"github.com/OpenTraceLab/ibom/pkg/kicad/sexp"
)

// Coordinate conversion constants (re-exported from sexp)
const (
	NanometersToMM       = sexp.NanometersToMM
	MMToNanometers       = sexp.MMToNanometers
	DecidegreesToDegrees = sexp.DecidegreesToDegrees
	DegreesToDecidegrees = sexp.DegreesToDecidegrees
)

// Well-known layer names
const (
	LayerFrontCopper = "F.Cu"
	LayerBackCopper  = "B.Cu"
	LayerFrontSilk   = "F.SilkS"
	LayerBackSilk    = "B.SilkS"
	LayerEdgeCuts    = "Edge.Cuts"
)

// Point is a board coordinate in nanometres
type Point struct {
	X, Y int64
}

// Size is a width/height pair in nanometres
type Size struct {
	W, H int64
}

// ToNative converts a file length in millimetres to nanometres
func ToNative(mm float64) int64 {
	return int64(math.Round(mm * MMToNanometers))
}

// ToDecidegrees converts a file angle in degrees to decidegrees
func ToDecidegrees(deg float64) float64 {
	return deg * DegreesToDecidegrees
}

// Layer represents a PCB layer
type Layer struct {
	Number int    // Layer number (ordinal)
	Name   string // Layer name (e.g., "F.Cu", "B.Cu", "F.SilkS")
}

// LayerSet represents the layers a pad is present on
type LayerSet []string

// Contains reports whether the set covers the named layer. Wildcard
// entries such as "*.Cu" and "F&B.Cu" match both sides.
func (s LayerSet) Contains(name string) bool {
	side, kind, ok := strings.Cut(name, ".")
	for _, l := range s {
		if l == name {
			return true
		}
		if !ok {
			continue
		}
		ls, lk, _ := strings.Cut(l, ".")
		if lk != kind {
			continue
		}
		if ls == "*" || (ls == "F&B" && (side == "F" || side == "B")) {
			return true
		}
	}
	return false
}

// TitleBlock holds the (title_block ...) fields
type TitleBlock struct {
	Title    string
	Date     string
	Revision string
	Company  string
	Comments []string // comment N is stored at index N-1
}

// GraphicKind identifies the primitive a Graphic describes
type GraphicKind int

const (
	GraphicLine GraphicKind = iota
	GraphicRect
	GraphicArc
	GraphicCircle
	GraphicPoly
	GraphicCurve
	GraphicText
	GraphicDimension
)

var graphicKindNames = map[GraphicKind]string{
	GraphicLine:      "line",
	GraphicRect:      "rect",
	GraphicArc:       "arc",
	GraphicCircle:    "circle",
	GraphicPoly:      "poly",
	GraphicCurve:     "curve",
	GraphicText:      "text",
	GraphicDimension: "dimension",
}

func (k GraphicKind) String() string {
	if name, ok := graphicKindNames[k]; ok {
		return name
	}
	return "unknown"
}
