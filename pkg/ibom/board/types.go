package board

import "strconv"

// Layer identifies a board layer the pipeline cares about. Every other
// layer maps to LayerOther.
type Layer int

const (
	LayerOther Layer = iota
	FCu
	BCu
	FSilkS
	BSilkS
	EdgeCuts
)

var layerNames = map[Layer]string{
	LayerOther: "other",
	FCu:        "F.Cu",
	BCu:        "B.Cu",
	FSilkS:     "F.SilkS",
	BSilkS:     "B.SilkS",
	EdgeCuts:   "Edge.Cuts",
}

func (l Layer) String() string {
	if name, ok := layerNames[l]; ok {
		return name
	}
	return "layer(" + strconv.Itoa(int(l)) + ")"
}

// LayerSet is the set of layers a pad is present on.
type LayerSet []Layer

// Contains reports whether the set includes layer l.
func (s LayerSet) Contains(l Layer) bool {
	for _, x := range s {
		if x == l {
			return true
		}
	}
	return false
}

// Class discriminates drawings from texts, and board items from footprint items.
type Class int

const (
	ClassOther         Class = iota
	ClassDrawSegment         // board-level drawing
	ClassModuleGraphic       // footprint drawing
	ClassBoardText           // board-level text
	ClassModuleText          // footprint text
)

var classNames = map[Class]string{
	ClassOther:         "OTHER",
	ClassDrawSegment:   "DRAWSEGMENT",
	ClassModuleGraphic: "MGRAPHIC",
	ClassBoardText:     "PTEXT",
	ClassModuleText:    "MTEXT",
}

func (c Class) String() string {
	if name, ok := classNames[c]; ok {
		return name
	}
	return "class(" + strconv.Itoa(int(c)) + ")"
}

// ShapeCode is the native drawing shape code. Codes outside the named
// constants are carried through unchanged.
type ShapeCode int

const (
	ShapeSegment ShapeCode = iota
	ShapeRect
	ShapeArc
	ShapeCircle
	ShapePolygon
	ShapeCurve
)

var shapeNames = map[ShapeCode]string{
	ShapeSegment: "segment",
	ShapeRect:    "rect",
	ShapeArc:     "arc",
	ShapeCircle:  "circle",
	ShapePolygon: "polygon",
	ShapeCurve:   "curve",
}

func (s ShapeCode) String() string {
	if name, ok := shapeNames[s]; ok {
		return name
	}
	return "shape(" + strconv.Itoa(int(s)) + ")"
}

// Attribute is the native footprint attribute code.
type Attribute int

const (
	AttrNormal       Attribute = 0
	AttrNormalInsert Attribute = 1
	AttrVirtual      Attribute = 2
)

// Label returns the BOM label of the attribute. Unknown codes are rendered
// as their decimal value.
func (a Attribute) Label() string {
	switch a {
	case AttrNormal:
		return "Normal"
	case AttrNormalInsert:
		return "Normal+Insert"
	case AttrVirtual:
		return "Virtual"
	}
	return strconv.Itoa(int(a))
}

// PadShape is the native pad shape code.
type PadShape int

const (
	PadShapeCircle PadShape = iota
	PadShapeRect
	PadShapeOval
	PadShapeTrapezoid
	PadShapeRoundRect
	PadShapeCustom
	PadShapeChamferedRect
)

func (s PadShape) String() string {
	switch s {
	case PadShapeCircle:
		return "circle"
	case PadShapeRect:
		return "rect"
	case PadShapeOval:
		return "oval"
	case PadShapeTrapezoid:
		return "trapezoid"
	case PadShapeRoundRect:
		return "roundrect"
	case PadShapeCustom:
		return "custom"
	case PadShapeChamferedRect:
		return "chamfered_rect"
	}
	return "padshape(" + strconv.Itoa(int(s)) + ")"
}

// PadAttribute is the native pad plating attribute.
type PadAttribute int

const (
	PadAttribStandard PadAttribute = iota // plated through hole
	PadAttribSMD
	PadAttribConn
	PadAttribHoleNotPlated
)

// DrillShape is the shape of a pad hole.
type DrillShape int

const (
	DrillShapeCircle DrillShape = iota
	DrillShapeOblong
)
