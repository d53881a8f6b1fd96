package pcb

// Board represents a complete KiCad PCB. Lengths are nanometres and angles
// decidegrees. Footprint children keep the footprint-local coordinates of
// the file; Footprint.Transform maps them onto the board.
type Board struct {
	Version    int         // File format version
	Generator  string      // Generator info (e.g., "pcbnew")
	TitleBlock TitleBlock  // Title block metadata
	Layers     []Layer     // Layer definitions
	Footprints []Footprint // Component footprints, in file order
	Graphics   []Graphic   // Board-level drawings and texts, in file order
}

// Footprint represents a component footprint (a module in older files)
type Footprint struct {
	Library    string            // Library name
	Name       string            // Footprint name
	Layer      string            // Layer (F.Cu or B.Cu typically)
	Position   Point             // Placement on the board
	Angle      float64           // Rotation, decidegrees
	Attributes []string          // (attr ...) keywords, e.g. smd, virtual
	Properties map[string]string // Footprint properties
	Reference  string            // Reference designator (e.g., "R1")
	Value      string            // Component value

	// ReferenceText and ValueText are the texts that display the reference
	// and value. Either may be nil when the file has no such text.
	ReferenceText *Text
	ValueText     *Text

	Graphics []Graphic // Drawings and user texts, in file order
	Pads     []Pad
}

// HasAttribute reports whether the footprint carries the (attr ...) keyword
func (fp *Footprint) HasAttribute(name string) bool {
	for _, a := range fp.Attributes {
		if a == name {
			return true
		}
	}
	return false
}

// Pad represents a footprint pad
type Pad struct {
	Number   string   // Pad number/name
	Type     string   // Pad type (thru_hole, smd, connect, np_thru_hole)
	Shape    string   // Pad shape (circle, rect, oval, roundrect, trapezoid, custom)
	Position Point    // Footprint-local position
	Angle    float64  // Absolute rotation, decidegrees
	Size     Size     // Pad size
	Layers   LayerSet // Layers the pad appears on
	Drill    Drill

	RoundRectRatio float64 // corner radius as a fraction of the smaller side
	Chamfered      bool    // roundrect pad with chamfered corners

	// Custom pads only. Anchor is the anchor shape (rect or circle) and
	// Primitives are the pad-local shapes merged with it.
	Anchor     string
	Primitives []Graphic
}

// Drill describes the hole of a through-hole pad
type Drill struct {
	Oval   bool
	Size   Size
	Offset Point // pad-local offset of the pad shape from the hole
}

// Graphic represents a drawing primitive or a text.
//
// Geometry by kind:
//   - line, rect: Start and End are the end points or opposite corners
//   - circle: Start is the centre, End a point on the circumference
//   - arc: Start is the centre, End the start point, Angle the sweep
//   - poly, curve: Points (curve points are bezier control points)
//   - text: Text
type Graphic struct {
	Kind   GraphicKind
	Layer  string
	Start  Point
	End    Point
	Angle  float64 // arc sweep, decidegrees
	Width  int64
	Points []Point
	Text   *Text
}

// Text is a board text or a footprint text
type Text struct {
	Kind      string // reference, value or user for footprint texts; empty for board texts
	Text      string
	Layer     string
	Position  Point   // Footprint-local for footprint texts
	Angle     float64 // Absolute rotation, decidegrees
	Height    int64
	Width     int64
	Thickness int64
	Justify   int // -1 left, 0 center, 1 right
	Hidden    bool

	// KeepUpright footprint texts are flipped by 180 degrees rather than
	// drawn upside down. Texts marked unlocked rotate freely.
	KeepUpright bool
}
