package pcb

import (
	"fmt"
	"math"
	"strings"

	"github.com/OpenTraceLab/ibom/pkg/kicad/sexp"
	"github.com/OpenTraceLab/ibom/pkg/kicad/sexp/kicadsexp"
)

// parsePoint extracts coordinates from a (start x y), (at x y) or (xy x y)
// node, converted to nanometres
func parsePoint(node kicadsexp.Sexp) (Point, error) {
	if node.IsLeaf() {
		return Point{}, fmt.Errorf("expected position list, got leaf")
	}

	x, y, err := sexp.GetXY(node)
	if err != nil {
		return Point{}, err
	}
	return Point{X: ToNative(x), Y: ToNative(y)}, nil
}

// parseChildPoint parses the point held by the named child node
func parseChildPoint(node kicadsexp.Sexp, key string) (Point, error) {
	child, found := sexp.FindNode(node, key)
	if !found {
		return Point{}, fmt.Errorf("missing required '%s' position", key)
	}
	p, err := parsePoint(child)
	if err != nil {
		return Point{}, fmt.Errorf("failed to parse %s position: %w", key, err)
	}
	return p, nil
}

// parseAt extracts position and rotation from an (at x y [angle]) node
func parseAt(node kicadsexp.Sexp) (Point, float64, error) {
	atNode, found := sexp.FindNode(node, "at")
	if !found {
		return Point{}, 0, fmt.Errorf("missing required 'at' position")
	}
	p, err := parsePoint(atNode)
	if err != nil {
		return Point{}, 0, fmt.Errorf("failed to parse 'at' position: %w", err)
	}
	// Angle is optional
	angle, err := sexp.GetFloat(atNode, 3)
	if err != nil {
		angle = 0
	}
	return p, ToDecidegrees(angle), nil
}

// parsePoints extracts the (xy x y) entries of a (pts ...) node
func parsePoints(node kicadsexp.Sexp) ([]Point, error) {
	ptsNode, found := sexp.FindNode(node, "pts")
	if !found {
		return nil, fmt.Errorf("missing required 'pts' field")
	}

	var points []Point
	for _, xy := range sexp.FindAllNodes(ptsNode, "xy") {
		p, err := parsePoint(xy)
		if err != nil {
			return nil, fmt.Errorf("failed to parse polygon point: %w", err)
		}
		points = append(points, p)
	}
	return points, nil
}

// parseWidth extracts the line width. KiCad 6 and older write (width w),
// newer files (stroke (width w) (type solid)).
func parseWidth(node kicadsexp.Sexp) int64 {
	if w, ok := sexp.ChildFloat(node, "width"); ok {
		return ToNative(w)
	}
	if strokeNode, found := sexp.FindNode(node, "stroke"); found {
		if w, ok := sexp.ChildFloat(strokeNode, "width"); ok {
			return ToNative(w)
		}
	}
	return 0
}

// parseGraphic extracts a board graphic (gr_*), a footprint graphic (fp_*)
// or a custom pad primitive. Coordinates are kept as written.
func parseGraphic(node kicadsexp.Sexp) (*Graphic, error) {
	if node.IsLeaf() {
		return nil, fmt.Errorf("expected graphic list, got leaf")
	}

	name, err := sexp.NodeName(node)
	if err != nil {
		return nil, err
	}
	kind := strings.TrimPrefix(strings.TrimPrefix(name, "gr_"), "fp_")

	g := &Graphic{Width: parseWidth(node)}
	g.Layer, _ = sexp.ChildString(node, "layer")

	switch kind {
	case "line":
		g.Kind = GraphicLine
		if g.Start, err = parseChildPoint(node, "start"); err != nil {
			return nil, err
		}
		if g.End, err = parseChildPoint(node, "end"); err != nil {
			return nil, err
		}

	case "rect":
		g.Kind = GraphicRect
		if g.Start, err = parseChildPoint(node, "start"); err != nil {
			return nil, err
		}
		if g.End, err = parseChildPoint(node, "end"); err != nil {
			return nil, err
		}

	case "circle":
		g.Kind = GraphicCircle
		if g.Start, err = parseChildPoint(node, "center"); err != nil {
			return nil, err
		}
		if g.End, err = parseChildPoint(node, "end"); err != nil {
			return nil, err
		}

	case "arc":
		g.Kind = GraphicArc
		if err := parseArc(node, g); err != nil {
			return nil, err
		}

	case "poly":
		g.Kind = GraphicPoly
		if g.Points, err = parsePoints(node); err != nil {
			return nil, err
		}

	case "curve":
		g.Kind = GraphicCurve
		if g.Points, err = parsePoints(node); err != nil {
			return nil, err
		}

	case "text":
		g.Kind = GraphicText
		text, err := parseText(node)
		if err != nil {
			return nil, err
		}
		g.Layer = text.Layer
		g.Text = text

	case "dimension":
		// Only the layer matters, dimensions are reported and skipped
		g.Kind = GraphicDimension

	default:
		return nil, fmt.Errorf("unsupported graphic '%s'", name)
	}

	return g, nil
}

// parseArc fills in an arc in centre/start-point/sweep form.
//
// KiCad 5 and older: (start cx cy) (end sx sy) (angle sweep).
// KiCad 6 and newer: (start x y) (mid x y) (end x y) through three points.
func parseArc(node kicadsexp.Sexp, g *Graphic) error {
	if _, hasMid := sexp.FindNode(node, "mid"); !hasMid {
		var err error
		if g.Start, err = parseChildPoint(node, "start"); err != nil {
			return err
		}
		if g.End, err = parseChildPoint(node, "end"); err != nil {
			return err
		}
		sweep, ok := sexp.ChildFloat(node, "angle")
		if !ok {
			return fmt.Errorf("missing required 'angle' field")
		}
		g.Angle = ToDecidegrees(sweep)
		return nil
	}

	start, err := parseChildPoint(node, "start")
	if err != nil {
		return err
	}
	mid, err := parseChildPoint(node, "mid")
	if err != nil {
		return err
	}
	end, err := parseChildPoint(node, "end")
	if err != nil {
		return err
	}

	center, sweep, err := ArcFromThreePoints(start, mid, end)
	if err != nil {
		return err
	}
	g.Start = center
	g.End = start
	g.Angle = sweep
	return nil
}

// ArcFromThreePoints returns the centre and the sweep (decidegrees) of the
// arc that runs from start through mid to end. Angles are measured in the
// y-down board system, so a positive sweep runs clockwise on screen.
func ArcFromThreePoints(start, mid, end Point) (Point, float64, error) {
	ax, ay := float64(start.X), float64(start.Y)
	bx, by := float64(mid.X), float64(mid.Y)
	cx, cy := float64(end.X), float64(end.Y)

	d := 2 * (ax*(by-cy) + bx*(cy-ay) + cx*(ay-by))
	if d == 0 {
		return Point{}, 0, fmt.Errorf("arc points are collinear")
	}

	a2 := ax*ax + ay*ay
	b2 := bx*bx + by*by
	c2 := cx*cx + cy*cy
	ux := (a2*(by-cy) + b2*(cy-ay) + c2*(ay-by)) / d
	uy := (a2*(cx-bx) + b2*(ax-cx) + c2*(bx-ax)) / d

	angleOf := func(x, y float64) float64 {
		return math.Atan2(y-uy, x-ux) * 180 / math.Pi
	}
	aS := angleOf(ax, ay)
	aM := angleOf(bx, by)
	aE := angleOf(cx, cy)

	ccw := positiveMod(aE-aS, 360)
	m := positiveMod(aM-aS, 360)
	sweep := ccw
	if m > ccw {
		sweep = ccw - 360
	}

	center := Point{X: int64(math.Round(ux)), Y: int64(math.Round(uy))}
	return center, ToDecidegrees(sweep), nil
}

func positiveMod(a, m float64) float64 {
	r := math.Mod(a, m)
	if r < 0 {
		r += m
	}
	return r
}

// parseText extracts a text from gr_text, fp_text or a positioned
// footprint property.
//
// Formats:
//
//	(gr_text "text" (at x y [angle]) (layer F.SilkS) (effects ...))
//	(fp_text reference "R1" (at x y [angle] [unlocked]) (layer F.SilkS) [hide] (effects ...))
//	(property "Reference" "R1" (at x y [angle]) (layer "F.SilkS") (effects ...))
func parseText(node kicadsexp.Sexp) (*Text, error) {
	name, err := sexp.NodeName(node)
	if err != nil {
		return nil, err
	}

	text := &Text{}
	content := 1 // index of the text itself; options follow it
	switch name {
	case "gr_text":
		text.Text, err = sexp.GetString(node, content)
	case "fp_text":
		content = 2
		text.Kind, err = sexp.GetString(node, 1)
		if err == nil {
			text.Text, err = sexp.GetString(node, content)
		}
	case "property":
		content = 2
		var key string
		key, err = sexp.GetString(node, 1)
		text.Kind = strings.ToLower(key)
		if err == nil {
			text.Text, err = sexp.GetString(node, content)
		}
	default:
		return nil, fmt.Errorf("unsupported text '%s'", name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse text content: %w", err)
	}

	text.Position, text.Angle, err = parseAt(node)
	if err != nil {
		return nil, err
	}
	text.Layer, _ = sexp.ChildString(node, "layer")

	effects := sexp.Effects{Justify: sexp.Justify{Horizontal: "center", Vertical: "center"}}
	if effectsNode, found := sexp.FindNode(node, "effects"); found {
		effects = sexp.GetEffects(effectsNode)
	}
	text.Height = ToNative(effects.Font.Height)
	text.Width = ToNative(effects.Font.Width)
	text.Thickness = ToNative(effects.Font.Thickness)
	text.Justify = effects.Justify.HorizontalCode()
	text.Hidden = effects.Hide || sexp.FlagAfter(node, "hide", content)

	// Older files append unlocked to the position, newer ones use a node
	unlocked := sexp.FlagAfter(node, "unlocked", content)
	if atNode, found := sexp.FindNode(node, "at"); found && sexp.HasSymbol(atNode, "unlocked") {
		unlocked = true
	}
	text.KeepUpright = !unlocked

	return text, nil
}
