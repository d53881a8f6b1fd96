package pcb

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/OpenTraceLab/ibom/pkg/kicad/sexp"
	"github.com/OpenTraceLab/ibom/pkg/kicad/sexp/kicadsexp"
)

// defaultRoundRectRatio is used when a roundrect pad has no explicit ratio
const defaultRoundRectRatio = 0.25

// parseFootprint extracts a footprint (component) definition
// Expected format: (footprint "library:name" (layer "layer") (at x y [angle]) ...)
// KiCad 5 and older write (module library:name ...) with the same children.
func (p *Parser) parseFootprint(node kicadsexp.Sexp) (*Footprint, error) {
	if node.IsLeaf() {
		return nil, fmt.Errorf("expected footprint list, got leaf")
	}

	footprint := &Footprint{Properties: make(map[string]string)}

	fpName, err := sexp.GetString(node, 1)
	if err != nil {
		return nil, fmt.Errorf("failed to parse footprint name: %w", err)
	}

	// Split library:name format
	// Example: "Resistor_SMD:R_0603_1608Metric"
	if lib, name, found := strings.Cut(fpName, ":"); found && lib != "" {
		footprint.Library = lib
		footprint.Name = name
	} else {
		footprint.Name = fpName
	}

	layer, ok := sexp.ChildString(node, "layer")
	if !ok {
		return nil, fmt.Errorf("missing required 'layer' field")
	}
	footprint.Layer = layer

	footprint.Position, footprint.Angle, err = parseAt(node)
	if err != nil {
		return nil, err
	}

	if attrNode, found := sexp.FindNode(node, "attr"); found {
		for _, item := range sexp.ListItems(attrNode) {
			if item.IsLeaf() {
				footprint.Attributes = append(footprint.Attributes, item.String())
			}
		}
	}

	for _, item := range sexp.ListItems(node) {
		if item.IsLeaf() {
			continue
		}
		name, err := sexp.NodeName(item)
		if err != nil {
			continue
		}

		switch name {
		case "property":
			p.parseProperty(item, footprint)

		case "fp_text":
			text, err := parseText(item)
			if err != nil {
				p.logger.Warn("skipping footprint text", "footprint", fpName, "err", err)
				continue
			}
			switch text.Kind {
			case "reference":
				footprint.Reference = text.Text
				footprint.ReferenceText = text
			case "value":
				footprint.Value = text.Text
				footprint.ValueText = text
			default:
				footprint.Graphics = append(footprint.Graphics, Graphic{
					Kind:  GraphicText,
					Layer: text.Layer,
					Text:  text,
				})
			}

		case "fp_line", "fp_rect", "fp_circle", "fp_arc", "fp_poly", "fp_curve":
			g, err := parseGraphic(item)
			if err != nil {
				p.logger.Warn("skipping footprint graphic", "footprint", fpName, "kind", name, "err", err)
				continue
			}
			footprint.Graphics = append(footprint.Graphics, *g)

		case "pad":
			pad, err := parsePad(item)
			if err != nil {
				p.logger.Warn("skipping pad", "footprint", fpName, "err", err)
				continue
			}
			footprint.Pads = append(footprint.Pads, *pad)
		}
	}

	return footprint, nil
}

// parseProperty records a footprint property. KiCad 8 stores the reference
// and value as positioned properties instead of fp_text.
// Expected format: (property "Reference" "R1" [(at x y) (layer "F.SilkS") (effects ...)])
func (p *Parser) parseProperty(node kicadsexp.Sexp, footprint *Footprint) {
	key, err := sexp.GetString(node, 1)
	if err != nil {
		return
	}
	value, err := sexp.GetString(node, 2)
	if err != nil {
		return
	}
	footprint.Properties[key] = value

	var text *Text
	if _, positioned := sexp.FindNode(node, "at"); positioned {
		text, err = parseText(node)
		if err != nil {
			p.logger.Warn("skipping property text", "property", key, "err", err)
			text = nil
		}
	}

	switch key {
	case "Reference":
		footprint.Reference = value
		if text != nil {
			footprint.ReferenceText = text
		}
	case "Value":
		footprint.Value = value
		if text != nil {
			footprint.ValueText = text
		}
	}
}

// parsePad extracts a pad definition from a footprint
// Expected format: (pad "number" type shape (at x y [angle]) (size w h) (layers ...) ...)
func parsePad(node kicadsexp.Sexp) (*Pad, error) {
	if node.IsLeaf() {
		return nil, fmt.Errorf("expected pad list, got leaf")
	}

	pad := &Pad{}
	var err error

	// Pad number/name; mechanical pads may have an empty name
	if pad.Number, err = sexp.GetString(node, 1); err != nil {
		return nil, fmt.Errorf("failed to parse pad number: %w", err)
	}

	// Pad type: thru_hole, smd, connect, np_thru_hole
	if pad.Type, err = sexp.GetString(node, 2); err != nil {
		return nil, fmt.Errorf("failed to parse pad type: %w", err)
	}

	// Pad shape: circle, rect, oval, roundrect, trapezoid, custom
	if pad.Shape, err = sexp.GetString(node, 3); err != nil {
		return nil, fmt.Errorf("failed to parse pad shape: %w", err)
	}

	pad.Position, pad.Angle, err = parseAt(node)
	if err != nil {
		return nil, err
	}

	sizeNode, found := sexp.FindNode(node, "size")
	if !found {
		return nil, fmt.Errorf("missing required 'size' field")
	}
	w, h, err := sexp.GetXY(sizeNode)
	if err != nil {
		return nil, fmt.Errorf("failed to parse pad size: %w", err)
	}
	pad.Size = Size{W: ToNative(w), H: ToNative(h)}

	if drillNode, found := sexp.FindNode(node, "drill"); found {
		drill, err := parseDrill(drillNode)
		if err != nil {
			return nil, err
		}
		pad.Drill = drill
	}

	layersNode, found := sexp.FindNode(node, "layers")
	if !found {
		return nil, fmt.Errorf("missing required 'layers' field")
	}
	for _, item := range sexp.ListItems(layersNode) {
		if item.IsLeaf() && item.String() != "" {
			pad.Layers = append(pad.Layers, item.String())
		}
	}

	if pad.Shape == "roundrect" {
		pad.RoundRectRatio = defaultRoundRectRatio
		if ratio, ok := sexp.ChildFloat(node, "roundrect_rratio"); ok {
			pad.RoundRectRatio = ratio
		}
		_, pad.Chamfered = sexp.FindNode(node, "chamfer")
	}

	if pad.Shape == "custom" {
		pad.Anchor = "circle"
		if optionsNode, found := sexp.FindNode(node, "options"); found {
			if anchor, ok := sexp.ChildString(optionsNode, "anchor"); ok {
				pad.Anchor = anchor
			}
		}
		if primNode, found := sexp.FindNode(node, "primitives"); found {
			for _, item := range sexp.ListItems(primNode) {
				if item.IsLeaf() {
					continue
				}
				prim, err := parseGraphic(item)
				if err != nil {
					return nil, fmt.Errorf("failed to parse custom pad primitive: %w", err)
				}
				pad.Primitives = append(pad.Primitives, *prim)
			}
		}
	}

	return pad, nil
}

// parseDrill extracts the hole of a pad
// Formats: (drill 1.0), (drill oval 1.2 0.8), (drill 1.0 (offset 0.2 0))
func parseDrill(node kicadsexp.Sexp) (Drill, error) {
	var drill Drill
	var dims []float64

	for _, item := range sexp.ListItems(node) {
		if !item.IsLeaf() {
			continue
		}
		if item.String() == "oval" {
			drill.Oval = true
			continue
		}
		v, err := strconv.ParseFloat(item.String(), 64)
		if err != nil {
			return Drill{}, fmt.Errorf("failed to parse drill size %q: %w", item.String(), err)
		}
		dims = append(dims, v)
	}

	switch len(dims) {
	case 0:
		// (drill (offset ...)) only, as written for SMD pads with an offset
	case 1:
		drill.Size = Size{W: ToNative(dims[0]), H: ToNative(dims[0])}
	default:
		drill.Size = Size{W: ToNative(dims[0]), H: ToNative(dims[1])}
	}

	if offsetNode, found := sexp.FindNode(node, "offset"); found {
		offset, err := parsePoint(offsetNode)
		if err != nil {
			return Drill{}, fmt.Errorf("failed to parse drill offset: %w", err)
		}
		drill.Offset = offset
	}

	return drill, nil
}
