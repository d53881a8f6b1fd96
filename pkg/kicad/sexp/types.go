// Package sexp provides shared S-expression navigation for KiCad files:
// node lookup, typed value extraction and the text effect blocks that
// footprints and board graphics have in common.
package sexp

// KiCad s-expression files store lengths in millimetres and angles in
// degrees. The board model works in nanometres and decidegrees.
const (
	MMToNanometers       = 1e6
	NanometersToMM       = 1e-6
	DegreesToDecidegrees = 10.0
	DecidegreesToDegrees = 0.1
)

// Effects represents text effects (font, justification, visibility)
type Effects struct {
	Font    Font
	Justify Justify
	Hide    bool
}

// Font represents font properties. Sizes are in millimetres.
type Font struct {
	Width     float64
	Height    float64
	Thickness float64
	Bold      bool
	Italic    bool
}

// Justify represents text justification
type Justify struct {
	Horizontal string // left, center, right
	Vertical   string // top, center, bottom
	Mirror     bool
}

// HorizontalCode maps the horizontal justification to KiCad's numeric
// convention: -1 left, 0 center, 1 right.
func (j Justify) HorizontalCode() int {
	switch j.Horizontal {
	case "left":
		return -1
	case "right":
		return 1
	}
	return 0
}
