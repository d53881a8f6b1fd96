package pcb

import (
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/OpenTraceLab/ibom/pkg/kicad/sexp/kicadsexp"
)

func mustParseSexp(t *testing.T, input string) kicadsexp.Sexp {
	t.Helper()
	sexps, err := kicadsexp.ParseString(input)
	if err != nil {
		t.Fatalf("Failed to parse s-expression: %v", err)
	}
	if len(sexps) == 0 {
		t.Fatalf("no s-expression in %q", input)
	}
	return sexps[0]
}

// Test parseHeader function
func TestParseHeader(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantVersion int
		wantGen     string
		wantErr     bool
	}{
		{
			name:        "valid KiCad 6.0 with generator",
			input:       "(kicad_pcb (version 20211014) (generator pcbnew))",
			wantVersion: 20211014,
			wantGen:     "pcbnew",
		},
		{
			name:        "KiCad 5 with host",
			input:       "(kicad_pcb (version 20171130) (host pcbnew \"5.1.9\"))",
			wantVersion: 20171130,
			wantGen:     "pcbnew",
		},
		{
			name:        "KiCad 4",
			input:       "(kicad_pcb (version 4) (host pcbnew 4.0.7))",
			wantVersion: 4,
			wantGen:     "pcbnew",
		},
		{
			name:    "missing version",
			input:   "(kicad_pcb (generator pcbnew))",
			wantErr: true,
		},
		{
			name:    "too old",
			input:   "(kicad_pcb (version 3))",
			wantErr: true,
		},
		{
			name:    "non numeric version",
			input:   "(kicad_pcb (version latest))",
			wantErr: true,
		},
		{
			name:        "no generator (should default to unknown)",
			input:       "(kicad_pcb (version 20211014))",
			wantVersion: 20211014,
			wantGen:     "unknown",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			version, gen, err := parseHeader(mustParseSexp(t, tt.input))

			if tt.wantErr {
				if err == nil {
					t.Errorf("parseHeader() expected error, got nil")
				}
				return
			}

			if err != nil {
				t.Errorf("parseHeader() unexpected error: %v", err)
				return
			}

			if version != tt.wantVersion {
				t.Errorf("parseHeader() version = %d, want %d", version, tt.wantVersion)
			}

			if gen != tt.wantGen {
				t.Errorf("parseHeader() generator = %q, want %q", gen, tt.wantGen)
			}
		})
	}
}

func TestParseTitleBlock(t *testing.T) {
	input := `(title_block
		(title "Example Board")
		(date "2024-01-15")
		(rev "1.0")
		(company "Acme Corp")
		(comment 1 "first")
		(comment 3 "third")
	)`

	got := parseTitleBlock(mustParseSexp(t, input))
	want := TitleBlock{
		Title:    "Example Board",
		Date:     "2024-01-15",
		Revision: "1.0",
		Company:  "Acme Corp",
		Comments: []string{"first", "", "third"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("parseTitleBlock() mismatch (-want +got):\n%s", diff)
	}
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"wrong root", "(kicad_sch (version 20211014))"},
		{"unbalanced", "(kicad_pcb (version 20211014)"},
		{"missing version", "(kicad_pcb (general (thickness 1.6)))"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse(strings.NewReader(tt.input)); err == nil {
				t.Errorf("Parse() expected error, got nil")
			}
		})
	}
}

func TestParseLayers(t *testing.T) {
	input := `(layers
		(0 F.Cu signal)
		(31 "B.Cu" signal)
		(44 Edge.Cuts user)
		(37 F.SilkS)
	)`

	got, err := parseLayers(mustParseSexp(t, input))
	if err != nil {
		t.Fatalf("parseLayers() unexpected error: %v", err)
	}
	want := []Layer{
		{Number: 0, Name: "F.Cu"},
		{Number: 31, Name: "B.Cu"},
		{Number: 44, Name: "Edge.Cuts"},
		{Number: 37, Name: "F.SilkS"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("parseLayers() mismatch (-want +got):\n%s", diff)
	}
}

func TestParseGraphic(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Graphic
		wantErr bool
	}{
		{
			name:  "KiCad 5 line with width",
			input: `(gr_line (start 0 0) (end 10 0) (layer Edge.Cuts) (width 0.15))`,
			want: Graphic{
				Kind:  GraphicLine,
				Layer: "Edge.Cuts",
				Start: Point{0, 0},
				End:   Point{10_000_000, 0},
				Width: 150_000,
			},
		},
		{
			name:  "KiCad 7 line with stroke",
			input: `(fp_line (start -1 -0.5) (end 1 -0.5) (stroke (width 0.12) (type solid)) (layer "F.SilkS"))`,
			want: Graphic{
				Kind:  GraphicLine,
				Layer: "F.SilkS",
				Start: Point{-1_000_000, -500_000},
				End:   Point{1_000_000, -500_000},
				Width: 120_000,
			},
		},
		{
			name:  "circle",
			input: `(gr_circle (center 5 5) (end 7 5) (layer F.SilkS) (width 0.2))`,
			want: Graphic{
				Kind:  GraphicCircle,
				Layer: "F.SilkS",
				Start: Point{5_000_000, 5_000_000},
				End:   Point{7_000_000, 5_000_000},
				Width: 200_000,
			},
		},
		{
			name:  "rect",
			input: `(gr_rect (start 0 0) (end 20 10) (layer "Edge.Cuts") (width 0.1) (fill none))`,
			want: Graphic{
				Kind:  GraphicRect,
				Layer: "Edge.Cuts",
				Start: Point{0, 0},
				End:   Point{20_000_000, 10_000_000},
				Width: 100_000,
			},
		},
		{
			name:  "KiCad 5 arc",
			input: `(fp_arc (start 0 0) (end 1 0) (angle -90) (layer F.SilkS) (width 0.15))`,
			want: Graphic{
				Kind:  GraphicArc,
				Layer: "F.SilkS",
				Start: Point{0, 0},
				End:   Point{1_000_000, 0},
				Angle: -900,
				Width: 150_000,
			},
		},
		{
			name:  "polygon",
			input: `(gr_poly (pts (xy 0 0) (xy 1 0) (xy 1 1)) (layer F.Cu) (width 0))`,
			want: Graphic{
				Kind:   GraphicPoly,
				Layer:  "F.Cu",
				Points: []Point{{0, 0}, {1_000_000, 0}, {1_000_000, 1_000_000}},
			},
		},
		{
			name:  "bezier curve",
			input: `(gr_curve (pts (xy 0 0) (xy 1 0) (xy 1 1) (xy 2 1)) (layer Edge.Cuts) (width 0.1))`,
			want: Graphic{
				Kind:   GraphicCurve,
				Layer:  "Edge.Cuts",
				Points: []Point{{0, 0}, {1_000_000, 0}, {1_000_000, 1_000_000}, {2_000_000, 1_000_000}},
				Width:  100_000,
			},
		},
		{
			name:  "dimension",
			input: `(dimension 10 (width 0.15) (layer Dwgs.User) (gr_text "10 mm" (at 5 -2) (layer Dwgs.User)))`,
			want: Graphic{
				Kind:  GraphicDimension,
				Layer: "Dwgs.User",
				Width: 150_000,
			},
		},
		{
			name:    "line without end",
			input:   `(gr_line (start 0 0) (layer Edge.Cuts))`,
			wantErr: true,
		},
		{
			name:    "legacy arc without angle",
			input:   `(gr_arc (start 0 0) (end 1 0) (layer Edge.Cuts))`,
			wantErr: true,
		},
		{
			name:    "unknown graphic",
			input:   `(gr_spline (start 0 0))`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseGraphic(mustParseSexp(t, tt.input))
			if tt.wantErr {
				if err == nil {
					t.Errorf("parseGraphic() expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("parseGraphic() unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.want, *got); diff != "" {
				t.Errorf("parseGraphic() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseGrText(t *testing.T) {
	input := `(gr_text "REV ${REVISION}" (at 10 20 90) (layer "B.SilkS")
		(effects (font (size 1.5 1.2) (thickness 0.3)) (justify left mirror)))`

	g, err := parseGraphic(mustParseSexp(t, input))
	if err != nil {
		t.Fatalf("parseGraphic() unexpected error: %v", err)
	}
	if g.Kind != GraphicText || g.Layer != "B.SilkS" {
		t.Fatalf("got kind %v layer %q, want text on B.SilkS", g.Kind, g.Layer)
	}

	want := &Text{
		Text:        "REV ${REVISION}",
		Layer:       "B.SilkS",
		Position:    Point{10_000_000, 20_000_000},
		Angle:       900,
		Height:      1_500_000,
		Width:       1_200_000,
		Thickness:   300_000,
		Justify:     -1,
		KeepUpright: true,
	}
	if diff := cmp.Diff(want, g.Text); diff != "" {
		t.Errorf("text mismatch (-want +got):\n%s", diff)
	}
}

func TestParseTextFlags(t *testing.T) {
	tests := []struct {
		name            string
		input           string
		wantText        string
		wantHidden      bool
		wantKeepUpright bool
	}{
		{
			name:            "content named hide",
			input:           `(gr_text hide (at 1 1) (layer F.SilkS) (effects (font (size 1 1))))`,
			wantText:        "hide",
			wantKeepUpright: true,
		},
		{
			name:            "content named hide with hide flag",
			input:           `(gr_text hide (at 1 1) (layer F.SilkS) hide (effects (font (size 1 1))))`,
			wantText:        "hide",
			wantHidden:      true,
			wantKeepUpright: true,
		},
		{
			name:            "footprint value named hide",
			input:           `(fp_text value hide (at 0 1) (layer F.Fab) (effects (font (size 1 1))))`,
			wantText:        "hide",
			wantKeepUpright: true,
		},
		{
			name:            "footprint value named unlocked",
			input:           `(fp_text value unlocked (at 0 1 90) (layer F.Fab) (effects (font (size 1 1))))`,
			wantText:        "unlocked",
			wantKeepUpright: true,
		},
		{
			name:     "legacy unlocked position",
			input:    `(fp_text reference R1 (at 0 -1.4 180 unlocked) (layer F.SilkS) (effects (font (size 1 1))))`,
			wantText: "R1",
		},
		{
			name:     "unlocked node",
			input:    `(fp_text reference "R1" (at 0 -1.4 180) (unlocked yes) (layer "F.SilkS") (effects (font (size 1 1))))`,
			wantText: "R1",
		},
		{
			name:            "unlocked no",
			input:           `(fp_text reference "R1" (at 0 -1.4 180) (unlocked no) (layer "F.SilkS") (effects (font (size 1 1))))`,
			wantText:        "R1",
			wantKeepUpright: true,
		},
		{
			name:            "hidden in effects",
			input:           `(property "Value" "10k" (at 0 1 0) (layer "F.Fab") (effects (font (size 1 1)) (hide yes)))`,
			wantText:        "10k",
			wantHidden:      true,
			wantKeepUpright: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseText(mustParseSexp(t, tt.input))
			if err != nil {
				t.Fatalf("parseText() unexpected error: %v", err)
			}
			type flags struct {
				Text        string
				Hidden      bool
				KeepUpright bool
			}
			want := flags{tt.wantText, tt.wantHidden, tt.wantKeepUpright}
			if diff := cmp.Diff(want, flags{got.Text, got.Hidden, got.KeepUpright}); diff != "" {
				t.Errorf("parseText() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestArcFromThreePoints(t *testing.T) {
	tests := []struct {
		name       string
		start      Point
		mid        Point
		end        Point
		wantCenter Point
		wantSweep  float64
		wantErr    bool
	}{
		{
			name:       "half circle through positive y",
			start:      Point{1_000_000, 0},
			mid:        Point{0, 1_000_000},
			end:        Point{-1_000_000, 0},
			wantCenter: Point{0, 0},
			wantSweep:  1800,
		},
		{
			name:       "half circle through negative y",
			start:      Point{1_000_000, 0},
			mid:        Point{0, -1_000_000},
			end:        Point{-1_000_000, 0},
			wantCenter: Point{0, 0},
			wantSweep:  -1800,
		},
		{
			name:       "quarter circle",
			start:      Point{2_000_000, 1_000_000},
			mid:        Point{1_000_000 + 707_107, 1_000_000 + 707_107},
			end:        Point{1_000_000, 2_000_000},
			wantCenter: Point{1_000_000, 1_000_000},
			wantSweep:  900,
		},
		{
			name:    "collinear",
			start:   Point{0, 0},
			mid:     Point{1, 1},
			end:     Point{2, 2},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			center, sweep, err := ArcFromThreePoints(tt.start, tt.mid, tt.end)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ArcFromThreePoints() expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("ArcFromThreePoints() unexpected error: %v", err)
			}
			if dx, dy := center.X-tt.wantCenter.X, center.Y-tt.wantCenter.Y; dx*dx+dy*dy > 4 {
				t.Errorf("center = %v, want %v", center, tt.wantCenter)
			}
			if math.Abs(sweep-tt.wantSweep) > 0.01 {
				t.Errorf("sweep = %v, want %v", sweep, tt.wantSweep)
			}
		})
	}
}

func TestParseModernArc(t *testing.T) {
	input := `(gr_arc (start 1 0) (mid 0 1) (end -1 0) (stroke (width 0.1) (type default)) (layer "Edge.Cuts"))`

	g, err := parseGraphic(mustParseSexp(t, input))
	if err != nil {
		t.Fatalf("parseGraphic() unexpected error: %v", err)
	}
	if g.Start != (Point{0, 0}) {
		t.Errorf("centre = %v, want origin", g.Start)
	}
	if g.End != (Point{1_000_000, 0}) {
		t.Errorf("start point = %v, want (1mm, 0)", g.End)
	}
	if g.Angle != 1800 {
		t.Errorf("sweep = %v, want 1800", g.Angle)
	}
}

func TestParseDrill(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Drill
		wantErr bool
	}{
		{
			name:  "round",
			input: "(drill 1.0)",
			want:  Drill{Size: Size{1_000_000, 1_000_000}},
		},
		{
			name:  "oval",
			input: "(drill oval 1.2 0.8)",
			want:  Drill{Oval: true, Size: Size{1_200_000, 800_000}},
		},
		{
			name:  "round with offset",
			input: "(drill 0.8 (offset 0.2 -0.1))",
			want:  Drill{Size: Size{800_000, 800_000}, Offset: Point{200_000, -100_000}},
		},
		{
			name:  "offset only",
			input: "(drill (offset 0.5 0))",
			want:  Drill{Offset: Point{500_000, 0}},
		},
		{
			name:    "bad size",
			input:   "(drill big)",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseDrill(mustParseSexp(t, tt.input))
			if tt.wantErr {
				if err == nil {
					t.Errorf("parseDrill() expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("parseDrill() unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("parseDrill() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParsePadUnit(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Pad
		wantErr bool
	}{
		{
			name:  "smd rect",
			input: `(pad 1 smd rect (at -0.75 0) (size 0.8 0.9) (layers F.Cu F.Paste F.Mask))`,
			want: Pad{
				Number:   "1",
				Type:     "smd",
				Shape:    "rect",
				Position: Point{-750_000, 0},
				Size:     Size{800_000, 900_000},
				Layers:   LayerSet{"F.Cu", "F.Paste", "F.Mask"},
			},
		},
		{
			name:  "roundrect with ratio and rotation",
			input: `(pad "2" smd roundrect (at 0.825 0 90) (size 0.8 0.95) (layers "F.Cu" "F.Paste" "F.Mask") (roundrect_rratio 0.2) (net 1 "GND"))`,
			want: Pad{
				Number:         "2",
				Type:           "smd",
				Shape:          "roundrect",
				Position:       Point{825_000, 0},
				Angle:          900,
				Size:           Size{800_000, 950_000},
				Layers:         LayerSet{"F.Cu", "F.Paste", "F.Mask"},
				RoundRectRatio: 0.2,
			},
		},
		{
			name:  "roundrect default ratio",
			input: `(pad 3 smd roundrect (at 0 0) (size 1 1) (layers F.Cu))`,
			want: Pad{
				Number:         "3",
				Type:           "smd",
				Shape:          "roundrect",
				Size:           Size{1_000_000, 1_000_000},
				Layers:         LayerSet{"F.Cu"},
				RoundRectRatio: 0.25,
			},
		},
		{
			name:  "through hole oval drill",
			input: `(pad 1 thru_hole oval (at 0 0) (size 1.7 2) (drill oval 0.8 1.1) (layers *.Cu *.Mask))`,
			want: Pad{
				Number: "1",
				Type:   "thru_hole",
				Shape:  "oval",
				Size:   Size{1_700_000, 2_000_000},
				Drill:  Drill{Oval: true, Size: Size{800_000, 1_100_000}},
				Layers: LayerSet{"*.Cu", "*.Mask"},
			},
		},
		{
			name: "custom pad",
			input: `(pad 1 smd custom (at 0 0) (size 0.5 0.5) (layers F.Cu)
				(options (clearance outline) (anchor rect))
				(primitives
					(gr_poly (pts (xy 0 0) (xy 1 0) (xy 1 1)) (width 0))
					(gr_circle (center 0 0) (end 0.5 0) (width 0))))`,
			want: Pad{
				Number: "1",
				Type:   "smd",
				Shape:  "custom",
				Size:   Size{500_000, 500_000},
				Layers: LayerSet{"F.Cu"},
				Anchor: "rect",
				Primitives: []Graphic{
					{Kind: GraphicPoly, Points: []Point{{0, 0}, {1_000_000, 0}, {1_000_000, 1_000_000}}},
					{Kind: GraphicCircle, End: Point{500_000, 0}},
				},
			},
		},
		{
			name:    "missing size",
			input:   `(pad 1 smd rect (at 0 0) (layers F.Cu))`,
			wantErr: true,
		},
		{
			name:    "missing at",
			input:   `(pad 1 smd rect (size 1 1) (layers F.Cu))`,
			wantErr: true,
		},
		{
			name:    "missing layers",
			input:   `(pad 1 smd rect (at 0 0) (size 1 1))`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parsePad(mustParseSexp(t, tt.input))
			if tt.wantErr {
				if err == nil {
					t.Errorf("parsePad() expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("parsePad() unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.want, *got); diff != "" {
				t.Errorf("parsePad() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

const legacyBoard = `(kicad_pcb (version 4) (host pcbnew 4.0.7)
  (general (thickness 1.6))
  (title_block (title "Legacy") (rev B))
  (layers
    (0 F.Cu signal)
    (31 B.Cu signal)
    (37 F.SilkS user)
    (44 Edge.Cuts user)
  )
  (gr_line (start 0 0) (end 50 0) (layer Edge.Cuts) (width 0.15))
  (module Resistors_SMD:R_0603 (layer F.Cu) (tedit 58E0A804) (tstamp 5A1B2C3D)
    (at 10 20 90)
    (attr smd)
    (fp_text reference R1 (at 0 -1.5 90) (layer F.SilkS)
      (effects (font (size 1 1) (thickness 0.15)))
    )
    (fp_text value 10k (at 0 1.5 90) (layer F.Fab) hide
      (effects (font (size 1 1) (thickness 0.15)))
    )
    (fp_text user %R (at 0 0 90) (layer F.Fab)
      (effects (font (size 0.4 0.4) (thickness 0.075)))
    )
    (fp_line (start -1.25 -0.7) (end 1.25 -0.7) (layer F.CrtYd) (width 0.05))
    (pad 1 smd rect (at -0.75 0 90) (size 0.5 0.9) (layers F.Cu F.Paste F.Mask))
    (pad 2 smd rect (at 0.75 0 90) (size 0.5 0.9) (layers F.Cu F.Paste F.Mask))
  )
  (gr_text "Legacy board" (at 25 -3) (layer F.SilkS)
    (effects (font (size 1.5 1.5) (thickness 0.3)))
  )
)`

func TestParseLegacyBoard(t *testing.T) {
	board, err := Parse(strings.NewReader(legacyBoard))
	if err != nil {
		t.Fatalf("Parse() unexpected error: %v", err)
	}

	if board.Version != 4 {
		t.Errorf("Version = %d, want 4", board.Version)
	}
	if board.TitleBlock.Title != "Legacy" || board.TitleBlock.Revision != "B" {
		t.Errorf("TitleBlock = %+v", board.TitleBlock)
	}
	if len(board.Layers) != 4 {
		t.Errorf("got %d layers, want 4", len(board.Layers))
	}

	// Board graphics keep file order across interleaved footprints
	if len(board.Graphics) != 2 {
		t.Fatalf("got %d board graphics, want 2", len(board.Graphics))
	}
	if board.Graphics[0].Kind != GraphicLine || board.Graphics[1].Kind != GraphicText {
		t.Errorf("graphic kinds = %v, %v; want line, text", board.Graphics[0].Kind, board.Graphics[1].Kind)
	}

	if len(board.Footprints) != 1 {
		t.Fatalf("got %d footprints, want 1", len(board.Footprints))
	}
	fp := board.Footprints[0]

	if fp.Library != "Resistors_SMD" || fp.Name != "R_0603" {
		t.Errorf("FPID = %q:%q", fp.Library, fp.Name)
	}
	if fp.Reference != "R1" || fp.Value != "10k" {
		t.Errorf("Reference/Value = %q/%q, want R1/10k", fp.Reference, fp.Value)
	}
	if fp.Position != (Point{10_000_000, 20_000_000}) || fp.Angle != 900 {
		t.Errorf("placement = %v @ %v", fp.Position, fp.Angle)
	}
	if !fp.HasAttribute("smd") {
		t.Errorf("Attributes = %v, want smd", fp.Attributes)
	}
	if fp.ReferenceText == nil || fp.ReferenceText.Hidden {
		t.Errorf("ReferenceText = %+v, want visible text", fp.ReferenceText)
	}
	if fp.ValueText == nil || !fp.ValueText.Hidden {
		t.Errorf("ValueText = %+v, want hidden text", fp.ValueText)
	}
	if len(fp.Graphics) != 2 {
		t.Fatalf("got %d footprint graphics, want 2 (user text and line)", len(fp.Graphics))
	}
	if fp.Graphics[0].Kind != GraphicText || fp.Graphics[0].Text.Text != "%R" {
		t.Errorf("first graphic = %+v, want user text", fp.Graphics[0])
	}
	if len(fp.Pads) != 2 {
		t.Errorf("got %d pads, want 2", len(fp.Pads))
	}
}

const modernBoard = `(kicad_pcb (version 20221018) (generator pcbnew)
  (layers
    (0 "F.Cu" signal)
    (31 "B.Cu" signal)
  )
  (footprint "Connector:PinHeader_1x02" (layer "B.Cu")
    (at 5 5 180)
    (attr through_hole exclude_from_bom)
    (property "Sheetfile" "main.kicad_sch")
    (fp_text reference "J1" (at 0 -2.33) (layer "B.SilkS")
      (effects (font (size 1 1) (thickness 0.15)) (justify mirror))
    )
    (fp_text value "Conn" (at 0 4.87) (layer "B.Fab")
      (effects (font (size 1 1) (thickness 0.15)) (justify mirror))
    )
    (pad "1" thru_hole rect (at 0 0 180) (size 1.7 1.7) (drill 1) (layers "*.Cu" "*.Mask"))
    (pad "2" thru_hole oval (at 0 2.54 180) (size 1.7 1.7) (drill 1) (layers "*.Cu" "*.Mask"))
    (pad "" np_thru_hole circle (at 2 0) (size 1 1) (drill 1) (layers "F&B.Cu" "*.Mask"))
  )
  (footprint "Resistor_SMD:R_0402" (layer "F.Cu")
    (at 20 10)
    (property "Reference" "R7" (at 0 -1.2 0) (layer "F.SilkS")
      (effects (font (size 0.8 0.8) (thickness 0.12)))
    )
    (property "Value" "4k7" (at 0 1.2 0) (layer "F.Fab") (hide yes)
      (effects (font (size 0.8 0.8) (thickness 0.12)))
    )
    (attr smd)
    (pad "1" smd roundrect (at -0.5 0) (size 0.6 0.5) (layers "F.Cu" "F.Paste" "F.Mask") (roundrect_rratio 0.25))
    (pad "2" smd bogus)
  )
)`

func TestParseModernBoard(t *testing.T) {
	board, err := Parse(strings.NewReader(modernBoard))
	if err != nil {
		t.Fatalf("Parse() unexpected error: %v", err)
	}

	if board.Generator != "pcbnew" {
		t.Errorf("Generator = %q, want pcbnew", board.Generator)
	}
	if len(board.Footprints) != 2 {
		t.Fatalf("got %d footprints, want 2", len(board.Footprints))
	}

	j1 := board.Footprints[0]
	if j1.Reference != "J1" || j1.Value != "Conn" {
		t.Errorf("Reference/Value = %q/%q, want J1/Conn", j1.Reference, j1.Value)
	}
	if diff := cmp.Diff([]string{"through_hole", "exclude_from_bom"}, j1.Attributes); diff != "" {
		t.Errorf("Attributes mismatch (-want +got):\n%s", diff)
	}
	if j1.Properties["Sheetfile"] != "main.kicad_sch" {
		t.Errorf("Properties = %v", j1.Properties)
	}
	if j1.ReferenceText == nil || !j1.ReferenceText.KeepUpright || j1.ReferenceText.Justify != 0 {
		t.Errorf("ReferenceText = %+v, want centered upright text", j1.ReferenceText)
	}
	if len(j1.Pads) != 3 {
		t.Fatalf("got %d pads, want 3", len(j1.Pads))
	}
	if j1.Pads[2].Number != "" || j1.Pads[2].Type != "np_thru_hole" {
		t.Errorf("mechanical pad = %+v", j1.Pads[2])
	}

	r7 := board.Footprints[1]
	if r7.Reference != "R7" || r7.Value != "4k7" {
		t.Errorf("Reference/Value = %q/%q, want R7/4k7", r7.Reference, r7.Value)
	}
	if r7.ReferenceText == nil || r7.ReferenceText.Kind != "reference" {
		t.Errorf("ReferenceText = %+v", r7.ReferenceText)
	}
	if r7.ValueText == nil || !r7.ValueText.Hidden {
		t.Errorf("ValueText = %+v, want hidden", r7.ValueText)
	}
	// The malformed second pad is skipped
	if len(r7.Pads) != 1 {
		t.Errorf("got %d pads, want 1", len(r7.Pads))
	}
}

func TestLayerSetContains(t *testing.T) {
	tests := []struct {
		name  string
		set   LayerSet
		layer string
		want  bool
	}{
		{"exact", LayerSet{"F.Cu", "F.Mask"}, "F.Cu", true},
		{"missing", LayerSet{"F.Cu", "F.Mask"}, "B.Cu", false},
		{"wildcard front", LayerSet{"*.Cu"}, "F.Cu", true},
		{"wildcard back", LayerSet{"*.Cu"}, "B.Cu", true},
		{"wildcard other kind", LayerSet{"*.Mask"}, "B.Cu", false},
		{"front and back", LayerSet{"F&B.Cu"}, "B.Cu", true},
		{"front and back inner", LayerSet{"F&B.Cu"}, "In1.Cu", false},
		{"empty", nil, "F.Cu", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.set.Contains(tt.layer); got != tt.want {
				t.Errorf("Contains(%q) = %v, want %v", tt.layer, got, tt.want)
			}
		})
	}
}

func TestTransform(t *testing.T) {
	tests := []struct {
		name  string
		fp    Footprint
		local Point
		want  Point
	}{
		{
			name:  "translation only",
			fp:    Footprint{Position: Point{10_000_000, 5_000_000}},
			local: Point{1_000_000, 2_000_000},
			want:  Point{11_000_000, 7_000_000},
		},
		{
			name:  "rotated 90",
			fp:    Footprint{Position: Point{10_000_000, 5_000_000}, Angle: 900},
			local: Point{1_000_000, 0},
			want:  Point{10_000_000, 4_000_000},
		},
		{
			name:  "rotated 180",
			fp:    Footprint{Angle: 1800},
			local: Point{1_000_000, 2_000_000},
			want:  Point{-1_000_000, -2_000_000},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fp.Transform(tt.local); got != tt.want {
				t.Errorf("Transform(%v) = %v, want %v", tt.local, got, tt.want)
			}
		})
	}
}
