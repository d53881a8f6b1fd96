package pcb

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/OpenTraceLab/ibom/pkg/kicad/sexp"
	"github.com/OpenTraceLab/ibom/pkg/kicad/sexp/kicadsexp"
)

// Supported file format versions. KiCad 4 writes a plain (version 4),
// later releases write a date code.
const (
	MinSupportedVersion = 4
	KiCad5Version       = 20171130 // first date-coded format (KiCad 5.0)
	KiCad6Version       = 20211014 // KiCad 6.0
)

// Parser handles parsing of KiCad board files. Elements that cannot be
// parsed are skipped and reported through the parser's logger.
type Parser struct {
	logger *log.Logger
}

// NewParser creates a new KiCad board parser. A nil logger discards
// diagnostics.
func NewParser(logger *log.Logger) *Parser {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Parser{logger: logger}
}

// ParseFile reads and parses a KiCad board file
func ParseFile(filename string) (*Board, error) {
	return NewParser(nil).ParseFile(filename)
}

// Parse reads and parses a KiCad board from an io.Reader
func Parse(r io.Reader) (*Board, error) {
	return NewParser(nil).Parse(r)
}

// ParseFile reads and parses a KiCad board file
func (p *Parser) ParseFile(filename string) (*Board, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return p.Parse(file)
}

// Parse reads and parses a KiCad board from an io.Reader
func (p *Parser) Parse(r io.Reader) (*Board, error) {
	sexps, err := kicadsexp.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse s-expression: %w", err)
	}

	if len(sexps) == 0 {
		return nil, fmt.Errorf("empty file or no valid s-expressions found")
	}

	// The root should be a (kicad_pcb ...) expression
	root := sexps[0]

	rootName, err := sexp.NodeName(root)
	if err != nil {
		return nil, fmt.Errorf("failed to get root node name: %w", err)
	}

	if rootName != "kicad_pcb" {
		return nil, fmt.Errorf("not a KiCad PCB file: expected 'kicad_pcb', got '%s'", rootName)
	}

	version, generator, err := parseHeader(root)
	if err != nil {
		return nil, fmt.Errorf("failed to parse header: %w", err)
	}

	board := &Board{
		Version:   version,
		Generator: generator,
	}

	if tbNode, found := sexp.FindNode(root, "title_block"); found {
		board.TitleBlock = parseTitleBlock(tbNode)
	}

	if layersNode, found := sexp.FindNode(root, "layers"); found {
		layers, err := parseLayers(layersNode)
		if err != nil {
			return nil, fmt.Errorf("failed to parse layers section: %w", err)
		}
		board.Layers = layers
	}

	// Board items and footprints are kept in file order
	for _, item := range sexp.ListItems(root) {
		name, err := sexp.NodeName(item)
		if err != nil || item.IsLeaf() {
			continue
		}

		switch name {
		case "module", "footprint":
			fp, err := p.parseFootprint(item)
			if err != nil {
				p.logger.Warn("skipping footprint", "index", len(board.Footprints), "err", err)
				continue
			}
			board.Footprints = append(board.Footprints, *fp)

		case "gr_line", "gr_rect", "gr_arc", "gr_circle", "gr_poly", "gr_curve", "gr_text", "dimension":
			g, err := parseGraphic(item)
			if err != nil {
				p.logger.Warn("skipping board graphic", "kind", name, "err", err)
				continue
			}
			board.Graphics = append(board.Graphics, *g)
		}
	}

	p.logger.Debug("parsed board",
		"version", board.Version,
		"footprints", len(board.Footprints),
		"graphics", len(board.Graphics))

	return board, nil
}

// parseHeader extracts version and generator information from the root node
// Expected format: (kicad_pcb (version 20221018) (generator pcbnew) ...)
func parseHeader(root kicadsexp.Sexp) (version int, generator string, err error) {
	versionNode, found := sexp.FindNode(root, "version")
	if !found {
		return 0, "", fmt.Errorf("missing required 'version' field")
	}

	ver, err := sexp.GetInt(versionNode, 1)
	if err != nil {
		return 0, "", fmt.Errorf("failed to parse version: %w", err)
	}

	if ver < MinSupportedVersion {
		return 0, "", fmt.Errorf("unsupported KiCad version: %d (minimum required: %d / KiCad 4)", ver, MinSupportedVersion)
	}

	// Find generator/host node (optional in some files)
	gen := "unknown"
	if hostNode, found := sexp.FindNode(root, "host"); found {
		// Format: (host pcbnew "(6.0.0)")
		if toolName, err := sexp.GetString(hostNode, 1); err == nil {
			gen = toolName
		}
	} else if genNode, found := sexp.FindNode(root, "generator"); found {
		if generatorName, err := sexp.GetString(genNode, 1); err == nil {
			gen = generatorName
		}
	}

	return ver, gen, nil
}

// parseTitleBlock extracts the title block
// Expected format: (title_block (title "Board") (date "2020-01-01") (rev "A") (company "X") (comment 1 "..."))
func parseTitleBlock(node kicadsexp.Sexp) TitleBlock {
	var tb TitleBlock

	tb.Title, _ = sexp.ChildString(node, "title")
	tb.Date, _ = sexp.ChildString(node, "date")
	tb.Revision, _ = sexp.ChildString(node, "rev")
	tb.Company, _ = sexp.ChildString(node, "company")

	for _, c := range sexp.FindAllNodes(node, "comment") {
		n, err := sexp.GetInt(c, 1)
		if err != nil || n < 1 {
			continue
		}
		text, err := sexp.GetString(c, 2)
		if err != nil {
			continue
		}
		for len(tb.Comments) < n {
			tb.Comments = append(tb.Comments, "")
		}
		tb.Comments[n-1] = text
	}

	return tb
}

// parseLayers extracts layer definitions
// Expected format: (layers (0 "F.Cu" signal) (31 "B.Cu" signal) ...)
func parseLayers(node kicadsexp.Sexp) ([]Layer, error) {
	if node.IsLeaf() {
		return nil, fmt.Errorf("expected (layers ...) list")
	}

	var layers []Layer
	for _, layerNode := range sexp.ListItems(node) {
		if layerNode.IsLeaf() {
			continue
		}

		number, err := sexp.GetInt(layerNode, 0)
		if err != nil {
			return nil, fmt.Errorf("failed to parse layer number: %w", err)
		}

		name, err := sexp.GetString(layerNode, 1)
		if err != nil {
			return nil, fmt.Errorf("failed to parse layer name: %w", err)
		}

		layers = append(layers, Layer{
			Number: number,
			Name:   name,
		})
	}

	return layers, nil
}
