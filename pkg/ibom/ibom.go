// Package ibom assembles the interactive BOM document of a board.
//
// Generate runs the whole pipeline on a board snapshot: outline, silkscreen
// and footprint extraction, then the three BOM views. It performs no I/O;
// loading the board and writing artifacts is left to the caller.
package ibom

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/OpenTraceLab/ibom/pkg/ibom/board"
	"github.com/OpenTraceLab/ibom/pkg/ibom/bom"
	"github.com/OpenTraceLab/ibom/pkg/ibom/extract"
	"github.com/OpenTraceLab/ibom/pkg/ibom/pcbdata"
	"github.com/OpenTraceLab/ibom/pkg/ibom/units"
)

// DateFormat is the layout of the fallback date taken from the board file
// modification time.
const DateFormat = "2006-01-02 15:04:05"

var (
	// ErrUnsavedBoard is returned for a board that has no file name yet.
	ErrUnsavedBoard = errors.New("board has not been saved")

	// ErrNoOutline is returned when the board has no outline geometry.
	ErrNoOutline = extract.ErrNoOutline
)

// Generate builds the document for b. A nil logger discards diagnostics.
//
// Fatal preconditions are checked before anything is assembled, so on error
// no partial document is returned.
func Generate(b board.Board, logger *log.Logger) (*pcbdata.Document, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	fileName := b.FileName()
	if fileName == "" {
		return nil, ErrUnsavedBoard
	}

	e := extract.New(b.Capabilities(), logger)

	edges, bbox, err := e.Edges(b)
	if err != nil {
		return nil, fmt.Errorf("failed to extract outline of %s: %w", filepath.Base(fileName), err)
	}
	logger.Debug("Extracted board outline", "edges", len(edges))

	footprints := b.Footprints()
	doc := &pcbdata.Document{
		EdgesBBox:  bbox,
		Edges:      edges,
		Silkscreen: e.Silkscreen(b),
		Modules:    e.Footprints(b),
		Metadata:   metadata(b),
		BOM: pcbdata.BOM{
			Both:  bom.Build(footprints, bom.All, units.Normalize),
			Front: bom.Build(footprints, bom.OnLayer(board.FCu), units.Normalize),
			Back:  bom.Build(footprints, bom.OnLayer(board.BCu), units.Normalize),
		},
	}

	logger.Info("Generated BOM",
		"footprints", len(doc.Modules),
		"rows", len(doc.BOM.Both),
		"front", len(doc.BOM.Front),
		"back", len(doc.BOM.Back))

	return doc, nil
}

// metadata fills in the title block, falling back to the file name for the
// title and to the file modification time for the date.
func metadata(b board.Board) pcbdata.Metadata {
	tb := b.TitleBlock()

	title := tb.Title
	if title == "" {
		base := filepath.Base(b.FileName())
		title = strings.TrimSuffix(base, filepath.Ext(base))
	}

	date := tb.Date
	if date == "" {
		date = b.ModTime().Format(DateFormat)
	}

	return pcbdata.Metadata{
		Title:    title,
		Revision: tb.Revision,
		Company:  tb.Company,
		Date:     date,
	}
}
