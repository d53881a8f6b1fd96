// Package kicad adapts parsed KiCad board files to the board interface.
//
// Each supported board-model API generation has its own adapter. The
// adapter decides which optional accessors the resulting board exposes, so
// consumers see a KiCad 4 file the way the KiCad 4 API presented it.
package kicad

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/OpenTraceLab/ibom/pkg/ibom/board"
	"github.com/OpenTraceLab/ibom/pkg/kicad/pcb"
)

// legacyVersionLimit separates the plain-numbered KiCad 4 format from the
// date-coded formats of KiCad 5 and later.
const legacyVersionLimit = 20170000

// API describes one board-model API generation.
type API struct {
	Name string
	Caps board.Capabilities
}

var (
	// Legacy is the KiCad 4 API.
	Legacy = API{
		Name: "legacy",
		Caps: board.Capabilities{PadOffset: true},
	}

	// Modern is the KiCad 5 and later API.
	Modern = API{
		Name: "modern",
		Caps: board.Capabilities{
			PolygonOutlines: true,
			RoundRectPads:   true,
			CustomPads:      true,
			PadOffset:       true,
			ShownText:       true,
			TextAngle:       true,
			TextSize:        true,
		},
	}
)

// APIFor returns the adapter for a board file format version.
func APIFor(version int) (API, error) {
	switch {
	case version < pcb.MinSupportedVersion:
		return API{}, fmt.Errorf("unsupported board file version %d", version)
	case version < legacyVersionLimit:
		return Legacy, nil
	default:
		return Modern, nil
	}
}

// Open parses a board file and adapts it. The file's modification time is
// recorded for the date fallback.
func Open(path string, logger *log.Logger) (board.Board, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat board file: %w", err)
	}

	parsed, err := pcb.NewParser(logger).ParseFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to parse board file %s: %w", filepath.Base(path), err)
	}

	return NewBoard(parsed, path, info.ModTime())
}

// NewBoard adapts a parsed board using the API generation that matches its
// file version.
func NewBoard(b *pcb.Board, path string, modTime time.Time) (board.Board, error) {
	api, err := APIFor(b.Version)
	if err != nil {
		return nil, err
	}
	return api.Adapt(b, path, modTime), nil
}

// Adapt converts a parsed board into a board snapshot as seen through this
// API generation.
func (api API) Adapt(b *pcb.Board, path string, modTime time.Time) *board.Snapshot {
	c := &converter{
		caps: api.Caps,
		vars: titleBlockVars(b.TitleBlock),
	}

	snap := &board.Snapshot{
		Path:     path,
		Modified: modTime,
		Title: board.TitleBlock{
			Title:    b.TitleBlock.Title,
			Date:     b.TitleBlock.Date,
			Revision: b.TitleBlock.Revision,
			Company:  b.TitleBlock.Company,
			Comments: b.TitleBlock.Comments,
		},
		Caps: api.Caps,
	}

	for i := range b.Graphics {
		snap.Items = append(snap.Items, c.drawings(&b.Graphics[i], nil, nil)...)
	}
	for i := range b.Footprints {
		snap.Modules = append(snap.Modules, c.footprint(&b.Footprints[i]))
	}

	return snap
}
