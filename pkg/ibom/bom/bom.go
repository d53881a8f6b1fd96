// Package bom groups footprints into bill-of-materials rows and orders them
// the way the interactive BOM table lists them by default.
package bom

import (
	"slices"
	"strings"

	"github.com/OpenTraceLab/ibom/pkg/ibom/board"
	"github.com/OpenTraceLab/ibom/pkg/ibom/pcbdata"
)

// prefixRank orders rows by the letter prefix of their first reference.
// Unlisted prefixes rank defaultRank.
var prefixRank = map[string]int{
	"C":   1,
	"R":   2,
	"L":   3,
	"D":   4,
	"Q":   5,
	"U":   6,
	"Y":   7,
	"X":   8,
	"F":   9,
	"SW":  10,
	"A":   11,
	"HS":  1996,
	"CNN": 1997,
	"J":   1998,
	"P":   1999,
	"NT":  2000,
	"MH":  2001,
}

const defaultRank = 1000

// Filter restricts aggregation to footprints on one board layer.
type Filter struct {
	layer    board.Layer
	restrict bool
}

// All includes every footprint.
var All = Filter{}

// OnLayer includes only footprints placed on layer l.
func OnLayer(l board.Layer) Filter {
	return Filter{layer: l, restrict: true}
}

func (f Filter) match(fp *board.Footprint) bool {
	return !f.restrict || fp.Layer == f.layer
}

// NormalizeFunc canonicalizes a display value for grouping.
type NormalizeFunc func(value string) string

type groupKey struct {
	value     string
	footprint string
	attribute string
}

type group struct {
	value string // first display value seen
	refs  []string
}

// Build groups the footprints accepted by filter into BOM rows keyed by
// (normalized value, footprint name, attribute) and returns them in table
// order. Virtual footprints never produce a row.
func Build(footprints []*board.Footprint, filter Filter, normalize NormalizeFunc) []pcbdata.BOMRow {
	groups := make(map[groupKey]*group)
	var order []groupKey

	for _, fp := range footprints {
		if !filter.match(fp) {
			continue
		}
		key := groupKey{
			value:     normalize(fp.Value),
			footprint: fp.FPID.Name,
			attribute: fp.Attribute.Label(),
		}
		g, ok := groups[key]
		if !ok {
			g = &group{value: fp.Value}
			groups[key] = g
			order = append(order, key)
		}
		g.refs = append(g.refs, fp.Reference)
	}

	rows := make([]pcbdata.BOMRow, 0, len(order))
	for _, key := range order {
		if key.attribute == board.AttrVirtual.Label() {
			continue
		}
		g := groups[key]
		rows = append(rows, pcbdata.BOMRow{
			Quantity:   len(g.refs),
			Value:      g.value,
			Footprint:  key.footprint,
			References: NaturalSort(g.refs),
		})
	}

	SortRows(rows)
	return rows
}

// SortRows orders rows by reference prefix rank, footprint name, descending
// quantity and finally the natural key of the first reference.
func SortRows(rows []pcbdata.BOMRow) {
	type entry struct {
		row  pcbdata.BOMRow
		rank int
		ref  NaturalKey
	}
	entries := make([]entry, len(rows))
	for i, r := range rows {
		first := ""
		if len(r.References) > 0 {
			first = r.References[0]
		}
		entries[i] = entry{row: r, rank: Rank(first), ref: NewNaturalKey(first)}
	}

	slices.SortStableFunc(entries, func(a, b entry) int {
		if a.rank != b.rank {
			return a.rank - b.rank
		}
		if c := strings.Compare(a.row.Footprint, b.row.Footprint); c != 0 {
			return c
		}
		if a.row.Quantity != b.row.Quantity {
			return b.row.Quantity - a.row.Quantity
		}
		return a.ref.Compare(b.ref)
	})

	for i, e := range entries {
		rows[i] = e.row
	}
}

// Rank returns the category rank of a reference designator, taken from
// its leading run of uppercase ASCII letters.
func Rank(ref string) int {
	end := 0
	for end < len(ref) && ref[end] >= 'A' && ref[end] <= 'Z' {
		end++
	}
	if rank, ok := prefixRank[ref[:end]]; ok {
		return rank
	}
	return defaultRank
}
