package sexp

import (
	"fmt"
	"strconv"

	"github.com/OpenTraceLab/ibom/pkg/kicad/sexp/kicadsexp"
)

// S-expression navigation helpers

// Items returns the elements of a list node, including its key.
func Items(s kicadsexp.Sexp) []kicadsexp.Sexp {
	if s == nil || s.IsLeaf() {
		return nil
	}
	if l, ok := s.(*kicadsexp.List); ok {
		return l.Items()
	}

	var items []kicadsexp.Sexp
	for cur := s; cur != nil && !cur.IsLeaf() && cur.LeafCount() > 0; cur = cur.Tail() {
		items = append(items, cur.Head())
	}
	return items
}

// FindNode searches for a child node with the given key (first symbol)
// Example: FindNode(sexp, "at") finds (at 100 50) in a list
func FindNode(s kicadsexp.Sexp, key string) (kicadsexp.Sexp, bool) {
	for _, item := range Items(s) {
		if item == nil || item.IsLeaf() {
			continue
		}
		if name, err := NodeName(item); err == nil && name == key {
			return item, true
		}
	}
	return nil, false
}

// FindAllNodes finds all child nodes with the given key, in file order
func FindAllNodes(s kicadsexp.Sexp, key string) []kicadsexp.Sexp {
	var results []kicadsexp.Sexp
	for _, item := range Items(s) {
		if item == nil || item.IsLeaf() {
			continue
		}
		if name, err := NodeName(item); err == nil && name == key {
			results = append(results, item)
		}
	}
	return results
}

// ListItems returns all items in a list (excluding the first symbol/key)
// Example: ListItems((layers "F.Cu" "B.Cu")) returns ["F.Cu", "B.Cu"]
func ListItems(s kicadsexp.Sexp) []kicadsexp.Sexp {
	items := Items(s)
	if len(items) <= 1 {
		return nil
	}
	return items[1:]
}

// NodeName returns the first symbol of a list (the node type/name)
func NodeName(s kicadsexp.Sexp) (string, error) {
	if s == nil {
		return "", fmt.Errorf("nil node")
	}
	if s.IsLeaf() {
		if sym, ok := s.(kicadsexp.Symbol); ok {
			return string(sym), nil
		}
		return "", fmt.Errorf("expected symbol leaf")
	}

	if sym, ok := s.Head().(kicadsexp.Symbol); ok {
		return string(sym), nil
	}
	return "", fmt.Errorf("expected symbol at head of list")
}

// Typed value extraction helpers

// GetString extracts a string value at the given index in a list
// Index 0 is the key, 1 is first value, etc.
func GetString(s kicadsexp.Sexp, index int) (string, error) {
	if s == nil || s.IsLeaf() {
		return "", fmt.Errorf("expected list, got leaf")
	}

	items := Items(s)
	if index < 0 || index >= len(items) {
		return "", fmt.Errorf("index %d out of bounds (length %d)", index, len(items))
	}

	if sym, ok := items[index].(kicadsexp.Symbol); ok {
		return string(sym), nil
	}
	return "", fmt.Errorf("expected symbol at index %d, got list", index)
}

// GetFloat extracts a float64 value at the given index
func GetFloat(s kicadsexp.Sexp, index int) (float64, error) {
	str, err := GetString(s, index)
	if err != nil {
		return 0, err
	}

	val, err := strconv.ParseFloat(str, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse float %q: %w", str, err)
	}
	return val, nil
}

// GetInt extracts an int value at the given index
func GetInt(s kicadsexp.Sexp, index int) (int, error) {
	str, err := GetString(s, index)
	if err != nil {
		return 0, err
	}

	val, err := strconv.Atoi(str)
	if err != nil {
		return 0, fmt.Errorf("failed to parse int %q: %w", str, err)
	}
	return val, nil
}

// GetXY extracts the two coordinates of a (keyword X Y ...) node
func GetXY(s kicadsexp.Sexp) (x, y float64, err error) {
	x, err = GetFloat(s, 1)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to parse X: %w", err)
	}
	y, err = GetFloat(s, 2)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to parse Y: %w", err)
	}
	return x, y, nil
}

// ChildString returns the first value of the child node with the given key,
// e.g. ChildString(fp, "layer") for (layer "F.Cu").
func ChildString(s kicadsexp.Sexp, key string) (string, bool) {
	node, ok := FindNode(s, key)
	if !ok {
		return "", false
	}
	str, err := GetString(node, 1)
	if err != nil {
		return "", false
	}
	return str, true
}

// ChildFloat returns the first numeric value of the child node with the given key
func ChildFloat(s kicadsexp.Sexp, key string) (float64, bool) {
	node, ok := FindNode(s, key)
	if !ok {
		return 0, false
	}
	val, err := GetFloat(node, 1)
	if err != nil {
		return 0, false
	}
	return val, true
}

// HasSymbol checks if a list contains a specific bare symbol after its key
func HasSymbol(s kicadsexp.Sexp, symbol string) bool {
	return hasSymbolFrom(s, symbol, 1)
}

func hasSymbolFrom(s kicadsexp.Sexp, symbol string, start int) bool {
	items := Items(s)
	if start >= len(items) {
		return false
	}
	for _, item := range items[start:] {
		if sym, ok := item.(kicadsexp.Symbol); ok && string(sym) == symbol {
			return true
		}
	}
	return false
}

// Flag reports a boolean option that older files write as a bare symbol
// (hide) and newer files as a node ((hide yes)).
func Flag(s kicadsexp.Sexp, name string) bool {
	return FlagAfter(s, name, 0)
}

// FlagAfter is Flag for nodes that carry values before their options,
// such as (gr_text "hide" ... hide). Items up to and including index are
// never taken as the bare flag.
func FlagAfter(s kicadsexp.Sexp, name string, index int) bool {
	if hasSymbolFrom(s, name, index+1) {
		return true
	}
	if node, ok := FindNode(s, name); ok {
		val, err := GetString(node, 1)
		return err != nil || val == "yes"
	}
	return false
}

// GetEffects extracts text effects from an (effects ...) node
func GetEffects(s kicadsexp.Sexp) Effects {
	effects := Effects{
		Justify: Justify{Horizontal: "center", Vertical: "center"},
	}

	if fontNode, ok := FindNode(s, "font"); ok {
		effects.Font = GetFont(fontNode)
	}

	if justifyNode, ok := FindNode(s, "justify"); ok {
		effects.Justify = GetJustify(justifyNode)
	}

	effects.Hide = Flag(s, "hide")
	return effects
}

// GetFont extracts font properties from a (font ...) node
// Format: (font (size H W) (thickness T) [bold] [italic])
func GetFont(s kicadsexp.Sexp) Font {
	font := Font{}

	// KiCad writes (size height width)
	if sizeNode, ok := FindNode(s, "size"); ok {
		font.Height, _ = GetFloat(sizeNode, 1)
		font.Width, _ = GetFloat(sizeNode, 2)
	}

	if thickness, ok := ChildFloat(s, "thickness"); ok {
		font.Thickness = thickness
	}

	font.Bold = Flag(s, "bold")
	font.Italic = Flag(s, "italic")
	return font
}

// GetJustify extracts justification from a (justify ...) node
func GetJustify(s kicadsexp.Sexp) Justify {
	justify := Justify{
		Horizontal: "center",
		Vertical:   "center",
	}

	for _, item := range ListItems(s) {
		sym, ok := item.(kicadsexp.Symbol)
		if !ok {
			continue
		}
		switch string(sym) {
		case "left":
			justify.Horizontal = "left"
		case "right":
			justify.Horizontal = "right"
		case "top":
			justify.Vertical = "top"
		case "bottom":
			justify.Vertical = "bottom"
		case "mirror":
			justify.Mirror = true
		}
	}
	return justify
}
