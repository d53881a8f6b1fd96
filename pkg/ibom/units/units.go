// Package units canonicalizes component value strings so that equivalent
// spellings ("10k", "10K", "10 kOhm", "10000") group into one BOM row.
package units

import (
	"math"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"golang.org/x/text/unicode/norm"
)

// valueLexer splits a value into numbers and letter runs. The "." inside a
// number is part of the Number token; a Word never contains digits.
var valueLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Number", Pattern: `[0-9]+(?:\.[0-9]*)?|\.[0-9]+`},
	{Name: "Word", Pattern: `[^\s0-9.]+`},
	{Name: "Whitespace", Pattern: `\s+`},
})

// valueExpr is <mantissa>[<suffix>][<digits>], e.g. "4.7", "10k", "4k7",
// "1R5", "100 nF".
type valueExpr struct {
	Mantissa string `parser:"@Number"`
	Suffix   string `parser:"@Word?"`
	Tail     string `parser:"@Number?"`
}

var valueParser = participle.MustBuild[valueExpr](
	participle.Lexer(valueLexer),
	participle.Elide("Whitespace"),
)

var prefixes = []struct {
	names      []string
	multiplier float64
}{
	{[]string{"pico", "p"}, 1e-12},
	{[]string{"nano", "n"}, 1e-9},
	{[]string{"micro", "u", "μ"}, 1e-6},
	{[]string{"milli", "m"}, 1e-3},
	{[]string{"kilo", "k", "K"}, 1e3},
	{[]string{"mega", "meg", "M"}, 1e6},
	{[]string{"giga", "g", "G"}, 1e9},
}

var unitNames = []struct {
	names []string
	unit  string
}{
	{[]string{"ohms", "ohm", "r", "R", "Ω", "ω"}, "R"},
	{[]string{"farad", "f", "F"}, "F"},
	{[]string{"henry", "h", "H"}, "H"},
}

// Value is a parsed component value.
type Value struct {
	Magnitude float64
	Unit      string // "R", "F", "H" or "" when no unit was given
}

// String returns the canonical form used for grouping.
func (v Value) String() string {
	s := strconv.FormatFloat(v.Magnitude, 'g', -1, 64)
	if v.Unit == "" {
		return s
	}
	return s + " " + v.Unit
}

// Parse parses a component value. ok is false when the string is not a
// plain magnitude with optional prefix and unit.
func Parse(raw string) (v Value, ok bool) {
	// NFKC folds the micro sign into the Greek mu
	s := norm.NFKC.String(raw)
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" {
		return Value{}, false
	}

	expr, err := valueParser.ParseString("", s)
	if err != nil {
		return Value{}, false
	}

	multiplier, unit, ok := splitSuffix(expr.Suffix)
	if !ok {
		return Value{}, false
	}

	number := expr.Mantissa
	if expr.Tail != "" {
		// 4k7 and 1R5 use the suffix as the decimal point
		if expr.Suffix == "" || strings.Contains(number, ".") || strings.Contains(expr.Tail, ".") {
			return Value{}, false
		}
		number += "." + expr.Tail
	}

	magnitude, err := strconv.ParseFloat(number, 64)
	if err != nil {
		return Value{}, false
	}
	magnitude = roundSignificant(magnitude * multiplier)

	return Value{Magnitude: magnitude, Unit: unit}, true
}

// Normalize returns the canonical grouping form of a value string, or the
// input unchanged if it cannot be parsed.
func Normalize(raw string) string {
	v, ok := Parse(raw)
	if !ok {
		return raw
	}
	return v.String()
}

// splitSuffix splits a letter run into an SI prefix and a unit, both optional.
func splitSuffix(suffix string) (multiplier float64, unit string, ok bool) {
	if suffix == "" {
		return 1, "", true
	}

	// unit alone: "R", "ohm", "F"
	if u, found := lookupUnit(suffix); found {
		return 1, u, true
	}

	for _, p := range prefixes {
		for _, name := range p.names {
			rest, found := strings.CutPrefix(suffix, name)
			if !found {
				continue
			}
			if rest == "" {
				return p.multiplier, "", true
			}
			if u, found := lookupUnit(rest); found {
				return p.multiplier, u, true
			}
		}
	}
	return 0, "", false
}

func lookupUnit(s string) (string, bool) {
	for _, u := range unitNames {
		for _, name := range u.names {
			if s == name || strings.EqualFold(s, name) && len(name) > 1 {
				return u.unit, true
			}
		}
	}
	return "", false
}

// roundSignificant strips binary noise such as 4.7e-06 * 1 = 4.699999e-06
// by rounding to 12 significant digits.
func roundSignificant(x float64) float64 {
	if x == 0 || math.IsInf(x, 0) || math.IsNaN(x) {
		return x
	}
	f, err := strconv.ParseFloat(strconv.FormatFloat(x, 'g', 12, 64), 64)
	if err != nil {
		return x
	}
	return f
}
