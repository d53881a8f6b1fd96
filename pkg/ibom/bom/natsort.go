package bom

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"
)

// NaturalKey is a reference split into alternating text and digit runs.
// It always starts and ends with a text run (possibly empty), so keys of
// different strings line up run by run.
type NaturalKey []string

// NewNaturalKey splits s into its natural sort runs. Text runs are case
// folded.
func NewNaturalKey(s string) NaturalKey {
	fold := cases.Fold()
	var key NaturalKey
	start := 0
	inDigits := false
	for i := 0; i < len(s); i++ {
		d := isDigit(s[i])
		if d == inDigits {
			continue
		}
		if d {
			key = append(key, fold.String(s[start:i]))
		} else {
			key = append(key, s[start:i])
		}
		start = i
		inDigits = d
	}
	if inDigits {
		key = append(key, s[start:], "")
	} else {
		key = append(key, fold.String(s[start:]))
	}
	return key
}

// Compare orders two keys: digit runs numerically, text runs
// lexicographically, a key that is a prefix of another sorts first.
func (k NaturalKey) Compare(o NaturalKey) int {
	n := min(len(k), len(o))
	for i := 0; i < n; i++ {
		var c int
		if i%2 == 1 {
			c = compareDigits(k[i], o[i])
		} else {
			c = strings.Compare(k[i], o[i])
		}
		if c != 0 {
			return c
		}
	}
	switch {
	case len(k) < len(o):
		return -1
	case len(k) > len(o):
		return 1
	}
	return 0
}

// NaturalCompare compares two strings in natural order.
func NaturalCompare(a, b string) int {
	return NewNaturalKey(a).Compare(NewNaturalKey(b))
}

// NaturalSort returns a naturally sorted copy of refs.
func NaturalSort(refs []string) []string {
	sorted := slices.Clone(refs)
	slices.SortStableFunc(sorted, NaturalCompare)
	return sorted
}

// compareDigits compares two digit runs as integers of any length.
func compareDigits(a, b string) int {
	a = strings.TrimLeft(a, "0")
	b = strings.TrimLeft(b, "0")
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	return strings.Compare(a, b)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
