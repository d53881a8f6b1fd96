package kicad

import (
	"strconv"
	"strings"

	"github.com/OpenTraceLab/ibom/pkg/kicad/pcb"
)

// titleBlockVars returns the text variables every text on the board can
// reference.
func titleBlockVars(tb pcb.TitleBlock) map[string]string {
	vars := map[string]string{
		"TITLE":      tb.Title,
		"ISSUE_DATE": tb.Date,
		"REVISION":   tb.Revision,
		"COMPANY":    tb.Company,
	}
	for i, c := range tb.Comments {
		vars["COMMENT"+strconv.Itoa(i+1)] = c
	}
	return vars
}

// footprintVars extends the board variables with the fields of a footprint.
func footprintVars(base map[string]string, fp *pcb.Footprint) map[string]string {
	vars := make(map[string]string, len(base)+len(fp.Properties)+4)
	for k, v := range base {
		vars[k] = v
	}
	for k, v := range fp.Properties {
		vars[strings.ToUpper(k)] = v
	}
	vars["REFERENCE"] = fp.Reference
	vars["VALUE"] = fp.Value
	vars["FOOTPRINT_LIBRARY"] = fp.Library
	vars["FOOTPRINT_NAME"] = fp.Name
	return vars
}

// shownText expands ${VAR} references. Unknown variables are left as
// written. The whole-text shorthands %R and %V stand for the reference and
// value.
func shownText(text string, vars map[string]string) string {
	switch text {
	case "%R":
		if ref, ok := vars["REFERENCE"]; ok {
			return ref
		}
	case "%V":
		if val, ok := vars["VALUE"]; ok {
			return val
		}
	}

	if !strings.Contains(text, "${") {
		return text
	}

	var sb strings.Builder
	rest := text
	for {
		start := strings.Index(rest, "${")
		if start < 0 {
			sb.WriteString(rest)
			break
		}
		end := strings.IndexByte(rest[start:], '}')
		if end < 0 {
			sb.WriteString(rest)
			break
		}
		end += start

		sb.WriteString(rest[:start])
		name := rest[start+2 : end]
		if val, ok := vars[strings.ToUpper(name)]; ok {
			sb.WriteString(val)
		} else {
			sb.WriteString(rest[start : end+1])
		}
		rest = rest[end+1:]
	}
	return sb.String()
}
