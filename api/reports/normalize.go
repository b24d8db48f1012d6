package reports

import (
	"strings"
	"unicode"
)

// columnAliases maps known raw upload headers to canonical names. Lookup is on
// the trimmed, upper-cased raw header; anything unknown passes through as-is.
var columnAliases = map[string]string{
	"OUTLET":    ColOutlet,
	"PO REF NO": ColPONumber,
	"PO DATE":   ColPODate,
	"PO VALUE":  ColPOValue,
}

// isPlaceholderHeader matches spreadsheet-export artifacts: blank headers and
// the "Unnamed: N" columns Excel round-trips produce.
func isPlaceholderHeader(h string) bool {
	trimmed := strings.TrimSpace(h)
	return trimmed == "" || strings.HasPrefix(trimmed, "Unnamed")
}

// NormalizeSheet renames known headers to canonical names, drops placeholder
// columns, and appends the derived Outlet Group column when an Outlet column is
// present. A missing Outlet is not an error; the sheet just never grows an
// Outlet Group and is skipped downstream.
func NormalizeSheet(raw RawSheet) Table {
	if len(raw.Cells) == 0 {
		return Table{}
	}

	headerRow := raw.Cells[0]
	keep := make([]int, 0, len(headerRow))
	headers := make([]string, 0, len(headerRow))
	for i, h := range headerRow {
		name := strings.TrimSpace(h)
		if alias, ok := columnAliases[strings.ToUpper(name)]; ok {
			name = alias
		}
		if isPlaceholderHeader(name) {
			continue
		}
		keep = append(keep, i)
		headers = append(headers, name)
	}

	rows := make([][]string, 0, len(raw.Cells)-1)
	for _, src := range raw.Cells[1:] {
		row := make([]string, len(keep))
		for j, idx := range keep {
			if idx < len(src) {
				row[j] = src[idx]
			}
		}
		rows = append(rows, row)
	}

	table := Table{Headers: headers, Rows: rows}
	if outletIdx := table.ColumnIndex(ColOutlet); outletIdx >= 0 {
		table.Headers = append(table.Headers, ColOutletGroup)
		for i := range table.Rows {
			table.Rows[i] = append(table.Rows[i], OutletGroup(table.Rows[i][outletIdx]))
		}
	}
	return table
}

// OutletGroup derives the coarse outlet classification: the segment before the
// first hyphen, whitespace or ASCII digit, trimmed and upper-cased. An outlet
// with none of those characters classifies as its whole trimmed, upper-cased
// identifier.
func OutletGroup(outlet string) string {
	cut := len(outlet)
	for i, r := range outlet {
		if r == '-' || unicode.IsSpace(r) || (r >= '0' && r <= '9') {
			cut = i
			break
		}
	}
	return strings.ToUpper(strings.TrimSpace(outlet[:cut]))
}

// subCategoryHeader returns the first header containing "SUB" (case
// insensitive), or "". First match wins when several qualify.
func subCategoryHeader(t Table) string {
	for _, h := range t.Headers {
		if strings.Contains(strings.ToUpper(h), "SUB") {
			return h
		}
	}
	return ""
}
